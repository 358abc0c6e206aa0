package main

import (
	"context"
	"net"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/mager/moodify/config"
	"github.com/mager/moodify/handler/health"
	recommendHandler "github.com/mager/moodify/handler/recommend"
	"github.com/mager/moodify/llm"
	"github.com/mager/moodify/logger"
	"github.com/mager/moodify/metrics"
	"github.com/mager/moodify/recommend"
	"github.com/mager/moodify/spotify"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Route is an http.Handler that knows the mux pattern
// under which it will be registered.
type Route interface {
	http.Handler

	// Pattern reports the path at which this is registered.
	Pattern() string
	// Methods lists the HTTP methods the route accepts.
	Methods() []string
}

func main() {
	fx.New(
		fx.WithLogger(func(log *zap.SugaredLogger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Desugar()}
		}),
		fx.Provide(
			NewHTTPServer,
			fx.Annotate(NewRouter, fx.ParamTags(`group:"routes"`)),
			NewRecommender,

			config.Options,
			logger.Options,
			metrics.Options,
			spotify.Options,
			llm.Options,

			AsRoute(health.NewRootHandler),
			AsRoute(health.NewHealthHandler),
			AsRoute(recommendHandler.NewRecommendHandler),
		),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

// NewRecommender wires the pipeline to the Spotify catalog and the configured model.
func NewRecommender(
	cfg config.Config,
	log *zap.SugaredLogger,
	m *metrics.Metrics,
	spotifyClient *spotify.SpotifyClient,
	llmClient *llm.Client,
) *recommend.Recommender {
	return recommend.NewRecommender(spotifyClient, llmClient, log, m, recommend.Options{
		Market:             cfg.Market,
		PageSize:           cfg.PageSize,
		MaxCandidates:      cfg.MaxCandidates,
		RelaxBPM:           cfg.RelaxBPM,
		FeatureTemperature: cfg.FeatureTemperature,
		FetchConcurrency:   cfg.FetchConcurrency,
	})
}

// NewRouter registers every route plus /metrics.
func NewRouter(routes []Route, log *zap.SugaredLogger, m *metrics.Metrics) http.Handler {
	router := mux.NewRouter()
	for _, route := range routes {
		router.Handle(route.Pattern(), route).Methods(route.Methods()...)
	}
	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return recoverMiddleware(log)(jsonMiddleware(router))
}

func NewHTTPServer(lc fx.Lifecycle, cfg config.Config, log *zap.SugaredLogger, handler http.Handler) *http.Server {
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Infow("starting HTTP server", "addr", srv.Addr)
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

// AsRoute annotates the given constructor to state that
// it provides a route to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func recoverMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Errorw("panic serving request",
						"path", r.URL.Path,
						"panic", p,
						zap.Stack("stack"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
