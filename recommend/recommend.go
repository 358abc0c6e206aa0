// Package recommend turns a free-text request into a tempo-matched playlist.
//
// The pipeline runs left to right: intent extraction, query planning,
// catalog fan-out with dedup, artist refinement, feature estimation and a
// tiered tempo filter. Upstream failures degrade to documented defaults and
// never surface as errors; the only error a caller sees is ErrEmptyInput.
package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/mager/moodify/llm"
	"github.com/mager/moodify/metrics"
	"github.com/mager/moodify/moodify"
	"go.uber.org/zap"
)

// ErrEmptyInput means the request had no text to work with.
var ErrEmptyInput = errors.New("recommend: no input text")

// NoTracksMessage is returned with an empty playlist when every catalog query came back empty.
const NoTracksMessage = "No tracks found for this request"

const (
	DefaultMarket             = "IN"
	DefaultPageSize           = 50
	DefaultMaxCandidates      = 15
	DefaultRelaxBPM           = 15
	DefaultFeatureTemperature = 0.3
	DefaultFetchConcurrency   = 3
)

// SearchOptions scope a single catalog search call.
type SearchOptions struct {
	Market string
	Limit  int
	Offset int
}

// Catalog searches for tracks.
type Catalog interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]moodify.Track, error)
}

// Options are the tunable policy constants of the pipeline.
type Options struct {
	Market string
	// PageSize is the limit passed to every search call.
	PageSize int
	// MaxCandidates bounds how many tracks go to feature estimation.
	MaxCandidates int
	// RelaxBPM widens the tier range on each side for the second filter pass.
	RelaxBPM           int
	FeatureTemperature float32
	FetchConcurrency   int
}

// DefaultOptions returns the standard policy.
func DefaultOptions() Options {
	return Options{
		Market:             DefaultMarket,
		PageSize:           DefaultPageSize,
		MaxCandidates:      DefaultMaxCandidates,
		RelaxBPM:           DefaultRelaxBPM,
		FeatureTemperature: DefaultFeatureTemperature,
		FetchConcurrency:   DefaultFetchConcurrency,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Market == "" {
		o.Market = d.Market
	}
	if o.PageSize <= 0 {
		o.PageSize = d.PageSize
	}
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = d.MaxCandidates
	}
	if o.RelaxBPM < 0 {
		o.RelaxBPM = d.RelaxBPM
	}
	if o.FeatureTemperature <= 0 {
		o.FeatureTemperature = d.FeatureTemperature
	}
	if o.FetchConcurrency <= 0 {
		o.FetchConcurrency = d.FetchConcurrency
	}
	return o
}

// Recommender runs the pipeline. It holds no per-request state and is safe
// for concurrent use.
type Recommender struct {
	catalog Catalog
	lm      llm.Completer
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
	opts    Options
}

func NewRecommender(catalog Catalog, lm llm.Completer, log *zap.SugaredLogger, m *metrics.Metrics, opts Options) *Recommender {
	return &Recommender{
		catalog: catalog,
		lm:      lm,
		log:     log,
		metrics: m,
		opts:    opts.withDefaults(),
	}
}

// Recommend builds a playlist for text.
func (r *Recommender) Recommend(ctx context.Context, text string) (moodify.Result, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		r.metrics.Recommendation("invalid")
		return moodify.Result{}, ErrEmptyInput
	}

	intent := r.ExtractIntent(ctx, query)
	r.log.Infow("extracted intent",
		"artist", intent.Artist,
		"mood", intent.Mood,
		"context", intent.Context,
		"energy", intent.Energy,
		"genreHint", intent.GenreHint,
	)

	plan := Plan(intent)
	tracks := r.Fetch(ctx, plan)
	result := moodify.NewResult(text, intent)

	if len(tracks) == 0 {
		r.log.Infow("no tracks found", "queries", len(plan))
		r.metrics.Recommendation("empty")
		result.Message = NoTracksMessage
		return result, nil
	}

	candidates := Refine(tracks, intent.Artist)
	if len(candidates) > r.opts.MaxCandidates {
		candidates = candidates[:r.opts.MaxCandidates]
	}

	features := r.EstimateFeatures(ctx, candidates, intent.Mood, intent.Energy)
	enriched := make([]moodify.EnrichedTrack, len(candidates))
	for i, t := range candidates {
		enriched[i] = moodify.EnrichedTrack{Track: t, Features: features[i]}
	}

	playlist, match := FilterByTempo(enriched, intent.Energy, r.opts.RelaxBPM)
	r.log.Infow("built playlist",
		"fetched", len(tracks),
		"candidates", len(candidates),
		"playlist", len(playlist),
		"tempoMatch", match,
	)
	r.metrics.TempoMatch(string(match))
	r.metrics.Recommendation("ok")

	return result.WithPlaylist(playlist, match), nil
}
