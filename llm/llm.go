// Package llm talks to the language model that reads requests and estimates
// track features. Providers share the Completer interface so the pipeline can
// be tested against fakes.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mager/moodify/config"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when a provider has no credentials.
var ErrNotConfigured = errors.New("llm: provider not configured")

// Completer runs one system+user prompt and returns the raw text reply.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
}

// Client is the process-wide model handle.
type Client struct {
	Completer
	Provider   string
	Configured bool
}

// ProvideClient picks the provider named in config and wraps it in a circuit breaker.
func ProvideClient(cfg config.Config, log *zap.SugaredLogger) (*Client, error) {
	var (
		c          Completer
		configured bool
	)

	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Warn("gemini api key missing, intent and feature estimation will use defaults")
			c = unconfigured{}
			break
		}
		g, err := NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, &http.Client{Timeout: cfg.LLMTimeout})
		if err != nil {
			return nil, err
		}
		c, configured = g, true
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Warn("openai api key missing, intent and feature estimation will use defaults")
			c = unconfigured{}
			break
		}
		c = NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout)
		configured = true
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.LLMProvider)
	}

	log.Infow("setting up llm client", "provider", cfg.LLMProvider, "configured", configured)

	return &Client{
		Completer:  NewBreaker(cfg.LLMProvider, c, log),
		Provider:   cfg.LLMProvider,
		Configured: configured,
	}, nil
}

type unconfigured struct{}

func (unconfigured) Complete(context.Context, string, string, float32) (string, error) {
	return "", ErrNotConfigured
}

var Options = ProvideClient
