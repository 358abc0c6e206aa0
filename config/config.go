package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from MOODIFY_* environment variables.
type Config struct {
	Port string `default:"8080"`

	SpotifyID     string
	SpotifySecret string
	// Market is the region every catalog search is scoped to.
	Market string `default:"IN"`

	LLMProvider string        `default:"gemini"`
	LLMTimeout  time.Duration `default:"30s"`

	GeminiAPIKey string
	GeminiModel  string `default:"gemini-2.0-flash"`

	OpenAIAPIKey  string
	OpenAIBaseURL string `default:"https://api.openai.com/v1"`
	OpenAIModel   string `default:"gpt-4o-mini"`

	PageSize           int     `default:"50"`
	MaxCandidates      int     `default:"15"`
	RelaxBPM           int     `default:"15"`
	FeatureTemperature float32 `default:"0.3"`
	FetchConcurrency   int     `default:"3"`
}

func ProvideConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("moodify", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

var Options = ProvideConfig
