package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideConfigDefaults(t *testing.T) {
	cfg, err := ProvideConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "IN", cfg.Market)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 15, cfg.MaxCandidates)
	assert.Equal(t, 15, cfg.RelaxBPM)
	assert.Equal(t, float32(0.3), cfg.FeatureTemperature)
}

func TestProvideConfigFromEnv(t *testing.T) {
	t.Setenv("MOODIFY_SPOTIFYID", "id")
	t.Setenv("MOODIFY_SPOTIFYSECRET", "secret")
	t.Setenv("MOODIFY_MARKET", "US")
	t.Setenv("MOODIFY_LLMPROVIDER", "openai")
	t.Setenv("MOODIFY_PAGESIZE", "20")

	cfg, err := ProvideConfig()
	require.NoError(t, err)

	assert.Equal(t, "id", cfg.SpotifyID)
	assert.Equal(t, "secret", cfg.SpotifySecret)
	assert.Equal(t, "US", cfg.Market)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, 20, cfg.PageSize)
}

func TestProvideConfigInvalid(t *testing.T) {
	t.Setenv("MOODIFY_PAGESIZE", "lots")

	_, err := ProvideConfig()
	assert.Error(t, err)
}
