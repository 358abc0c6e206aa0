package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideLogger(t *testing.T) {
	l, err := ProvideLogger()
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNewTestLogger(t *testing.T) {
	l, recorded := NewTestLogger()
	l.Infow("fetched tracks", "count", 3)

	entries := recorded.FilterMessage("fetched tracks").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
}
