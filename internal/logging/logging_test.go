package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popstats/internal/sentinel"
)

func TestNewLevels(t *testing.T) {
	var b bytes.Buffer
	log, err := New(&b, "warn", false)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown", "file", "pop0.txt")
	assert.NotContains(t, b.String(), "hidden")
	assert.Contains(t, b.String(), "file=pop0.txt")
}

func TestQuietRaisesLevel(t *testing.T) {
	var b bytes.Buffer
	log, err := New(&b, "debug", true)
	require.NoError(t, err)
	log.Info("progress")
	assert.Empty(t, b.String())
}

func TestBadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", false)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidParameter))
}
