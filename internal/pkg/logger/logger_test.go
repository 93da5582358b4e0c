package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("unknown level falls back to info", func(t *testing.T) {
		log, err := New("loud")
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(-1)) // debug
		assert.True(t, log.Core().Enabled(0))   // info
	})

	t.Run("debug level", func(t *testing.T) {
		log, err := New("debug")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(-1))
	})
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaintmap.log")

	log, err := NewWithFile("info", FileConfig{Path: path})
	require.NoError(t, err)

	log.Info("complaint stored")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "complaint stored")
}
