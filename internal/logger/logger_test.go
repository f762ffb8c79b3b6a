package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lexiz.log")
	log, err := New("info", path)
	require.NoError(t, err)

	log.With("lesson_id", "classroom_toys").Info("session started", "mode", "room2d")
	log.Debug("below level")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"session started"`)
	assert.Contains(t, out, `"lesson_id":"classroom_toys"`)
	assert.Contains(t, out, `"mode":"room2d"`)
	assert.False(t, strings.Contains(out, "below level"), "debug must be filtered at info level")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", "")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("nothing", "k", 1)
	log.With("a", "b").Error("still nothing")
	log.Sync()
}
