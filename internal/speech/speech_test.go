package speech

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	assert.IsType(t, Nop{}, FromConfig("   ", nil))
	assert.IsType(t, &Command{}, FromConfig("espeak -s 120", nil))
}

func TestNewCommandSplitsArgs(t *testing.T) {
	c := NewCommand("say -v Samantha", nil)
	require.NotNil(t, c)
	assert.Equal(t, "say", c.name)
	assert.Equal(t, []string{"-v", "Samantha"}, c.args)
}

func TestCommandSpeaksWord(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "spoken.txt")
	script := filepath.Join(dir, "tts.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf '%s|%s' \"$1\" \"$2\" > "+out+"\n"), 0o755))

	c := NewCommand(script+" --fast", nil)
	c.Speak("  ball ")
	c.Speak("")
	c.Wait()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "--fast|ball", strings.TrimSpace(string(data)))
}

func TestCommandMissingBinaryDoesNotPanic(t *testing.T) {
	c := NewCommand(filepath.Join(t.TempDir(), "no-such-tts"), nil)
	c.Speak("kite")
	c.Wait()
}
