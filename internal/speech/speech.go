// Package speech plays words aloud through an external TTS program.
package speech

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/lexiz/internal/logger"
)

// Speaker triggers audible playback of a word. Speak must not block.
type Speaker interface {
	Speak(word string)
}

// Nop discards every word.
type Nop struct{}

func (Nop) Speak(string) {}

// Timeout bounds a single utterance.
const Timeout = 10 * time.Second

// Command speaks by running a program with the word as its last argument,
// for example "espeak" or "say -v Samantha".
type Command struct {
	name string
	args []string
	log  *logger.Logger
	wg   sync.WaitGroup
}

// NewCommand parses a whitespace-separated command line. It returns nil for
// an empty line.
func NewCommand(cmdline string, log *logger.Logger) *Command {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Command{name: fields[0], args: fields[1:], log: log}
}

func (c *Command) Speak(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	args := append(append([]string(nil), c.args...), word)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()
		if out, err := exec.CommandContext(ctx, c.name, args...).CombinedOutput(); err != nil {
			c.log.Warn("speech failed", "command", c.name, "word", word, "error", err, "output", strings.TrimSpace(string(out)))
		}
	}()
}

// Wait blocks until every started utterance has finished.
func (c *Command) Wait() {
	c.wg.Wait()
}

// FromConfig returns a Command for a non-empty command line and Nop otherwise.
func FromConfig(cmdline string, log *logger.Logger) Speaker {
	if c := NewCommand(cmdline, log); c != nil {
		return c
	}
	return Nop{}
}
