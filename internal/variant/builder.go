// Package variant builds lesson variants from a master template and a set of
// selected activity modes.
package variant

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/abhisek/lexiz/internal/lesson"
)

//go:embed templates/classroom.json
var classroomTemplate []byte

// ErrEmptySelection is returned when no mode is selected.
var ErrEmptySelection = errors.New("no modes selected")

// Priority orders selectable modes when picking the starting mode.
var Priority = []lesson.UIMode{
	lesson.ModeRoom2D,
	lesson.ModePicSelection,
	lesson.ModeFloatingBubble,
	lesson.ModeSentenceBuilder,
}

// UnknownModeError reports a selection key that is not a selectable mode.
type UnknownModeError struct {
	Key        string
	Suggestion string
}

func (e *UnknownModeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown mode %q (did you mean %q?)", e.Key, e.Suggestion)
	}
	return fmt.Sprintf("unknown mode %q", e.Key)
}

// Builder derives variants from one template.
type Builder struct {
	template *lesson.Document
}

// NewBuilder returns a Builder over a validated template.
func NewBuilder(template *lesson.Document) (*Builder, error) {
	if err := lesson.Validate(template); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	return &Builder{template: template}, nil
}

var (
	defaultOnce    sync.Once
	defaultBuilder *Builder
	defaultErr     error
)

// Default returns the Builder over the embedded classroom template.
func Default() (*Builder, error) {
	defaultOnce.Do(func() {
		doc, err := lesson.Decode(classroomTemplate)
		if err != nil {
			defaultErr = fmt.Errorf("embedded template: %w", err)
			return
		}
		defaultBuilder, defaultErr = NewBuilder(doc)
	})
	return defaultBuilder, defaultErr
}

// Build builds a variant of the embedded template.
func Build(selected []lesson.UIMode) (*lesson.Document, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return b.Build(selected)
}

// Template returns the template the Builder derives from.
func (b *Builder) Template() *lesson.Document { return b.template }

// Build returns a fresh document restricted to the selected modes. The
// template is never modified. Duplicate keys are ignored; selection order is
// kept in the generated id and title.
func (b *Builder) Build(selected []lesson.UIMode) (*lesson.Document, error) {
	keys, err := normalize(selected)
	if err != nil {
		return nil, err
	}

	out, err := lesson.Clone(b.template)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	out.LessonID = fmt.Sprintf("%s__%s__v1", out.LessonID, strings.Join(names, "_"))
	out.Title = fmt.Sprintf("%s (%s)", out.Title, strings.Join(names, ", "))
	out.Defaults.UI = startMode(keys)

	has := func(m lesson.UIMode) bool { return slices.Contains(keys, m) }
	if !has(lesson.ModeRoom2D) {
		out.Defaults.Room2D = nil
	}
	if !has(lesson.ModeSentenceBuilder) {
		out.Defaults.SentenceBuilder = nil
	}
	if !has(lesson.ModeFloatingBubble) {
		out.Defaults.FloatingBubble = nil
	}
	if c := out.Content; c != nil {
		if !has(lesson.ModePicSelection) {
			c.PicSelection = nil
		}
		if !has(lesson.ModeSentenceBuilder) {
			c.SentenceBuilder = nil
		}
		if !has(lesson.ModeFloatingBubble) {
			c.FloatingBubble = nil
		}
		if !has(lesson.ModeRoom2D) {
			c.Room2D = nil
		}
		if *c == (lesson.Content{}) {
			out.Content = nil
		}
	}
	if out.Defaults.Features != nil {
		out.Defaults.Features.PicSelection = has(lesson.ModePicSelection)
	}

	if err := lesson.Validate(out); err != nil {
		return nil, fmt.Errorf("built variant: %w", err)
	}
	return out, nil
}

// ParseModes parses selection keys such as "room2d,picSelection".
func ParseModes(keys []string) ([]lesson.UIMode, error) {
	var out []lesson.UIMode
	for _, raw := range keys {
		for _, k := range strings.Split(raw, ",") {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			out = append(out, lesson.UIMode(k))
		}
	}
	return normalize(out)
}

func normalize(selected []lesson.UIMode) ([]lesson.UIMode, error) {
	var keys []lesson.UIMode
	for _, m := range selected {
		if !slices.Contains(Priority, m) {
			return nil, &UnknownModeError{Key: string(m), Suggestion: suggest(string(m))}
		}
		if !slices.Contains(keys, m) {
			keys = append(keys, m)
		}
	}
	if len(keys) == 0 {
		return nil, ErrEmptySelection
	}
	return keys, nil
}

func startMode(keys []lesson.UIMode) lesson.UIMode {
	for _, m := range Priority {
		if slices.Contains(keys, m) {
			return m
		}
	}
	return keys[0]
}

// suggest returns the closest selectable mode within a small edit distance.
func suggest(key string) string {
	best, bestDist := "", 4
	for _, m := range Priority {
		d := levenshtein.ComputeDistance(strings.ToLower(key), strings.ToLower(string(m)))
		if d < bestDist {
			best, bestDist = string(m), d
		}
	}
	return best
}
