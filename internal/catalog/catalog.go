// Package catalog loads the static lesson catalog from a directory.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lexiz/internal/adaptive"
	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/perf"
)

// Catalog is an ordered set of validated lessons with unique ids.
type Catalog struct {
	Lessons []*lesson.Document
}

// New builds a catalog from already loaded documents. Ids must be unique.
func New(docs ...*lesson.Document) (*Catalog, error) {
	seen := make(map[string]string, len(docs))
	for _, d := range docs {
		if prev, ok := seen[d.LessonID]; ok {
			return nil, fmt.Errorf("duplicate lesson id %q (%s)", d.LessonID, prev)
		}
		seen[d.LessonID] = d.Title
	}
	return &Catalog{Lessons: docs}, nil
}

// LoadDir loads every lesson file in dir, sorted by file name. Files are
// read and validated concurrently; any failure aborts the whole load.
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read lessons dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isLessonFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return LoadFiles(ctx, paths)
}

// LoadFiles loads the given lesson files, keeping their order.
func LoadFiles(ctx context.Context, paths []string) (*Catalog, error) {
	docs := make([]*lesson.Document, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			doc, err := lesson.Load(p)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return New(docs...)
}

func isLessonFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Len returns the number of lessons.
func (c *Catalog) Len() int { return len(c.Lessons) }

// ByID returns the lesson with id.
func (c *Catalog) ByID(id string) (*lesson.Document, bool) {
	for _, d := range c.Lessons {
		if d.LessonID == id {
			return d, true
		}
	}
	return nil, false
}

// Candidates returns the routing view of the catalog in order.
func (c *Catalog) Candidates() []adaptive.Candidate {
	return adaptive.CandidatesFrom(c.Lessons)
}

// Next picks the lesson the router recommends after a session. It reports
// false for an empty catalog.
func (c *Catalog) Next(s perf.Summary) (*lesson.Document, adaptive.Decision, bool) {
	if len(c.Lessons) == 0 {
		return nil, adaptive.Decision{}, false
	}
	d := adaptive.Decide(c.Candidates(), s)
	return c.Lessons[d.Index], d, true
}
