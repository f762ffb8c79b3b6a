// Package slot hands one built lesson from the build flow to the play flow.
package slot

import (
	"errors"
	"sync"

	"github.com/abhisek/lexiz/internal/lesson"
)

// ErrEmpty is returned by Get when nothing has been stored.
var ErrEmpty = errors.New("lesson slot is empty; build a lesson first")

// Store is a single-slot lesson store. The zero value is ready to use.
type Store struct {
	mu  sync.Mutex
	doc *lesson.Document
}

// New returns an empty Store.
func New() *Store { return &Store{} }

// Set replaces the stored lesson.
func (s *Store) Set(doc *lesson.Document) {
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}

// Get returns the stored lesson or ErrEmpty.
func (s *Store) Get() (*lesson.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, ErrEmpty
	}
	return s.doc, nil
}

// Peek returns the stored lesson, or nil. It never fails.
func (s *Store) Peek() *lesson.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Clear empties the slot.
func (s *Store) Clear() {
	s.mu.Lock()
	s.doc = nil
	s.mu.Unlock()
}
