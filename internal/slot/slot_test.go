package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/lesson"
)

func TestStore(t *testing.T) {
	var s Store

	assert.Nil(t, s.Peek())
	_, err := s.Get()
	assert.ErrorIs(t, err, ErrEmpty)

	doc := &lesson.Document{LessonID: "a"}
	s.Set(doc)
	got, err := s.Get()
	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Same(t, doc, s.Peek())

	next := &lesson.Document{LessonID: "b"}
	s.Set(next)
	assert.Same(t, next, s.Peek())

	s.Clear()
	assert.Nil(t, s.Peek())
	_, err = s.Get()
	assert.ErrorIs(t, err, ErrEmpty)
}
