package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/perf"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/store"
)

func seededRepo(t *testing.T, lessons ...string) store.ReportRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "lexiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.ReportRepo()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range lessons {
		r := perf.NewReport(id, perf.Summary{Room2DFound: 1, Room2DTargets: 2, Room2DMisTaps: 3, Attempts: i + 1}, at)
		if err := perf.Export(context.Background(), store.Saver(repo, "s"), r); err != nil {
			t.Fatalf("export: %v", err)
		}
	}
	return repo
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryListsNewestFirst(t *testing.T) {
	s := New(seededRepo(t, "classroom_toys", "toys_bubbles"))
	load(t, s)

	if len(s.Reports()) != 2 {
		t.Fatalf("reports = %d, want 2", len(s.Reports()))
	}
	if s.Reports()[0].Report.LessonID != "toys_bubbles" {
		t.Errorf("first = %q, want toys_bubbles", s.Reports()[0].Report.LessonID)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "classroom_toys") || !strings.Contains(view, "2 attempts") {
		t.Errorf("view missing rows:\n%s", view)
	}
}

func TestHistoryExpandShowsAccuracy(t *testing.T) {
	s := New(seededRepo(t, "classroom_toys"))
	load(t, s)

	if strings.Contains(s.View(100, 30), "Recognition") {
		t.Fatal("details shown before expanding")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(100, 30)
	if !strings.Contains(view, "Recognition     1/2   50%") {
		t.Errorf("expanded view missing accuracy:\n%s", view)
	}
	if !strings.Contains(view, "Mis-taps        3") {
		t.Errorf("expanded view missing mis-taps:\n%s", view)
	}
}

func TestHistoryNilRepo(t *testing.T) {
	s := New(nil)
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No reports yet") {
		t.Error("expected empty message")
	}
	// Enter on an empty list is a no-op.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(s.expanded) != 0 {
		t.Error("nothing to expand")
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
}
