package summary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/screens"
)

func testDeps(t *testing.T) (*screens.Deps, *runner.Runner) {
	t.Helper()
	doc, err := lesson.Load("../../lesson/testdata/classroom.json")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	deps := &screens.Deps{
		Host:      runner.NewHost(runner.WithScheduler(runner.NewManualScheduler())),
		ExportDir: t.TempDir(),
	}
	run, err := deps.Host.Load(doc)
	if err != nil {
		t.Fatalf("load runner: %v", err)
	}
	return deps, run
}

func TestSummaryScreen_Title(t *testing.T) {
	deps, run := testDeps(t)
	s := New(deps, run)
	if s.Title() != "Lesson Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Lesson Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	deps, run := testDeps(t)
	run.MarkVisited("obj_ball")
	s := New(deps, run)
	view := s.View(100, 30)
	if !strings.Contains(view, "Well done") {
		t.Error("expected a greeting in the summary view")
	}
	if !strings.Contains(view, "1/4") {
		t.Errorf("expected room progress 1/4 in view:\n%s", view)
	}
}

func TestSummaryScreen_ExportsOnce(t *testing.T) {
	deps, run := testDeps(t)
	s := New(deps, run)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	s.Update(cmd())

	path := filepath.Join(deps.ExportDir, "classroom_toys-performance.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), `"lessonId": "classroom_toys"`) {
		t.Errorf("unexpected export:\n%s", data)
	}
	if !strings.Contains(s.View(100, 30), "Report saved") {
		t.Error("expected a saved notice")
	}
	if s.Init() != nil {
		t.Error("a session must not export twice")
	}
}

func TestSummaryScreen_RecommendsBubblesAfterRoom(t *testing.T) {
	deps, run := testDeps(t)
	for _, id := range []string{"obj_ball", "obj_teddy", "obj_blocks", "obj_kite"} {
		run.MarkVisited(id)
	}
	s := New(deps, run)
	if got := s.Decision().Mode; got != lesson.ModeFloatingBubble {
		t.Errorf("decision mode = %q, want floatingBubble", got)
	}
	if s.Next().LessonID != "classroom_toys" {
		t.Errorf("next lesson = %q", s.Next().LessonID)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	deps, run := testDeps(t)
	s := New(deps, run)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	play, ok := cmd().(screens.PlayMsg)
	if !ok {
		t.Fatalf("expected PlayMsg, got %T", cmd())
	}
	if !play.Replace || play.Doc == nil {
		t.Errorf("unexpected play message %+v", play)
	}
	if _, live := deps.Host.Current(); live {
		t.Error("finished session should be unloaded before the next one starts")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	deps, run := testDeps(t)
	s := New(deps, run)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected Esc to return home")
	}
}

func TestSummaryScreen_LeaveKeepsNewerSession(t *testing.T) {
	deps, run := testDeps(t)
	s := New(deps, run)

	other, err := lesson.Load("../../lesson/testdata/classroom.json")
	if err != nil {
		t.Fatal(err)
	}
	other.LessonID = "classroom_toys_again"
	deps.Host.Unload()
	next, err := deps.Host.Load(other)
	if err != nil {
		t.Fatal(err)
	}

	s.Leave()
	if cur, ok := deps.Host.Current(); !ok || cur != next {
		t.Error("leaving an old summary must not end a newer session")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	deps, run := testDeps(t)
	s := New(deps, run)
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
