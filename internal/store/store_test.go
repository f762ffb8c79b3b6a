package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/lexiz/internal/perf"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "lexiz.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func exportBytes(t *testing.T, lessonID string, attempts int) []byte {
	t.Helper()
	var got []byte
	saver := saverFunc(func(_ context.Context, _ string, data []byte) error {
		got = append([]byte(nil), data...)
		return nil
	})
	r := perf.NewReport(lessonID, perf.Summary{Room2DFound: 2, Room2DTargets: 4, Attempts: attempts}, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	if err := perf.Export(context.Background(), saver, r); err != nil {
		t.Fatalf("export: %v", err)
	}
	return got
}

type saverFunc func(ctx context.Context, name string, data []byte) error

func (f saverFunc) Save(ctx context.Context, name string, data []byte) error { return f(ctx, name, data) }

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil ent driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='performance_reports'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "performance_reports" {
		t.Errorf("table name = %q, want 'performance_reports'", name)
	}
}

func TestReopenKeepsReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexiz.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.ReportRepo().Append(context.Background(), "s1", exportBytes(t, "classroom_toys", 3)); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	latest, err := s.ReportRepo().Latest(context.Background(), "")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.Report.Attempts != 3 {
		t.Fatalf("latest = %+v, want attempts 3", latest)
	}
}

func TestReportAppendAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	rep, err := repo.Latest(ctx, "")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if rep != nil {
		t.Fatal("expected nil report when none exist")
	}

	payload := exportBytes(t, "classroom_toys", 7)
	stored, err := repo.Append(ctx, "session-1", payload)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if stored.ID == 0 {
		t.Error("expected an assigned id")
	}

	rep, err = repo.Latest(ctx, "classroom_toys")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rep == nil {
		t.Fatal("expected non-nil report")
	}
	if rep.SessionID != "session-1" {
		t.Errorf("session = %q, want session-1", rep.SessionID)
	}
	if rep.Report.Attempts != 7 || rep.Report.Room2DFound != 2 || rep.Report.Room2DTargets != 4 {
		t.Errorf("unexpected counters %+v", rep.Report)
	}
	if rep.Report.Timestamp != "2026-05-01T10:00:00.000Z" {
		t.Errorf("timestamp = %q", rep.Report.Timestamp)
	}
	if string(rep.Payload) != string(payload) {
		t.Error("payload must round-trip byte for byte")
	}
}

func TestReportAppendRejectsGarbage(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.ReportRepo().Append(context.Background(), "s", []byte("not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}

func TestReportListFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	for i, id := range []string{"a", "b", "a", "a"} {
		if _, err := repo.Append(ctx, "s", exportBytes(t, id, i+1)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	if all[0].Report.Attempts != 4 {
		t.Errorf("first attempts = %d, want newest (4)", all[0].Report.Attempts)
	}

	onlyA, err := repo.List(ctx, QueryOpts{LessonID: "a", Limit: 2})
	if err != nil {
		t.Fatalf("list a: %v", err)
	}
	if len(onlyA) != 2 || onlyA[0].Report.Attempts != 4 || onlyA[1].Report.Attempts != 3 {
		t.Errorf("unexpected filtered list %+v", onlyA)
	}

	older, err := repo.List(ctx, QueryOpts{Before: all[1].ID})
	if err != nil {
		t.Fatalf("list before: %v", err)
	}
	if len(older) != 2 {
		t.Errorf("len before = %d, want 2", len(older))
	}
}

func TestReportPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := repo.Append(ctx, "s", exportBytes(t, "x", i+1)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	all, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("remaining reports = %d, want 5", len(all))
	}
	if all[0].Report.Attempts != 7 {
		t.Errorf("latest attempts = %d, want 7", all[0].Report.Attempts)
	}

	// Prune with more than exist is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune: %v", err)
	}
	all, _ = repo.List(ctx, QueryOpts{})
	if len(all) != 5 {
		t.Errorf("remaining reports = %d, want 5", len(all))
	}
}

func TestSaverAdapter(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	r := perf.NewReport("classroom_toys", perf.Summary{Attempts: 2}, time.Now())
	if err := perf.Export(ctx, Saver(repo, "session-9"), r); err != nil {
		t.Fatalf("export: %v", err)
	}
	latest, err := repo.Latest(ctx, "classroom_toys")
	if err != nil || latest == nil {
		t.Fatalf("latest: %v %v", latest, err)
	}
	if latest.SessionID != "session-9" {
		t.Errorf("session = %q, want session-9", latest.SessionID)
	}
}
