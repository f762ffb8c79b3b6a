package store

import (
	"context"

	"github.com/abhisek/lexiz/internal/perf"
)

// QueryOpts configures report queries with filtering and pagination.
type QueryOpts struct {
	LessonID string // only this lesson ("" = all)
	Limit    int    // max results (0 = unlimited)
	Before   int    // id < Before (0 = no bound)
}

// StoredReport is an exported report as kept in the database.
type StoredReport struct {
	ID        int
	SessionID string
	Report    perf.Report
	Payload   []byte // the exact bytes offered to the save mechanism
}

// ReportRepo keeps exported performance reports for the history view.
// Reports are write-once; a session never reads its own report back.
type ReportRepo interface {
	// Append stores an exported report.
	Append(ctx context.Context, sessionID string, payload []byte) (*StoredReport, error)

	// List returns reports newest first.
	List(ctx context.Context, opts QueryOpts) ([]StoredReport, error)

	// Latest returns the newest report for lessonID ("" = any lesson), or nil
	// if none exist.
	Latest(ctx context.Context, lessonID string) (*StoredReport, error)

	// Prune deletes all but the N most recent reports.
	Prune(ctx context.Context, keep int) error
}

// Saver adapts a ReportRepo to perf.Saver for one session.
func Saver(repo ReportRepo, sessionID string) perf.Saver {
	return repoSaver{repo: repo, sessionID: sessionID}
}

type repoSaver struct {
	repo      ReportRepo
	sessionID string
}

func (s repoSaver) Save(ctx context.Context, _ string, data []byte) error {
	_, err := s.repo.Append(ctx, s.sessionID, data)
	return err
}
