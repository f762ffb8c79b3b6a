package store

import (
	"context"
	stdsql "database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lexiz/internal/perf"
)

const reportsTable = "performance_reports"

var reportColumns = []string{
	"id", "session_id", "lesson_id", "timestamp",
	"room2d_found", "room2d_targets", "room2d_mis_taps",
	"bubble_popped", "bubble_total", "pic_correct", "pic_total",
	"sentence_correct", "attempts", "payload",
}

// reportRepo implements ReportRepo with the ent SQL builder.
type reportRepo struct {
	drv *entsql.Driver
}

func (r *reportRepo) Append(ctx context.Context, sessionID string, payload []byte) (*StoredReport, error) {
	rep, err := perf.DecodeReport(payload)
	if err != nil {
		return nil, err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(reportsTable).
		Columns(reportColumns[1:]...).
		Values(
			sessionID, rep.LessonID, rep.Timestamp,
			rep.Room2DFound, rep.Room2DTargets, rep.Room2DMisTaps,
			rep.BubblePopped, rep.BubbleTotal, rep.PicCorrect, rep.PicTotal,
			rep.SentenceCorrect, rep.Attempts, payload,
		).
		Query()

	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return &StoredReport{
		ID:        int(id),
		SessionID: sessionID,
		Report:    rep,
		Payload:   append([]byte(nil), payload...),
	}, nil
}

func (r *reportRepo) List(ctx context.Context, opts QueryOpts) ([]StoredReport, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(reportColumns...).
		From(entsql.Table(reportsTable)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.LessonID != "" {
		preds = append(preds, entsql.EQ("lesson_id", opts.LessonID))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("id", opts.Before))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []StoredReport
	for rows.Next() {
		var s StoredReport
		rep := &s.Report
		if err := rows.Scan(
			&s.ID, &s.SessionID, &rep.LessonID, &rep.Timestamp,
			&rep.Room2DFound, &rep.Room2DTargets, &rep.Room2DMisTaps,
			&rep.BubblePopped, &rep.BubbleTotal, &rep.PicCorrect, &rep.PicTotal,
			&rep.SentenceCorrect, &rep.Attempts, &s.Payload,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return out, nil
}

func (r *reportRepo) Latest(ctx context.Context, lessonID string) (*StoredReport, error) {
	reports, err := r.List(ctx, QueryOpts{LessonID: lessonID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return &reports[0], nil
}

func (r *reportRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the newest report past the kept window.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id").
		From(entsql.Table(reportsTable)).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("query reports for prune: %w", err)
	}
	var threshold int
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
	}
	rows.Close()
	if !found {
		return nil // fewer than keep reports exist
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(reportsTable).
		Where(entsql.LTE("id", threshold)).
		Query()
	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}
	return nil
}
