package perf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Report is the exported performance record. Field names and order are a
// contract with downstream reporting tools.
type Report struct {
	LessonID        string `json:"lessonId"`
	Timestamp       string `json:"timestamp"`
	Room2DFound     int    `json:"room2dFound"`
	Room2DTargets   int    `json:"room2dTargets"`
	Room2DMisTaps   int    `json:"room2dMisTaps"`
	BubblePopped    int    `json:"bubblePopped"`
	BubbleTotal     int    `json:"bubbleTotal"`
	PicCorrect      int    `json:"picCorrect"`
	PicTotal        int    `json:"picTotal"`
	SentenceCorrect int    `json:"sentenceCorrect"`
	Attempts        int    `json:"attempts"`
}

// NewReport stamps a summary with the lesson id and export time.
func NewReport(lessonID string, s Summary, at time.Time) Report {
	return Report{
		LessonID:        lessonID,
		Timestamp:       at.UTC().Format(TimestampLayout),
		Room2DFound:     s.Room2DFound,
		Room2DTargets:   s.Room2DTargets,
		Room2DMisTaps:   s.Room2DMisTaps,
		BubblePopped:    s.BubblePopped,
		BubbleTotal:     s.BubbleTotal,
		PicCorrect:      s.PicCorrect,
		PicTotal:        s.PicTotal,
		SentenceCorrect: s.SentenceCorrect,
		Attempts:        s.Attempts,
	}
}

// Summary recovers the counter view of a report. LastMode is unknown to
// reports and left empty; callers that route on it must set it.
func (r Report) Summary() Summary {
	return Summary{
		Room2DTargets:   r.Room2DTargets,
		Room2DFound:     r.Room2DFound,
		Room2DMisTaps:   r.Room2DMisTaps,
		BubbleTotal:     r.BubbleTotal,
		BubblePopped:    r.BubblePopped,
		PicTotal:        r.PicTotal,
		PicCorrect:      r.PicCorrect,
		SentenceCorrect: r.SentenceCorrect,
		Attempts:        r.Attempts,
	}
}

// Filename is the name offered to the save mechanism.
func (r Report) Filename() string {
	return r.LessonID + "-performance.json"
}

// DecodeReport parses an exported report.
func DecodeReport(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	if r.LessonID == "" {
		return Report{}, fmt.Errorf("decode report: lessonId missing")
	}
	return r, nil
}

// Saver offers bytes to a platform save mechanism. Implementations must not
// retain data after Save returns.
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) error
}

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Export encodes the report into a transient buffer, hands it to saver and
// releases the buffer however the save ends.
func Export(ctx context.Context, saver Saver, r Report) error {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := saver.Save(ctx, r.Filename(), bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// DirSaver writes exports into a directory.
type DirSaver struct {
	Dir string
}

// Save writes data to Dir/filename, creating Dir if needed.
func (d DirSaver) Save(_ context.Context, filename string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(d.Dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MultiSaver offers the same export to several savers in order and stops at
// the first failure.
type MultiSaver []Saver

func (m MultiSaver) Save(ctx context.Context, filename string, data []byte) error {
	for _, s := range m {
		if err := s.Save(ctx, filename, data); err != nil {
			return err
		}
	}
	return nil
}
