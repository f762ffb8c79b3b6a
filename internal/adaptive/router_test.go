package adaptive

import (
	"testing"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/perf"
)

var catalog = []Candidate{
	{LessonID: "room", Mode: lesson.ModeRoom2D},
	{LessonID: "pics", Mode: lesson.ModePicSelection},
	{LessonID: "bubbles", Mode: lesson.ModeFloatingBubble},
	{LessonID: "sentences", Mode: lesson.ModeSentenceBuilder},
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		perf perf.Summary
		want int
	}{
		{
			name: "room mastered goes to bubbles",
			perf: perf.Summary{LastMode: lesson.ModeRoom2D, Room2DTargets: 5, Room2DFound: 5},
			want: 2,
		},
		{
			name: "room confusion stays in room",
			perf: perf.Summary{LastMode: lesson.ModeRoom2D, Room2DTargets: 5, Room2DMisTaps: 3},
			want: 0,
		},
		{
			name: "room partial stays in room",
			perf: perf.Summary{LastMode: lesson.ModeRoom2D, Room2DTargets: 5, Room2DFound: 2},
			want: 0,
		},
		{
			name: "empty room is not mastery",
			perf: perf.Summary{LastMode: lesson.ModeRoom2D},
			want: 0,
		},
		{
			name: "all bubbles popped goes to pictures",
			perf: perf.Summary{LastMode: lesson.ModeFloatingBubble, BubbleTotal: 4, BubblePopped: 4},
			want: 1,
		},
		{
			name: "bubbles partial stays in bubbles",
			perf: perf.Summary{LastMode: lesson.ModeFloatingBubble, BubbleTotal: 4, BubblePopped: 3},
			want: 2,
		},
		{
			name: "no bubbles is not mastery",
			perf: perf.Summary{LastMode: lesson.ModeFloatingBubble},
			want: 2,
		},
		{
			name: "high picture accuracy goes to room",
			perf: perf.Summary{LastMode: lesson.ModePicSelection, PicTotal: 10, PicCorrect: 9},
			want: 0,
		},
		{
			name: "accuracy exactly at threshold goes to room",
			perf: perf.Summary{LastMode: lesson.ModePicSelection, PicTotal: 10, PicCorrect: 8},
			want: 0,
		},
		{
			name: "low picture accuracy goes to bubbles",
			perf: perf.Summary{LastMode: lesson.ModePicSelection, PicTotal: 10, PicCorrect: 5},
			want: 2,
		},
		{
			name: "no pictures counts as zero accuracy",
			perf: perf.Summary{LastMode: lesson.ModePicSelection},
			want: 2,
		},
		{
			name: "unknown mode falls back to first lesson",
			perf: perf.Summary{LastMode: lesson.ModeSentenceBuilder, SentenceCorrect: 9},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(catalog, tt.perf); got != tt.want {
				t.Errorf("Route() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRouteFixtures(t *testing.T) {
	// Fixture lists place the target mode at a specific index.
	roomMastery := []Candidate{
		{Mode: lesson.ModeRoom2D}, {Mode: lesson.ModePicSelection}, {Mode: lesson.ModeFloatingBubble},
	}
	if got := Route(roomMastery, perf.Summary{LastMode: lesson.ModeRoom2D, Room2DTargets: 5, Room2DFound: 5}); got != 2 {
		t.Errorf("room mastery = %d, want 2", got)
	}

	bubbles := []Candidate{{Mode: lesson.ModeFloatingBubble}, {Mode: lesson.ModePicSelection}}
	if got := Route(bubbles, perf.Summary{LastMode: lesson.ModeFloatingBubble, BubbleTotal: 4, BubblePopped: 4}); got != 1 {
		t.Errorf("bubble mastery = %d, want 1", got)
	}

	pics := []Candidate{{Mode: lesson.ModeRoom2D}, {Mode: lesson.ModePicSelection}, {Mode: lesson.ModeFloatingBubble}}
	if got := Route(pics, perf.Summary{LastMode: lesson.ModePicSelection, PicTotal: 10, PicCorrect: 9}); got != 0 {
		t.Errorf("pic 0.9 = %d, want 0", got)
	}
	if got := Route(pics, perf.Summary{LastMode: lesson.ModePicSelection, PicTotal: 10, PicCorrect: 5}); got != 2 {
		t.Errorf("pic 0.5 = %d, want 2", got)
	}
}

func TestRouteMissingTargetFallsBackToZero(t *testing.T) {
	only := []Candidate{{Mode: lesson.ModeSentenceBuilder}, {Mode: lesson.ModeFlashcard}}
	got := Route(only, perf.Summary{LastMode: lesson.ModeRoom2D, Room2DTargets: 2, Room2DFound: 2})
	if got != 0 {
		t.Errorf("expected fallback index 0, got %d", got)
	}
}

func TestRouteNeverOutOfRange(t *testing.T) {
	modes := append([]lesson.UIMode{""}, lesson.AllModes...)
	for n := 1; n <= len(catalog); n++ {
		for _, m := range modes {
			s := perf.Summary{LastMode: m, Room2DTargets: 1, Room2DFound: 1, BubbleTotal: 1, BubblePopped: 1, PicTotal: 1, PicCorrect: 1}
			if got := Route(catalog[:n], s); got < 0 || got >= n {
				t.Errorf("Route(%d candidates, %q) = %d out of range", n, m, got)
			}
		}
	}
}

func TestDecideReason(t *testing.T) {
	d := Decide(catalog, perf.Summary{LastMode: lesson.ModeRoom2D, Room2DTargets: 4, Room2DFound: 1})
	if d.Mode != lesson.ModeRoom2D || d.Reason != "found 1 of 4 objects" {
		t.Errorf("unexpected decision %+v", d)
	}
}

func TestCandidatesFrom(t *testing.T) {
	docs := []*lesson.Document{
		{LessonID: "a", Defaults: lesson.Defaults{UI: lesson.ModePicSelection}},
		{LessonID: "b", Defaults: lesson.Defaults{UI: lesson.ModeRoom2D}},
	}
	got := CandidatesFrom(docs)
	if len(got) != 2 || got[1].LessonID != "b" || got[1].Mode != lesson.ModeRoom2D {
		t.Errorf("unexpected candidates %+v", got)
	}
}
