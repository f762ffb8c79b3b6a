// Package adaptive picks the next lesson from a performance summary.
package adaptive

import (
	"fmt"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/perf"
)

// Routing thresholds.
const (
	// ConfusionMisTaps is the mis-tap count that, with nothing found, marks
	// a learner as confused by the room.
	ConfusionMisTaps = 3

	// PicMasteryAccuracy is the picture accuracy that sends a learner back
	// to the room.
	PicMasteryAccuracy = 0.8
)

// Candidate is the routing view of a lesson.
type Candidate struct {
	LessonID string
	Mode     lesson.UIMode
}

// CandidatesFrom builds candidates from documents by their declared mode.
func CandidatesFrom(docs []*lesson.Document) []Candidate {
	out := make([]Candidate, len(docs))
	for i, d := range docs {
		out[i] = Candidate{LessonID: d.LessonID, Mode: d.Defaults.UI}
	}
	return out
}

// IndexForMode returns the first candidate declaring mode, or 0.
func IndexForMode(candidates []Candidate, mode lesson.UIMode) int {
	for i, c := range candidates {
		if c.Mode == mode {
			return i
		}
	}
	return 0
}

// Decision is a routing outcome with the rule that produced it.
type Decision struct {
	Index  int
	Mode   lesson.UIMode // target mode; empty for the fallback rule
	Reason string
}

// Decide applies the routing table. candidates must not be empty; the
// returned index is always within range for a non-empty list.
func Decide(candidates []Candidate, s perf.Summary) Decision {
	to := func(mode lesson.UIMode, reason string) Decision {
		return Decision{Index: IndexForMode(candidates, mode), Mode: mode, Reason: reason}
	}

	switch s.LastMode {
	case lesson.ModeRoom2D:
		if s.Room2DTargets > 0 && s.Room2DFound >= s.Room2DTargets {
			return to(lesson.ModeFloatingBubble, "found every object in the room")
		}
		if s.Room2DFound == 0 && s.Room2DMisTaps >= ConfusionMisTaps {
			return to(lesson.ModeRoom2D, "nothing found yet after several mis-taps")
		}
		return to(lesson.ModeRoom2D, fmt.Sprintf("found %d of %d objects", s.Room2DFound, s.Room2DTargets))

	case lesson.ModeFloatingBubble:
		if s.BubbleTotal > 0 && s.BubblePopped >= s.BubbleTotal {
			return to(lesson.ModePicSelection, "popped every bubble")
		}
		return to(lesson.ModeFloatingBubble, fmt.Sprintf("popped %d of %d bubbles", s.BubblePopped, s.BubbleTotal))

	case lesson.ModePicSelection:
		acc := s.DiscriminationAccuracy()
		if acc >= PicMasteryAccuracy {
			return to(lesson.ModeRoom2D, fmt.Sprintf("picture accuracy %.0f%%", acc*100))
		}
		return to(lesson.ModeFloatingBubble, fmt.Sprintf("picture accuracy %.0f%% is below %.0f%%", acc*100, PicMasteryAccuracy*100))
	}

	return Decision{Index: 0, Reason: "no rule for the last mode"}
}

// Route returns the index of the next lesson.
func Route(candidates []Candidate, s perf.Summary) int {
	return Decide(candidates, s).Index
}
