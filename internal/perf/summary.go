package perf

import (
	"github.com/abhisek/lexiz/internal/lesson"
)

// Counters are the raw attempt counters of one session. They only grow.
type Counters struct {
	MisTaps          int
	BubblePops       int
	PicAttempts      int
	PicCorrect       int
	SentenceAttempts int
	SentenceCorrect  int
	Attempts         int
}

// Summary is a point-in-time view derived from a session's counters.
type Summary struct {
	Room2DTargets   int           `json:"room2dTargets"`
	Room2DFound     int           `json:"room2dFound"`
	Room2DMisTaps   int           `json:"room2dMisTaps"`
	BubbleTotal     int           `json:"bubbleTotal"`
	BubblePopped    int           `json:"bubblePopped"`
	PicTotal        int           `json:"picTotal"`
	PicCorrect      int           `json:"picCorrect"`
	SentenceCorrect int           `json:"sentenceCorrect"`
	Attempts        int           `json:"attempts"`
	LastMode        lesson.UIMode `json:"lastMode"`
}

// Aggregate derives a Summary. It is pure: visited is only read.
func Aggregate(doc *lesson.Document, c Counters, visited map[string]struct{}, lastMode lesson.UIMode) Summary {
	s := Summary{
		Room2DMisTaps:   c.MisTaps,
		BubblePopped:    c.BubblePops,
		PicCorrect:      c.PicCorrect,
		SentenceCorrect: c.SentenceCorrect,
		Attempts:        c.Attempts,
		LastMode:        lastMode,
	}

	if room := doc.Room(); room != nil {
		s.Room2DTargets = len(room.Objects)
		for _, o := range room.Objects {
			if _, ok := visited[o.ID]; ok {
				s.Room2DFound++
			}
		}
	}

	s.BubbleTotal = len(doc.Items)

	if pic := doc.PicSelection(); pic != nil {
		s.PicTotal = pic.Questions.Total()
	}
	return s
}

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// RecognitionAccuracy is room2dFound / room2dTargets.
func (s Summary) RecognitionAccuracy() float64 { return ratio(s.Room2DFound, s.Room2DTargets) }

// RecallAccuracy is bubblePopped / bubbleTotal.
func (s Summary) RecallAccuracy() float64 { return ratio(s.BubblePopped, s.BubbleTotal) }

// DiscriminationAccuracy is picCorrect / picTotal.
func (s Summary) DiscriminationAccuracy() float64 { return ratio(s.PicCorrect, s.PicTotal) }
