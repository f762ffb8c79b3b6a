package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/runner"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// cursorStep is how far one arrow press moves the room cursor, in percent.
const cursorStep = 5.0

// roomModel is the cursor the learner taps the room with. Coordinates are
// percentages of the room, matching object bounds.
type roomModel struct {
	x, y float64
	jump int
}

func newRoomModel() roomModel {
	return roomModel{x: 50, y: 50}
}

func (m *roomModel) update(s *Screen, key string) {
	switch key {
	case "left":
		m.x = clampPct(m.x - cursorStep)
	case "right":
		m.x = clampPct(m.x + cursorStep)
	case "up":
		m.y = clampPct(m.y - cursorStep)
	case "down":
		m.y = clampPct(m.y + cursorStep)
	case "tab":
		m.jumpToNext(s.doc.Room())
	case "h":
		s.run.RequestHint()
	case "enter", "space":
		m.tap(s)
	}
}

// tap hit-tests the cursor. A hit opens the object's word; a miss counts as
// a mis-tap.
func (m *roomModel) tap(s *Screen) {
	room := s.doc.Room()
	s.run.ClearHintForce()
	obj, hit := room.HitTest(m.x, m.y)
	if !hit {
		s.run.TrackMisTap()
		s.notice = "Nothing there. Keep looking!"
		return
	}
	s.run.MarkVisited(obj.ID)
	s.run.OpenItemByID(obj.ItemID)
}

// jumpToNext moves the cursor to the centre of the next object with bounds.
func (m *roomModel) jumpToNext(room *lesson.Room2DConfig) {
	objs := room.Sorted()
	for range objs {
		o := objs[m.jump%len(objs)]
		m.jump++
		if o.X != nil && o.Y != nil && o.W != nil && o.H != nil {
			m.x = *o.X + *o.W/2
			m.y = *o.Y + *o.H/2
			return
		}
	}
}

func clampPct(v float64) float64 {
	return max(0, min(100, v))
}

// cell styles on the room canvas
const (
	cellEmpty = iota
	cellObject
	cellFound
	cellGlow
	cellCursor
)

type canvas struct {
	cols, rows int
	runes      [][]rune
	styles     [][]uint8
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows}
	c.runes = make([][]rune, rows)
	c.styles = make([][]uint8, rows)
	for y := range rows {
		c.runes[y] = []rune(strings.Repeat("·", cols))
		c.styles[y] = make([]uint8, cols)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, style uint8) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = style
}

func (c *canvas) col(pct float64) int { return int(pct / 100 * float64(c.cols-1)) }
func (c *canvas) row(pct float64) int { return int(pct / 100 * float64(c.rows-1)) }

// box draws an object outline with its label on the middle row.
func (c *canvas) box(o lesson.Room2DObject, label string, style uint8) {
	x0, x1 := c.col(*o.X), c.col(*o.X+*o.W)
	y0, y1 := c.row(*o.Y), c.row(*o.Y+*o.H)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─', style)
		c.set(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│', style)
		c.set(x1, y, '│', style)
		for x := x0 + 1; x < x1; x++ {
			c.set(x, y, ' ', style)
		}
	}
	c.set(x0, y0, '┌', style)
	c.set(x1, y0, '┐', style)
	c.set(x0, y1, '└', style)
	c.set(x1, y1, '┘', style)

	mid := (y0 + y1) / 2
	text := []rune(label)
	if room := x1 - x0 - 1; len(text) > room {
		text = text[:max(room, 0)]
	}
	start := x0 + 1 + (x1-x0-1-len(text))/2
	for i, r := range text {
		c.set(start+i, mid, r, style)
	}
}

var cellStyles = map[uint8]lipgloss.Style{
	cellEmpty:  lipgloss.NewStyle().Foreground(theme.Border),
	cellObject: lipgloss.NewStyle().Foreground(theme.Text),
	cellFound:  theme.Found,
	cellGlow:   theme.Glowing,
	cellCursor: lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
}

// render joins runs of equally styled cells.
func (c *canvas) render() string {
	var b strings.Builder
	for y := range c.rows {
		start := 0
		for x := 1; x <= c.cols; x++ {
			if x < c.cols && c.styles[y][x] == c.styles[y][start] {
				continue
			}
			b.WriteString(cellStyles[c.styles[y][start]].Render(string(c.runes[y][start:x])))
			start = x
		}
		if y < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *roomModel) view(s *Screen, width, height int) string {
	room := s.doc.Room()
	st := s.state

	cols := max(width-4, 20)
	rows := max(height-3, 8)
	cv := newCanvas(cols, rows)

	for _, o := range room.Objects {
		if o.X == nil || o.Y == nil || o.W == nil || o.H == nil {
			continue
		}
		style := uint8(cellObject)
		switch {
		case st.IsVisited(o.ID):
			style = cellFound
		case st.ShowHint() && st.HintTarget == o.ID:
			style = cellGlow
		}
		cv.box(o, objectLabel(s.doc, o, st), style)
	}
	cv.set(cv.col(m.x), cv.row(m.y), '✚', cellCursor)

	return lipgloss.JoinVertical(lipgloss.Center,
		hintLine(s.doc, st),
		cv.render(),
	)
}

// objectLabel shows the word once found, else the object's label or a
// question mark.
func objectLabel(doc *lesson.Document, o lesson.Room2DObject, st runner.State) string {
	if st.IsVisited(o.ID) {
		if it, ok := doc.ItemByID(o.ItemID); ok && lesson.Word(it) != "" {
			return "✓ " + lesson.Word(it)
		}
	}
	if o.Label != "" {
		return o.Label
	}
	return "?"
}

func hintLine(doc *lesson.Document, st runner.State) string {
	if st.HintTarget == "" {
		return theme.Correct.Render("You found everything in the room!")
	}
	if !st.ShowHint() {
		return theme.Hint.Render("Move the cursor and tap the things you know.")
	}
	word := "the glowing object"
	if o, ok := doc.Room().ObjectByID(st.HintTarget); ok {
		if it, ok := doc.ItemByID(o.ItemID); ok && lesson.Word(it) != "" {
			word = "the " + strings.ToLower(lesson.Word(it))
		}
	}
	return theme.Glowing.Render(fmt.Sprintf(" Can you find %s? ", word))
}
