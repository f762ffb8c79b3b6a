package player

import (
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// sentenceModel fills the blanks of one sentence from the word bank. A
// word sits in at most one blank; placing it again moves it.
type sentenceModel struct {
	cfg    *lesson.SentenceBuilderConfig
	blanks []string
	focus  int
	filled map[string]string
	input  components.TextInput
	result *lesson.SentenceResult
}

func newSentenceModel(cfg *lesson.SentenceBuilderConfig) sentenceModel {
	m := sentenceModel{
		cfg:    cfg,
		filled: make(map[string]string),
		input:  components.NewTextInput("type a word", true, 24),
	}
	if cfg != nil {
		m.blanks = cfg.BlankIDs()
	}
	return m
}

// bank returns the words not yet placed, in word-bank order.
func (m *sentenceModel) bank() []string {
	if m.cfg == nil {
		return nil
	}
	var out []string
	for _, w := range m.cfg.WordBank {
		if !m.used(w) {
			out = append(out, w)
		}
	}
	return out
}

func (m *sentenceModel) used(word string) bool {
	for _, w := range m.filled {
		if w == word {
			return true
		}
	}
	return false
}

func (m *sentenceModel) allFilled() bool {
	for _, id := range m.blanks {
		if m.filled[id] == "" {
			return false
		}
	}
	return len(m.blanks) > 0
}

// place puts word into the focused blank and moves focus to the next empty
// one.
func (m *sentenceModel) place(word string) {
	if len(m.blanks) == 0 {
		return
	}
	for id, w := range m.filled {
		if w == word {
			delete(m.filled, id)
		}
	}
	m.filled[m.blanks[m.focus]] = word
	m.result = nil
	for i := 1; i <= len(m.blanks); i++ {
		next := (m.focus + i) % len(m.blanks)
		if m.filled[m.blanks[next]] == "" {
			m.focus = next
			return
		}
	}
}

func (m *sentenceModel) reset() {
	clear(m.filled)
	m.focus = 0
	m.result = nil
	m.input.Clear()
}

// fromBank matches typed text against the bank ignoring case.
func (m *sentenceModel) fromBank(typed string) (string, bool) {
	if m.cfg == nil {
		return "", false
	}
	i := slices.IndexFunc(m.cfg.WordBank, func(w string) bool { return strings.EqualFold(w, typed) })
	if i < 0 {
		return "", false
	}
	return m.cfg.WordBank[i], true
}

func (m *sentenceModel) update(s *Screen, msg tea.KeyMsg) tea.Cmd {
	if m.cfg == nil || len(m.blanks) == 0 {
		return nil
	}
	key := msg.String()

	switch key {
	case "tab", "right":
		m.focus = (m.focus + 1) % len(m.blanks)
		return nil
	case "shift+tab", "left":
		m.focus = (m.focus + len(m.blanks) - 1) % len(m.blanks)
		return nil
	case "ctrl+r":
		m.reset()
		return nil
	case "backspace":
		if m.input.Value() == "" {
			delete(m.filled, m.blanks[m.focus])
			m.result = nil
			return nil
		}
	case "enter":
		m.submit(s)
		return nil
	}

	if n, err := strconv.Atoi(key); err == nil {
		bank := m.bank()
		if n >= 1 && n <= len(bank) {
			m.place(bank[n-1])
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submit places a typed word, or checks the sentence when nothing is typed.
func (m *sentenceModel) submit(s *Screen) {
	if typed := m.input.Value(); typed != "" {
		word, ok := m.fromBank(typed)
		if !ok {
			s.notice = "Pick a word from the word bank."
			return
		}
		m.place(word)
		m.input.Clear()
		return
	}

	if !m.allFilled() {
		s.notice = "Fill every blank first."
		return
	}
	res := m.cfg.Check(m.filled)
	m.result = &res
	if !res.Graded {
		s.notice = "Nice sentence!"
		return
	}
	s.run.TrackSentenceAttempt(res.Correct)
	if res.Correct {
		s.notice = "Great job!"
	} else {
		s.notice = "Almost! Fix the red words."
	}
}

func (m *sentenceModel) view(width int) string {
	if m.cfg == nil {
		return theme.Hint.Render("This lesson has no sentence.")
	}

	var line strings.Builder
	blank := 0
	for _, t := range m.cfg.Tokens {
		if t.Kind == lesson.TokenText {
			line.WriteString(theme.Body.Render(strings.Join(strings.Fields(t.Value), " ")))
			line.WriteString(" ")
			continue
		}
		line.WriteString(m.blankView(t, blank == m.focus))
		line.WriteString(" ")
		blank++
	}

	bank := m.bank()
	words := make([]string, len(bank))
	for i, w := range bank {
		words[i] = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Secondary).
			Padding(0, 1).
			Render(strconv.Itoa(i+1) + " " + w)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Hint.Render("Build the sentence."),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, line.String()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, joinWith(words, " ")...),
		"",
		m.input.View(),
	)
}

func (m *sentenceModel) blankView(t lesson.SentenceToken, focused bool) string {
	word, ok := m.filled[t.ID]
	text := "____"
	if ok {
		text = word
	} else if t.Placeholder != "" {
		text = t.Placeholder
	}

	style := lipgloss.NewStyle().Underline(true).Foreground(theme.Text)
	if !ok {
		style = style.Foreground(theme.TextDim)
	}
	if m.result != nil && m.result.Graded {
		if m.result.PerBlank[t.ID] {
			style = theme.Correct.Underline(true)
		} else {
			style = theme.Incorrect.Underline(true)
		}
	}
	if focused {
		style = style.Background(theme.BgCard).Bold(true)
		text = "[" + text + "]"
	}
	return style.Render(text)
}
