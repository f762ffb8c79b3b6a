package player

import (
	"fmt"
	"math/rand/v2"
	"path"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// defaultChoices is the card count when the lesson does not set one.
const defaultChoices = 4

// pictureModel asks the learner to pick the picture of a target word. The
// target cycles through the vocabulary in lesson order.
type pictureModel struct {
	cfg    *lesson.PicSelectionConfig
	vocab  []*lesson.VocabItem
	rng    *rand.Rand
	total  int
	asked  int
	target *lesson.VocabItem
	ids    []string
	choice components.Choice
}

func newPictureModel(doc *lesson.Document, rng *rand.Rand) pictureModel {
	m := pictureModel{cfg: doc.PicSelection(), vocab: doc.VocabItems(), rng: rng}
	if m.cfg != nil {
		m.total = m.cfg.Questions.Total()
	}
	if m.total == 0 {
		m.total = len(m.vocab)
	}
	m.next()
	return m
}

func (m *pictureModel) done() bool {
	return m.asked >= m.total || len(m.vocab) == 0
}

// next sets up the question for m.asked: the target plus shuffled
// distractors, shuffled again so the answer moves around.
func (m *pictureModel) next() {
	if m.done() {
		m.target = nil
		return
	}
	m.target = m.vocab[m.asked%len(m.vocab)]

	k := defaultChoices
	if m.cfg != nil && m.cfg.ChoicesPerQuestion > 0 {
		k = m.cfg.ChoicesPerQuestion
	}
	k = min(k, len(m.vocab))

	var others []*lesson.VocabItem
	for _, v := range m.vocab {
		if v.ID != m.target.ID {
			others = append(others, v)
		}
	}
	m.rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	picks := append([]*lesson.VocabItem{m.target}, others[:k-1]...)
	m.rng.Shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })

	m.ids = make([]string, len(picks))
	labels := make([]string, len(picks))
	correct := 0
	for i, v := range picks {
		m.ids[i] = v.ID
		labels[i] = m.label(v)
		if v.ID == m.target.ID {
			correct = i
		}
	}
	m.choice = components.NewChoice(
		fmt.Sprintf("Which one is the %s?", strings.ToLower(m.target.Word)),
		labels, correct)
}

// label is the card face. Terminals show the picture reference; the word is
// only printed when the lesson asks for labels.
func (m *pictureModel) label(v *lesson.VocabItem) string {
	pic := "picture"
	if v.Image != "" {
		pic = strings.TrimSuffix(path.Base(v.Image), path.Ext(v.Image))
	}
	if m.cfg != nil && m.cfg.IncludeWordLabel {
		return pic + "\n" + v.Word
	}
	return pic
}

// prompt speaks the target word when the lesson asks for it.
func (m *pictureModel) prompt(s *Screen) {
	if m.target == nil || m.cfg == nil || !m.cfg.TTSOnPrompt || s.deps.Speaker == nil {
		return
	}
	s.deps.Speaker.Speak(m.target.Word)
}

func (m *pictureModel) update(s *Screen, msg tea.KeyMsg) {
	if m.done() {
		return
	}
	if msg.String() == "h" {
		m.choice.Pulse = m.choice.CorrectIndex
		return
	}

	m.choice, _ = m.choice.Update(msg)
	if !m.choice.Submitted {
		return
	}

	ok := m.choice.IsCorrect()
	chosen := m.ids[m.choice.ChosenIndex]
	s.run.TrackPicAttempt(ok)
	s.run.MarkVisited(fmt.Sprintf("pic:%s:%s", m.target.ID, chosen))
	if !ok {
		s.notice = "Not quite. Try again!"
		m.choice.Reset()
		return
	}
	s.run.OpenItemByID(chosen)
	m.asked++
	m.next()
	m.prompt(s)
}

func (m *pictureModel) view(s *Screen, width int) string {
	if m.done() {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Correct.Render(fmt.Sprintf("\nAll %d pictures done!", m.total)))
	}
	bar := components.NewCountBar("Pictures", m.asked, m.total, min(width-4, 50))
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, m.choice.View()),
		"",
		bar.View(),
	)
}
