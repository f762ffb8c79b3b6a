package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaVersion is the only lesson document version Lexiz understands.
const SchemaVersion = 1

// UIMode identifies one activity type.
type UIMode string

const (
	ModeFlashcard       UIMode = "flashcard"
	ModeRoom2D          UIMode = "room2d"
	ModeFloatingBubble  UIMode = "floatingBubble"
	ModePicSelection    UIMode = "picSelection"
	ModeSentenceBuilder UIMode = "sentenceBuilder"
)

// AllModes lists every known mode.
var AllModes = []UIMode{
	ModeFlashcard,
	ModeRoom2D,
	ModeFloatingBubble,
	ModePicSelection,
	ModeSentenceBuilder,
}

// Valid reports whether m is a known mode.
func (m UIMode) Valid() bool {
	for _, k := range AllModes {
		if k == m {
			return true
		}
	}
	return false
}

// DisplayName returns the label shown to learners.
func (m UIMode) DisplayName() string {
	switch m {
	case ModeRoom2D:
		return "Room Practice"
	case ModeFloatingBubble:
		return "Bubble Practice"
	case ModePicSelection:
		return "Picture Practice"
	case ModeSentenceBuilder:
		return "Sentence Practice"
	case ModeFlashcard:
		return "Flashcards"
	default:
		return string(m)
	}
}

// Document is a versioned lesson bundle describing one practice session.
// Documents are treated as immutable once loaded or built.
type Document struct {
	Version  int      `json:"version"`
	LessonID string   `json:"lessonId"`
	Title    string   `json:"title"`
	Defaults Defaults `json:"defaults"`
	Items    Items    `json:"items"`
	Content  *Content `json:"content,omitempty"`
}

// Features toggles optional lesson behaviour.
type Features struct {
	TTS          bool `json:"tts"`
	Speech       bool `json:"speech"`
	PicSelection bool `json:"picSelection"`
}

// Defaults holds the declared mode and the per-mode configuration.
type Defaults struct {
	UI              UIMode                 `json:"ui"`
	Features        *Features              `json:"features"`
	Background      string                 `json:"background,omitempty"`
	Room2D          *Room2DConfig          `json:"room2d,omitempty"`
	SentenceBuilder *SentenceBuilderConfig `json:"sentenceBuilder,omitempty"`
	FloatingBubble  *FloatingBubbleConfig  `json:"floatingBubble,omitempty"`
}

// Content holds optional mode content blocks.
type Content struct {
	PicSelection    *PicSelectionConfig    `json:"picSelection,omitempty"`
	SentenceBuilder *SentenceBuilderConfig `json:"sentenceBuilder,omitempty"`
	FloatingBubble  *FloatingBubbleConfig  `json:"floatingBubble,omitempty"`
	Room2D          *Room2DConfig          `json:"room2d,omitempty"`
}

// HintMode controls how the room hint is introduced.
type HintMode string

const (
	HintHighlightOnStart HintMode = "highlight-on-start"
	HintAfterDelay       HintMode = "after-delay"
	HintAlways           HintMode = "always"
)

// HintModes lists every accepted hint mode.
var HintModes = []HintMode{HintHighlightOnStart, HintAfterDelay, HintAlways}

// Room2DConfig describes an object-finding room.
type Room2DConfig struct {
	Background     string   `json:"background"`
	Objects        Objects  `json:"objects"`
	HintMode       HintMode `json:"hintMode,omitempty"`
	HintDurationMs int      `json:"hintDurationMs,omitempty"`
	HintDelayMs    int      `json:"hintDelayMs,omitempty"`
	SequenceMode   string   `json:"sequenceMode,omitempty"`
}

// Objects is the object list of a room. A nil Objects means the field was
// absent or not a sequence.
type Objects []Room2DObject

func (o *Objects) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*o = nil
		return nil
	}
	var list []Room2DObject
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*o = list
	return nil
}

// Room2DObject is a clickable region of the room. Bounds are percentages
// of the painted background; nil means the bound was not provided.
type Room2DObject struct {
	ID          string   `json:"id"`
	ItemID      string   `json:"itemId"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	W           *float64 `json:"w"`
	H           *float64 `json:"h"`
	Label       string   `json:"label,omitempty"`
	Hint        *bool    `json:"hint,omitempty"`
	ActiveOrder *int     `json:"activeOrder,omitempty"`
}

// FloatingBubbleConfig configures the bubble-popping mode.
type FloatingBubbleConfig struct {
	Background string `json:"background,omitempty"`
	MaxBubbles int    `json:"maxBubbles,omitempty"`
}

// PicSelectionConfig configures the picture discrimination mode.
type PicSelectionConfig struct {
	Questions          Questions `json:"questions"`
	ChoicesPerQuestion int       `json:"choicesPerQuestion"`
	TTSOnPrompt        bool      `json:"ttsOnPrompt,omitempty"`
	IncludeWordLabel   bool      `json:"includeWordLabel,omitempty"`
}

// Questions is either an explicit question count or a list of question
// records. Authors use both forms.
type Questions struct {
	Count *int
	List  []json.RawMessage
}

// Total returns the explicit count if present, else the list length.
func (q Questions) Total() int {
	if q.Count != nil {
		return *q.Count
	}
	return len(q.List)
}

func (q *Questions) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		q.Count = &n
		q.List = nil
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("questions must be a number or a sequence")
	}
	q.Count = nil
	q.List = list
	return nil
}

func (q Questions) MarshalJSON() ([]byte, error) {
	if q.Count != nil {
		return json.Marshal(*q.Count)
	}
	if q.List == nil {
		return []byte("0"), nil
	}
	return json.Marshal(q.List)
}

// TokenKind distinguishes sentence text from blanks.
type TokenKind string

const (
	TokenText  TokenKind = "text"
	TokenBlank TokenKind = "blank"
)

// SentenceToken is one segment of a sentence-builder prompt.
type SentenceToken struct {
	Kind        TokenKind `json:"kind"`
	Value       string    `json:"value,omitempty"`
	ID          string    `json:"id,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// SentenceBuilderConfig configures the sentence assembly mode.
type SentenceBuilderConfig struct {
	Background string            `json:"background,omitempty"`
	Tokens     []SentenceToken   `json:"tokens"`
	WordBank   []string          `json:"wordBank"`
	Answers    map[string]string `json:"answers,omitempty"`
}

// ItemByID returns the item with the given id.
func (d *Document) ItemByID(id string) (Item, bool) {
	for _, it := range d.Items {
		if it.ItemID() == id {
			return it, true
		}
	}
	return nil, false
}

// VocabItems returns the vocabulary items in document order.
func (d *Document) VocabItems() []*VocabItem {
	var out []*VocabItem
	for _, it := range d.Items {
		if v, ok := it.(*VocabItem); ok {
			out = append(out, v)
		}
	}
	return out
}

// Room returns the active room configuration, if any.
func (d *Document) Room() *Room2DConfig {
	return d.Defaults.Room2D
}

// PicSelection returns the picture-selection content block, if any.
func (d *Document) PicSelection() *PicSelectionConfig {
	if d.Content == nil {
		return nil
	}
	return d.Content.PicSelection
}

// Background picks the backdrop shared by modes that have none of their own.
func (d *Document) Background() string {
	switch {
	case d.Defaults.SentenceBuilder != nil && d.Defaults.SentenceBuilder.Background != "":
		return d.Defaults.SentenceBuilder.Background
	case d.Defaults.Room2D != nil && d.Defaults.Room2D.Background != "":
		return d.Defaults.Room2D.Background
	default:
		return d.Defaults.Background
	}
}

// AvailableModes derives the modes a document supports, in fixed order.
// When the document has none of the mode sections, the declared mode is used.
func AvailableModes(d *Document) []UIMode {
	var modes []UIMode
	if d.Defaults.Room2D != nil {
		modes = append(modes, ModeRoom2D)
	}
	if len(d.Items) > 0 {
		modes = append(modes, ModeFloatingBubble)
	}
	if d.PicSelection() != nil {
		modes = append(modes, ModePicSelection)
	}
	if d.Defaults.SentenceBuilder != nil {
		modes = append(modes, ModeSentenceBuilder)
	}
	if len(modes) == 0 {
		modes = append(modes, d.Defaults.UI)
	}
	return modes
}
