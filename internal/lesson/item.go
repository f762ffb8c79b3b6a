package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemKind is the discriminator of a lesson item.
type ItemKind string

const (
	KindVocab ItemKind = "vocab"
	KindInfo  ItemKind = "info"
	KindScene ItemKind = "scene"
)

// Item is one entry of a lesson. The concrete type is one of *VocabItem,
// *InfoItem or *SceneItem.
type Item interface {
	ItemID() string
	Kind() ItemKind
	isItem()
}

// VocabItem is a word to practise.
type VocabItem struct {
	ID    string
	UI    UIMode
	Word  string
	Image string
}

// InfoItem is a word shown for context but not practised.
type InfoItem struct {
	ID    string
	UI    UIMode
	Word  string
	Image string
}

// SceneItem carries a room layout.
type SceneItem struct {
	ID   string
	UI   UIMode
	Room *Room2DConfig
}

func (v *VocabItem) ItemID() string { return v.ID }
func (v *VocabItem) Kind() ItemKind { return KindVocab }
func (*VocabItem) isItem()          {}

func (i *InfoItem) ItemID() string { return i.ID }
func (i *InfoItem) Kind() ItemKind { return KindInfo }
func (*InfoItem) isItem()          {}

func (s *SceneItem) ItemID() string { return s.ID }
func (s *SceneItem) Kind() ItemKind { return KindScene }
func (*SceneItem) isItem()          {}

// Word returns the word carried by an item, or "" for scenes.
func Word(it Item) string {
	switch v := it.(type) {
	case *VocabItem:
		return v.Word
	case *InfoItem:
		return v.Word
	case *SceneItem:
		return ""
	default:
		panic(fmt.Sprintf("lesson: unknown item type %T", it))
	}
}

// Image returns the picture reference of an item, or "" for scenes.
func Image(it Item) string {
	switch v := it.(type) {
	case *VocabItem:
		return v.Image
	case *InfoItem:
		return v.Image
	case *SceneItem:
		return ""
	default:
		panic(fmt.Sprintf("lesson: unknown item type %T", it))
	}
}

// Items is the ordered item sequence of a document. A nil Items means the
// field was absent from the source document.
type Items []Item

// wireItem is the JSON shape shared by every item variant.
type wireItem struct {
	ID      string          `json:"id"`
	Type    ItemKind        `json:"type"`
	UI      UIMode          `json:"ui,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

type wordContent struct {
	Word   string `json:"word"`
	Image  string `json:"image,omitempty"`
	ImgURL string `json:"imgUrl,omitempty"`
}

type sceneContent struct {
	Room2D *Room2DConfig `json:"room2d,omitempty"`
}

func (items *Items) UnmarshalJSON(data []byte) error {
	// A non-sequence leaves items nil so Validate reports it in order.
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*items = nil
		return nil
	}
	var raw []wireItem
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return &ValidationError{Field: "items", Reason: err.Error()}
	}
	out := make(Items, 0, len(raw))
	for i, w := range raw {
		it, err := decodeItem(w)
		if err != nil {
			return &ValidationError{Field: fmt.Sprintf("items[%d]", i), Reason: err.Error()}
		}
		out = append(out, it)
	}
	*items = out
	return nil
}

func decodeItem(w wireItem) (Item, error) {
	switch w.Type {
	case KindVocab, KindInfo:
		var c wordContent
		if len(w.Content) > 0 {
			if err := json.Unmarshal(w.Content, &c); err != nil {
				return nil, fmt.Errorf("content: %w", err)
			}
		}
		img := c.Image
		if img == "" {
			img = c.ImgURL
		}
		if w.Type == KindVocab {
			return &VocabItem{ID: w.ID, UI: w.UI, Word: c.Word, Image: img}, nil
		}
		return &InfoItem{ID: w.ID, UI: w.UI, Word: c.Word, Image: img}, nil
	case KindScene:
		var c sceneContent
		if len(w.Content) > 0 {
			if err := json.Unmarshal(w.Content, &c); err != nil {
				return nil, fmt.Errorf("content: %w", err)
			}
		}
		return &SceneItem{ID: w.ID, UI: w.UI, Room: c.Room2D}, nil
	case "":
		return nil, fmt.Errorf("type missing")
	default:
		return nil, fmt.Errorf("unknown type %q", w.Type)
	}
}

func (items Items) MarshalJSON() ([]byte, error) {
	if items == nil {
		return []byte("null"), nil
	}
	out := make([]wireItem, 0, len(items))
	for _, it := range items {
		w := wireItem{ID: it.ItemID(), Type: it.Kind()}
		var content any
		switch v := it.(type) {
		case *VocabItem:
			w.UI = v.UI
			content = wordContent{Word: v.Word, Image: v.Image}
		case *InfoItem:
			w.UI = v.UI
			content = wordContent{Word: v.Word, Image: v.Image}
		case *SceneItem:
			w.UI = v.UI
			content = sceneContent{Room2D: v.Room}
		default:
			return nil, fmt.Errorf("lesson: unknown item type %T", it)
		}
		b, err := json.Marshal(content)
		if err != nil {
			return nil, err
		}
		w.Content = b
		out = append(out, w)
	}
	return json.Marshal(out)
}
