package lesson

import (
	"fmt"
)

// ValidationError identifies the field that made a document unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lesson: %s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate checks the structural invariants of a document. It never
// mutates doc and returns the first failure found.
func Validate(doc *Document) error {
	if doc == nil {
		return invalid("document", "missing")
	}
	if doc.Version != SchemaVersion {
		return invalid("version", fmt.Sprintf("must be %d", SchemaVersion))
	}
	if doc.LessonID == "" {
		return invalid("lessonId", "missing")
	}
	if doc.Title == "" {
		return invalid("title", "missing")
	}
	if doc.Defaults.UI == "" {
		return invalid("defaults.ui", "missing")
	}
	if doc.Defaults.Features == nil {
		return invalid("defaults.features", "missing")
	}
	if doc.Items == nil {
		return invalid("items", "must be a sequence")
	}

	seen := make(map[string]bool, len(doc.Items))
	for i, it := range doc.Items {
		id := it.ItemID()
		if id == "" {
			return invalid(fmt.Sprintf("items[%d].id", i), "missing")
		}
		if seen[id] {
			return invalid(fmt.Sprintf("items[%d].id", i), fmt.Sprintf("%q is not unique", id))
		}
		seen[id] = true
	}

	if doc.Defaults.UI == ModeRoom2D {
		if err := validateRoom(doc.Defaults.Room2D, seen); err != nil {
			return err
		}
	}
	return nil
}

func validateRoom(room *Room2DConfig, items map[string]bool) error {
	if room == nil {
		return invalid("defaults.room2d", "missing for room2d lesson")
	}
	if room.Background == "" {
		return invalid("room2d.background", "missing")
	}
	if room.Objects == nil {
		return invalid("room2d.objects", "must be a sequence")
	}

	ids := make(map[string]bool, len(room.Objects))
	for i, o := range room.Objects {
		if o.ID == "" {
			return invalid(fmt.Sprintf("room2d.objects[%d].id", i), "missing")
		}
		if o.ItemID == "" {
			return invalid(fmt.Sprintf("room2d object %s itemId", o.ID), "missing")
		}
		bounds := []struct {
			name string
			v    *float64
		}{{"x", o.X}, {"y", o.Y}, {"w", o.W}, {"h", o.H}}
		for _, b := range bounds {
			field := fmt.Sprintf("room2d object %s %s", o.ID, b.name)
			if b.v == nil {
				return invalid(field, "missing")
			}
			if *b.v < 0 || *b.v > 100 {
				return invalid(field, "out of range")
			}
		}
		if ids[o.ID] {
			return invalid(fmt.Sprintf("room2d object %s id", o.ID), "is not unique")
		}
		ids[o.ID] = true
		if !items[o.ItemID] {
			return invalid(fmt.Sprintf("room2d object %s itemId", o.ID), fmt.Sprintf("%q does not match any item", o.ItemID))
		}
	}
	return nil
}
