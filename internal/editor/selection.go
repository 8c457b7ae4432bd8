package editor

import "formbench/internal/model"

type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectItem
	SelectCanvas
)

// Selection is what the inspector shows: nothing, one item, or the canvas itself.
// Item selections hold the item id, so structural edits never leave them pointing
// at the wrong slot.
type Selection struct {
	Kind   SelectionKind
	ItemID string
}

func NoSelection() Selection { return Selection{} }

func CanvasSelection() Selection { return Selection{Kind: SelectCanvas} }

func ItemSelection(list model.Form, index int) (Selection, error) {
	if !list.Valid(index) {
		return Selection{}, IndexError{Op: "select", Index: index, Len: len(list)}
	}
	return Selection{Kind: SelectItem, ItemID: list[index].ID}, nil
}

func (s Selection) IsNone() bool   { return s.Kind == SelectNone }
func (s Selection) IsCanvas() bool { return s.Kind == SelectCanvas }

// Index resolves an item selection against list. ok is false for none/canvas or a
// selection whose item is gone.
func (s Selection) Index(list model.Form) (int, bool) {
	if s.Kind != SelectItem {
		return -1, false
	}
	i := list.IndexOf(s.ItemID)
	return i, i >= 0
}

// Resync drops an item selection whose item is no longer in list.
func (s Selection) Resync(list model.Form) Selection {
	if s.Kind != SelectItem {
		return s
	}
	if list.IndexOf(s.ItemID) < 0 {
		return NoSelection()
	}
	return s
}

// ShiftAfterDelete is the index form of the delete/selection contract: the deleted
// slot clears the selection and later slots move down by one.
func ShiftAfterDelete(selected, deleted int) (int, bool) {
	switch {
	case selected < 0:
		return -1, false
	case selected == deleted:
		return -1, false
	case selected > deleted:
		return selected - 1, true
	default:
		return selected, true
	}
}
