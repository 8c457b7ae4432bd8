package editor

import (
	"strings"

	"formbench/internal/model"
)

// DropResult is the outcome of a drop against the current list.
// Index is where the carried item ended up (-1 when nothing changed).
type DropResult struct {
	Items   model.Form
	Index   int
	Changed bool
}

// ComputeDrop returns the list produced by dropping s at slot target.
// The input list is never modified.
func ComputeDrop(list model.Form, s *Session, target int) (model.Form, error) {
	res, err := Drop(list, s, target)
	return res.Items, err
}

// Drop applies a drop to list.
//
//   - Palette origin: a new item built from the carried kind is inserted at target.
//     A target past the end (the canvas background) appends.
//   - Canvas origin: the item at OriginIndex is removed and re-inserted so that it
//     sits at target in the final list. The insertion index is taken against the
//     list after removal, so moving down does not land one slot too far.
//   - No session, or a session that no longer matches the list: unchanged.
func Drop(list model.Form, s *Session, target int) (DropResult, error) {
	unchanged := DropResult{Items: list.Clone(), Index: -1}
	if s == nil {
		return unchanged, ErrNoActiveDragSession
	}
	if target < 0 {
		target = 0
	}

	switch s.Origin {
	case OriginPalette:
		return insertFromPalette(list, s, target)
	case OriginCanvas:
		return reorderWithinCanvas(list, s, target)
	default:
		return unchanged, ErrStaleDragSession
	}
}

func insertFromPalette(list model.Form, s *Session, target int) (DropResult, error) {
	kind := s.Kind
	if strings.TrimSpace(string(kind)) == "" {
		kind = s.Item.Kind
	}
	if strings.TrimSpace(string(kind)) == "" {
		return DropResult{Items: list.Clone(), Index: -1}, ErrStaleDragSession
	}

	it := s.Item
	it.Kind = kind
	if strings.TrimSpace(it.Text) == "" {
		it.Text = string(kind)
	}
	// Each drop places a distinct item, even when the same session template is reused.
	it.ID = model.NewItemID()
	it = it.WithRequired(it.Required)

	if target > len(list) {
		target = len(list)
	}
	out := make(model.Form, 0, len(list)+1)
	out = append(out, list[:target]...)
	out = append(out, it)
	out = append(out, list[target:]...)
	return DropResult{Items: out, Index: target, Changed: true}, nil
}

func reorderWithinCanvas(list model.Form, s *Session, target int) (DropResult, error) {
	unchanged := DropResult{Items: list.Clone(), Index: -1}
	from := s.OriginIndex
	if !list.Valid(from) {
		return unchanged, ErrStaleDragSession
	}
	if s.Item.ID != "" && list[from].ID != s.Item.ID {
		return unchanged, ErrStaleDragSession
	}

	last := len(list) - 1
	if target > last {
		target = last
	}
	if target == from {
		unchanged.Index = from
		return unchanged, nil
	}

	moved := list[from]
	rest := make(model.Form, 0, len(list))
	rest = append(rest, list[:from]...)
	rest = append(rest, list[from+1:]...)

	out := make(model.Form, 0, len(list))
	out = append(out, rest[:target]...)
	out = append(out, moved)
	out = append(out, rest[target:]...)
	return DropResult{Items: out, Index: target, Changed: true}, nil
}
