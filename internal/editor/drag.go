package editor

import "formbench/internal/model"

type Origin int

const (
	OriginPalette Origin = iota
	OriginCanvas
)

func (o Origin) String() string {
	switch o {
	case OriginPalette:
		return "palette"
	case OriginCanvas:
		return "canvas"
	default:
		return "unknown"
	}
}

// Session describes one in-flight drag gesture.
//
// Palette drags carry a Kind. Canvas drags carry the Item being moved and the
// OriginIndex it was lifted from; the item's id lets a drop detect that the list
// changed underneath the gesture.
type Session struct {
	Origin      Origin
	Kind        model.Kind
	Item        model.FormItem
	OriginIndex int
}

func PaletteSession(kind model.Kind) Session {
	return Session{Origin: OriginPalette, Kind: kind, OriginIndex: -1}
}

func CanvasSession(list model.Form, index int) (Session, error) {
	if !list.Valid(index) {
		return Session{}, IndexError{Op: "drag start", Index: index, Len: len(list)}
	}
	return Session{Origin: OriginCanvas, Item: list[index], OriginIndex: index}, nil
}

// Drag holds at most one session. Idle -> Dragging -> Idle.
type Drag struct {
	cur    Session
	active bool
}

// Start begins a drag, replacing any session left over from a gesture whose drop never fired.
func (d *Drag) Start(s Session) {
	d.cur = s
	d.active = true
}

// End returns to idle. Safe to call in any state.
func (d *Drag) End() {
	d.cur = Session{}
	d.active = false
}

func (d *Drag) Peek() (Session, bool) {
	if !d.active {
		return Session{}, false
	}
	return d.cur, true
}

func (d *Drag) Active() bool { return d.active }
