package tui

import (
	"formbench/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

type region int

const (
	regionNone region = iota
	regionPalette
	regionCanvas
)

// hit is the result of mapping a screen cell to the editor layout.
type hit struct {
	region region
	// Palette: catalog index. Canvas: drop slot (len(items) is the end row).
	index int
	// Canvas only: the cell is on an item row rather than the background.
	onItem bool
}

func (m Model) hitTest(x, y int) hit {
	bodyH := m.bodyHeight()
	if y < bodyTop || y >= bodyTop+bodyH {
		return hit{}
	}
	row := y - bodyTop

	if x >= 0 && x < m.paletteWidth() {
		p := m.palette.Paginator
		idx := p.Page*p.PerPage + row
		if row >= p.PerPage || idx >= len(m.palette.Items()) {
			return hit{}
		}
		return hit{region: regionPalette, index: idx}
	}

	if x < m.canvasX() || m.showPreview {
		return hit{}
	}
	n := len(m.ctrl.Items())
	slot := m.offset + row
	if slot < n {
		return hit{region: regionCanvas, index: slot, onItem: true}
	}
	return hit{region: regionCanvas, index: n}
}

// handleMouse turns a left press into a grab and the matching release into a
// drop. Wheel events scroll whichever pane is under the pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	h := m.hitTest(msg.X, msg.Y)

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(h.region, -1)
			return
		case tea.MouseButtonWheelDown:
			m.scroll(h.region, 1)
			return
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.quitArmed = false
		m.press(h)

	case tea.MouseActionMotion:
		if !m.mouseDrag {
			return
		}
		if h.region == regionCanvas {
			m.hoverSlot = h.index
		} else {
			m.hoverSlot = -1
		}

	case tea.MouseActionRelease:
		if !m.mouseDrag {
			return
		}
		m.release(h)
	}
}

func (m *Model) press(h hit) {
	switch h.region {
	case regionPalette:
		m.focus(panePalette)
		m.palette.Select(h.index)
		kind, ok := m.paletteKind()
		if ok && m.ctrl.OnPaletteDragStart(kind) {
			m.mouseDrag = true
			m.hoverSlot = -1
		}

	case regionCanvas:
		m.focus(paneCanvas)
		m.cursor = h.index
		m.ctrl.OnPointer(editor.Hit{Item: h.index, OnItem: h.onItem, OnCanvas: true})
		if h.onItem && m.ctrl.OnCanvasDragStart(h.index) {
			m.mouseDrag = true
			m.hoverSlot = h.index
		}
	}
}

func (m *Model) release(h hit) {
	m.mouseDrag = false
	m.hoverSlot = -1

	switch {
	case h.region == regionCanvas && h.onItem:
		if m.ctrl.OnDropAtSlot(h.index) {
			m.followSelection()
		}
	case h.region == regionCanvas:
		if m.ctrl.OnDropOnCanvas() {
			m.followSelection()
		}
	default:
		m.ctrl.OnDragEnd()
	}
}

func (m *Model) scroll(r region, delta int) {
	switch r {
	case regionPalette:
		if delta < 0 {
			m.palette.CursorUp()
		} else {
			m.palette.CursorDown()
		}
	case regionCanvas:
		n := len(m.ctrl.Items())
		m.offset = max(0, min(n, m.offset+delta))
	}
}
