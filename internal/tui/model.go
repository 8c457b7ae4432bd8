package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"formbench/internal/editor"
	"formbench/internal/model"
	"formbench/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type pane int

const (
	panePalette pane = iota
	paneCanvas
)

func (p pane) String() string {
	if p == paneCanvas {
		return "canvas"
	}
	return "palette"
}

type inputMode int

const (
	modeNormal inputMode = iota
	modeEditText
	modeCustomBg
)

// Backgrounds cycled by the background key.
var backgroundPresets = []string{"#c0c0c0", "#ffffff", "#f5f0e1", "#dfe9f5", "#e3f1e0", "#333333"}

// Model is the bubbletea model for the editor. Form state lives in the
// controller; the model only holds what is on screen.
type Model struct {
	ctrl      *editor.Controller
	store     store.Store
	workspace string
	log       *slog.Logger
	mouse     bool

	keys    keyMap
	help    help.Model
	palette list.Model
	// Shared with the palette delegate.
	paletteFocused *bool

	pane   pane
	cursor int // canvas slot; len(items) is the end-of-canvas slot
	offset int

	width  int
	height int

	showPreview bool
	mode        inputMode
	input       textinput.Model

	status    string
	statusErr bool
	quitArmed bool

	// Mouse drag in flight (press seen, release pending).
	mouseDrag bool
	hoverSlot int
}

func newModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	focused := new(bool)
	m := Model{
		ctrl:           opts.Controller,
		store:          opts.Store,
		workspace:      strings.TrimSpace(opts.Workspace),
		log:            log,
		mouse:          opts.Mouse,
		keys:           defaultKeyMap(),
		help:           help.New(),
		paletteFocused: focused,
		palette:        newPaletteList(opts.Controller.Catalog(), focused),
		pane:           panePalette,
		hoverSlot:      -1,
	}

	m.input = textinput.New()
	m.input.CharLimit = 200
	m.input.Width = 40

	if st, err := m.store.LoadTUIState(); err == nil && st != nil {
		if st.Pane == paneCanvas.String() {
			m.pane = paneCanvas
		}
		if st.PaletteCursor >= 0 && st.PaletteCursor < len(m.palette.Items()) {
			m.palette.Select(st.PaletteCursor)
		}
		m.showPreview = st.ShowPreview
	}
	*m.paletteFocused = m.pane == panePalette
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updateInput(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		if !m.mouse || m.mode != modeNormal {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.ctrl.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.setStatus("unsaved changes: ctrl+s saves, q again quits")
			return m, nil
		}
		m.saveUIState()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, m.keys.SwitchPane):
		if m.pane == panePalette {
			m.focus(paneCanvas)
		} else {
			m.focus(panePalette)
		}

	case key.Matches(msg, m.keys.Cancel):
		if _, ok := m.ctrl.Dragging(); ok {
			m.ctrl.OnDragEnd()
			m.setStatus("drag cancelled")
		}

	case key.Matches(msg, m.keys.Save):
		if err := m.ctrl.OnSave(context.Background()); err != nil {
			m.setError(err)
		} else {
			m.setStatus("saved")
		}

	case key.Matches(msg, m.keys.Revert):
		if err := m.ctrl.OnRevert(context.Background()); err != nil {
			m.setError(err)
		} else {
			m.clampCursor()
			m.setStatus("reverted to last save")
		}

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview

	case key.Matches(msg, m.keys.Layout):
		next := model.LayoutRow
		if m.ctrl.Settings().Layout == model.LayoutRow {
			next = model.LayoutStacked
		}
		m.ctrl.OnCanvasClick()
		m.ctrl.OnChangeLayout(string(next))
		m.setStatus("layout " + string(next))

	case key.Matches(msg, m.keys.Background):
		m.ctrl.OnCanvasClick()
		m.ctrl.OnChangeBackground(nextPreset(m.ctrl.Settings().BackgroundColor))
		m.setStatus("background " + m.ctrl.Settings().BackgroundColor)

	case key.Matches(msg, m.keys.CustomBg):
		m.ctrl.OnCanvasClick()
		m.startInput(modeCustomBg, "#rrggbb", m.ctrl.Settings().BackgroundColor)

	case key.Matches(msg, m.keys.Append):
		kind, ok := m.paletteKind()
		if !ok {
			return m, nil
		}
		if m.ctrl.OnPaletteDragStart(kind) && m.ctrl.OnDropOnCanvas() {
			m.followSelection()
			m.setStatus("added " + string(kind))
		}

	case key.Matches(msg, m.keys.Delete):
		idx, ok := m.ctrl.SelectedIndex()
		if !ok {
			m.setStatus("nothing selected")
			return m, nil
		}
		if m.ctrl.OnDeleteItem(idx) {
			m.clampCursor()
			m.setStatus(fmt.Sprintf("deleted #%d", idx))
		}

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.ctrl.SelectedItem()
		if !ok {
			m.setStatus("select an item to edit")
			return m, nil
		}
		m.startInput(modeEditText, string(it.Kind)+" text", it.Text)

	case key.Matches(msg, m.keys.Required):
		it, ok := m.ctrl.SelectedItem()
		if !ok {
			m.setStatus("select an input to mark required")
			return m, nil
		}
		if !it.Kind.InputLike() {
			m.setStatus("only inputs and textareas can be required")
			return m, nil
		}
		m.ctrl.OnSetSelectedRequired(!it.Required)

	case key.Matches(msg, m.keys.Grab):
		m.grabOrDrop()

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if m.pane == panePalette {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, m.keys.Up) {
			m.moveCursor(-1)
		} else {
			m.moveCursor(1)
		}
	}
	return m, nil
}

// grabOrDrop is the keyboard drag. Enter lifts the row under the cursor, or drops
// at the cursor while something is carried.
func (m *Model) grabOrDrop() {
	if m.pane == panePalette {
		kind, ok := m.paletteKind()
		if !ok {
			return
		}
		if m.ctrl.OnPaletteDragStart(kind) {
			m.focus(paneCanvas)
			m.setStatus("placing " + string(kind) + ": ↑/↓ pick a slot, enter drops, esc cancels")
		}
		return
	}

	n := len(m.ctrl.Items())
	if _, dragging := m.ctrl.Dragging(); dragging {
		var changed bool
		if m.cursor >= n {
			changed = m.ctrl.OnDropOnCanvas()
		} else {
			changed = m.ctrl.OnDropAtSlot(m.cursor)
		}
		if changed {
			m.followSelection()
			m.setStatus("dropped")
		} else {
			m.setStatus("unchanged")
		}
		return
	}
	if m.cursor < n && m.ctrl.OnCanvasDragStart(m.cursor) {
		m.setStatus(fmt.Sprintf("moving #%d: ↑/↓ pick a slot, enter drops, esc cancels", m.cursor))
		return
	}
	m.ctrl.OnCanvasClick()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return m, nil
	case tea.KeyEnter:
		v := m.input.Value()
		switch m.mode {
		case modeEditText:
			m.ctrl.OnEditSelectedText(v)
		case modeCustomBg:
			if _, err := model.ParseColor(v); err != nil {
				m.setError(err)
				return m, nil
			}
			m.ctrl.OnChangeBackground(v)
		}
		m.stopInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startInput(mode inputMode, placeholder, value string) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) focus(p pane) {
	m.pane = p
	*m.paletteFocused = p == panePalette
}

func (m Model) paletteKind() (model.Kind, bool) {
	it, ok := m.palette.SelectedItem().(paletteItem)
	if !ok {
		return "", false
	}
	return it.entry.Kind, true
}

// moveCursor moves the canvas cursor. Outside a drag the selection follows it;
// during a drag the cursor only picks the drop slot.
func (m *Model) moveCursor(delta int) {
	n := len(m.ctrl.Items())
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > n {
		m.cursor = n
	}
	m.ensureVisible()
	if _, dragging := m.ctrl.Dragging(); dragging {
		return
	}
	if m.cursor < n {
		m.ctrl.OnItemClick(m.cursor)
	} else {
		m.ctrl.OnCanvasClick()
	}
}

func (m *Model) followSelection() {
	if i, ok := m.ctrl.SelectedIndex(); ok {
		m.cursor = i
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Items())
	if m.cursor > n {
		m.cursor = n
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	h := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.log.Warn("tui", "err", err)
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) saveUIState() {
	st := &store.TUIState{
		Pane:          m.pane.String(),
		PaletteCursor: m.palette.Index(),
		ShowPreview:   m.showPreview,
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Debug("save tui state", "err", err)
	}
}

func nextPreset(cur string) string {
	for i, c := range backgroundPresets {
		if c == cur {
			return backgroundPresets[(i+1)%len(backgroundPresets)]
		}
	}
	return backgroundPresets[0]
}
