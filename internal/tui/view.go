package tui

import (
	"fmt"
	"strings"

	"formbench/internal/model"
	"formbench/internal/render"

	"github.com/charmbracelet/lipgloss"
)

// Screen rows above the panes: header, blank line, pane titles.
const bodyTop = 3

const defaultPaletteWidth = 22

func (m Model) paletteWidth() int {
	if m.width > 0 && m.width < 3*defaultPaletteWidth {
		return max(8, m.width/3)
	}
	return defaultPaletteWidth
}

func (m Model) canvasX() int { return m.paletteWidth() + 1 }

func (m Model) canvasWidth() int {
	w := m.width
	if w == 0 {
		w = 80
	}
	return max(10, w-m.canvasX())
}

func (m Model) helpHeight() int {
	h := m.help
	h.Width = m.width
	return lipgloss.Height(h.View(m.keys))
}

// bodyHeight is the number of pane rows between the titles and the status line.
func (m Model) bodyHeight() int {
	h := m.height
	if h == 0 {
		h = 24
	}
	return max(1, h-bodyTop-1-m.helpHeight())
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.palette.SetSize(m.paletteWidth(), m.bodyHeight())
	m.ensureVisible()
}

// dropSlot is where the active drag would land, or -1 when nothing is carried.
func (m Model) dropSlot() int {
	if _, ok := m.ctrl.Dragging(); !ok {
		return -1
	}
	if m.mouseDrag {
		return m.hoverSlot
	}
	if m.pane == paneCanvas {
		return m.cursor
	}
	return -1
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n\n")

	pw := m.paletteWidth()
	cw := m.canvasWidth()
	bodyH := m.bodyHeight()

	b.WriteString(fitWidth(m.paneTitle("Palette", m.pane == panePalette), pw))
	b.WriteString(" ")
	b.WriteString(fitWidth(m.canvasTitle(), cw))
	b.WriteString("\n")

	left := splitRows(m.palette.View(), bodyH)
	var right []string
	if m.showPreview {
		right = splitRows(renderMarkdown(render.Markdown(m.ctrl.State()), cw), bodyH)
	} else {
		right = m.canvasRows(bodyH, cw)
	}
	sep := styleMuted().Render("│")
	for i := 0; i < bodyH; i++ {
		b.WriteString(fitWidth(left[i], pw))
		b.WriteString(sep)
		b.WriteString(fitWidth(right[i], cw))
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) headerLine() string {
	title := styleAccent().Render("formbench")
	if m.workspace != "" {
		title += styleMuted().Render(" · " + m.workspace)
	}
	if m.ctrl.Dirty() {
		title += " " + styleError().Render("● unsaved")
	}
	return title
}

func (m Model) paneTitle(s string, focused bool) string {
	if focused {
		return styleAccent().Render(s)
	}
	return styleMuted().Render(s)
}

func (m Model) canvasTitle() string {
	st := m.ctrl.Settings()
	name := "Canvas"
	if m.showPreview {
		name = "Preview"
	}
	meta := fmt.Sprintf(" %s %s · %s", swatch(st.BackgroundColor), st.BackgroundColor, st.Layout)
	if m.ctrl.Selection().IsCanvas() {
		meta += styleAccent().Render(" (selected)")
	}
	return m.paneTitle(name, m.pane == paneCanvas) + styleMuted().Render(meta)
}

// canvasRows renders one row per item and a trailing end-of-canvas slot, so a
// screen row maps to one drop slot.
func (m Model) canvasRows(h, w int) []string {
	items := m.ctrl.Items()
	sel, hasSel := m.ctrl.SelectedIndex()
	drop := m.dropSlot()
	gutter := paint(m.ctrl.Settings().BackgroundColor, 2)

	rows := make([]string, 0, h)
	for slot := m.offset; slot <= len(items) && len(rows) < h; slot++ {
		prefix := "  "
		switch {
		case slot == drop:
			prefix = lipgloss.NewStyle().Foreground(colorDropMarker).Bold(true).Render("▸ ")
		case m.pane == paneCanvas && slot == m.cursor:
			prefix = "> "
		}

		if slot == len(items) {
			label := "end of form"
			if len(items) == 0 {
				label = "empty: press a or drag from the palette"
			}
			rows = append(rows, gutter+prefix+styleMuted().Render(label))
			continue
		}

		line := describeItem(items[slot])
		if hasSel && sel == slot {
			line = styleSelected().Render(fitWidth(line, max(1, w-4)))
		}
		rows = append(rows, gutter+prefix+line)
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return rows
}

// describeItem is a one-line terminal rendering of an item. Unknown kinds are
// shown so they stay selectable and deletable.
func describeItem(it model.FormItem) string {
	req := ""
	if it.Required {
		req = styleError().Render(" *")
	}
	switch it.Kind {
	case model.KindHeading:
		return lipgloss.NewStyle().Bold(true).Render("# " + it.Text)
	case model.KindSubheading:
		return lipgloss.NewStyle().Bold(true).Render("## " + it.Text)
	case model.KindInput:
		return "[ " + it.Text + " ]" + req
	case model.KindTextarea:
		return "[ " + it.Text + " ¶ ]" + req
	case model.KindButton:
		return "( " + it.Text + " )"
	default:
		return styleMuted().Render("? " + string(it.Kind) + ": " + it.Text)
	}
}

func (m Model) statusLine() string {
	switch m.mode {
	case modeEditText:
		return styleAccent().Render("text: ") + m.input.View()
	case modeCustomBg:
		return styleAccent().Render("background: ") + m.input.View()
	}
	if m.status == "" {
		if s, ok := m.ctrl.Dragging(); ok {
			return styleMuted().Render("carrying " + dragLabel(s.Kind, s.Item))
		}
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.status)
	}
	return styleMuted().Render(m.status)
}

func dragLabel(kind model.Kind, it model.FormItem) string {
	if it.Kind != "" {
		return string(it.Kind) + " " + fmt.Sprintf("%q", it.Text)
	}
	return string(kind)
}

func splitRows(s string, h int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > h {
		rows = rows[:h]
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return rows
}
