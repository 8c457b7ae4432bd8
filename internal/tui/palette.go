package tui

import (
	"fmt"
	"io"
	"strings"

	"formbench/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type paletteItem struct {
	entry model.CatalogEntry
}

func (i paletteItem) FilterValue() string { return string(i.entry.Kind) + " " + i.entry.Label }
func (i paletteItem) Title() string       { return i.entry.Label }
func (i paletteItem) Description() string { return string(i.entry.Kind) }

// compactItemDelegate renders one palette row per line so row y maps directly to
// an index for mouse hit testing.
type compactItemDelegate struct {
	focused *bool
}

func newCompactItemDelegate(focused *bool) compactItemDelegate {
	return compactItemDelegate{focused: focused}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	txt := fmt.Sprint(item)
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	}

	style := lipgloss.NewStyle()
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
		if d.focused != nil && *d.focused {
			style = styleSelected()
		} else {
			style = styleMuted()
		}
	}

	fmt.Fprint(w, style.Render(fitWidth(prefix+txt, contentW)))
}

func newPaletteList(cat model.Catalog, focused *bool) list.Model {
	items := make([]list.Item, 0, len(cat.Entries))
	for _, e := range cat.Entries {
		items = append(items, paletteItem{entry: e})
	}
	l := list.New(items, newCompactItemDelegate(focused), 0, 0)
	l.Title = "Palette"
	// The editor renders its own titles and footer.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// Quit is handled by the editor (it guards unsaved changes).
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.CursorUp.SetKeys("up", "k", "ctrl+p")
	l.KeyMap.CursorDown.SetKeys("down", "j", "ctrl+n")
	return l
}

// fitWidth pads or cuts s to exactly w cells.
func fitWidth(s string, w int) string {
	sw := xansi.StringWidth(s)
	switch {
	case sw < w:
		return s + strings.Repeat(" ", w-sw)
	case sw > w:
		if w <= 1 {
			return xansi.Truncate(s, w, "")
		}
		return xansi.Truncate(s, w, "…")
	}
	return s
}
