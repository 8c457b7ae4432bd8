package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SwitchPane key.Binding
	Up         key.Binding
	Down       key.Binding
	Grab       key.Binding
	Cancel     key.Binding
	Append     key.Binding
	Delete     key.Binding
	Edit       key.Binding
	Required   key.Binding
	Background key.Binding
	CustomBg   key.Binding
	Layout     key.Binding
	Preview    key.Binding
	Save       key.Binding
	Revert     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SwitchPane: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "pane")),
		Up:         key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Grab:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "grab/drop")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Append:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "append")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete", "x"), key.WithHelp("d", "delete")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text")),
		Required:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "required")),
		Background: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background")),
		CustomBg:   key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "custom color")),
		Layout:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layout")),
		Preview:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Revert:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "revert")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Grab, k.Append, k.Delete, k.Edit, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchPane, k.Up, k.Down, k.Grab, k.Cancel},
		{k.Append, k.Delete, k.Edit, k.Required},
		{k.Background, k.CustomBg, k.Layout, k.Preview},
		{k.Save, k.Revert, k.Help, k.Quit},
	}
}
