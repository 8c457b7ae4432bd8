package tui

import (
	"log/slog"
	"os"
	"strings"

	"formbench/internal/editor"
	"formbench/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store      store.Store
	Controller *editor.Controller
	Workspace  string
	// Profile is the appearance profile id (default|contrast).
	Profile string
	// Mouse enables click and drag on the palette and canvas.
	Mouse  bool
	Logger *slog.Logger
}

// Run starts the full-screen editor and blocks until the user quits.
func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	setAppearanceProfile(appearanceProfileID(opts.Profile))

	// Bubbletea owns stdout, so its own debug output goes to a file when asked.
	if path := strings.TrimSpace(os.Getenv("FORMBENCH_TUI_LOG")); path != "" {
		f, err := tea.LogToFile(path, "tui")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	popts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		popts = append(popts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(newModel(opts), popts...).Run()
	return err
}
