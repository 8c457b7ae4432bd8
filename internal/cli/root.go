package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"formbench/internal/editor"
	"formbench/internal/format"
	"formbench/internal/model"
	"formbench/internal/store"
	"formbench/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	Catalog    string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "formbench",
		Short:        "formbench (local-first) form builder: CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  formbench

  # Scriptable commands
  formbench add heading
  formbench input            # same as: formbench add input
  formbench add input --at 1
  formbench move 0 2
  formbench export --as markdown
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("FORMBENCH_DIR", ""), "Path to store dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("FORMBENCH_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().StringVar(&app.Catalog, "catalog", envOr("FORMBENCH_CATALOG", ""), "Path to a YAML palette catalog")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FORMBENCH_FORMAT", "json"), "Output format (json|edn|text)")

	cmd.AddCommand(newPaletteCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newBackgroundCmd(app))
	cmd.AddCommand(newLayoutCmd(app))
	cmd.AddCommand(newRevertCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, err := openEditor(app)
	if err != nil {
		return err
	}
	defer sess.Close()
	return tui.Run(tui.Options{
		Store:      sess.store,
		Controller: sess.ctrl,
		Workspace:  app.Workspace,
		Profile:    sess.cfg.TUIProfile(),
		Mouse:      sess.cfg.MouseEnabled(),
		Logger:     sess.log,
	})
}

// resolveDir picks the store directory:
// 1) --dir
// 2) --workspace
// 3) ~/.formbench/config.json currentWorkspace
// 4) a .formbench directory found walking up from the working directory
// 5) the implicit "default" workspace
func resolveDir(app *App, cfg *store.GlobalConfig) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	if app.Workspace != "" {
		return store.WorkspaceDir(app.Workspace)
	}
	if cfg != nil && cfg.CurrentWorkspace != "" {
		app.Workspace = cfg.CurrentWorkspace
		return store.WorkspaceDir(cfg.CurrentWorkspace)
	}
	if cwd, err := os.Getwd(); err == nil {
		if found, ok := store.DiscoverDir(cwd); ok {
			return found, nil
		}
	}
	app.Workspace = "default"
	return store.WorkspaceDir(app.Workspace)
}

// editorSession is one command's view of a workspace: its store, the gateway in
// front of it, and a controller already loaded with the saved state.
type editorSession struct {
	store store.Store
	gw    *store.Gateway
	ctrl  *editor.Controller
	cfg   *store.GlobalConfig
	log   *slog.Logger

	closeLog func()
}

func (s *editorSession) Close() {
	if s.closeLog != nil {
		s.closeLog()
	}
}

func openEditor(app *App) (*editorSession, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := resolveDir(app, cfg)
	if err != nil {
		return nil, err
	}
	app.Dir = dir

	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	catalogPath := app.Catalog
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	cat := model.DefaultCatalog()
	if catalogPath != "" {
		cat, err = model.LoadCatalogYAML(catalogPath)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", catalogPath, err)
		}
	}

	log, closeLog := newLogger()
	gw := store.NewGateway(s.KV(), log)
	ctrl := editor.NewController(gw,
		editor.WithLogger(log),
		editor.WithCatalog(cat),
		editor.WithDefaults(model.CanvasSettings{BackgroundColor: cfg.DefaultBackground}),
	)
	sess := &editorSession{store: s, gw: gw, ctrl: ctrl, cfg: cfg, log: log, closeLog: closeLog}
	if _, err := ctrl.OnLoad(context.Background()); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// newLogger returns a debug logger writing to FORMBENCH_DEBUG_LOG, or a discarding
// logger when that is unset or cannot be opened.
func newLogger() (*slog.Logger, func()) {
	path := strings.TrimSpace(os.Getenv("FORMBENCH_DEBUG_LOG"))
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, func() { _ = f.Close() }
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
