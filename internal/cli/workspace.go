package cli

import (
	"errors"
	"os"
	"path/filepath"

	"formbench/internal/store"

	"github.com/spf13/cobra"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Workspace management (each workspace holds one form)",
	}

	cmd.AddCommand(newWorkspaceInitCmd(app))
	cmd.AddCommand(newWorkspaceUseCmd(app))
	cmd.AddCommand(newWorkspaceCurrentCmd(app))
	cmd.AddCommand(newWorkspaceListCmd(app))

	return cmd
}

func newWorkspaceInitCmd(app *App) *cobra.Command {
	var local bool
	var use bool

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a named workspace, or a project-local .formbench dir with --local",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir, name string
			switch {
			case local:
				if len(args) > 0 {
					return writeErr(cmd, errors.New("--local takes no name"))
				}
				cwd, err := os.Getwd()
				if err != nil {
					return writeErr(cmd, err)
				}
				dir = filepath.Join(cwd, ".formbench")
			case len(args) == 1:
				n, err := store.NormalizeWorkspaceName(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				name = n
				d, err := store.WorkspaceDir(name)
				if err != nil {
					return writeErr(cmd, err)
				}
				dir = d
			default:
				return writeErr(cmd, errors.New("missing workspace name (or pass --local)"))
			}

			if err := (store.Store{Dir: dir}).Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			if use && name != "" {
				if err := setCurrentWorkspace(name); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"workspace": name, "dir": dir}})
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "Create ./.formbench in the current directory")
	cmd.Flags().BoolVar(&use, "use", false, "Make the new workspace current")
	return cmd
}

func newWorkspaceUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeWorkspaceName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setCurrentWorkspace(name); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentWorkspace": name}})
		},
	}
}

func newWorkspaceCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the current workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := resolveDir(app, cfg)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"workspace": app.Workspace, "dir": dir}})
		},
	}
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List named workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": names, "currentWorkspace": cfg.CurrentWorkspace})
		},
	}
}

func setCurrentWorkspace(name string) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	cfg.CurrentWorkspace = name
	return store.SaveConfig(cfg)
}
