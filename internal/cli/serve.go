package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"formbench/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var title string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live HTML preview of the saved form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openEditor(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			srv, err := web.NewServer(web.ServerConfig{
				Addr:      addr,
				Title:     title,
				Workspace: app.Workspace,
				Loader:    sess.gw,
				Logger:    sess.log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "formbench: serving %s on http://%s\n", app.Dir, srv.Addr())
			if err := srv.ListenAndServe(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("FORMBENCH_ADDR", "127.0.0.1:7878"), "Listen address")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	return cmd
}
