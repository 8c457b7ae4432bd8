package cli

import (
	"fmt"
	"io"
	"strings"

	"formbench/internal/render"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var as string
	var title string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the saved form (markdown|html|openapi|json)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openEditor(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			st := sess.ctrl.State()
			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(as)) {
			case "markdown", "md":
				_, err = fmt.Fprintln(out, render.Markdown(st))
			case "html":
				var page string
				page, err = render.HTMLPage(title, st)
				if err == nil {
					_, err = io.WriteString(out, page)
				}
			case "openapi":
				var b []byte
				b, err = render.OpenAPIJSON(title, st.Items, app.PrettyJSON)
				if err == nil {
					_, err = fmt.Fprintln(out, string(b))
				}
			case "json", "":
				err = writeOut(cmd, app, st)
			default:
				err = errInvalidValue("--as", as, "markdown|html|openapi|json")
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "markdown", "Export format (markdown|html|openapi|json)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (html and openapi)")
	return cmd
}
