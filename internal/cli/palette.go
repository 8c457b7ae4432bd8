package cli

import (
	"fmt"
	"strings"

	"formbench/internal/model"

	"github.com/spf13/cobra"
)

type paletteView []model.CatalogEntry

func (p paletteView) Text() string {
	var b strings.Builder
	for _, e := range p {
		fmt.Fprintf(&b, "%-12s %s\n", e.Kind, e.Label)
	}
	return b.String()
}

func newPaletteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the component kinds that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openEditor(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()
			return writeOut(cmd, app, envelope{
				Data:  paletteView(sess.ctrl.Catalog().Entries),
				Hints: []string{"formbench add <kind>"},
			})
		},
	}
}
