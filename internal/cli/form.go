package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"formbench/internal/editor"
	"formbench/internal/format"
	"formbench/internal/model"

	"github.com/spf13/cobra"
)

type envelope struct {
	Data  any      `json:"data"`
	Hints []string `json:"_hints,omitempty"`
}

func (e envelope) Text() string {
	if t, ok := e.Data.(format.Texter); ok {
		return t.Text()
	}
	return fmt.Sprintf("%v", e.Data)
}

type itemView struct {
	Index int `json:"index"`
	model.FormItem
}

type formView struct {
	Workspace       string     `json:"workspace,omitempty"`
	Dir             string     `json:"dir"`
	Items           []itemView `json:"items"`
	BackgroundColor string     `json:"backgroundColor"`
	Layout          string     `json:"layout"`
	Selected        *int       `json:"selected,omitempty"`
}

func newFormView(app *App, c *editor.Controller) formView {
	items := c.Items()
	settings := c.Settings()
	v := formView{
		Workspace:       app.Workspace,
		Dir:             app.Dir,
		Items:           make([]itemView, 0, len(items)),
		BackgroundColor: settings.BackgroundColor,
		Layout:          string(settings.Layout),
	}
	for i, it := range items {
		v.Items = append(v.Items, itemView{Index: i, FormItem: it})
	}
	if i, ok := c.SelectedIndex(); ok {
		v.Selected = &i
	}
	return v
}

func (v formView) Text() string {
	var b strings.Builder
	for _, it := range v.Items {
		mark := " "
		if v.Selected != nil && *v.Selected == it.Index {
			mark = ">"
		}
		req := ""
		if it.Required {
			req = " *"
		}
		fmt.Fprintf(&b, "%s %2d  %-10s  %s%s\n", mark, it.Index, it.Kind, it.Text, req)
	}
	if len(v.Items) == 0 {
		b.WriteString("  (empty form)\n")
	}
	fmt.Fprintf(&b, "background %s, layout %s\n", v.BackgroundColor, v.Layout)
	return b.String()
}

func parseIndexArg(name, s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidValue(name, s, "an integer index")
	}
	return i, nil
}

// editForm opens the workspace, runs fn against the loaded controller, saves if
// anything changed, and prints the resulting form.
func editForm(cmd *cobra.Command, app *App, fn func(c *editor.Controller) error, hints ...string) error {
	sess, err := openEditor(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()

	if err := fn(sess.ctrl); err != nil {
		return writeErr(cmd, err)
	}
	if sess.ctrl.Dirty() {
		if err := sess.ctrl.OnSave(cmd.Context()); err != nil {
			return writeErr(cmd, err)
		}
	}
	return writeOut(cmd, app, envelope{Data: newFormView(app, sess.ctrl), Hints: hints})
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved form and canvas settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editForm(cmd, app, func(*editor.Controller) error { return nil })
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "add [kind]",
		Short: "Add a palette item (drop at --at, or append to the end)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editForm(cmd, app, func(c *editor.Controller) error {
				kind := ""
				if len(args) == 1 {
					kind = args[0]
				} else {
					if !stdinIsTerminal() {
						return errors.New("missing kind (one of: " + strings.Join(kindNames(c.Catalog()), ", ") + ")")
					}
					k, err := promptKind(cmd.Context(), "Kind:", kindNames(c.Catalog()))
					if err != nil {
						return err
					}
					kind = k
				}

				if !c.OnPaletteDragStart(model.Kind(kind)) {
					return errNotFound("kind", kind)
				}
				if !cmd.Flags().Changed("at") {
					c.OnDropOnCanvas()
					return nil
				}
				n := len(c.Items())
				if at < 0 || at > n {
					c.OnDragEnd()
					return errIndex("add", at, n+1)
				}
				c.OnDropAtSlot(at)
				return nil
			}, "formbench move <from> <to>", "formbench edit <index> --text <text>")
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Slot to insert at (0 = first; default appends)")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move an item to another slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndexArg("from", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			to, err := parseIndexArg("to", args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return editForm(cmd, app, func(c *editor.Controller) error {
				n := len(c.Items())
				if to < 0 || to >= n {
					return errIndex("move", to, n)
				}
				if !c.OnCanvasDragStart(from) {
					return errIndex("move", from, n)
				}
				c.OnDropAtSlot(to)
				return nil
			})
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete the item at index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndexArg("index", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return editForm(cmd, app, func(c *editor.Controller) error {
				if !c.OnDeleteItem(idx) {
					return errIndex("delete", idx, len(c.Items()))
				}
				return nil
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var text string
	var required bool
	var optional bool

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit an item's text or required flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndexArg("index", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if required && optional {
				return writeErr(cmd, errors.New("--required and --optional are mutually exclusive"))
			}
			textSet := cmd.Flags().Changed("text")

			return editForm(cmd, app, func(c *editor.Controller) error {
				if !c.OnItemClick(idx) {
					return errIndex("edit", idx, len(c.Items()))
				}
				it, _ := c.SelectedItem()

				if !textSet && !required && !optional {
					if !stdinIsTerminal() {
						return errors.New("nothing to edit (pass --text, --required or --optional)")
					}
					t, err := promptText(cmd.Context(), fmt.Sprintf("Text for %s #%d:", it.Kind, idx), it.Text)
					if err != nil {
						return err
					}
					text, textSet = t, true
				}

				if textSet {
					c.OnEditSelectedText(text)
				}
				if required || optional {
					if !it.Kind.InputLike() {
						return fmt.Errorf("%s items cannot be required", it.Kind)
					}
					c.OnSetSelectedRequired(required)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New text (prompts when omitted on a terminal)")
	cmd.Flags().BoolVar(&required, "required", false, "Mark an input/textarea as required")
	cmd.Flags().BoolVar(&optional, "optional", false, "Mark an input/textarea as optional")
	return cmd
}

func newBackgroundCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "bg <color>",
		Aliases: []string{"background"},
		Short:   "Set the canvas background color (#rgb or #rrggbb)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := model.ParseColor(args[0]); err != nil {
				return writeErr(cmd, errInvalidValue("color", args[0], "#rgb or #rrggbb"))
			}
			return editForm(cmd, app, func(c *editor.Controller) error {
				c.OnCanvasClick()
				c.OnChangeBackground(args[0])
				return nil
			})
		},
	}
}

func newLayoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "layout <stacked|row>",
		Short:     "Set the canvas layout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.LayoutStacked), string(model.LayoutRow)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := model.ParseLayoutMode(args[0]); !ok || strings.TrimSpace(args[0]) == "" {
				return writeErr(cmd, errInvalidValue("layout", args[0], "stacked|row"))
			}
			return editForm(cmd, app, func(c *editor.Controller) error {
				c.OnCanvasClick()
				c.OnChangeLayout(args[0])
				return nil
			})
		},
	}
}

func newRevertCmd(app *App) *cobra.Command {
	var discard bool

	cmd := &cobra.Command{
		Use:   "revert",
		Short: "Restore the last saved form (--clear discards it and starts empty)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openEditor(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			if discard {
				if err := sess.gw.Clear(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := sess.ctrl.OnRevert(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: newFormView(app, sess.ctrl)})
		},
	}
	cmd.Flags().BoolVar(&discard, "clear", false, "Delete the saved form before reverting")
	return cmd
}

func kindNames(cat model.Catalog) []string {
	out := []string{}
	for _, k := range cat.Kinds() {
		out = append(out, string(k))
	}
	return out
}
