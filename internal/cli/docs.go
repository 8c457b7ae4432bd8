package cli

import (
	"fmt"

	"formbench/internal/docs"

	"github.com/spf13/cobra"
)

type topicList struct {
	Topics []string `json:"topics"`
}

func (t topicList) Text() string {
	out := ""
	for _, name := range t.Topics {
		out += name + "\n"
	}
	return out
}

type topicBody struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

func (t topicBody) Text() string { return t.Markdown }

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show short guides (editor, storage, catalog, serve)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, envelope{Data: topicList{Topics: docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `formbench docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, envelope{Data: topicBody{Topic: topic, Markdown: body}})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	return cmd
}
