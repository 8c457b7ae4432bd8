package web

import (
	"bytes"
	"html/template"

	"formbench/internal/model"
	"formbench/internal/render"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// formPreview renders the markdown projection of a saved form. Labels are plain
// text, so there is no linkify and no task lists; headings get ids so a section
// of a long form can be linked. Raw HTML stays escaped.
var formPreview = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		emoji.New(emoji.WithRenderingMethod(emoji.Unicode)),
	),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

func renderFormPreview(st model.PersistedState) template.HTML {
	src := render.Markdown(st)
	var b bytes.Buffer
	if err := formPreview.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}
