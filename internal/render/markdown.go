package render

import (
	"strings"

	"formbench/internal/model"
)

// Markdown renders the form as markdown, one block per item, in canvas order.
// Kinds without a rendering are skipped.
func Markdown(st model.PersistedState) string {
	var blocks []string
	for _, it := range st.Items {
		b := markdownItem(it)
		if b == "" {
			continue
		}
		blocks = append(blocks, b)
	}
	if len(blocks) == 0 {
		return "_(empty form)_"
	}
	sep := "\n\n"
	if st.Settings().Layout == model.LayoutRow {
		sep = "\n\n---\n\n"
	}
	return strings.Join(blocks, sep)
}

func markdownItem(it model.FormItem) string {
	text := escapeMarkdown(it.Text)
	switch it.Kind {
	case model.KindHeading:
		return "# " + text
	case model.KindSubheading:
		return text
	case model.KindInput:
		return label(text, it.Required) + "\n\n`" + strings.Repeat("_", 24) + "`"
	case model.KindTextarea:
		return label(text, it.Required) + "\n\n```\n\n\n\n```"
	case model.KindButton:
		return "`[ " + strings.ReplaceAll(it.Text, "`", "'") + " ]`"
	default:
		return ""
	}
}

func label(text string, required bool) string {
	if required {
		return "**" + text + "** \\*"
	}
	return "**" + text + "**"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

func escapeMarkdown(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	return markdownEscaper.Replace(s)
}
