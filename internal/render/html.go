package render

import (
	"bytes"
	"embed"
	"html/template"
	"regexp"
	"strings"
	"sync"

	"formbench/internal/model"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/form.html
var templatesFS embed.FS

var (
	pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

	formTmpl = template.Must(template.New("form").Parse(`<form class="formbench-canvas {{.Layout}}" style="{{.Style}}">
{{- range .Items}}
{{- if eq .Kind "heading"}}
<h1>{{.Text}}</h1>
{{- else if eq .Kind "subheading"}}
<p>{{.Text}}</p>
{{- else if eq .Kind "input"}}
<input type="text" name="{{.Name}}" placeholder="{{.Text}}"{{if .Required}} required{{end}}>
{{- else if eq .Kind "textarea"}}
<textarea name="{{.Name}}" placeholder="{{.Text}}"{{if .Required}} required{{end}}></textarea>
{{- else if eq .Kind "button"}}
<button type="button">{{.Text}}</button>
{{- end}}
{{- end}}
</form>`))

	colorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

type htmlItem struct {
	Kind     string
	Text     string
	Name     string
	Required bool
}

type htmlForm struct {
	Layout string
	Style  template.CSS
	Items  []htmlItem
}

// HTMLFragment renders the form element only. Output is passed through a policy
// that admits exactly the elements and attributes the form uses.
func HTMLFragment(st model.PersistedState) (string, error) {
	settings := st.Settings()
	bg, err := model.ParseColor(settings.BackgroundColor)
	if err != nil {
		bg = model.DefaultBackgroundColor
	}

	names := FieldNames(st.Items)
	vm := htmlForm{
		Layout: string(settings.Layout),
		// bg is normalized to #rrggbb above.
		Style: template.CSS("background-color: " + bg),
	}
	for i, it := range st.Items {
		vm.Items = append(vm.Items, htmlItem{
			Kind:     string(it.Kind),
			Text:     it.Text,
			Name:     names[i],
			Required: it.Required,
		})
	}

	var b bytes.Buffer
	if err := formTmpl.Execute(&b, vm); err != nil {
		return "", err
	}
	return strings.TrimSpace(formSanitizer().Sanitize(b.String())), nil
}

// HTMLPage renders a standalone page around HTMLFragment.
func HTMLPage(title string, st model.PersistedState) (string, error) {
	frag, err := HTMLFragment(st)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" {
		title = "Form preview"
	}
	var b bytes.Buffer
	if err := pageTmpl.Execute(&b, map[string]any{
		"Title": title,
		// Sanitized above.
		"Body": template.HTML(frag),
	}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("form", "h1", "p", "input", "textarea", "button")
		p.AllowAttrs("class").OnElements("form")
		p.AllowStyles("background-color").Matching(colorPattern).OnElements("form")
		p.AllowAttrs("type", "name", "placeholder", "required").OnElements("input")
		p.AllowAttrs("name", "placeholder", "required").OnElements("textarea")
		p.AllowAttrs("type").OnElements("button")
		formPolicy = p
	})
	return formPolicy
}
