package render

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"formbench/internal/model"

	"github.com/getkin/kin-openapi/openapi3"
)

const kindExtension = "x-formbench-kind"

// FieldNames derives a submission field name for every item (empty for kinds that
// collect no input). Names come from the item text and are unique within the form.
func FieldNames(items model.Form) []string {
	out := make([]string, len(items))
	used := map[string]int{}
	for i, it := range items {
		if !it.Kind.InputLike() {
			continue
		}
		base := slug(it.Text)
		if base == "" {
			base = string(it.Kind)
		}
		used[base]++
		name := base
		if n := used[base]; n > 1 {
			name = base + "_" + strconv.Itoa(n)
		}
		out[i] = name
	}
	return out
}

func slug(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// SubmissionSchema describes what submitting the form sends: one string property
// per input-like item, with required items listed as required.
func SubmissionSchema(items model.Form) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	names := FieldNames(items)
	for i, it := range items {
		name := names[i]
		if name == "" {
			continue
		}
		prop := openapi3.NewStringSchema()
		prop.Title = it.Text
		prop.Extensions = map[string]any{kindExtension: string(it.Kind)}
		if it.Kind == model.KindTextarea {
			prop.Format = "multiline"
		}
		schema.WithProperty(name, prop)
		if it.Required {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

// OpenAPIDocument wraps SubmissionSchema in a minimal OpenAPI 3 document.
func OpenAPIDocument(title string, items model.Form) *openapi3.T {
	if strings.TrimSpace(title) == "" {
		title = "Form"
	}
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: "1.0.0"},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"FormSubmission": openapi3.NewSchemaRef("", SubmissionSchema(items)),
			},
		},
	}
}

func OpenAPIJSON(title string, items model.Form, pretty bool) ([]byte, error) {
	doc := OpenAPIDocument(title, items)
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}
