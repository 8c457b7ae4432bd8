package render

import (
	"encoding/json"
	"strings"
	"testing"

	"formbench/internal/model"

	"github.com/google/go-cmp/cmp"
)

func sampleState() model.PersistedState {
	return model.PersistedState{
		Items: model.Form{
			{ID: "1", Kind: model.KindHeading, Text: "Contact us"},
			{ID: "2", Kind: model.KindSubheading, Text: "We reply within a day"},
			{ID: "3", Kind: model.KindInput, Text: "Your email", Required: true},
			{ID: "4", Kind: model.KindTextarea, Text: "Message"},
			{ID: "5", Kind: model.KindInput, Text: "Your email"},
			{ID: "6", Kind: model.KindButton, Text: "Send"},
			{ID: "7", Kind: model.Kind("carousel"), Text: "ignored"},
		},
		BackgroundColor: "#fafafa",
	}
}

func TestFieldNames(t *testing.T) {
	t.Parallel()

	got := FieldNames(sampleState().Items)
	want := []string{"", "", "your_email", "message", "your_email_2", "", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLFragment_MapsKinds(t *testing.T) {
	t.Parallel()

	out, err := HTMLFragment(sampleState())
	if err != nil {
		t.Fatalf("HTMLFragment: %v", err)
	}
	for _, want := range []string{
		"<h1>Contact us</h1>",
		"<p>We reply within a day</p>",
		`placeholder="Your email"`,
		"<textarea",
		"<button",
		"Send</button>",
		"background-color: #fafafa",
		"required",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ignored") {
		t.Fatalf("unknown kinds must not render:\n%s", out)
	}
}

func TestHTMLFragment_EscapesHostileText(t *testing.T) {
	t.Parallel()

	st := model.PersistedState{Items: model.Form{
		{ID: "1", Kind: model.KindHeading, Text: `<script>alert(1)</script>`},
		{ID: "2", Kind: model.KindInput, Text: `" onfocus="alert(1)`},
	}}
	out, err := HTMLFragment(st)
	if err != nil {
		t.Fatalf("HTMLFragment: %v", err)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, ` onfocus="`) {
		t.Fatalf("expected hostile markup neutralized:\n%s", out)
	}
}

func TestHTMLPage_WrapsFragment(t *testing.T) {
	t.Parallel()

	out, err := HTMLPage("", sampleState())
	if err != nil {
		t.Fatalf("HTMLPage: %v", err)
	}
	if !strings.Contains(out, "<title>Form preview</title>") || !strings.Contains(out, "<form") {
		t.Fatalf("unexpected page:\n%s", out)
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := Markdown(sampleState())
	for _, want := range []string{"# Contact us", "**Your email** \\*", "`[ Send ]`"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in markdown:\n%s", want, md)
		}
	}
	if got := Markdown(model.PersistedState{}); got != "_(empty form)_" {
		t.Fatalf("expected empty marker; got %q", got)
	}
	row := sampleState()
	row.Layout = model.LayoutRow
	if !strings.Contains(Markdown(row), "---") {
		t.Fatalf("expected row separators")
	}
}

func TestSubmissionSchema(t *testing.T) {
	t.Parallel()

	b, err := OpenAPIJSON("Contact", sampleState().Items, false)
	if err != nil {
		t.Fatalf("OpenAPIJSON: %v", err)
	}
	var doc struct {
		OpenAPI    string `json:"openapi"`
		Components struct {
			Schemas map[string]struct {
				Type       any                       `json:"type"`
				Required   []string                  `json:"required"`
				Properties map[string]map[string]any `json:"properties"`
			} `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, b)
	}
	s, ok := doc.Components.Schemas["FormSubmission"]
	if !ok {
		t.Fatalf("missing FormSubmission schema:\n%s", b)
	}
	if diff := cmp.Diff([]string{"your_email"}, s.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if len(s.Properties) != 3 {
		t.Fatalf("expected 3 properties; got %v", s.Properties)
	}
	if s.Properties["message"][kindExtension] != "textarea" {
		t.Fatalf("expected kind extension on message; got %v", s.Properties["message"])
	}
}
