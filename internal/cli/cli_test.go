package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// setupWorkspace isolates config and returns a fresh store dir.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv("FORMBENCH_CONFIG_DIR", t.TempDir())
	t.Setenv("FORMBENCH_DIR", "")
	t.Setenv("FORMBENCH_WORKSPACE", "")
	t.Setenv("FORMBENCH_CATALOG", "")
	t.Setenv("FORMBENCH_FORMAT", "")
	t.Setenv("FORMBENCH_DEBUG_LOG", "")
	stdinIsTerminal = func() bool { return false }
	return filepath.Join(t.TempDir(), ".formbench")
}

type formOut struct {
	Data struct {
		Items []struct {
			Index int    `json:"index"`
			ID    string `json:"id"`
			Kind  string `json:"value"`
			Req   bool   `json:"req"`
			Text  string `json:"text"`
		} `json:"items"`
		BackgroundColor string `json:"backgroundColor"`
		Layout          string `json:"layout"`
		Selected        *int   `json:"selected"`
	} `json:"data"`
	Hints []string `json:"_hints"`
}

func mustForm(t *testing.T, dir string, args ...string) formOut {
	t.Helper()
	out, errOut, err := runCLI(t, append([]string{"--dir", dir}, args...))
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, string(errOut))
	}
	var f formOut
	if err := json.Unmarshal(out, &f); err != nil {
		t.Fatalf("%v: decode: %v\n%s", args, err, string(out))
	}
	return f
}

func (f formOut) kinds() []string {
	out := []string{}
	for _, it := range f.Data.Items {
		out = append(out, it.Kind)
	}
	return out
}

func (f formOut) texts() []string {
	out := []string{}
	for _, it := range f.Data.Items {
		out = append(out, it.Text)
	}
	return out
}

func TestCLI_AddAppendsAndInsertsAtSlot(t *testing.T) {
	dir := setupWorkspace(t)

	mustForm(t, dir, "add", "heading")
	mustForm(t, dir, "add", "input")
	f := mustForm(t, dir, "add", "button", "--at", "1")

	if diff := cmp.Diff([]string{"heading", "button", "input"}, f.kinds()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if f.Data.Selected == nil || *f.Data.Selected != 1 {
		t.Fatalf("expected the dropped item selected; got %v", f.Data.Selected)
	}
	if f.Data.Items[1].Text != "button" || f.Data.Items[1].ID == "" {
		t.Fatalf("unexpected new item: %#v", f.Data.Items[1])
	}
	if len(f.Hints) == 0 {
		t.Fatalf("expected hints")
	}

	// Persisted across invocations.
	show := mustForm(t, dir, "show")
	if diff := cmp.Diff(f.kinds(), show.kinds()); diff != "" {
		t.Fatalf("show mismatch (-want +got):\n%s", diff)
	}
	if show.Data.Selected != nil {
		t.Fatalf("selection is not persisted; got %v", *show.Data.Selected)
	}
}

func TestCLI_AddUnknownKind(t *testing.T) {
	dir := setupWorkspace(t)

	_, errOut, err := runCLI(t, []string{"--dir", dir, "add", "carousel"})
	var nf notFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected notFoundError; got %v", err)
	}
	if !strings.Contains(string(errOut), "kind not found: carousel") {
		t.Fatalf("unexpected stderr: %q", string(errOut))
	}
	if got := mustForm(t, dir, "show").kinds(); len(got) != 0 {
		t.Fatalf("expected nothing saved; got %v", got)
	}
}

func TestCLI_AddAtOutOfRange(t *testing.T) {
	dir := setupWorkspace(t)

	mustForm(t, dir, "add", "heading")
	if _, _, err := runCLI(t, []string{"--dir", dir, "add", "input", "--at", "5"}); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if got := mustForm(t, dir, "show").kinds(); len(got) != 1 {
		t.Fatalf("expected unchanged form; got %v", got)
	}
}

func TestCLI_MoveFirstToLast(t *testing.T) {
	dir := setupWorkspace(t)

	for _, k := range []string{"heading", "subheading", "input"} {
		mustForm(t, dir, "add", k)
	}
	mustForm(t, dir, "edit", "0", "--text", "A")
	mustForm(t, dir, "edit", "1", "--text", "B")
	mustForm(t, dir, "edit", "2", "--text", "C")

	f := mustForm(t, dir, "move", "0", "2")
	if diff := cmp.Diff([]string{"B", "C", "A"}, f.texts()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "move", "0", "3"}); err == nil {
		t.Fatalf("expected out-of-range target error")
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "move", "x", "1"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestCLI_DeleteAndEdit(t *testing.T) {
	dir := setupWorkspace(t)

	for _, k := range []string{"heading", "input", "button"} {
		mustForm(t, dir, "add", k)
	}
	f := mustForm(t, dir, "edit", "1", "--text", "Email", "--required")
	if it := f.Data.Items[1]; it.Text != "Email" || !it.Req {
		t.Fatalf("unexpected edited item: %#v", it)
	}
	f = mustForm(t, dir, "edit", "1", "--optional")
	if f.Data.Items[1].Req {
		t.Fatalf("expected optional")
	}

	if _, errOut, err := runCLI(t, []string{"--dir", dir, "edit", "0", "--required"}); err == nil || !strings.Contains(string(errOut), "cannot be required") {
		t.Fatalf("expected heading required error; err=%v stderr=%q", err, string(errOut))
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "edit", "0"}); err == nil {
		t.Fatalf("expected error without flags on a non-terminal")
	}

	f = mustForm(t, dir, "delete", "0")
	if diff := cmp.Diff([]string{"input", "button"}, f.kinds()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "delete", "9"}); err == nil {
		t.Fatalf("expected out-of-range delete error")
	}
}

func TestCLI_EditPromptsOnTerminal(t *testing.T) {
	dir := setupWorkspace(t)
	mustForm(t, dir, "add", "textarea")

	stdinIsTerminal = func() bool { return true }
	var gotDefault string
	promptText = func(_ context.Context, _ string, def string) (string, error) {
		gotDefault = def
		return "Tell us more", nil
	}
	t.Cleanup(func() { promptText = surveyText })

	f := mustForm(t, dir, "edit", "0")
	if gotDefault != "textarea" {
		t.Fatalf("expected current text as default; got %q", gotDefault)
	}
	if f.Data.Items[0].Text != "Tell us more" {
		t.Fatalf("expected prompted text; got %q", f.Data.Items[0].Text)
	}
}

func TestCLI_BackgroundLayoutAndRevert(t *testing.T) {
	dir := setupWorkspace(t)

	f := mustForm(t, dir, "show")
	if f.Data.BackgroundColor != "#c0c0c0" || f.Data.Layout != "stacked" {
		t.Fatalf("unexpected defaults: %#v", f.Data)
	}

	f = mustForm(t, dir, "bg", "#ABC")
	if f.Data.BackgroundColor != "#aabbcc" {
		t.Fatalf("expected normalized color; got %q", f.Data.BackgroundColor)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "bg", "blue"}); err == nil {
		t.Fatalf("expected invalid color error")
	}
	f = mustForm(t, dir, "layout", "row")
	if f.Data.Layout != "row" {
		t.Fatalf("expected row; got %q", f.Data.Layout)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "layout", "grid"}); err == nil {
		t.Fatalf("expected invalid layout error")
	}

	mustForm(t, dir, "add", "heading")
	f = mustForm(t, dir, "revert")
	if len(f.Data.Items) != 1 || f.Data.BackgroundColor != "#aabbcc" {
		t.Fatalf("revert must restore the saved form; got %#v", f.Data)
	}

	f = mustForm(t, dir, "revert", "--clear")
	if len(f.Data.Items) != 0 || f.Data.BackgroundColor != "#c0c0c0" {
		t.Fatalf("expected defaults after clear; got %#v", f.Data)
	}
}

func TestCLI_Palette(t *testing.T) {
	dir := setupWorkspace(t)

	out, _, err := runCLI(t, []string{"--dir", dir, "palette"})
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	var env struct {
		Data []struct {
			Kind string `json:"kind"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("decode: %v\n%s", err, string(out))
	}
	var kinds []string
	for _, e := range env.Data {
		kinds = append(kinds, e.Kind)
	}
	if diff := cmp.Diff([]string{"heading", "subheading", "input", "textarea", "button"}, kinds); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_CustomCatalog(t *testing.T) {
	dir := setupWorkspace(t)
	cat := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(cat, []byte("kinds:\n  - kind: input\n    text: Your name\n  - kind: button\n    text: Go\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	f := mustForm(t, dir, "--catalog", cat, "add", "input")
	if f.Data.Items[0].Text != "Your name" {
		t.Fatalf("expected catalog text; got %q", f.Data.Items[0].Text)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "--catalog", cat, "add", "heading"}); err == nil {
		t.Fatalf("expected kind missing from catalog to be rejected")
	}
}

func TestCLI_ExportFormats(t *testing.T) {
	dir := setupWorkspace(t)
	mustForm(t, dir, "add", "heading")
	mustForm(t, dir, "add", "input")
	mustForm(t, dir, "edit", "0", "--text", "Sign up")
	mustForm(t, dir, "edit", "1", "--text", "Email", "--required")

	md, _, err := runCLI(t, []string{"--dir", dir, "export", "--as", "markdown"})
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if !strings.HasPrefix(string(md), "# Sign up") || !strings.Contains(string(md), `**Email** \*`) {
		t.Fatalf("unexpected markdown:\n%s", string(md))
	}

	html, _, err := runCLI(t, []string{"--dir", dir, "export", "--as", "html", "--title", "Signup"})
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(string(html), "<h1>Sign up</h1>") || !strings.Contains(string(html), "<title>Signup</title>") {
		t.Fatalf("unexpected html:\n%s", string(html))
	}

	oa, _, err := runCLI(t, []string{"--dir", dir, "export", "--as", "openapi"})
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(oa, &doc); err != nil {
		t.Fatalf("decode openapi: %v\n%s", err, string(oa))
	}
	if _, ok := doc["openapi"]; !ok {
		t.Fatalf("expected openapi document; got %v", doc)
	}

	js, _, err := runCLI(t, []string{"--dir", dir, "export", "--as", "json"})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var st struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(js, &st); err != nil || len(st.Items) != 2 {
		t.Fatalf("unexpected json export: %v\n%s", err, string(js))
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "export", "--as", "pdf"}); err == nil {
		t.Fatalf("expected unknown export format error")
	}
}

func TestCLI_TextAndEDNOutput(t *testing.T) {
	dir := setupWorkspace(t)
	mustForm(t, dir, "add", "input")

	out, _, err := runCLI(t, []string{"--dir", dir, "--format", "text", "show"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(string(out), "input") || !strings.Contains(string(out), "background #c0c0c0, layout stacked") {
		t.Fatalf("unexpected text output:\n%s", string(out))
	}

	out, _, err = runCLI(t, []string{"--dir", dir, "--format", "edn", "show"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(string(out), ":background-color \"#c0c0c0\"") {
		t.Fatalf("unexpected edn output:\n%s", string(out))
	}
}

func TestCLI_WorkspaceResolution(t *testing.T) {
	setupWorkspace(t)

	if _, _, err := runCLI(t, []string{"workspace", "init", "signup", "--use"}); err != nil {
		t.Fatalf("workspace init: %v", err)
	}
	out, _, err := runCLI(t, []string{"workspace", "current"})
	if err != nil {
		t.Fatalf("workspace current: %v", err)
	}
	if !strings.Contains(string(out), `"workspace":"signup"`) {
		t.Fatalf("expected signup current; got %s", string(out))
	}

	if _, _, err := runCLI(t, []string{"add", "heading"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Explicit --workspace wins over the current one.
	out, _, err = runCLI(t, []string{"--workspace", "other", "show"})
	if err != nil {
		t.Fatalf("show other: %v", err)
	}
	var f formOut
	if err := json.Unmarshal(out, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(f.Data.Items) != 0 {
		t.Fatalf("expected empty other workspace; got %v", f.kinds())
	}

	out, _, err = runCLI(t, []string{"workspace", "list"})
	if err != nil {
		t.Fatalf("workspace list: %v", err)
	}
	if !strings.Contains(string(out), `"signup"`) || !strings.Contains(string(out), `"other"`) {
		t.Fatalf("expected both workspaces listed; got %s", string(out))
	}
}

func TestCLI_Docs(t *testing.T) {
	setupWorkspace(t)

	out, _, err := runCLI(t, []string{"docs"})
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	var list struct {
		Data struct {
			Topics []string `json:"topics"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out, &list); err != nil {
		t.Fatalf("decode: %v\n%s", err, string(out))
	}
	if !strings.Contains(strings.Join(list.Data.Topics, ","), "editor") {
		t.Fatalf("expected editor topic, got %v", list.Data.Topics)
	}

	out, _, err = runCLI(t, []string{"docs", "storage", "--raw"})
	if err != nil {
		t.Fatalf("docs storage: %v", err)
	}
	if !strings.HasPrefix(string(out), "# Storage") {
		t.Fatalf("expected raw markdown, got:\n%s", string(out))
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}
