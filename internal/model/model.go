package model

import (
	"strings"

	"github.com/google/uuid"
)

type Kind string

const (
	KindHeading    Kind = "heading"
	KindSubheading Kind = "subheading"
	KindInput      Kind = "input"
	KindTextarea   Kind = "textarea"
	KindButton     Kind = "button"
)

// InputLike reports whether the kind collects user input (and so can be required).
func (k Kind) InputLike() bool {
	return k == KindInput || k == KindTextarea
}

func (k Kind) String() string { return string(k) }

// FormItem is one placed component on the canvas.
//
// The wire names (value/req/text) match the layout the editor has always
// persisted under the rightItems key.
type FormItem struct {
	ID       string `json:"id,omitempty"`
	Kind     Kind   `json:"value"`
	Required bool   `json:"req"`
	Text     string `json:"text"`
}

// NewFormItem builds an item of the given kind with a fresh id; text defaults to the kind.
func NewFormItem(kind Kind) FormItem {
	return FormItem{
		ID:   NewItemID(),
		Kind: kind,
		Text: string(kind),
	}
}

func NewItemID() string {
	return "fi-" + uuid.NewString()
}

// WithRequired returns a copy with Required set. Non input-like kinds are never required.
func (it FormItem) WithRequired(req bool) FormItem {
	if !it.Kind.InputLike() {
		req = false
	}
	it.Required = req
	return it
}

// Form is the ordered list of placed items. Order is render order.
type Form []FormItem

func (f Form) Valid(i int) bool { return i >= 0 && i < len(f) }

func (f Form) IndexOf(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range f {
		if f[i].ID == id {
			return i
		}
	}
	return -1
}

func (f Form) Kinds() []Kind {
	out := make([]Kind, 0, len(f))
	for _, it := range f {
		out = append(out, it.Kind)
	}
	return out
}

// Clone returns a copy that shares no backing array with f.
func (f Form) Clone() Form {
	if f == nil {
		return Form{}
	}
	out := make(Form, len(f))
	copy(out, f)
	return out
}

type LayoutMode string

const (
	LayoutStacked LayoutMode = "stacked"
	LayoutRow     LayoutMode = "row"
)

func ParseLayoutMode(s string) (LayoutMode, bool) {
	switch LayoutMode(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutStacked, "":
		return LayoutStacked, true
	case LayoutRow:
		return LayoutRow, true
	default:
		return "", false
	}
}

// CanvasSettings are the canvas-level (background) inspector values.
type CanvasSettings struct {
	BackgroundColor string     `json:"backgroundColor"`
	Layout          LayoutMode `json:"layout"`
}

func DefaultCanvasSettings() CanvasSettings {
	return CanvasSettings{
		BackgroundColor: DefaultBackgroundColor,
		Layout:          LayoutStacked,
	}
}

// PersistedState is the durable projection of the editor: written on explicit save only.
type PersistedState struct {
	Items           Form       `json:"items"`
	BackgroundColor string     `json:"backgroundColor"`
	Layout          LayoutMode `json:"layout,omitempty"`
}

func (p PersistedState) Settings() CanvasSettings {
	st := CanvasSettings{BackgroundColor: p.BackgroundColor, Layout: p.Layout}
	if st.BackgroundColor == "" {
		st.BackgroundColor = DefaultBackgroundColor
	}
	if st.Layout == "" {
		st.Layout = LayoutStacked
	}
	return st
}
