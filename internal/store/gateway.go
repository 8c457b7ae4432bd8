package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"formbench/internal/model"
)

// Keys under which the editor state lives. These names predate the Go editor and
// are kept so existing saved layouts keep loading.
const (
	KeyItems           = "rightItems"
	KeyBackgroundColor = "rightDivBgColor"
	KeyLayout          = "rightDivLayout"
)

var ErrMalformedState = errors.New("malformed persisted state")

// Gateway reads and writes the editor's PersistedState to a KV.
type Gateway struct {
	kv  KV
	log *slog.Logger
}

func NewGateway(kv KV, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{kv: kv, log: log}
}

// Save overwrites every key with the given state. Nothing is merged with what was there.
// The background is stored in the same normalized form Load returns; an invalid
// color fails the save and nothing is written.
func (g *Gateway) Save(ctx context.Context, st model.PersistedState) error {
	settings := st.Settings()
	bg, err := model.ParseColor(settings.BackgroundColor)
	if err != nil {
		return fmt.Errorf("save background: %w", err)
	}
	items := st.Items
	if items == nil {
		items = model.Form{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return g.kv.SetMany(ctx, map[string]string{
		KeyItems:           string(b),
		KeyBackgroundColor: bg,
		KeyLayout:          string(settings.Layout),
	})
}

// Load returns the saved state. ok is false when nothing was saved or the saved
// items cannot be understood; that case is logged and is not an error. Only KV
// failures are returned as errors.
func (g *Gateway) Load(ctx context.Context) (model.PersistedState, bool, error) {
	vals, err := g.kv.GetMany(ctx, KeyItems, KeyBackgroundColor, KeyLayout)
	if err != nil {
		return model.PersistedState{}, false, err
	}
	raw, found := vals[KeyItems]
	if !found {
		return model.PersistedState{}, false, nil
	}
	items, err := DecodeItems(raw)
	if err != nil {
		g.log.Warn("discarding saved items", "key", KeyItems, "err", err)
		return model.PersistedState{}, false, nil
	}

	st := model.PersistedState{
		Items:           items,
		BackgroundColor: model.DefaultBackgroundColor,
		Layout:          model.LayoutStacked,
	}
	if bg, found := vals[KeyBackgroundColor]; found {
		if col, perr := model.ParseColor(bg); perr == nil {
			st.BackgroundColor = col
		} else {
			g.log.Warn("ignoring saved background", "key", KeyBackgroundColor, "err", perr)
		}
	}
	if layout, found := vals[KeyLayout]; found {
		if m, ok := model.ParseLayoutMode(layout); ok {
			st.Layout = m
		} else {
			g.log.Warn("ignoring saved layout", "key", KeyLayout, "value", layout)
		}
	}
	return st, true, nil
}

// Clear removes every editor key.
func (g *Gateway) Clear(ctx context.Context) error {
	for _, k := range []string{KeyItems, KeyBackgroundColor, KeyLayout} {
		if err := g.kv.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// savedItem is the object shape of a saved item. Text is a pointer so an item
// saved with empty text keeps it; only a missing text falls back to the kind.
type savedItem struct {
	ID       string  `json:"id"`
	Kind     string  `json:"value"`
	Required bool    `json:"req"`
	Text     *string `json:"text"`
}

// DecodeItems parses a saved item list. Two shapes are accepted: an array of
// item objects, or (older layouts) an array of bare kind strings. Anything else,
// including a mix of the two, is ErrMalformedState.
func DecodeItems(raw string) (model.Form, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if elems == nil {
		// JSON null.
		return nil, fmt.Errorf("%w: not an array", ErrMalformedState)
	}

	out := make(model.Form, 0, len(elems))
	shape := byte(0)
	seen := map[string]bool{}
	for i, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 {
			return nil, fmt.Errorf("%w: element %d empty", ErrMalformedState, i)
		}
		if shape == 0 {
			shape = e[0]
		}
		if e[0] != shape {
			return nil, fmt.Errorf("%w: element %d has a different shape", ErrMalformedState, i)
		}

		var it model.FormItem
		hasText := false
		switch e[0] {
		case '"':
			var kind string
			if err := json.Unmarshal(e, &kind); err != nil {
				return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedState, i, err)
			}
			it = model.FormItem{Kind: model.Kind(kind)}
		case '{':
			var si savedItem
			if err := json.Unmarshal(e, &si); err != nil {
				return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedState, i, err)
			}
			it = model.FormItem{ID: si.ID, Kind: model.Kind(si.Kind), Required: si.Required}
			if si.Text != nil {
				it.Text, hasText = *si.Text, true
			}
		default:
			return nil, fmt.Errorf("%w: element %d is neither a kind nor an item", ErrMalformedState, i)
		}

		it.Kind = model.Kind(strings.ToLower(strings.TrimSpace(string(it.Kind))))
		if it.Kind == "" {
			return nil, fmt.Errorf("%w: element %d has no kind", ErrMalformedState, i)
		}
		if !hasText {
			it.Text = string(it.Kind)
		}
		it = it.WithRequired(it.Required)
		if strings.TrimSpace(it.ID) == "" || seen[it.ID] {
			it.ID = model.NewItemID()
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out, nil
}
