package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Texter is implemented by payloads that have a human-readable rendering.
type Texter interface {
	Text() string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (payloads implementing Texter; others fall back to pretty JSON)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		if t, ok := v.(Texter); ok {
			_, err := fmt.Fprintln(w, strings.TrimRight(t.Text(), "\n"))
			return err
		}
		return WriteJSON(w, v, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
