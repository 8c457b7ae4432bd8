package model

import (
	"fmt"
	"strings"
)

const DefaultBackgroundColor = "#c0c0c0"

// ParseColor normalizes a CSS hex color to lowercase #rrggbb.
// Accepts #rgb and #rrggbb (the leading # is optional).
func ParseColor(s string) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	hex := strings.TrimPrefix(raw, "#")
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') {
			return "", fmt.Errorf("invalid color: %q", s)
		}
	}
	switch len(hex) {
	case 6:
		return "#" + hex, nil
	case 3:
		return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}), nil
	default:
		return "", fmt.Errorf("invalid color: %q", s)
	}
}
