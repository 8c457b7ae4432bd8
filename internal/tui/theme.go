package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The editor must stay readable on light and dark terminals, so chrome colors are
// adaptive. The canvas swatch is the one place a literal user color is painted.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	defaultColorMuted      = ac("240", "243")
	defaultColorSelectedBg = ac("#e9e9e9", "#262626")
	defaultColorSelectedFg = ac("235", "255")
	defaultColorAccent     = ac("27", "62")
	defaultColorAccentFg   = ac("255", "235")
	defaultColorSurfaceFg  = ac("235", "252")
	defaultColorControlBg  = ac("252", "235")
	defaultColorInputBg    = ac("254", "234")
	defaultColorDropMarker = ac("28", "78")
	defaultColorError      = ac("160", "203")

	colorMuted      = defaultColorMuted
	colorSelectedBg = defaultColorSelectedBg
	colorSelectedFg = defaultColorSelectedFg
	colorAccent     = defaultColorAccent
	colorAccentFg   = defaultColorAccentFg
	colorSurfaceFg  = defaultColorSurfaceFg
	colorControlBg  = defaultColorControlBg
	colorInputBg    = defaultColorInputBg
	colorDropMarker = defaultColorDropMarker
	colorError      = defaultColorError
)

type appearanceProfileID string

const (
	appearanceDefault  appearanceProfileID = "default"
	appearanceContrast appearanceProfileID = "contrast"
)

func resetAppearancePaletteToDefaults() {
	colorMuted = defaultColorMuted
	colorSelectedBg = defaultColorSelectedBg
	colorSelectedFg = defaultColorSelectedFg
	colorAccent = defaultColorAccent
	colorAccentFg = defaultColorAccentFg
	colorSurfaceFg = defaultColorSurfaceFg
	colorControlBg = defaultColorControlBg
	colorInputBg = defaultColorInputBg
	colorDropMarker = defaultColorDropMarker
	colorError = defaultColorError
}

// setAppearanceProfile switches the chrome palette. Unknown ids fall back to default.
func setAppearanceProfile(id appearanceProfileID) appearanceProfileID {
	resetAppearancePaletteToDefaults()
	switch appearanceProfileID(strings.ToLower(strings.TrimSpace(string(id)))) {
	case appearanceContrast:
		colorMuted = ac("236", "250")
		colorSelectedBg = ac("0", "15")
		colorSelectedFg = ac("15", "0")
		colorAccent = ac("19", "45")
		colorDropMarker = ac("22", "46")
		return appearanceContrast
	default:
		return appearanceDefault
	}
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// swatch paints a small block in the canvas background color.
func swatch(hex string) string {
	return paint(hex, 4)
}

func paint(hex string, w int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", w))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the editor.
//
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI, so
// only NO_COLOR is respected and the rest follows the terminal.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) FORMBENCH_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("15;0" = fg;bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FORMBENCH_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
