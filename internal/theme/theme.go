// Package theme provides color themes and styling for the chonk-note editor.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	ok := tint.SetTintID(themeName)
	if !ok {
		tint.SetTintID("default")
	}

	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Editor surface colors

func EditorFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

func EditorBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// CursorColors returns the cell colors under the cursor.
func CursorColors() (fg color.Color, bg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000"), lipgloss.Color("#00ff00")
	}
	return t.Black, t.Cursor
}

// SelectionColors returns the highlight for selected cells.
func SelectionColors() (fg color.Color, bg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff"), lipgloss.Color("#cd00cd")
	}
	return t.BrightWhite, t.Purple
}

// Extracted-text font classes

func TitleFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("14")
	}
	return t.BrightCyan
}

func HeadingFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("12")
	}
	return t.BrightBlue
}

func SmallFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("8")
	}
	return t.BrightBlack
}

// Status bar colors

func StatusBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func StatusBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func StatusBarAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

func StatusBarWarning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func StatusBarError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// OverwriteIndicator is the status color while overwrite mode is active.
func OverwriteIndicator() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff00ff")
	}
	return t.BrightPurple
}

// Help overlay colors

func HelpTitle() color.Color {
	return lipgloss.Color("11")
}

func HelpText() color.Color {
	return lipgloss.Color("7")
}

func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

// CLI table colors

func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in range 0-65535, convert to 0-255
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
