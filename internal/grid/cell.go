// Package grid implements the sparse chunked character grid that backs
// chonk-note documents. The grid is addressable at any (row, col) pair;
// storage is allocated per 64x64 chunk on first write, so memory tracks the
// regions actually used rather than the nominal extent.
package grid

import "image/color"

// FontClass is a coarse size classification for extracted text.
// Free-form notes always use FontNormal.
type FontClass uint8

const (
	// FontNormal is body text.
	FontNormal FontClass = iota
	// FontSmall is footnote/caption sized text.
	FontSmall
	// FontLarge is heading sized text.
	FontLarge
	// FontTitle is the largest text on a page.
	FontTitle
)

// Style holds the optional display attributes of a cell. Cells written by
// the keyboard carry the zero Style; cells sourced from document extraction
// keep the classification the layout mapper assigned.
type Style struct {
	Class  FontClass
	Fg     color.Color
	Bold   bool
	Italic bool
}

// IsZero reports whether the style carries no attributes.
func (s Style) IsZero() bool {
	return s.Class == FontNormal && s.Fg == nil && !s.Bold && !s.Italic
}

// Cell is one grid position. The zero Cell means "no cell here": it is what
// Get returns for positions that were never written, and writing it deletes
// the stored cell. An explicit blank (Rune == ' ') is a real cell; the edit
// engine uses it for virtual-space padding so that undo can distinguish
// padding it created from space that was always empty.
type Cell struct {
	Rune  rune
	Style Style
}

// IsZero reports whether the cell is the absent/default cell.
func (c Cell) IsZero() bool {
	return c.Rune == 0 && c.Style.IsZero()
}

// Display returns the rune to draw for the cell, substituting a space for
// the absent cell.
func (c Cell) Display() rune {
	if c.Rune == 0 {
		return ' '
	}
	return c.Rune
}
