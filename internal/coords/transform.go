// Package coords is the single entry point for turning raw input
// coordinates into grid positions. Every mouse path (click, drag, release,
// wheel) goes through the same Transformer exactly once; no call site does
// its own offset arithmetic, so no path can subtract the pane origin or the
// scroll offset twice.
package coords

import (
	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/viewport"
)

// Transformer maps raw screen cells to grid positions for one pane.
// The pane origin and extent describe the content area only: callers must
// exclude chrome (title bar, status line, borders) before construction, not
// at transform time.
type Transformer struct {
	// PaneOriginX and PaneOriginY are the screen coordinates of the pane's
	// top-left content cell.
	PaneOriginX, PaneOriginY int
	// PaneWidth and PaneHeight bound the pane's content area. A zero or
	// negative extent disables the far-edge check on that axis.
	PaneWidth, PaneHeight int
	// View supplies the scroll offset for the final stage. A nil View means
	// an unscrolled pane.
	View *viewport.Viewport
}

// ToGrid transforms a raw screen coordinate to a grid position.
// The stages are: subtract the pane origin, reject coordinates outside the
// pane, then add the viewport scroll offset. A rejected coordinate returns
// ok=false rather than a clamped or negative position, so feeding a
// transformed result back through is detected as out-of-pane instead of
// being silently shifted again.
func (t Transformer) ToGrid(screenX, screenY int) (grid.Pos, bool) {
	paneX := screenX - t.PaneOriginX
	paneY := screenY - t.PaneOriginY
	if paneX < 0 || paneY < 0 {
		return grid.Pos{}, false
	}
	if t.PaneWidth > 0 && paneX >= t.PaneWidth {
		return grid.Pos{}, false
	}
	if t.PaneHeight > 0 && paneY >= t.PaneHeight {
		return grid.Pos{}, false
	}
	scrollX, scrollY := 0, 0
	if t.View != nil {
		scrollX, scrollY = t.View.ScrollX, t.View.ScrollY
	}
	return grid.Pos{Row: paneY + scrollY, Col: paneX + scrollX}, true
}

// ToScreen is the inverse of ToGrid for rendering: it maps a grid position
// back to a raw screen coordinate. visible is false when the position is
// scrolled out of the pane.
func (t Transformer) ToScreen(p grid.Pos) (screenX, screenY int, visible bool) {
	scrollX, scrollY := 0, 0
	if t.View != nil {
		scrollX, scrollY = t.View.ScrollX, t.View.ScrollY
	}
	paneX := p.Col - scrollX
	paneY := p.Row - scrollY
	if paneX < 0 || paneY < 0 {
		return 0, 0, false
	}
	if t.PaneWidth > 0 && paneX >= t.PaneWidth {
		return 0, 0, false
	}
	if t.PaneHeight > 0 && paneY >= t.PaneHeight {
		return 0, 0, false
	}
	return paneX + t.PaneOriginX, paneY + t.PaneOriginY, true
}
