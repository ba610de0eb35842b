// Package viewport tracks the scrolled window over the document grid.
// Scroll offsets are always non-negative and never exceed the maximum
// implied by the content extent; scrolling "past the origin" is rejected
// here so the grid never has to care.
package viewport

import "github.com/jackgrauer/chonk-note/internal/grid"

// Viewport is the visible window: scroll offsets plus view extent, with the
// content extent used to clamp scrolling.
type Viewport struct {
	ScrollX, ScrollY int
	Width, Height    int

	contentWidth, contentHeight int
}

// New returns a viewport of the given extent at origin.
func New(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Resize updates the view extent, re-clamping the scroll position.
func (v *Viewport) Resize(width, height int) {
	v.Width = width
	v.Height = height
	v.clamp()
}

// SetContentSize records the document extent scrolling is bounded by.
func (v *Viewport) SetContentSize(width, height int) {
	v.contentWidth = width
	v.contentHeight = height
	v.clamp()
}

// ContentSize returns the recorded document extent.
func (v *Viewport) ContentSize() (width, height int) {
	return v.contentWidth, v.contentHeight
}

// MaxScroll returns the largest legal scroll offsets for the current
// content and view extents.
func (v *Viewport) MaxScroll() (x, y int) {
	return max(0, v.contentWidth-v.Width), max(0, v.contentHeight-v.Height)
}

// ScrollBy moves the scroll position by (dx, dy), clamped.
func (v *Viewport) ScrollBy(dx, dy int) {
	v.ScrollX += dx
	v.ScrollY += dy
	v.clamp()
}

// ScrollTo moves the scroll position to (x, y), clamped.
func (v *Viewport) ScrollTo(x, y int) {
	v.ScrollX = x
	v.ScrollY = y
	v.clamp()
}

func (v *Viewport) clamp() {
	maxX, maxY := v.MaxScroll()
	v.ScrollX = min(max(v.ScrollX, 0), maxX)
	v.ScrollY = min(max(v.ScrollY, 0), maxY)
}

// Visible returns the inclusive rectangle of grid positions in view.
func (v *Viewport) Visible() grid.Rect {
	return grid.Rect{
		MinRow: v.ScrollY,
		MinCol: v.ScrollX,
		MaxRow: v.ScrollY + max(v.Height-1, 0),
		MaxCol: v.ScrollX + max(v.Width-1, 0),
	}
}

// Contains reports whether p is inside the visible rectangle.
func (v *Viewport) Contains(p grid.Pos) bool {
	return v.Visible().Contains(p)
}

// Follow scrolls the minimum distance needed to bring p into view. Used by
// cursor-follow when keyboard navigation leaves the visible extent; the
// content extent is grown first if the cursor moved beyond it.
func (v *Viewport) Follow(p grid.Pos) {
	if p.Col+1 > v.contentWidth {
		v.contentWidth = p.Col + 1
	}
	if p.Row+1 > v.contentHeight {
		v.contentHeight = p.Row + 1
	}
	if p.Col < v.ScrollX {
		v.ScrollX = p.Col
	} else if p.Col >= v.ScrollX+v.Width {
		v.ScrollX = p.Col - v.Width + 1
	}
	if p.Row < v.ScrollY {
		v.ScrollY = p.Row
	} else if p.Row >= v.ScrollY+v.Height {
		v.ScrollY = p.Row - v.Height + 1
	}
	v.clamp()
}
