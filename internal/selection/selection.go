// Package selection maintains the active selection over the grid: either a
// point selection spanning a linear character range, or a rectangular block
// selection. Exactly one variant is active at a time; beginning a selection
// in one mode discards the other.
package selection

import (
	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/undo"
)

// Mode identifies the selection variant.
type Mode int

const (
	// ModeNone means no active selection.
	ModeNone Mode = iota
	// ModePoint is a classic linear text selection between anchor and head.
	ModePoint
	// ModeBlock is a rectangular, column-aligned selection.
	ModeBlock
)

// Selection is the selection state. The zero value is ModeNone.
type Selection struct {
	mode   Mode
	anchor grid.Pos
	head   grid.Pos
}

// Begin starts a new selection at p, discarding any previous selection of
// either mode.
func (s *Selection) Begin(p grid.Pos, m Mode) {
	if m == ModeNone {
		s.Clear()
		return
	}
	s.mode = m
	s.anchor = p
	s.head = p
}

// Extend moves the head (point mode) or the second corner (block mode).
// A no-op when nothing is active.
func (s *Selection) Extend(p grid.Pos) {
	if s.mode == ModeNone {
		return
	}
	s.head = p
}

// Clear deactivates the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Active reports whether a selection is in progress.
func (s *Selection) Active() bool { return s.mode != ModeNone }

// Mode returns the active variant.
func (s *Selection) Mode() Mode { return s.mode }

// Anchor returns the position the selection started at.
func (s *Selection) Anchor() grid.Pos { return s.anchor }

// Head returns the most recently extended position.
func (s *Selection) Head() grid.Pos { return s.head }

// Bounds returns the normalized rectangle around the selection, min <= max
// on both axes regardless of drag direction. ok is false with no selection.
func (s *Selection) Bounds() (grid.Rect, bool) {
	if s.mode == ModeNone {
		return grid.Rect{}, false
	}
	return grid.NewRect(s.anchor, s.head), true
}

// ordered returns anchor and head in linear document order.
func (s *Selection) ordered() (first, last grid.Pos) {
	if s.head.Before(s.anchor) {
		return s.head, s.anchor
	}
	return s.anchor, s.head
}

// Contains reports whether p is highlighted by the selection. Block mode
// uses the rectangle; point mode uses linear row-major order with row
// extents supplied by the grid at render time, so it is approximated here
// by the full-width band between the endpoints' rows with the first and
// last rows trimmed at the endpoints.
func (s *Selection) Contains(p grid.Pos) bool {
	switch s.mode {
	case ModeBlock:
		r, _ := s.Bounds()
		return r.Contains(p)
	case ModePoint:
		first, last := s.ordered()
		if p.Row < first.Row || p.Row > last.Row {
			return false
		}
		if p.Row == first.Row && p.Col < first.Col {
			return false
		}
		if p.Row == last.Row && p.Col > last.Col {
			return false
		}
		return true
	}
	return false
}

// Copy captures the selected content. Block mode captures each row of the
// rectangle independently, padded with blanks to the rectangle width, so
// the payload is truly rectangular. Point mode captures the linear range
// between the endpoints, each row trimmed to its content extent.
// ok is false with no selection.
func (s *Selection) Copy(g *grid.Grid) (Payload, bool) {
	switch s.mode {
	case ModeBlock:
		r, _ := s.Bounds()
		lines := make([]string, 0, r.Rows())
		for row := r.MinRow; row <= r.MaxRow; row++ {
			line := make([]rune, 0, r.Cols())
			for col := r.MinCol; col <= r.MaxCol; col++ {
				line = append(line, g.Get(grid.Pos{Row: row, Col: col}).Display())
			}
			lines = append(lines, string(line))
		}
		return Payload{Kind: RectPayload, Lines: lines}, true
	case ModePoint:
		first, last := s.ordered()
		lines := make([]string, 0, last.Row-first.Row+1)
		for row := first.Row; row <= last.Row; row++ {
			lo, hi := 0, -1
			if l, h, ok := g.RowExtent(row); ok {
				lo, hi = l, h
			}
			if row == first.Row {
				lo = max(lo, first.Col)
			}
			if row == last.Row {
				hi = min(hi, last.Col)
			}
			if hi < lo {
				lines = append(lines, "")
				continue
			}
			line := make([]rune, 0, hi-lo+1)
			for col := lo; col <= hi; col++ {
				line = append(line, g.Get(grid.Pos{Row: row, Col: col}).Display())
			}
			lines = append(lines, string(line))
		}
		return Payload{Kind: LinearPayload, Lines: lines}, true
	}
	return Payload{}, false
}

// Cut captures like Copy, then blanks the captured cells and records the
// removal as one undo entry. Cells are removed, never shifted: rows keep
// their length so column alignment survives for later block operations.
// The selection is cleared afterwards.
func (s *Selection) Cut(g *grid.Grid, log *undo.Log) (Payload, bool) {
	p, ok := s.Copy(g)
	if !ok {
		return Payload{}, false
	}
	rec := undo.NewRecorder(g)
	switch s.mode {
	case ModeBlock:
		r, _ := s.Bounds()
		for row := r.MinRow; row <= r.MaxRow; row++ {
			for col := r.MinCol; col <= r.MaxCol; col++ {
				rec.Set(grid.Pos{Row: row, Col: col}, grid.Cell{})
			}
		}
	case ModePoint:
		first, last := s.ordered()
		for row := first.Row; row <= last.Row; row++ {
			lo, hi, okRow := g.RowExtent(row)
			if !okRow {
				continue
			}
			if row == first.Row {
				lo = max(lo, first.Col)
			}
			if row == last.Row {
				hi = min(hi, last.Col)
			}
			for col := lo; col <= hi; col++ {
				rec.Set(grid.Pos{Row: row, Col: col}, grid.Cell{})
			}
		}
	}
	rec.Commit(log)
	s.Clear()
	return p, true
}
