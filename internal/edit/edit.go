// Package edit applies keyboard-style edits to the grid: insert/overwrite,
// delete with shifting, line split/join, and virtual-space padding. Every
// operation records exactly one undo entry covering everything it touched,
// including any padding it had to create, so undo removes the edit and the
// padding together.
package edit

import (
	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/undo"
)

// Engine mutates a grid on behalf of the user. Insert-mode semantics are
// the default; Overwrite switches typing to replace-in-place.
type Engine struct {
	Grid      *grid.Grid
	Log       *undo.Log
	Overwrite bool
}

// New returns an engine over g recording into log.
func New(g *grid.Grid, log *undo.Log) *Engine {
	return &Engine{Grid: g, Log: log}
}

// clampPos pins an edit position into the non-negative quadrant. Virtual
// space above or left of the origin is a viewport concept only; edits never
// land there.
func clampPos(p grid.Pos) grid.Pos {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Col < 0 {
		p.Col = 0
	}
	return p
}

// pad writes explicit blanks over the gap between the row's content extent
// and col, so an edit in virtual space leaves a solid row behind it. The
// padding goes through rec and is therefore part of the caller's entry.
func (e *Engine) pad(rec *undo.Recorder, row, col int) {
	start := 0
	if _, hi, ok := e.Grid.RowExtent(row); ok {
		if hi >= col {
			return
		}
		start = hi + 1
	}
	for c := start; c < col; c++ {
		if e.Grid.Get(grid.Pos{Row: row, Col: c}).IsZero() {
			rec.Set(grid.Pos{Row: row, Col: c}, grid.Cell{Rune: ' '})
		}
	}
}

// Insert writes text at pos and returns the position after the last
// written cell. In insert mode the remainder of the row shifts right to
// make room; in overwrite mode covered cells are replaced. Newlines are not
// interpreted here; SplitLine handles row boundaries.
func (e *Engine) Insert(pos grid.Pos, text string) grid.Pos {
	pos = clampPos(pos)
	runes := []rune(text)
	if len(runes) == 0 {
		return pos
	}
	rec := undo.NewRecorder(e.Grid)
	e.pad(rec, pos.Row, pos.Col)

	if !e.Overwrite {
		if _, hi, ok := e.Grid.RowExtent(pos.Row); ok && hi >= pos.Col {
			for col := hi; col >= pos.Col; col-- {
				from := grid.Pos{Row: pos.Row, Col: col}
				rec.Set(grid.Pos{Row: pos.Row, Col: col + len(runes)}, e.Grid.Get(from))
			}
		}
	}
	for i, r := range runes {
		rec.Set(grid.Pos{Row: pos.Row, Col: pos.Col + i}, grid.Cell{Rune: r})
	}
	rec.Commit(e.Log)
	return grid.Pos{Row: pos.Row, Col: pos.Col + len(runes)}
}

// Delete removes the cell at pos and shifts the remainder of the row left.
// A delete past the row's content is a no-op and records nothing.
func (e *Engine) Delete(pos grid.Pos) {
	pos = clampPos(pos)
	_, hi, ok := e.Grid.RowExtent(pos.Row)
	if !ok || pos.Col > hi {
		return
	}
	rec := undo.NewRecorder(e.Grid)
	for col := pos.Col; col < hi; col++ {
		rec.Set(grid.Pos{Row: pos.Row, Col: col}, e.Grid.Get(grid.Pos{Row: pos.Row, Col: col + 1}))
	}
	rec.Set(grid.Pos{Row: pos.Row, Col: hi}, grid.Cell{})
	rec.Commit(e.Log)
}

// Backspace deletes the cell before pos and returns the new cursor
// position. At column zero it joins the row onto the previous one.
func (e *Engine) Backspace(pos grid.Pos) grid.Pos {
	pos = clampPos(pos)
	if pos.Col == 0 {
		if pos.Row == 0 {
			return pos
		}
		return e.JoinLine(pos.Row)
	}
	target := grid.Pos{Row: pos.Row, Col: pos.Col - 1}
	e.Delete(target)
	return target
}

// SetCell overwrites one cell in place, recording the change. Used for
// overwrite-mode typing and style edits.
func (e *Engine) SetCell(pos grid.Pos, c grid.Cell) {
	pos = clampPos(pos)
	rec := undo.NewRecorder(e.Grid)
	e.pad(rec, pos.Row, pos.Col)
	rec.Set(pos, c)
	rec.Commit(e.Log)
}

// contentMaxRow returns the last row holding content, or -1 when empty.
func (e *Engine) contentMaxRow() int {
	b, ok := e.Grid.Bounds()
	if !ok {
		return -1
	}
	return b.MaxRow
}

// moveRow rewrites row src onto row dst through rec, clearing src. Only
// the content extent of src is touched.
func (e *Engine) moveRow(rec *undo.Recorder, src, dst int) {
	lo, hi, ok := e.Grid.RowExtent(dst)
	if ok {
		for col := lo; col <= hi; col++ {
			rec.Set(grid.Pos{Row: dst, Col: col}, grid.Cell{})
		}
	}
	lo, hi, ok = e.Grid.RowExtent(src)
	if !ok {
		return
	}
	for col := lo; col <= hi; col++ {
		p := grid.Pos{Row: src, Col: col}
		rec.Set(grid.Pos{Row: dst, Col: col}, e.Grid.Get(p))
		rec.Set(p, grid.Cell{})
	}
}

// SplitLine breaks the row at pos: everything at or right of pos.Col moves
// to the start of a freshly opened row below, and the rows underneath shift
// down by one. One undo entry covers the whole reflow.
func (e *Engine) SplitLine(pos grid.Pos) grid.Pos {
	pos = clampPos(pos)
	rec := undo.NewRecorder(e.Grid)

	for row := e.contentMaxRow(); row > pos.Row; row-- {
		e.moveRow(rec, row, row+1)
	}

	// Carry the tail of the split row down to column 0.
	lo, hi, ok := e.Grid.RowExtent(pos.Row)
	if ok && hi >= pos.Col {
		start := max(lo, pos.Col)
		for col := start; col <= hi; col++ {
			p := grid.Pos{Row: pos.Row, Col: col}
			rec.Set(grid.Pos{Row: pos.Row + 1, Col: col - start}, e.Grid.Get(p))
			rec.Set(p, grid.Cell{})
		}
	}
	rec.Commit(e.Log)
	return grid.Pos{Row: pos.Row + 1, Col: 0}
}

// JoinLine appends row's content to the end of the row above and shifts
// the rows underneath up by one. Returns the cursor position at the join
// seam. Row zero has nothing above it; the call is a no-op.
func (e *Engine) JoinLine(row int) grid.Pos {
	if row <= 0 {
		return grid.Pos{Row: 0, Col: 0}
	}
	rec := undo.NewRecorder(e.Grid)

	seam := 0
	if _, hi, ok := e.Grid.RowExtent(row - 1); ok {
		seam = hi + 1
	}
	if lo, hi, ok := e.Grid.RowExtent(row); ok {
		for col := lo; col <= hi; col++ {
			p := grid.Pos{Row: row, Col: col}
			rec.Set(grid.Pos{Row: row - 1, Col: seam + col - lo}, e.Grid.Get(p))
			rec.Set(p, grid.Cell{})
		}
	}
	for r := row + 1; r <= e.contentMaxRow(); r++ {
		e.moveRow(rec, r, r-1)
	}
	rec.Commit(e.Log)
	return grid.Pos{Row: row - 1, Col: seam}
}
