// Package editor ties the grid, selection, viewport, edit engine and undo
// log together behind a single command interface. It owns all mutable
// document state; the app layer talks to it exclusively through Apply and
// the read-only view methods.
package editor

import (
	"strings"

	"github.com/jackgrauer/chonk-note/internal/edit"
	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/selection"
	"github.com/jackgrauer/chonk-note/internal/undo"
	"github.com/jackgrauer/chonk-note/internal/viewport"
)

// Editor is the full editing state for one document.
type Editor struct {
	grid   *grid.Grid
	log    *undo.Log
	engine *edit.Engine
	sel    selection.Selection
	view   *viewport.Viewport

	cursor grid.Pos
	// desiredCol restores the column when vertical navigation passes
	// through shorter rows. -1 when not navigating vertically.
	desiredCol int

	clipboard selection.Payload
	dirty     bool
}

// New returns an editor over an empty grid with the given viewport extent
// and undo depth.
func New(width, height, undoDepth int) *Editor {
	g := grid.New()
	log := undo.NewLog(undoDepth)
	return &Editor{
		grid:       g,
		log:        log,
		engine:     edit.New(g, log),
		view:       viewport.New(width, height),
		desiredCol: -1,
	}
}

// Apply executes one command. The only errors are the undo/redo sentinels;
// everything else always succeeds.
func (e *Editor) Apply(cmd Command) error {
	switch c := cmd.(type) {
	case Move:
		e.move(c.Dir, c.Extend)
	case MoveTo:
		e.moveTo(c.Pos, c.Extend)
	case LineStart:
		e.setCursor(grid.Pos{Row: e.cursor.Row, Col: 0})
	case LineEnd:
		col := 0
		if _, hi, ok := e.grid.RowExtent(e.cursor.Row); ok {
			col = hi + 1
		}
		e.setCursor(grid.Pos{Row: e.cursor.Row, Col: col})
	case Insert:
		e.insert(c.Text)
	case DeleteBack:
		e.cursor = e.engine.Backspace(e.cursor)
		e.afterEdit()
	case DeleteForward:
		e.engine.Delete(e.cursor)
		e.afterEdit()
	case NewLine:
		e.cursor = e.engine.SplitLine(e.cursor)
		e.afterEdit()
	case ToggleOverwrite:
		e.engine.Overwrite = !e.engine.Overwrite
	case BeginSelection:
		mode := selection.ModePoint
		if c.Block {
			mode = selection.ModeBlock
		}
		e.sel.Begin(c.Pos, mode)
		e.cursor = c.Pos
	case ExtendSelection:
		e.sel.Extend(c.Pos)
		e.cursor = c.Pos
		e.view.Follow(e.cursor)
	case ClearSelection:
		e.sel.Clear()
	case Cut:
		if p, ok := e.sel.Cut(e.grid, e.log); ok {
			e.clipboard = p
			e.dirty = true
		}
	case Copy:
		if p, ok := e.sel.Copy(e.grid); ok {
			e.clipboard = p
		}
	case Paste:
		if selection.Paste(e.grid, e.log, e.cursor, e.clipboard) {
			e.dirty = true
		}
	case Undo:
		if err := e.log.Undo(e.grid); err != nil {
			return err
		}
		e.dirty = true
	case Redo:
		if err := e.log.Redo(e.grid); err != nil {
			return err
		}
		e.dirty = true
	case Scroll:
		e.view.ScrollBy(c.DX, c.DY)
	}
	return nil
}

func (e *Editor) move(d Direction, extend bool) {
	e.trackSelection(extend)
	p := e.cursor
	switch d {
	case Up:
		p.Row--
	case Down:
		p.Row++
	case Left:
		p.Col--
	case Right:
		p.Col++
	}
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if d == Up || d == Down {
		// Vertical navigation clamps to row content but remembers the
		// column it came from, restoring it on longer rows.
		if e.desiredCol < 0 {
			e.desiredCol = e.cursor.Col
		}
		p.Col = e.desiredCol
		if _, hi, ok := e.grid.RowExtent(p.Row); ok {
			if p.Col > hi+1 {
				p.Col = hi + 1
			}
		} else {
			p.Col = 0
		}
	} else {
		e.desiredCol = -1
	}
	e.cursor = p
	e.view.Follow(e.cursor)
	if extend {
		e.sel.Extend(e.cursor)
	}
}

func (e *Editor) moveTo(p grid.Pos, extend bool) {
	e.trackSelection(extend)
	e.desiredCol = -1
	e.setCursor(p)
	if extend {
		e.sel.Extend(e.cursor)
	}
}

// trackSelection starts or drops the point selection around a cursor motion.
func (e *Editor) trackSelection(extend bool) {
	if extend {
		if !e.sel.Active() {
			e.sel.Begin(e.cursor, selection.ModePoint)
		}
	} else {
		e.sel.Clear()
	}
}

func (e *Editor) setCursor(p grid.Pos) {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Col < 0 {
		p.Col = 0
	}
	e.cursor = p
	e.view.Follow(e.cursor)
}

func (e *Editor) insert(text string) {
	e.cursor = e.engine.Insert(e.cursor, text)
	e.afterEdit()
}

func (e *Editor) afterEdit() {
	e.desiredCol = -1
	e.sel.Clear()
	e.dirty = true
	e.view.Follow(e.cursor)
}

// Overwrite reports whether overwrite typing is active.
func (e *Editor) Overwrite() bool { return e.engine.Overwrite }

// CursorPosition returns the cursor in grid space.
func (e *Editor) CursorPosition() grid.Pos { return e.cursor }

// Viewport exposes the viewport for the coordinate transformer and renderer.
func (e *Editor) Viewport() *viewport.Viewport { return e.view }

// Grid exposes the live grid for read-only rendering.
func (e *Editor) Grid() *grid.Grid { return e.grid }

// SelectionBounds returns the normalized selection rectangle, if any.
func (e *Editor) SelectionBounds() (grid.Rect, bool) { return e.sel.Bounds() }

// Selected reports whether the grid position is inside the selection.
func (e *Editor) Selected(p grid.Pos) bool { return e.sel.Contains(p) }

// SelectionMode returns the active selection variant.
func (e *Editor) SelectionMode() selection.Mode { return e.sel.Mode() }

// ClipboardText returns the current clipboard as plain text for the OS
// clipboard.
func (e *Editor) ClipboardText() string { return e.clipboard.Text() }

// SetClipboardText replaces the clipboard from OS clipboard text.
func (e *Editor) SetClipboardText(s string) { e.clipboard = selection.FromText(s) }

// CanUndo reports whether an undo entry exists.
func (e *Editor) CanUndo() bool { return e.log.CanUndo() }

// CanRedo reports whether a redo entry exists.
func (e *Editor) CanRedo() bool { return e.log.CanRedo() }

// Dirty reports whether the document changed since the last ClearDirty.
func (e *Editor) Dirty() bool { return e.dirty }

// ClearDirty resets the dirty flag, typically after an autosave snapshot.
func (e *Editor) ClearDirty() { e.dirty = false }

// VisibleCells calls fn for every non-blank cell inside the viewport.
func (e *Editor) VisibleCells(fn func(grid.Pos, grid.Cell) bool) {
	e.grid.IterRegion(e.view.Visible(), fn)
}

// Serialize renders the document as newline-joined text.
func (e *Editor) Serialize() string {
	return strings.Join(e.grid.Lines(), "\n")
}

// Load replaces the document with the given text. The undo history is
// cleared: loading is a document switch, not an edit.
func (e *Editor) Load(content string) {
	e.grid.Clear()
	e.grid.LoadLines(strings.Split(content, "\n"))
	e.log.Clear()
	e.sel.Clear()
	e.cursor = grid.Pos{}
	e.desiredCol = -1
	e.dirty = false
	e.view.ScrollTo(0, 0)
	e.syncContentSize()
}

// SwapGrid replaces the document contents with those of src as one
// aggregate undo entry, so a re-extract is reversible in a single step.
func (e *Editor) SwapGrid(src *grid.Grid) {
	rec := undo.NewRecorder(e.grid)
	if b, ok := e.grid.Bounds(); ok {
		e.grid.IterRegion(b, func(p grid.Pos, _ grid.Cell) bool {
			rec.Set(p, grid.Cell{})
			return true
		})
	}
	if b, ok := src.Bounds(); ok {
		src.IterRegion(b, func(p grid.Pos, c grid.Cell) bool {
			rec.Set(p, c)
			return true
		})
	}
	rec.Commit(e.log)
	e.sel.Clear()
	e.cursor = grid.Pos{}
	e.desiredCol = -1
	e.dirty = true
	e.view.ScrollTo(0, 0)
	e.syncContentSize()
}

func (e *Editor) syncContentSize() {
	if b, ok := e.grid.Bounds(); ok {
		e.view.SetContentSize(b.MaxCol+1, b.MaxRow+1)
	} else {
		e.view.SetContentSize(0, 0)
	}
}

// Resize updates the viewport extent.
func (e *Editor) Resize(width, height int) {
	e.view.Resize(width, height)
}
