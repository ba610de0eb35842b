package edit

import (
	"testing"

	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/undo"
)

func newEngine() (*Engine, *grid.Grid, *undo.Log) {
	g := grid.New()
	log := undo.NewLog(0)
	return New(g, log), g, log
}

func line(g *grid.Grid, row int) string {
	lo, hi, ok := g.RowExtent(row)
	if !ok {
		return ""
	}
	_ = lo
	return g.Line(row, 0, hi)
}

func TestInsertBasic(t *testing.T) {
	e, g, _ := newEngine()

	after := e.Insert(grid.Pos{Row: 0, Col: 0}, "ABC")

	if got := g.Get(grid.Pos{Row: 0, Col: 0}).Rune; got != 'A' {
		t.Errorf("cell (0,0) = %q, want 'A'", got)
	}
	if got := g.Get(grid.Pos{Row: 0, Col: 3}); !got.IsZero() {
		t.Errorf("cell (0,3) = %+v, want blank", got)
	}
	if after != (grid.Pos{Row: 0, Col: 3}) {
		t.Errorf("cursor after insert = %v, want {0 3}", after)
	}
}

func TestInsertUndoRedoRoundTrip(t *testing.T) {
	e, g, log := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "ABC")

	if err := log.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if g.CellCount() != 0 {
		t.Errorf("grid not empty after undo: %d cells", g.CellCount())
	}

	if err := log.Redo(g); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := line(g, 0); got != "ABC" {
		t.Errorf("row 0 after redo = %q, want %q", got, "ABC")
	}
}

func TestInsertShiftsRemainderRight(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "world")
	e.Insert(grid.Pos{Row: 0, Col: 0}, "hello ")

	if got := line(g, 0); got != "hello world" {
		t.Errorf("row 0 = %q, want %q", got, "hello world")
	}
}

func TestInsertMidRow(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "abef")
	e.Insert(grid.Pos{Row: 0, Col: 2}, "cd")

	if got := line(g, 0); got != "abcdef" {
		t.Errorf("row 0 = %q, want %q", got, "abcdef")
	}
}

func TestOverwriteMode(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "abcdef")
	e.Overwrite = true
	e.Insert(grid.Pos{Row: 0, Col: 1}, "XY")

	if got := line(g, 0); got != "aXYdef" {
		t.Errorf("row 0 = %q, want %q (overwrite must not shift)", got, "aXYdef")
	}
}

func TestVirtualSpacePadding(t *testing.T) {
	e, g, log := newEngine()

	e.Insert(grid.Pos{Row: 2, Col: 5}, "x")

	// Intervening cells become explicit blanks, distinguishable from never
	// written cells.
	for col := 0; col < 5; col++ {
		c := g.Get(grid.Pos{Row: 2, Col: col})
		if c.Rune != ' ' {
			t.Errorf("cell (2,%d) = %+v, want explicit blank padding", col, c)
		}
	}

	// Undo removes the padding together with the edit.
	if err := log.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := g.CellCount(); got != 0 {
		t.Errorf("%d cells remain after undo, want 0 (padding must be undone too)", got)
	}
}

func TestPaddingExtendsExistingRow(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "ab")
	e.Insert(grid.Pos{Row: 0, Col: 6}, "z")

	if got := g.Get(grid.Pos{Row: 0, Col: 3}).Rune; got != ' ' {
		t.Errorf("gap cell = %q, want explicit blank", got)
	}
	if got := line(g, 0); got != "ab    z" {
		t.Errorf("row 0 = %q, want %q", got, "ab    z")
	}
}

func TestDeleteShiftsLeft(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "abcdef")
	e.Delete(grid.Pos{Row: 0, Col: 2})

	if got := line(g, 0); got != "abdef" {
		t.Errorf("row 0 = %q, want %q", got, "abdef")
	}
	if _, hi, _ := g.RowExtent(0); hi != 4 {
		t.Errorf("row extent hi = %d, want 4 (row must shrink)", hi)
	}
}

func TestDeletePastContentIsNoop(t *testing.T) {
	e, g, log := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "ab")
	log.Clear()

	e.Delete(grid.Pos{Row: 0, Col: 10})
	e.Delete(grid.Pos{Row: 5, Col: 0})

	if log.CanUndo() {
		t.Error("no-op delete recorded an undo entry")
	}
	if got := line(g, 0); got != "ab" {
		t.Errorf("row 0 = %q, want %q", got, "ab")
	}
}

func TestBackspace(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "abc")
	after := e.Backspace(grid.Pos{Row: 0, Col: 3})

	if got := line(g, 0); got != "ab" {
		t.Errorf("row 0 = %q, want %q", got, "ab")
	}
	if after != (grid.Pos{Row: 0, Col: 2}) {
		t.Errorf("cursor = %v, want {0 2}", after)
	}
}

func TestBackspaceAtColumnZeroJoins(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "ab")
	e.Insert(grid.Pos{Row: 1, Col: 0}, "cd")

	after := e.Backspace(grid.Pos{Row: 1, Col: 0})

	if got := line(g, 0); got != "abcd" {
		t.Errorf("row 0 = %q, want %q", got, "abcd")
	}
	if after != (grid.Pos{Row: 0, Col: 2}) {
		t.Errorf("cursor = %v, want seam {0 2}", after)
	}
}

func TestSplitLine(t *testing.T) {
	e, g, log := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "hello")
	e.Insert(grid.Pos{Row: 1, Col: 0}, "below")

	after := e.SplitLine(grid.Pos{Row: 0, Col: 2})

	if got := line(g, 0); got != "he" {
		t.Errorf("row 0 = %q, want %q", got, "he")
	}
	if got := line(g, 1); got != "llo" {
		t.Errorf("row 1 = %q, want %q", got, "llo")
	}
	if got := line(g, 2); got != "below" {
		t.Errorf("row 2 = %q, want %q (rows below shift down)", got, "below")
	}
	if after != (grid.Pos{Row: 1, Col: 0}) {
		t.Errorf("cursor = %v, want {1 0}", after)
	}

	// The whole reflow is one entry.
	if err := log.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := line(g, 0); got != "hello" {
		t.Errorf("row 0 after undo = %q, want %q", got, "hello")
	}
	if got := line(g, 1); got != "below" {
		t.Errorf("row 1 after undo = %q, want %q", got, "below")
	}
}

func TestJoinLine(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "ab")
	e.Insert(grid.Pos{Row: 1, Col: 0}, "cd")
	e.Insert(grid.Pos{Row: 2, Col: 0}, "ef")

	after := e.JoinLine(1)

	if got := line(g, 0); got != "abcd" {
		t.Errorf("row 0 = %q, want %q", got, "abcd")
	}
	if got := line(g, 1); got != "ef" {
		t.Errorf("row 1 = %q, want %q (rows below shift up)", got, "ef")
	}
	if after != (grid.Pos{Row: 0, Col: 2}) {
		t.Errorf("cursor = %v, want {0 2}", after)
	}
}

func TestNegativePositionsClamp(t *testing.T) {
	e, g, _ := newEngine()

	e.Insert(grid.Pos{Row: -3, Col: -2}, "x")

	if got := g.Get(grid.Pos{Row: 0, Col: 0}).Rune; got != 'x' {
		t.Errorf("insert at negative position landed at %v, want clamp to (0,0)",
			func() grid.Pos { b, _ := g.Bounds(); return grid.Pos{Row: b.MinRow, Col: b.MinCol} }())
	}
}

func TestEveryMutationOneEntry(t *testing.T) {
	e, g, log := newEngine()

	e.Insert(grid.Pos{Row: 0, Col: 0}, "abc") // 1
	e.Delete(grid.Pos{Row: 0, Col: 0})        // 2
	e.SplitLine(grid.Pos{Row: 0, Col: 1})     // 3
	e.JoinLine(1)                   // 4

	n := 0
	for log.CanUndo() {
		if err := log.Undo(g); err != nil {
			t.Fatalf("Undo: %v", err)
		}
		n++
	}
	if n != 4 {
		t.Errorf("recorded %d entries for 4 operations, want 4", n)
	}
	if g.CellCount() != 0 {
		t.Errorf("grid not restored to empty: %d cells", g.CellCount())
	}
}
