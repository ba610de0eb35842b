package undo

import (
	"errors"
	"testing"

	"github.com/jackgrauer/chonk-note/internal/grid"
)

func set(g *grid.Grid, l *Log, p grid.Pos, r rune) {
	rec := NewRecorder(g)
	rec.Set(p, grid.Cell{Rune: r})
	rec.Commit(l)
}

func TestUndoRedoSingle(t *testing.T) {
	g := grid.New()
	l := NewLog(0)

	set(g, l, grid.Pos{Row: 0, Col: 0}, 'A')

	if err := l.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := g.Get(grid.Pos{Row: 0, Col: 0}); !got.IsZero() {
		t.Errorf("cell after undo = %+v, want zero", got)
	}

	if err := l.Redo(g); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := g.Get(grid.Pos{Row: 0, Col: 0}).Rune; got != 'A' {
		t.Errorf("cell after redo = %q, want 'A'", got)
	}
}

// Any sequence of edits followed by the same number of undos restores the
// prior grid content.
func TestUndoRoundTrip(t *testing.T) {
	g := grid.New()
	l := NewLog(0)

	edits := []struct {
		pos grid.Pos
		r   rune
	}{
		{grid.Pos{Row: 0, Col: 0}, 'a'},
		{grid.Pos{Row: 0, Col: 1}, 'b'},
		{grid.Pos{Row: 5, Col: 5}, 'c'},
		{grid.Pos{Row: 0, Col: 0}, 'd'}, // overwrite
		{grid.Pos{Row: 100, Col: 100}, 'e'},
	}
	for _, e := range edits {
		set(g, l, e.pos, e.r)
	}

	for range edits {
		if err := l.Undo(g); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}

	if got := g.CellCount(); got != 0 {
		t.Errorf("CellCount after full undo = %d, want 0", got)
	}
	if got := g.ChunkCount(); got != 0 {
		t.Errorf("ChunkCount after full undo = %d, want 0", got)
	}
}

func TestEmptyStacks(t *testing.T) {
	g := grid.New()
	l := NewLog(0)

	if err := l.Undo(g); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty log = %v, want ErrNothingToUndo", err)
	}
	if err := l.Redo(g); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo on empty log = %v, want ErrNothingToRedo", err)
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	g := grid.New()
	l := NewLog(0)

	set(g, l, grid.Pos{Row: 0, Col: 0}, 'A')
	set(g, l, grid.Pos{Row: 0, Col: 1}, 'B')

	if err := l.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !l.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	set(g, l, grid.Pos{Row: 0, Col: 2}, 'C')

	if l.CanRedo() {
		t.Error("redo stack not cleared by new edit")
	}
}

func TestMultiDeltaEntryIsAtomic(t *testing.T) {
	g := grid.New()
	l := NewLog(0)

	rec := NewRecorder(g)
	for i, r := range "hello" {
		rec.Set(grid.Pos{Row: 0, Col: i}, grid.Cell{Rune: r})
	}
	rec.Commit(l)

	if err := l.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := g.CellCount(); got != 0 {
		t.Errorf("one undo should revert the whole entry; %d cells remain", got)
	}
	if err := l.Redo(g); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := g.Get(grid.Pos{Row: 0, Col: 4}).Rune; got != 'o' {
		t.Errorf("cell after redo = %q, want 'o'", got)
	}
}

func TestRecorderSkipsNoopWrites(t *testing.T) {
	g := grid.New()
	g.Set(grid.Pos{Row: 0, Col: 0}, grid.Cell{Rune: 'x'})
	l := NewLog(0)

	rec := NewRecorder(g)
	rec.Set(grid.Pos{Row: 0, Col: 0}, grid.Cell{Rune: 'x'})
	if rec.Commit(l) {
		t.Error("no-op write produced an undo entry")
	}
	if l.CanUndo() {
		t.Error("empty entry recorded")
	}
}

func TestDepthBound(t *testing.T) {
	g := grid.New()
	l := NewLog(3)

	for i := 0; i < 5; i++ {
		set(g, l, grid.Pos{Row: 0, Col: i}, 'x')
	}

	n := 0
	for l.CanUndo() {
		if err := l.Undo(g); err != nil {
			t.Fatalf("Undo: %v", err)
		}
		n++
	}
	if n != 3 {
		t.Errorf("undid %d entries, want 3 (bounded depth)", n)
	}
	// The two oldest edits survive the partial history.
	if g.Get(grid.Pos{Row: 0, Col: 0}).Rune != 'x' || g.Get(grid.Pos{Row: 0, Col: 1}).Rune != 'x' {
		t.Error("bounded log dropped the wrong end of the history")
	}
}
