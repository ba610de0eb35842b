// Package undo records reversible cell deltas so every user-initiated grid
// mutation can be walked back. Entries are deltas, not commands: each one
// carries the previous and next cell values for every position an operation
// touched, so applying an entry in either direction is a plain series of
// writes with no re-derivation of editor state.
package undo

import (
	"errors"

	"github.com/jackgrauer/chonk-note/internal/grid"
)

// ErrNothingToUndo is reported when undo is invoked with an empty stack.
// It is a user-visible status condition, not a failure.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is the redo counterpart of ErrNothingToUndo.
var ErrNothingToRedo = errors.New("nothing to redo")

// DefaultDepth bounds the undo stack; the oldest entries are dropped first.
const DefaultDepth = 1000

// Delta is one cell transition.
type Delta struct {
	Pos  grid.Pos
	Prev grid.Cell
	Next grid.Cell
}

// Entry is the ordered delta list of one atomic user operation: a
// keystroke, a paste, a cut, or a whole page population. Coalescing happens
// only at record time, by the caller; the log never merges entries.
type Entry []Delta

// Log holds the undo and redo stacks.
type Log struct {
	undo  []Entry
	redo  []Entry
	depth int
}

// NewLog returns a log bounded to depth entries. A depth of zero or less
// uses DefaultDepth.
func NewLog(depth int) *Log {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Log{depth: depth}
}

// Record pushes an entry onto the undo stack and clears the redo stack.
// Empty entries are ignored: an operation that changed nothing is not
// undoable. When the stack is full the oldest entry is dropped.
func (l *Log) Record(e Entry) {
	if len(e) == 0 {
		return
	}
	l.redo = l.redo[:0]
	l.undo = append(l.undo, e)
	if len(l.undo) > l.depth {
		copy(l.undo, l.undo[1:])
		l.undo = l.undo[:l.depth]
	}
}

// Undo pops one entry, restores the previous cell values in reverse delta
// order, and moves the entry to the redo stack.
func (l *Log) Undo(g *grid.Grid) error {
	if len(l.undo) == 0 {
		return ErrNothingToUndo
	}
	e := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	for i := len(e) - 1; i >= 0; i-- {
		g.Set(e[i].Pos, e[i].Prev)
	}
	l.redo = append(l.redo, e)
	return nil
}

// Redo pops one entry from the redo stack, re-applies the next cell values
// in delta order, and moves the entry back to the undo stack.
func (l *Log) Redo(g *grid.Grid) error {
	if len(l.redo) == 0 {
		return ErrNothingToRedo
	}
	e := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	for _, d := range e {
		g.Set(d.Pos, d.Next)
	}
	l.undo = append(l.undo, e)
	return nil
}

// CanUndo reports whether the undo stack is non-empty.
func (l *Log) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// Clear drops both stacks. Used when a new document replaces the grid.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
}

// Recorder accumulates the deltas of one atomic operation. It applies each
// write to the grid immediately while remembering the prior value, so the
// caller builds the entry and mutates the grid in one pass.
type Recorder struct {
	grid  *grid.Grid
	entry Entry
}

// NewRecorder starts recording one operation against g.
func NewRecorder(g *grid.Grid) *Recorder {
	return &Recorder{grid: g}
}

// Set writes c at p and appends the delta. Writes that leave the cell
// unchanged are skipped so no-op operations produce empty entries.
func (r *Recorder) Set(p grid.Pos, c grid.Cell) {
	prev := r.grid.Get(p)
	if prev == c {
		return
	}
	r.grid.Set(p, c)
	r.entry = append(r.entry, Delta{Pos: p, Prev: prev, Next: c})
}

// Entry returns the accumulated deltas.
func (r *Recorder) Entry() Entry { return r.entry }

// Commit records the accumulated entry into l and reports whether anything
// was recorded.
func (r *Recorder) Commit(l *Log) bool {
	if len(r.entry) == 0 {
		return false
	}
	l.Record(r.entry)
	return true
}
