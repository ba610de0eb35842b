package selection

import (
	"strings"

	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/undo"
)

// PayloadKind distinguishes rectangular block captures from linear text.
type PayloadKind int

const (
	// LinearPayload is ordinary line-oriented text.
	LinearPayload PayloadKind = iota
	// RectPayload is a rectangle: every line has the same width and pastes
	// without shifting surrounding content.
	RectPayload
)

// Payload is the clipboard content produced by copy/cut and consumed by
// paste. It has no dependency on the OS clipboard; bridging the text form
// to the system clipboard is the caller's concern.
type Payload struct {
	Kind  PayloadKind
	Lines []string
}

// Empty reports whether there is nothing to paste.
func (p Payload) Empty() bool { return len(p.Lines) == 0 }

// Text serializes the payload for external clipboard bridging.
func (p Payload) Text() string { return strings.Join(p.Lines, "\n") }

// FromText builds a linear payload from external clipboard text.
func FromText(s string) Payload {
	return Payload{Kind: LinearPayload, Lines: strings.Split(s, "\n")}
}

// Paste writes the payload at origin and records one undo entry for the
// whole paste. Line i goes to row origin.Row+i starting at origin.Col.
// Spaces diverge by kind: a rectangular payload's spaces overwrite the
// covered cells with absence, which is what makes cut+paste of the same
// rectangle an exact restore; a linear payload's spaces are not content and
// leave covered cells alone.
func Paste(g *grid.Grid, log *undo.Log, origin grid.Pos, p Payload) bool {
	if p.Empty() {
		return false
	}
	rec := undo.NewRecorder(g)
	for i, line := range p.Lines {
		col := origin.Col
		for _, r := range line {
			pos := grid.Pos{Row: origin.Row + i, Col: col}
			col++
			if r == ' ' {
				if p.Kind == LinearPayload {
					continue
				}
				rec.Set(pos, grid.Cell{})
				continue
			}
			rec.Set(pos, grid.Cell{Rune: r})
		}
	}
	rec.Commit(log)
	return true
}
