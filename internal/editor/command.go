package editor

import "github.com/jackgrauer/chonk-note/internal/grid"

// Command is one editor operation. The input layer translates keys and mouse
// events into commands; Apply dispatches each to its handler. Handlers take
// the state they need explicitly, so every command is testable without a
// running terminal.
type Command interface {
	isCommand()
}

// Direction of cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Move moves the cursor one cell. With Extend set the move grows a point
// selection instead of clearing it.
type Move struct {
	Dir    Direction
	Extend bool
}

// MoveTo places the cursor at an absolute grid position (mouse click).
type MoveTo struct {
	Pos    grid.Pos
	Extend bool
}

// LineStart moves the cursor to the first column of the row.
type LineStart struct{}

// LineEnd moves the cursor just past the last cell of the row.
type LineEnd struct{}

// Insert types text at the cursor.
type Insert struct {
	Text string
}

// DeleteBack is backspace: delete before the cursor, joining lines at
// column zero.
type DeleteBack struct{}

// DeleteForward deletes the character under the cursor.
type DeleteForward struct{}

// NewLine splits the current line at the cursor.
type NewLine struct{}

// ToggleOverwrite switches between insert and overwrite typing.
type ToggleOverwrite struct{}

// BeginSelection starts a selection at a grid position. Block selections
// come from mouse drags; point selections from shift-clicks.
type BeginSelection struct {
	Pos   grid.Pos
	Block bool
}

// ExtendSelection moves the selection head or block corner.
type ExtendSelection struct {
	Pos grid.Pos
}

// ClearSelection deactivates the selection.
type ClearSelection struct{}

// Cut captures the selection to the clipboard and blanks the cells.
type Cut struct{}

// Copy captures the selection to the clipboard.
type Copy struct{}

// Paste writes the clipboard at the cursor.
type Paste struct{}

// Undo reverts the most recent entry.
type Undo struct{}

// Redo re-applies the most recently undone entry.
type Redo struct{}

// Scroll moves the viewport without moving the cursor.
type Scroll struct {
	DX, DY int
}

func (Move) isCommand()            {}
func (MoveTo) isCommand()          {}
func (LineStart) isCommand()       {}
func (LineEnd) isCommand()         {}
func (Insert) isCommand()          {}
func (DeleteBack) isCommand()      {}
func (DeleteForward) isCommand()   {}
func (NewLine) isCommand()         {}
func (ToggleOverwrite) isCommand() {}
func (BeginSelection) isCommand()  {}
func (ExtendSelection) isCommand() {}
func (ClearSelection) isCommand()  {}
func (Cut) isCommand()             {}
func (Copy) isCommand()            {}
func (Paste) isCommand()           {}
func (Undo) isCommand()            {}
func (Redo) isCommand()            {}
func (Scroll) isCommand()          {}
