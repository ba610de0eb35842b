package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/jackgrauer/chonk-note/internal/coords"
	"github.com/jackgrauer/chonk-note/internal/editor"
	"github.com/jackgrauer/chonk-note/internal/grid"
)

// MouseState tracks an in-progress press/drag so a click and a drag can be
// told apart: a plain click places the cursor (point selection), motion with
// the button held promotes it to a block selection anchored at the press
// position.
type MouseState struct {
	pressed  bool
	dragging bool
	pressPos grid.Pos
}

// Reset drops any in-progress drag, for focus loss.
func (s *MouseState) Reset() {
	*s = MouseState{}
}

// Dragging reports whether a block drag is in progress.
func (s *MouseState) Dragging() bool { return s.dragging }

// HandleClick translates a button press. Clicks outside the editing pane
// return no commands.
func (s *MouseState) HandleClick(msg tea.MouseClickMsg, tr *coords.Transformer) []editor.Command {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	pos, ok := tr.ToGrid(mouse.X, mouse.Y)
	if !ok {
		return nil
	}
	if mouse.Mod&tea.ModShift != 0 {
		// Shift-click extends a point selection from the cursor.
		return []editor.Command{editor.MoveTo{Pos: pos, Extend: true}}
	}
	s.pressed = true
	s.dragging = false
	s.pressPos = pos
	return []editor.Command{editor.BeginSelection{Pos: pos}}
}

// HandleMotion translates drag motion. The first motion after a press
// promotes the selection to block mode anchored at the press position.
func (s *MouseState) HandleMotion(msg tea.MouseMotionMsg, tr *coords.Transformer) []editor.Command {
	if !s.pressed {
		return nil
	}
	mouse := msg.Mouse()
	pos, ok := tr.ToGrid(mouse.X, mouse.Y)
	if !ok {
		return nil
	}
	if !s.dragging {
		s.dragging = true
		return []editor.Command{
			editor.BeginSelection{Pos: s.pressPos, Block: true},
			editor.ExtendSelection{Pos: pos},
		}
	}
	return []editor.Command{editor.ExtendSelection{Pos: pos}}
}

// HandleRelease ends a press. A release without motion leaves the point
// selection from the click in place.
func (s *MouseState) HandleRelease(msg tea.MouseReleaseMsg, tr *coords.Transformer) []editor.Command {
	if !s.pressed {
		return nil
	}
	s.pressed = false
	wasDrag := s.dragging
	s.dragging = false
	if !wasDrag {
		return nil
	}
	mouse := msg.Mouse()
	if pos, ok := tr.ToGrid(mouse.X, mouse.Y); ok {
		return []editor.Command{editor.ExtendSelection{Pos: pos}}
	}
	return nil
}

// HandleWheel translates wheel events to viewport scrolls.
func (s *MouseState) HandleWheel(msg tea.MouseWheelMsg) []editor.Command {
	switch msg.Button {
	case tea.MouseWheelUp:
		return []editor.Command{editor.Scroll{DY: -wheelLines}}
	case tea.MouseWheelDown:
		return []editor.Command{editor.Scroll{DY: wheelLines}}
	case tea.MouseWheelLeft:
		return []editor.Command{editor.Scroll{DX: -wheelLines}}
	case tea.MouseWheelRight:
		return []editor.Command{editor.Scroll{DX: wheelLines}}
	}
	return nil
}
