// Package input translates terminal events into editor commands. Keyboard
// resolution goes through the keybind registry so user remaps apply; mouse
// events go through the coordinate transformer so a click can never write to
// the wrong grid cell.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/jackgrauer/chonk-note/internal/config"
	"github.com/jackgrauer/chonk-note/internal/editor"
)

// Scroll distances in rows.
const (
	wheelLines = 3
	pageLines  = 10
)

// actionCommands maps config action names to editor commands.
var actionCommands = map[string]editor.Command{
	"move_up":          editor.Move{Dir: editor.Up},
	"move_down":        editor.Move{Dir: editor.Down},
	"move_left":        editor.Move{Dir: editor.Left},
	"move_right":       editor.Move{Dir: editor.Right},
	"select_up":        editor.Move{Dir: editor.Up, Extend: true},
	"select_down":      editor.Move{Dir: editor.Down, Extend: true},
	"select_left":      editor.Move{Dir: editor.Left, Extend: true},
	"select_right":     editor.Move{Dir: editor.Right, Extend: true},
	"scroll_up":        editor.Scroll{DY: -pageLines},
	"scroll_down":      editor.Scroll{DY: pageLines},
	"line_start":       editor.LineStart{},
	"line_end":         editor.LineEnd{},
	"delete_back":      editor.DeleteBack{},
	"delete_forward":   editor.DeleteForward{},
	"newline":          editor.NewLine{},
	"toggle_overwrite": editor.ToggleOverwrite{},
	"undo":             editor.Undo{},
	"redo":             editor.Redo{},
	"clear_selection":  editor.ClearSelection{},
	"cut":              editor.Cut{},
	"copy":             editor.Copy{},
	"paste":            editor.Paste{},
}

// TranslateKey resolves a key press to an editor command. Actions the editor
// does not handle (save, quit, toggle_help) are returned as the action name
// for the app layer. Unbound printable keys become Insert commands.
func TranslateKey(msg tea.KeyPressMsg, reg *config.KeybindRegistry) (editor.Command, string) {
	key := msg.String()
	if action := reg.GetAction(key); action != "" {
		if cmd, ok := actionCommands[action]; ok {
			return cmd, ""
		}
		return nil, action
	}
	if text := printableText(key); text != "" {
		return editor.Insert{Text: text}, ""
	}
	return nil, ""
}

// printableText returns the text a key press should insert, or "".
func printableText(key string) string {
	if key == "space" {
		return " "
	}
	runes := []rune(key)
	if len(runes) != 1 {
		return ""
	}
	if runes[0] < ' ' {
		return ""
	}
	return key
}
