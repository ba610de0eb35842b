package app

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/jackgrauer/chonk-note/internal/config"
	"github.com/jackgrauer/chonk-note/internal/editor"
	"github.com/jackgrauer/chonk-note/internal/input"
	"github.com/jackgrauer/chonk-note/internal/theme"
	"github.com/jackgrauer/chonk-note/internal/undo"
)

// Update is the bubbletea message loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ed.Resize(m.width, m.paneHeight())
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.applyCommands(m.mouse.HandleClick(msg, m.transformer()))

	case tea.MouseMotionMsg:
		return m.applyCommands(m.mouse.HandleMotion(msg, m.transformer()))

	case tea.MouseReleaseMsg:
		return m.applyCommands(m.mouse.HandleRelease(msg, m.transformer()))

	case tea.MouseWheelMsg:
		return m.applyCommands(m.mouse.HandleWheel(msg))

	case tea.BlurMsg:
		m.mouse.Reset()
		return m, nil

	case ConfigReloadedMsg:
		config.ApplyOverrides(config.Overrides{}, msg.Config)
		m.registry = config.NewKeybindRegistry(msg.Config)
		if err := theme.Initialize(config.ThemeName); err != nil {
			log.Error("theme reload failed", "error", err)
		}
		m.setStatus("config reloaded")
		return m, expireStatus(m.statusSetAt)

	case populateDoneMsg:
		return m.handlePopulateDone(msg)

	case saveDoneMsg:
		if msg.err != nil {
			log.Error("save failed", "error", msg.err)
			m.setStatus("save failed: " + msg.err.Error())
		} else {
			if m.note.ID == "" {
				m.note.ID = msg.id
			}
			m.ed.ClearDirty()
			m.setStatus("saved")
		}
		return m, expireStatus(m.statusSetAt)

	case clearStatusMsg:
		if msg.setAt.Equal(m.statusSetAt) {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	cmd, action := input.TranslateKey(msg, m.registry)
	if action != "" {
		return m.handleAction(action)
	}
	if cmd == nil {
		return m, nil
	}
	return m.applyCommands([]editor.Command{cmd})
}

func (m *Model) handleAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case "quit":
		if m.populateCancel != nil {
			m.populateCancel()
		}
		return m, tea.Quit
	case "toggle_help":
		m.showHelp = !m.showHelp
		return m, nil
	case "save":
		if m.store == nil {
			m.setStatus("no notes store")
			return m, expireStatus(m.statusSetAt)
		}
		m.note.Content = m.ed.Serialize()
		m.setStatus("saving...")
		return m, tea.Batch(saveNote(m.store, *m.note), expireStatus(m.statusSetAt))
	}
	return m, nil
}

// applyCommands runs translated editor commands and turns their side effects
// into bubbletea commands: clipboard writes after cut/copy, autosave
// scheduling after mutations, and status text for the undo/redo sentinels.
func (m *Model) applyCommands(cmds []editor.Command) (tea.Model, tea.Cmd) {
	var out []tea.Cmd
	for _, cmd := range cmds {
		err := m.ed.Apply(cmd)
		switch {
		case errors.Is(err, undo.ErrNothingToUndo):
			m.setStatus("nothing to undo")
			out = append(out, expireStatus(m.statusSetAt))
		case errors.Is(err, undo.ErrNothingToRedo):
			m.setStatus("nothing to redo")
			out = append(out, expireStatus(m.statusSetAt))
		}
		switch cmd.(type) {
		case editor.Cut, editor.Copy:
			if text := m.ed.ClipboardText(); text != "" {
				out = append(out, tea.SetClipboard(text))
			}
		}
	}
	if m.ed.Dirty() && m.autosaver != nil {
		n := *m.note
		n.Content = m.ed.Serialize()
		m.autosaver.Update(n)
	}
	return m, tea.Batch(out...)
}

func (m *Model) handlePopulateDone(msg populateDoneMsg) (tea.Model, tea.Cmd) {
	m.populating = false
	m.populateCancel = nil

	if msg.err != nil {
		log.Error("document population failed", "error", msg.err)
		m.setStatus("extraction failed: " + msg.err.Error())
		return m, expireStatus(m.statusSetAt)
	}

	m.ed.SwapGrid(msg.grid)
	m.report = msg.report
	m.hasReport = true

	status := fmt.Sprintf("placed %d characters", msg.report.Placed)
	if msg.report.LowFidelity() {
		status += " (low fidelity)"
	}
	m.setStatus(status)
	return m, expireStatus(m.statusSetAt)
}
