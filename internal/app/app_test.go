package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/layout"
	"github.com/jackgrauer/chonk-note/internal/notes"
)

var errTest = errors.New("boom")

func newTestModel(t *testing.T, o Options) *Model {
	t.Helper()
	m := New(o)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	return m
}

func press(m *Model, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestTypingThroughUpdate(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, tea.KeyPressMsg{Code: 'h', Text: "h"})
	press(m, tea.KeyPressMsg{Code: 'i', Text: "i"})

	if got := m.Editor().Serialize(); got != "hi" {
		t.Errorf("Serialize() = %q, want %q", got, "hi")
	}
	if !m.Editor().Dirty() {
		t.Error("typing did not mark the editor dirty")
	}
}

func TestQuitAction(t *testing.T) {
	m := newTestModel(t, Options{})

	cmd := press(m, tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("quit produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce QuitMsg")
	}
}

func TestHelpTogglesAndClosesOnAnyKey(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl})
	if !m.showHelp {
		t.Fatal("help did not open")
	}

	// Any key closes help without reaching the editor.
	press(m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	if m.showHelp {
		t.Error("help did not close")
	}
	if got := m.Editor().Serialize(); got != "" {
		t.Errorf("key leaked to editor while help was open: %q", got)
	}
}

func TestUndoEmptyShowsStatus(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl})
	if !strings.Contains(m.status, "nothing to undo") {
		t.Errorf("status = %q, want undo notice", m.status)
	}
}

func TestSaveWithoutStore(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if !strings.Contains(m.status, "no notes store") {
		t.Errorf("status = %q, want missing store notice", m.status)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	store, err := notes.Open(filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close() //nolint:errcheck

	m := newTestModel(t, Options{Store: store})
	press(m, tea.KeyPressMsg{Code: 'a', Text: "a"})

	m.note.Content = m.Editor().Serialize()
	msg := saveNote(store, *m.note)()
	done, ok := msg.(saveDoneMsg)
	if !ok {
		t.Fatalf("saveNote produced %T", msg)
	}
	if done.err != nil {
		t.Fatalf("save failed: %v", done.err)
	}
	if done.id == "" {
		t.Fatal("save did not assign an ID")
	}

	m.Update(done)
	if m.note.ID != done.id {
		t.Errorf("model did not adopt saved ID %q", done.id)
	}
	if m.Editor().Dirty() {
		t.Error("save did not clear the dirty flag")
	}
	if !strings.Contains(m.status, "saved") {
		t.Errorf("status = %q, want save confirmation", m.status)
	}

	got, err := store.Get(done.id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "a" {
		t.Errorf("stored content = %q, want %q", got.Content, "a")
	}
}

func TestPopulateDoneSwapsGrid(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, tea.KeyPressMsg{Code: 'x', Text: "x"})

	g := grid.New()
	g.Set(grid.Pos{Row: 0, Col: 0}, grid.Cell{Rune: 'P'})
	g.Set(grid.Pos{Row: 0, Col: 1}, grid.Cell{Rune: 'D'})

	m.Update(populateDoneMsg{grid: g, report: layout.Report{Placed: 2}})

	if got := m.Editor().Serialize(); got != "PD" {
		t.Errorf("Serialize() = %q, want %q", got, "PD")
	}
	if !strings.Contains(m.status, "placed 2") {
		t.Errorf("status = %q, want placement summary", m.status)
	}

	// The population is one undoable step back to the typed content.
	press(m, tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl})
	if got := m.Editor().Serialize(); got != "x" {
		t.Errorf("after undo Serialize() = %q, want %q", got, "x")
	}
}

func TestPopulateErrorKeepsGrid(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, tea.KeyPressMsg{Code: 'x', Text: "x"})

	_, cmd := m.Update(populateDoneMsg{err: errTest})
	if cmd == nil {
		t.Error("error status did not schedule expiry")
	}
	if got := m.Editor().Serialize(); got != "x" {
		t.Errorf("failed population changed the grid: %q", got)
	}
	if !strings.Contains(m.status, "extraction failed") {
		t.Errorf("status = %q, want failure notice", m.status)
	}
}

func TestStatusExpiry(t *testing.T) {
	m := newTestModel(t, Options{})

	m.setStatus("first")
	stale := m.statusSetAt
	m.setStatus("second")

	m.Update(clearStatusMsg{setAt: stale})
	if m.status != "second" {
		t.Errorf("stale expiry cleared live status %q", m.status)
	}
	m.Update(clearStatusMsg{setAt: m.statusSetAt})
	if m.status != "" {
		t.Errorf("status = %q after expiry, want empty", m.status)
	}
}

func TestMouseClickPlacesCursor(t *testing.T) {
	m := newTestModel(t, Options{})

	m.Update(tea.MouseClickMsg{X: 5, Y: 2, Button: tea.MouseLeft})
	if got := m.Editor().CursorPosition(); got != (grid.Pos{Row: 2, Col: 5}) {
		t.Errorf("cursor = %v, want {2 5}", got)
	}
}

func TestWheelScrollsViewport(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Editor().Load(strings.Repeat("line\n", 50))

	m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if m.Editor().Viewport().ScrollY == 0 {
		t.Error("wheel did not scroll the viewport")
	}
}
