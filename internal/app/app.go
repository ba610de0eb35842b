// Package app is the bubbletea model that ties the editor, the input
// translator, the notes store, and the extraction pipeline together into the
// chonk-note TUI.
package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/jackgrauer/chonk-note/internal/config"
	"github.com/jackgrauer/chonk-note/internal/coords"
	"github.com/jackgrauer/chonk-note/internal/editor"
	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/input"
	"github.com/jackgrauer/chonk-note/internal/layout"
	"github.com/jackgrauer/chonk-note/internal/notes"
)

// statusTTL is how long a transient status message stays on the bar.
const statusTTL = 3 * time.Second

// Options configures a new Model.
type Options struct {
	KeybindRegistry *config.KeybindRegistry
	Store           *notes.Store
	Autosaver       *notes.Autosaver
	Note            *notes.Note
	// FeedPath, when set, is a document feed to populate the grid from on
	// startup.
	FeedPath      string
	LayoutOptions layout.Options
	UndoDepth     int
}

// Model is the top-level application state.
type Model struct {
	ed       *editor.Editor
	registry *config.KeybindRegistry
	mouse    input.MouseState

	store     *notes.Store
	autosaver *notes.Autosaver
	note      *notes.Note

	feedPath   string
	layoutOpts layout.Options

	width, height int
	showHelp      bool
	status        string
	statusSetAt   time.Time

	report    layout.Report
	hasReport bool

	populating     bool
	populateCancel context.CancelFunc
}

// New builds the application model. The editor viewport starts at a nominal
// size and is resized on the first WindowSizeMsg.
func New(o Options) *Model {
	if o.KeybindRegistry == nil {
		o.KeybindRegistry = config.NewKeybindRegistry(config.DefaultConfig())
	}
	if o.LayoutOptions == (layout.Options{}) {
		o.LayoutOptions = layout.DefaultOptions()
	}
	m := &Model{
		ed:         editor.New(80, 24, o.UndoDepth),
		registry:   o.KeybindRegistry,
		store:      o.Store,
		autosaver:  o.Autosaver,
		note:       o.Note,
		feedPath:   o.FeedPath,
		layoutOpts: o.LayoutOptions,
	}
	if m.note == nil {
		m.note = &notes.Note{Title: "untitled"}
	}
	if m.note.Content != "" {
		m.ed.Load(m.note.Content)
	}
	return m
}

// Editor exposes the underlying editor, for tests.
func (m *Model) Editor() *editor.Editor { return m.ed }

// Dragging reports whether a mouse selection drag is in progress, for the
// motion event filter.
func (m *Model) Dragging() bool { return m.mouse.Dragging() }

// Init starts the feed population worker when a feed path was given.
func (m *Model) Init() tea.Cmd {
	if m.feedPath == "" {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.populating = true
	m.populateCancel = cancel
	return populateFromFile(ctx, m.feedPath, m.layoutOpts)
}

// transformer maps screen cells to grid positions for the editing pane.
// The pane is everything above the status bar.
func (m *Model) transformer() *coords.Transformer {
	return &coords.Transformer{
		PaneWidth:  m.width,
		PaneHeight: m.paneHeight(),
		View:       m.ed.Viewport(),
	}
}

func (m *Model) paneHeight() int {
	h := m.height
	if config.ShowStatusBar {
		h--
	}
	return max(h, 1)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusSetAt = time.Now()
}

// ConfigReloadedMsg is sent by the config file watcher when the file on
// disk changes.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
}

// populateDoneMsg carries the result of a feed population worker.
type populateDoneMsg struct {
	grid   *grid.Grid
	report layout.Report
	err    error
}

// clearStatusMsg expires a transient status message.
type clearStatusMsg struct {
	setAt time.Time
}

// saveDoneMsg reports a completed foreground save.
type saveDoneMsg struct {
	id  string
	err error
}
