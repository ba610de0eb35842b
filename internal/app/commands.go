package app

import (
	"context"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/jackgrauer/chonk-note/internal/extract"
	"github.com/jackgrauer/chonk-note/internal/layout"
	"github.com/jackgrauer/chonk-note/internal/notes"
)

// populateFromFile decodes a document feed and lays it out into a detached
// grid off the update loop. The live grid is only touched when the result
// message is handled, so a slow or canceled population never leaves the
// editor half-filled.
func populateFromFile(ctx context.Context, path string, o layout.Options) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return populateDoneMsg{err: err}
		}
		defer f.Close() //nolint:errcheck // read-only file

		g, rep, err := extract.Populate(ctx, f, o)
		return populateDoneMsg{grid: g, report: rep, err: err}
	}
}

// saveNote persists the note in the background and reports the result.
// The saved ID comes back in the message so a first save can adopt the
// generated ID.
func saveNote(store *notes.Store, n notes.Note) tea.Cmd {
	return func() tea.Msg {
		err := store.Save(&n)
		return saveDoneMsg{id: n.ID, err: err}
	}
}

// expireStatus clears the status line after statusTTL, but only if no newer
// status replaced it in the meantime.
func expireStatus(setAt time.Time) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{setAt: setAt}
	})
}
