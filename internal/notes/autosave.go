package notes

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultAutosaveDelay is how long after the last edit the autosaver waits
// before writing.
const DefaultAutosaveDelay = 2 * time.Second

// Autosaver debounces note saves. Update hands it the latest snapshot and
// returns immediately; the write happens on a timer goroutine once the
// snapshot stops changing for the delay interval.
type Autosaver struct {
	store *Store
	delay time.Duration

	mu      sync.Mutex
	pending *Note
	timer   *time.Timer
	closed  bool
}

// NewAutosaver returns an autosaver writing to store. A delay of zero or
// less uses DefaultAutosaveDelay.
func NewAutosaver(store *Store, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{store: store, delay: delay}
}

// Update records the latest state of the note and (re)arms the save timer.
// Only the newest snapshot is kept.
func (a *Autosaver) Update(n Note) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending = &n
	if a.timer == nil {
		a.timer = time.AfterFunc(a.delay, a.fire)
	} else {
		a.timer.Reset(a.delay)
	}
}

func (a *Autosaver) fire() {
	if err := a.Flush(); err != nil {
		log.Error("autosave failed", "error", err)
	}
}

// Flush writes the pending snapshot now, if there is one.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	n := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()

	if n == nil {
		return nil
	}
	return a.store.Save(n)
}

// Close flushes any pending snapshot and stops the autosaver. Updates after
// Close are dropped.
func (a *Autosaver) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush()
}
