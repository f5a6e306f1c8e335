// Package storage guards access to open touch-up sessions. The editing
// core assumes a session exclusively owns its canvas and history, so the
// registry checks an item out to at most one session at a time.
package storage

import (
	"errors"
	"sync"

	"github.com/lehigh-university-libraries/stickerpress/internal/editor"
)

// ErrEditInProgress is returned when a session is already open.
var ErrEditInProgress = errors.New("a touch-up session is already open")

// EditRegistry tracks the single open edit session.
type EditRegistry struct {
	mu      sync.Mutex
	itemID  string
	session *editor.Session
}

// New creates an empty registry.
func New() *EditRegistry {
	return &EditRegistry{}
}

// Open registers a session for an item. Fails if any session is open.
func (r *EditRegistry) Open(itemID string, session *editor.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		return ErrEditInProgress
	}
	r.itemID = itemID
	r.session = session
	return nil
}

// Current returns the open session, if any.
func (r *EditRegistry) Current() (string, *editor.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.itemID, r.session, r.session != nil
}

// Close discards the open session. Closing with nothing open is a no-op;
// discarding never touches the item being edited.
func (r *EditRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itemID = ""
	r.session = nil
}
