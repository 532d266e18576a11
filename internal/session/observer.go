package session

import (
	"sync"

	"github.com/google/uuid"
)

// Identity is the currently signed-in principal as the auth layer sees
// it. A nil *Identity means "no session".
type Identity struct {
	UID   uuid.UUID
	Email string
}

// Listener is invoked exactly once per session transition: none to
// identity, identity to none, or identity to a different identity.
// On nil, dependents must drop any cached profile/post state.
type Listener func(identity *Identity)

// Observer tracks the current session and notifies subscribers on
// transitions. It performs no network calls itself.
type Observer struct {
	mu        sync.RWMutex
	current   *Identity
	listeners []Listener
}

func NewObserver() *Observer {
	return &Observer{}
}

// Current returns the signed-in identity, or nil if there is none.
func (o *Observer) Current() *Identity {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.current == nil {
		return nil
	}

	identity := *o.current
	return &identity
}

// Subscribe registers a listener for future transitions. Registration
// alone does not fire it.
func (o *Observer) Subscribe(l Listener) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.listeners = append(o.listeners, l)
}

// Set records a signed-in identity. Listeners fire only if the session
// actually changed.
func (o *Observer) Set(identity Identity) {
	o.mu.Lock()

	if o.current != nil && o.current.UID == identity.UID {
		o.current = &identity
		o.mu.Unlock()
		return
	}

	o.current = &identity
	listeners := make([]Listener, len(o.listeners))
	copy(listeners, o.listeners)
	o.mu.Unlock()

	for _, l := range listeners {
		l(&identity)
	}
}

// Clear drops the current session. Listeners fire with nil only if a
// session existed.
func (o *Observer) Clear() {
	o.mu.Lock()

	if o.current == nil {
		o.mu.Unlock()
		return
	}

	o.current = nil
	listeners := make([]Listener, len(o.listeners))
	copy(listeners, o.listeners)
	o.mu.Unlock()

	for _, l := range listeners {
		l(nil)
	}
}
