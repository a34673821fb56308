package services

import "sync"

// Identity is the authenticated principal carried on the session feed.
// A nil *Identity in a SessionEvent means the user signed out.
type Identity struct {
	UserID    uint   `json:"userID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SessionEvent is one identity transition (sign-in, sign-out or token
// refresh) for the user identified by UserID.
type SessionEvent struct {
	UserID   uint
	Identity *Identity
}

// SessionFeed fans identity transitions out to subscribers. The auth routes
// publish into it; app shells subscribe once at startup and unsubscribe when
// they are disposed. Identity is never read ambiently from call sites: it
// flows through this single subscription point or through request claims.
type SessionFeed struct {
	mu   sync.Mutex
	next int
	subs map[int]func(SessionEvent)
}

func NewSessionFeed() *SessionFeed {
	return &SessionFeed{subs: make(map[int]func(SessionEvent))}
}

// Subscribe registers fn and returns an unsubscribe handle. Calling the
// handle more than once is harmless.
func (f *SessionFeed) Subscribe(fn func(SessionEvent)) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Publish delivers the event to every current subscriber on the caller's
// goroutine.
func (f *SessionFeed) Publish(ev SessionEvent) {
	f.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (f *SessionFeed) SignIn(id Identity) {
	f.Publish(SessionEvent{UserID: id.UserID, Identity: &id})
}

func (f *SessionFeed) SignOut(userID uint) {
	f.Publish(SessionEvent{UserID: userID, Identity: nil})
}

// Feed is the process-wide session feed the HTTP layer publishes into.
var Feed = NewSessionFeed()
