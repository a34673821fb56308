package services

import "sync"

// ShellRegistry keys live shells by user id so HTTP handlers can reach each
// viewer's session-scoped state between requests. A shell survives sign-out
// (with its flags cleared); it is replaced when the same user opens a new
// view.
type ShellRegistry struct {
	mu     sync.Mutex
	feed   *SessionFeed
	shells map[uint]*AppShell
}

func NewShellRegistry(feed *SessionFeed) *ShellRegistry {
	return &ShellRegistry{feed: feed, shells: make(map[uint]*AppShell)}
}

// Open builds and initializes a fresh shell for the identity, replacing and
// closing any previous one for the same user.
func (r *ShellRegistry) Open(identity Identity) (*AppShell, error) {
	shell := NewAppShell(identity)
	if err := shell.Initialize(r.feed); err != nil {
		shell.Close()
		return nil, err
	}

	r.mu.Lock()
	if prev, ok := r.shells[identity.UserID]; ok {
		prev.Close()
	}
	r.shells[identity.UserID] = shell
	r.mu.Unlock()

	return shell, nil
}

func (r *ShellRegistry) Get(userID uint) (*AppShell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shell, ok := r.shells[userID]
	return shell, ok
}

// Remove closes and drops the user's shell if one is live.
func (r *ShellRegistry) Remove(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shell, ok := r.shells[userID]; ok {
		shell.Close()
		delete(r.shells, userID)
	}
}

// Shells is the process-wide registry behind the /api/view surface.
var Shells = NewShellRegistry(Feed)
