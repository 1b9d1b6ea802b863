package usecase

import "sync"

// PendingRedirect is the Navigator of a server-side session. The browser is
// not reachable from the autosave goroutine, so the redirect is parked here
// and handed out with the next session response.
type PendingRedirect struct {
	mu   sync.Mutex
	path string
}

func (p *PendingRedirect) RedirectTo(path string) {
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
}

// Take returns the parked path, if any, and clears it.
func (p *PendingRedirect) Take() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	path := p.path
	p.path = ""
	return path
}
