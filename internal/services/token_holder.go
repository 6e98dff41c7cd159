package services

import "sync"

// TokenHolder is the shared read view of the current credential. The
// session controller is the only writer; the gateway reads through the
// domain.TokenSource interface when attaching Authorization headers.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

// NewTokenHolder creates an empty holder.
func NewTokenHolder() *TokenHolder {
	return &TokenHolder{}
}

// Token implements domain.TokenSource.
func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *TokenHolder) set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}
