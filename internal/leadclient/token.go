package leadclient

import (
	"context"
	"sync"
)

// TokenProvider executes an action-scoped bot-mitigation challenge and
// resolves with an opaque token.
type TokenProvider interface {
	Execute(ctx context.Context, siteKey, action string) (string, error)
}

// ProviderHandle models a capability that becomes available at an
// unpredictable time: the third-party mitigation library loads asynchronously
// and announces itself via Install. Consumers block in Await instead of
// assuming the provider exists.
type ProviderHandle struct {
	mu       sync.Mutex
	ready    chan struct{}
	provider TokenProvider
}

func NewProviderHandle() *ProviderHandle {
	return &ProviderHandle{ready: make(chan struct{})}
}

// Install publishes the provider and wakes every waiter. Repeat installs
// keep the first provider.
func (h *ProviderHandle) Install(p TokenProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.provider != nil {
		return
	}
	h.provider = p
	close(h.ready)
}

// Await blocks until the provider is installed or ctx expires.
func (h *ProviderHandle) Await(ctx context.Context) (TokenProvider, error) {
	select {
	case <-h.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.provider, nil
}

// Ready reports whether the provider is already installed.
func (h *ProviderHandle) Ready() bool {
	select {
	case <-h.ready:
		return true
	default:
		return false
	}
}
