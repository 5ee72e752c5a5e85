package scriptgate

import "sync"

// InjectFunc performs the actual script injection (creating the script
// element, wiring the loader). It runs at most once per identity.
type InjectFunc func() error

// Registry enforces idempotent injection: at most one script with a given
// stable identity is ever injected per page lifetime, no matter how many
// gates or re-arms target it.
type Registry struct {
	mu       sync.Mutex
	injected map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{injected: make(map[string]bool)}
}

// InjectOnce runs inject for id unless it already ran. It returns whether
// this call performed the injection.
func (r *Registry) InjectOnce(id string, inject InjectFunc) (bool, error) {
	r.mu.Lock()
	if r.injected[id] {
		r.mu.Unlock()
		return false, nil
	}
	// Mark before running so a concurrent gate cannot double-inject. A failed
	// inject stays marked: re-running a half-loaded third-party script is
	// worse than losing it for this page lifetime.
	r.injected[id] = true
	r.mu.Unlock()

	if inject == nil {
		return true, nil
	}
	return true, inject()
}

// Injected reports whether id has been injected.
func (r *Registry) Injected(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.injected[id]
}
