package consent

import (
	"sync"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/entity"
)

// Bus broadcasts consent decisions to every subscribed observer. Observers
// may be mounted in independent parts of the page and share no state; the
// broadcast is what makes them converge after a write.
//
// There is no cross-tab guarantee and no locking around the decision itself:
// writes only happen from explicit, serialized user clicks.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan entity.ConsentDecision
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan entity.ConsentDecision)}
}

// Subscribe registers an observer. The returned cancel func must be called on
// teardown; after cancel the channel is closed and no longer receives.
func (b *Bus) Subscribe() (<-chan entity.ConsentDecision, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan entity.ConsentDecision, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the decision to all subscribers without ever blocking the
// writer. A subscriber that has not drained its previous value gets it
// replaced, so every observer always sees the latest decision.
func (b *Bus) Publish(decision entity.ConsentDecision) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- decision:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- decision:
			default:
			}
		}
	}
}

// Subscribers reports the current observer count.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
