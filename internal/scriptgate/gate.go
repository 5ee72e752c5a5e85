// Package scriptgate defers third-party script activation until consent is
// given and the script is likely to be needed. Each third-party integration
// owns one Gate; a shared Registry keeps injection idempotent across them.
package scriptgate

import (
	"context"
	"sync"
	"time"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/entity"
)

type State int

const (
	// StateIdle: not yet triggered, nothing observing.
	StateIdle State = iota
	// StateArmed: waiting on a viewport/idle signal.
	StateArmed
	// StateActivated is terminal. A gate never deactivates without a full
	// remount (a new Gate value).
	StateActivated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateActivated:
		return "activated"
	default:
		return "unknown"
	}
}

// Trigger is the activation policy for an armed gate. Exactly one of OnMount,
// NearViewport or Idle selects the signal; MinDelay applies on top of it.
// A zero Trigger behaves like OnMount.
type Trigger struct {
	OnMount      bool
	NearViewport *ViewportTrigger
	Idle         *IdleTrigger
	MinDelay     time.Duration
}

type ViewportTrigger struct {
	MarginPx int
}

type IdleTrigger struct {
	Timeout time.Duration
}

// ViewportObserver abstracts the intersection capability of the execution
// environment. Observe returns a signal channel that fires once the watched
// region comes within marginPx of the viewport, plus a release func.
// ok is false when the capability is unavailable; the gate then falls back to
// immediate activation rather than never activating.
type ViewportObserver interface {
	Observe(marginPx int) (signal <-chan struct{}, release func(), ok bool)
}

// Gate is the per-integration activation state machine:
// Idle -> Armed -> Activated, with Activated terminal. Teardown before
// activation releases pending timers and observers; no injection occurs.
type Gate struct {
	id       string
	registry *Registry
	inject   InjectFunc

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

func New(id string, registry *Registry, inject InjectFunc) *Gate {
	return &Gate{id: id, registry: registry, inject: inject}
}

func (g *Gate) ID() string { return g.id }

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Arm starts observing for the trigger signal. It is a no-op unless enabled
// (the consent gate predicate) and the gate is still idle. obs may be nil
// when no viewport capability exists.
func (g *Gate) Arm(ctx context.Context, enabled bool, trig Trigger, obs ViewportObserver) {
	if !enabled {
		return
	}

	g.mu.Lock()
	if g.state != StateIdle {
		g.mu.Unlock()
		return
	}
	g.state = StateArmed
	ctx, g.cancel = context.WithCancel(ctx)
	g.mu.Unlock()

	go g.await(ctx, trig, obs)
}

// BindDecisions arms the gate once an accepting consent decision arrives on
// the channel. A previously idle gate mounted elsewhere on the page activates
// this way without a reload. Rejections keep the gate idle; the binding keeps
// listening because the user may still accept later.
func (g *Gate) BindDecisions(ctx context.Context, decisions <-chan entity.ConsentDecision, trig Trigger, obs ViewportObserver) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-decisions:
				if !ok {
					return
				}
				if d.Enabled() {
					g.Arm(ctx, true, trig, obs)
					return
				}
			}
		}
	}()
}

// Teardown cancels a pending activation. Once activated it has no effect:
// activation is monotonic.
func (g *Gate) Teardown() {
	g.mu.Lock()
	cancel := g.cancel
	if g.state == StateArmed {
		g.state = StateIdle
	}
	g.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (g *Gate) await(ctx context.Context, trig Trigger, obs ViewportObserver) {
	armedAt := time.Now()

	fire, release := g.signal(trig, obs)
	if release != nil {
		defer release()
	}

	select {
	case <-ctx.Done():
		return
	case <-fire:
	}

	// Minimum delay counts from arming, not from the signal.
	if rem := trig.MinDelay - time.Since(armedAt); rem > 0 {
		t := time.NewTimer(rem)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}

	g.activate()
}

// signal resolves the trigger policy to a channel that fires when the gate
// should activate.
func (g *Gate) signal(trig Trigger, obs ViewportObserver) (<-chan struct{}, func()) {
	switch {
	case trig.NearViewport != nil:
		if obs != nil {
			if ch, release, ok := obs.Observe(trig.NearViewport.MarginPx); ok {
				return ch, release
			}
		}
		// Capability unavailable, fire immediately.
		return closedSignal(), nil

	case trig.Idle != nil:
		t := time.NewTimer(trig.Idle.Timeout)
		ch := make(chan struct{})
		done := make(chan struct{})
		go func() {
			select {
			case <-t.C:
				close(ch)
			case <-done:
			}
		}()
		release := func() {
			t.Stop()
			close(done)
		}
		return ch, release

	default: // OnMount and the zero Trigger
		return closedSignal(), nil
	}
}

func (g *Gate) activate() {
	g.mu.Lock()
	// Only an armed gate may activate; a concurrent Teardown already moved
	// the state back to idle and wins.
	if g.state != StateArmed {
		g.mu.Unlock()
		return
	}
	g.state = StateActivated
	g.mu.Unlock()

	// Another gate with the same identity may already have injected; the
	// registry keeps this idempotent and this gate still counts as activated.
	g.registry.InjectOnce(g.id, g.inject)
}

func closedSignal() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
