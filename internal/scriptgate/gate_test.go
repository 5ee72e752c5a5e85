package scriptgate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sinedis-soft/dionis-next-level-sub001/internal/consent"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/entity"
)

const (
	eventually = 2 * time.Second
	tick       = 5 * time.Millisecond
)

type countingInjector struct {
	calls atomic.Int32
}

func (c *countingInjector) inject() error {
	c.calls.Add(1)
	return nil
}

// fakeObserver is a controllable viewport capability.
type fakeObserver struct {
	signal    chan struct{}
	released  atomic.Bool
	available bool
}

func newFakeObserver(available bool) *fakeObserver {
	return &fakeObserver{signal: make(chan struct{}), available: available}
}

func (o *fakeObserver) Observe(marginPx int) (<-chan struct{}, func(), bool) {
	if !o.available {
		return nil, nil, false
	}
	return o.signal, func() { o.released.Store(true) }, true
}

func activated(g *Gate) func() bool {
	return func() bool { return g.State() == StateActivated }
}

func TestGateOnMountActivates(t *testing.T) {
	inj := &countingInjector{}
	g := New("analytics", NewRegistry(), inj.inject)

	g.Arm(context.Background(), true, Trigger{OnMount: true}, nil)

	assert.Eventually(t, activated(g), eventually, tick)
	assert.Equal(t, int32(1), inj.calls.Load())
}

func TestGateDisabledStaysIdle(t *testing.T) {
	inj := &countingInjector{}
	g := New("analytics", NewRegistry(), inj.inject)

	g.Arm(context.Background(), false, Trigger{OnMount: true}, nil)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, int32(0), inj.calls.Load())
}

// At most one script element per stable identity, across any number of
// gates and re-arms.
func TestIdempotentInjection(t *testing.T) {
	reg := NewRegistry()
	inj := &countingInjector{}

	g1 := New("gtm", reg, inj.inject)
	g2 := New("gtm", reg, inj.inject)

	g1.Arm(context.Background(), true, Trigger{OnMount: true}, nil)
	g2.Arm(context.Background(), true, Trigger{OnMount: true}, nil)

	assert.Eventually(t, activated(g1), eventually, tick)
	assert.Eventually(t, activated(g2), eventually, tick)
	assert.Equal(t, int32(1), inj.calls.Load())
	assert.True(t, reg.Injected("gtm"))
}

func TestIndependentGatesDoNotInterfere(t *testing.T) {
	reg := NewRegistry()
	injA := &countingInjector{}
	injB := &countingInjector{}

	a := New("analytics", reg, injA.inject)
	b := New("ads", reg, injB.inject)

	a.Arm(context.Background(), true, Trigger{OnMount: true}, nil)

	assert.Eventually(t, activated(a), eventually, tick)
	assert.Equal(t, StateIdle, b.State())

	b.Arm(context.Background(), true, Trigger{OnMount: true}, nil)
	assert.Eventually(t, activated(b), eventually, tick)

	assert.Equal(t, int32(1), injA.calls.Load())
	assert.Equal(t, int32(1), injB.calls.Load())
}

func TestGateIdleTrigger(t *testing.T) {
	inj := &countingInjector{}
	g := New("chat", NewRegistry(), inj.inject)

	g.Arm(context.Background(), true, Trigger{Idle: &IdleTrigger{Timeout: 30 * time.Millisecond}}, nil)

	assert.Equal(t, StateArmed, g.State())
	assert.Eventually(t, activated(g), eventually, tick)
}

func TestGateMinDelay(t *testing.T) {
	inj := &countingInjector{}
	g := New("ads", NewRegistry(), inj.inject)

	g.Arm(context.Background(), true, Trigger{OnMount: true, MinDelay: 60 * time.Millisecond}, nil)

	assert.NotEqual(t, StateActivated, g.State())
	assert.Eventually(t, activated(g), eventually, tick)
}

func TestGateViewportTrigger(t *testing.T) {
	inj := &countingInjector{}
	obs := newFakeObserver(true)
	g := New("map", NewRegistry(), inj.inject)

	g.Arm(context.Background(), true, Trigger{NearViewport: &ViewportTrigger{MarginPx: 200}}, obs)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateArmed, g.State())

	close(obs.signal)
	assert.Eventually(t, activated(g), eventually, tick)
	assert.Eventually(t, func() bool { return obs.released.Load() }, eventually, tick)
}

// No intersection capability: activate immediately rather than never.
func TestGateViewportUnavailableFallsBack(t *testing.T) {
	inj := &countingInjector{}
	g := New("map", NewRegistry(), inj.inject)

	g.Arm(context.Background(), true, Trigger{NearViewport: &ViewportTrigger{MarginPx: 200}}, newFakeObserver(false))

	assert.Eventually(t, activated(g), eventually, tick)
}

func TestGateTeardownBeforeActivation(t *testing.T) {
	inj := &countingInjector{}
	g := New("chat", NewRegistry(), inj.inject)

	g.Arm(context.Background(), true, Trigger{Idle: &IdleTrigger{Timeout: time.Hour}}, nil)
	assert.Equal(t, StateArmed, g.State())

	g.Teardown()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, int32(0), inj.calls.Load())
}

func TestGateTeardownAfterActivationIsNoop(t *testing.T) {
	inj := &countingInjector{}
	g := New("analytics", NewRegistry(), inj.inject)

	g.Arm(context.Background(), true, Trigger{OnMount: true}, nil)
	assert.Eventually(t, activated(g), eventually, tick)

	g.Teardown()
	assert.Equal(t, StateActivated, g.State())
}

// Stored consent flips to accepted: a previously idle gate mounted elsewhere
// activates through the broadcast, without a reload.
func TestGateActivatesOnConsentBroadcast(t *testing.T) {
	bus := consent.NewBus()
	decisions, cancel := bus.Subscribe()
	defer cancel()

	inj := &countingInjector{}
	g := New("analytics", NewRegistry(), inj.inject)
	g.BindDecisions(context.Background(), decisions, Trigger{OnMount: true}, nil)

	bus.Publish(entity.ConsentRejected)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateIdle, g.State())

	bus.Publish(entity.ConsentAccepted)
	assert.Eventually(t, activated(g), eventually, tick)
	assert.Equal(t, int32(1), inj.calls.Load())
}
