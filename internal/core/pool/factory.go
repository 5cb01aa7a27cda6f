// Package pool implements reusable instance factories.
//
// A Factory owns a LIFO free list of idle instances and a constructor. Every
// instance it builds is in exactly one of two states: pooled (on the free
// list, reset) or active (handed to a caller, initialized). Create moves an
// instance from pooled to active, Release moves it back.
package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/pkg/generic"
)

// Poolable is the constraint on pooled entity types. Instances must be
// comparable so the factory can track their ownership state; pointer types
// satisfy this naturally.
type Poolable[C any] interface {
	comparable
	entity.Entity[C]
}

type state uint8

const (
	statePooled state = iota
	stateActive
)

// Factory is a pooled constructor for one entity type E with config type C.
// It is safe for concurrent use; Create and Release are linearizable.
type Factory[E Poolable[C], C any] struct {
	name      string
	construct func() E
	capacity  int
	policy    Policy
	observers []Observer

	mu      sync.Mutex
	free    *generic.Stack[E]
	owned   map[E]state
	vacancy chan struct{} // closed and replaced whenever an instance becomes available
	closed  bool
	stats   Stats
}

// New builds a factory around construct and eagerly constructs the pre-warm
// count. construct must return a raw instance and must not call Init.
func New[E Poolable[C], C any](construct func() E, opts ...Option) (*Factory[E, C], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newFactory[E, C](construct, o)
}

func newFactory[E Poolable[C], C any](construct func() E, o options) (*Factory[E, C], error) {
	if construct == nil {
		return nil, fmt.Errorf("%w: nil constructor", ErrInvalidOption)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	f := &Factory[E, C]{
		name:      o.name,
		construct: construct,
		capacity:  o.capacity,
		policy:    o.policy,
		observers: o.observers,
		owned:     make(map[E]state, o.prewarm),
		vacancy:   make(chan struct{}),
		stats:     Stats{Name: o.name, Capacity: o.capacity},
	}

	f.mu.Lock()
	f.free = generic.NewHotStack(f.constructLocked, o.prewarm)
	f.mu.Unlock()
	f.notifyConstruct(o.prewarm)

	return f, nil
}

// Name returns the label given by WithName.
func (f *Factory[E, C]) Name() string {
	return f.name
}

// Create is CreateContext with a background context.
func (f *Factory[E, C]) Create(cfg C) (E, error) {
	return f.CreateContext(context.Background(), cfg)
}

// CreateContext returns an initialized instance. The most recently released
// idle instance is reused first; when none is idle a new one is constructed.
// At capacity the exhaust policy decides between ErrPoolExhausted and waiting
// for a release; ctx bounds that wait.
//
// If Init fails the instance is reset and returned to the free list, and the
// error is returned wrapped.
func (f *Factory[E, C]) CreateContext(ctx context.Context, cfg C) (E, error) {
	var zero E
	for {
		e, res, wait, err := f.acquire(cfg)
		if res.constructed {
			f.notifyConstruct(1)
		}
		if err != nil {
			f.notifyReject(err)
			return zero, err
		}
		if wait == nil {
			f.notifyAcquire(res.reused)
			return e, nil
		}

		select {
		case <-wait:
		case <-ctx.Done():
			err = fmt.Errorf("pool %s: wait for instance: %w", f.name, ctx.Err())
			f.recordReject()
			f.notifyReject(err)
			return zero, err
		}
	}
}

type acquireResult struct {
	reused      bool
	constructed bool
}

// acquire either returns an active instance, an error, or a channel to wait on.
func (f *Factory[E, C]) acquire(cfg C) (e E, res acquireResult, wait <-chan struct{}, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		f.stats.Rejected++
		return e, res, nil, fmt.Errorf("pool %s: %w", f.name, ErrFactoryClosed)
	}

	var ok bool
	if e, ok = f.free.Pop(); ok {
		res.reused = true
	} else if f.capacity == 0 || len(f.owned) < f.capacity {
		e = f.constructLocked()
		res.constructed = true
	} else if f.policy == PolicyBlock {
		return e, res, f.vacancy, nil
	} else {
		f.stats.Rejected++
		return e, res, nil, fmt.Errorf("pool %s: %w (capacity %d)", f.name, ErrPoolExhausted, f.capacity)
	}

	if err = e.Init(cfg); err != nil {
		e.Reset()
		f.free.Push(e)
		f.signalLocked()
		f.stats.Rejected++
		var zero E
		return zero, acquireResult{constructed: res.constructed}, nil, fmt.Errorf("pool %s: init: %w", f.name, err)
	}

	f.owned[e] = stateActive
	f.stats.Created++
	if res.reused {
		f.stats.Reused++
	}
	return e, res, nil, nil
}

// Release resets e and returns it to the free list. Releasing an instance
// that is already pooled fails with ErrDoubleRelease; releasing one this
// factory never built fails with ErrForeignEntity. Neither touches the free list.
func (f *Factory[E, C]) Release(e E) error {
	err := f.release(e)
	if err != nil {
		f.notifyReject(err)
		return err
	}
	f.notifyRelease()
	return nil
}

func (f *Factory[E, C]) release(e E) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		f.stats.Rejected++
		return fmt.Errorf("pool %s: %w", f.name, ErrFactoryClosed)
	}

	st, ok := f.owned[e]
	switch {
	case !ok:
		f.stats.Rejected++
		return fmt.Errorf("pool %s: %w", f.name, ErrForeignEntity)
	case st == statePooled:
		f.stats.Rejected++
		return fmt.Errorf("pool %s: %w", f.name, ErrDoubleRelease)
	}

	e.Reset()
	f.owned[e] = statePooled
	f.free.Push(e)
	f.stats.Released++
	f.signalLocked()
	return nil
}

// Reserve constructs n more raw instances onto the free list. On a capped
// factory it stops at capacity and returns ErrPoolExhausted.
func (f *Factory[E, C]) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("pool %s: %w: negative reserve %d", f.name, ErrInvalidOption, n)
	}

	built, err := f.reserve(n)
	f.notifyConstruct(built)
	return err
}

func (f *Factory[E, C]) reserve(n int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, fmt.Errorf("pool %s: %w", f.name, ErrFactoryClosed)
	}
	for i := 0; i < n; i++ {
		if f.capacity > 0 && len(f.owned) >= f.capacity {
			return i, fmt.Errorf("pool %s: reserved %d of %d: %w (capacity %d)", f.name, i, n, ErrPoolExhausted, f.capacity)
		}
		f.free.Push(f.constructLocked())
	}
	if n > 0 {
		f.signalLocked()
	}
	return n, nil
}

// Stats returns a snapshot of the factory counters.
func (f *Factory[E, C]) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.stats
	s.Idle = f.free.Len()
	s.Active = len(f.owned) - s.Idle
	return s
}

// Close tears the factory down. destroy, if non-nil, is called once for
// every instance the factory owns, idle or still active. Blocked creators are
// woken with ErrFactoryClosed. Calling Close more than once is a no-op.
func (f *Factory[E, C]) Close(destroy func(E)) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	all := make([]E, 0, len(f.owned))
	for e := range f.owned {
		all = append(all, e)
	}
	f.owned = make(map[E]state)
	f.free.Drain(nil)
	close(f.vacancy)
	f.mu.Unlock()

	if destroy != nil {
		for _, e := range all {
			destroy(e)
		}
	}
}

func (f *Factory[E, C]) constructLocked() E {
	e := f.construct()
	f.owned[e] = statePooled
	f.stats.Constructed++
	return e
}

// signalLocked wakes every goroutine waiting for an instance.
func (f *Factory[E, C]) signalLocked() {
	close(f.vacancy)
	f.vacancy = make(chan struct{})
}

func (f *Factory[E, C]) recordReject() {
	f.mu.Lock()
	f.stats.Rejected++
	f.mu.Unlock()
}

func (f *Factory[E, C]) notifyConstruct(n int) {
	for i := 0; i < n; i++ {
		for _, obs := range f.observers {
			obs.OnConstruct(f.name)
		}
	}
}

func (f *Factory[E, C]) notifyAcquire(reused bool) {
	for _, obs := range f.observers {
		obs.OnAcquire(f.name, reused)
	}
}

func (f *Factory[E, C]) notifyRelease() {
	for _, obs := range f.observers {
		obs.OnRelease(f.name)
	}
}

func (f *Factory[E, C]) notifyReject(err error) {
	for _, obs := range f.observers {
		obs.OnReject(f.name, err)
	}
}
