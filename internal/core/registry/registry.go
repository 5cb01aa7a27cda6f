// Package registry maps entity kinds to pooled factories and dispatches
// create and release calls to them.
//
// The registry is an explicit value: the application builds one at startup,
// registers a factory per kind, and passes it to whoever spawns entities.
// Registration is expected to finish before steady-state use, though the
// registry stays safe for concurrent use either way.
package registry

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/zeusync/entitypool/internal/core/pool"
	"github.com/zeusync/entitypool/pkg/concurrent"
	"github.com/zeusync/entitypool/pkg/sequence"
)

type Registry struct {
	mu       sync.RWMutex
	bindings map[string]binding
}

func New() *Registry {
	return &Registry{
		bindings: make(map[string]binding),
	}
}

// Register stores p under k. An existing registration for the same name is
// replaced and returned so the caller can close it; last write wins.
func Register[E pool.Poolable[C], C any](r *Registry, k Kind[E, C], p Pool[E, C]) (Entry, error) {
	if k.name == "" {
		return nil, fmt.Errorf("%w: empty kind name", ErrInvalidKind)
	}
	if isNil(p) {
		return nil, fmt.Errorf("%w: nil factory for kind %s", ErrInvalidKind, k.name)
	}

	r.mu.Lock()
	prev := r.bindings[k.name]
	r.bindings[k.name] = &typedBinding[E, C]{kind: k, pool: p}
	r.mu.Unlock()

	if prev == nil {
		return nil, nil
	}
	return prev, nil
}

// Create is CreateContext with a background context.
func Create[E pool.Poolable[C], C any](r *Registry, k Kind[E, C], cfg C) (E, error) {
	return CreateContext(context.Background(), r, k, cfg)
}

// CreateContext looks up the factory for k and delegates to it, returning
// its result unchanged. An unregistered kind fails with ErrUnknownKind before
// anything is allocated.
func CreateContext[E pool.Poolable[C], C any](ctx context.Context, r *Registry, k Kind[E, C], cfg C) (E, error) {
	var zero E
	b, err := typed(r, k)
	if err != nil {
		return zero, err
	}
	return b.pool.CreateContext(ctx, cfg)
}

// Release forwards e to the factory registered for k.
func Release[E pool.Poolable[C], C any](r *Registry, k Kind[E, C], e E) error {
	b, err := typed(r, k)
	if err != nil {
		return err
	}
	return b.pool.Release(e)
}

// isNil also catches a typed nil pointer stored in the interface.
func isNil(p any) bool {
	if p == nil {
		return true
	}
	switch v := reflect.ValueOf(p); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func typed[E pool.Poolable[C], C any](r *Registry, k Kind[E, C]) (*typedBinding[E, C], error) {
	b, err := r.lookup(k.name)
	if err != nil {
		return nil, err
	}
	tb, ok := b.(*typedBinding[E, C])
	if !ok {
		return nil, fmt.Errorf("kind %s: %w: registered as (%s, %s), requested as (%s, %s)",
			k.name, ErrKindMismatch, b.EntityType(), b.ConfigType(), k.EntityType(), k.ConfigType())
	}
	return tb, nil
}

// CreateAny dispatches by kind name for callers that only know the kind at
// runtime. A config of the wrong dynamic type is rejected with
// entity.ErrInvalidConfig before the factory is called.
func (r *Registry) CreateAny(ctx context.Context, name string, cfg any) (any, error) {
	b, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return b.createAny(ctx, cfg)
}

// ReleaseAny is the runtime counterpart of Release.
func (r *Registry) ReleaseAny(name string, e any) error {
	b, err := r.lookup(name)
	if err != nil {
		return err
	}
	return b.releaseAny(e)
}

// Lookup returns the registration for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name]
	return b, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Unregister removes name and returns what was registered.
func (r *Registry) Unregister(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[name]
	if ok {
		delete(r.bindings, name)
	}
	return b, ok
}

// Kinds returns the registered kind names in ascending order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sequence.Sorted(sequence.Keys(r.bindings))
}

// Stats returns a snapshot per registered kind.
func (r *Registry) Stats() map[string]pool.Stats {
	r.mu.RLock()
	entries := sequence.Entries(r.bindings).Collect()
	r.mu.RUnlock()

	return sequence.ToMap(sequence.From(entries),
		func(e sequence.Entry[string, binding]) string { return e.Key },
		func(e sequence.Entry[string, binding]) pool.Stats { return e.Value.Stats() },
	)
}

// Warm reserves sizes[kind] extra idle instances per kind, one goroutine per
// kind. Every name must be registered; nothing is reserved otherwise.
func (r *Registry) Warm(ctx context.Context, sizes map[string]int) error {
	type job struct {
		entry Entry
		n     int
	}

	jobs := make([]job, 0, len(sizes))
	r.mu.RLock()
	for name, n := range sizes {
		b, ok := r.bindings[name]
		if !ok {
			r.mu.RUnlock()
			return fmt.Errorf("warm: %w: %q", ErrUnknownKind, name)
		}
		jobs = append(jobs, job{entry: b, n: n})
	}
	r.mu.RUnlock()

	pending := sequence.From(jobs).Filter(func(j job) bool { return j.n > 0 })
	return concurrent.ConcurrentContext(ctx, pending, 0, func(_ context.Context, j job) error {
		if err := j.entry.Reserve(j.n); err != nil {
			return fmt.Errorf("warm %s: %w", j.entry.Kind(), err)
		}
		return nil
	})
}

// Close tears down every registered factory and empties the registry.
// destroy, if non-nil, is called for every instance each factory owns.
func (r *Registry) Close(destroy func(kind string, e any)) {
	r.mu.Lock()
	bindings := r.bindings
	r.bindings = make(map[string]binding)
	r.mu.Unlock()

	for _, name := range sequence.Sorted(sequence.Keys(bindings)) {
		b := bindings[name]
		if destroy == nil {
			b.Close(nil)
			continue
		}
		b.Close(func(e any) { destroy(name, e) })
	}
}

func (r *Registry) lookup(name string) (binding, error) {
	r.mu.RLock()
	b, ok := r.bindings[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return b, nil
}
