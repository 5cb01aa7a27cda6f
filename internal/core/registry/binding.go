package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/pool"
)

// Pool is the factory surface the registry dispatches to. *pool.Factory
// implements it.
type Pool[E any, C any] interface {
	CreateContext(ctx context.Context, cfg C) (E, error)
	Release(e E) error
	Reserve(n int) error
	Stats() pool.Stats
	Close(destroy func(E))
}

// Entry is the untyped view of one registration.
type Entry interface {
	Kind() string
	EntityType() reflect.Type
	ConfigType() reflect.Type
	Stats() pool.Stats
	Reserve(n int) error
	Close(destroy func(any))
}

type binding interface {
	Entry
	createAny(ctx context.Context, cfg any) (any, error)
	releaseAny(e any) error
}

type typedBinding[E pool.Poolable[C], C any] struct {
	kind Kind[E, C]
	pool Pool[E, C]
}

func (b *typedBinding[E, C]) Kind() string             { return b.kind.name }
func (b *typedBinding[E, C]) EntityType() reflect.Type { return b.kind.EntityType() }
func (b *typedBinding[E, C]) ConfigType() reflect.Type { return b.kind.ConfigType() }
func (b *typedBinding[E, C]) Stats() pool.Stats        { return b.pool.Stats() }
func (b *typedBinding[E, C]) Reserve(n int) error      { return b.pool.Reserve(n) }

func (b *typedBinding[E, C]) Close(destroy func(any)) {
	if destroy == nil {
		b.pool.Close(nil)
		return
	}
	b.pool.Close(func(e E) { destroy(e) })
}

// createAny checks the dynamic config type before the factory sees it.
// A *C is accepted and dereferenced.
func (b *typedBinding[E, C]) createAny(ctx context.Context, cfg any) (any, error) {
	var typed C
	switch c := cfg.(type) {
	case C:
		typed = c
	case *C:
		if c == nil {
			return nil, fmt.Errorf("kind %s: %w", b.kind.name, entity.Invalid("config", "nil pointer"))
		}
		typed = *c
	default:
		return nil, fmt.Errorf("kind %s: %w", b.kind.name,
			entity.Invalidf("config", "got %T, want %s", cfg, b.ConfigType()))
	}

	e, err := b.pool.CreateContext(ctx, typed)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (b *typedBinding[E, C]) releaseAny(e any) error {
	typed, ok := e.(E)
	if !ok {
		return fmt.Errorf("kind %s: %w: got %T, want %s", b.kind.name, ErrKindMismatch, e, b.EntityType())
	}
	return b.pool.Release(typed)
}
