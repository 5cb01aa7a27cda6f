package registry

import (
	"context"
	"reflect"

	"github.com/zeusync/entitypool/internal/core/pool"
)

// Kind is a typed registry key. Its type parameters tie the kind name to one
// entity type and one config type, so mismatched configs fail to compile.
//
//	var Rectangle = registry.NewKind[*Rectangle, RectangleConfig]("rectangle")
//	rect, err := Rectangle.Create(reg, RectangleConfig{Width: 300, Height: 300})
type Kind[E pool.Poolable[C], C any] struct {
	name string
}

// NewKind declares a kind. Two kinds with the same name refer to the same
// registry slot.
func NewKind[E pool.Poolable[C], C any](name string) Kind[E, C] {
	return Kind[E, C]{name: name}
}

func (k Kind[E, C]) Name() string {
	return k.name
}

func (k Kind[E, C]) String() string {
	return k.name
}

// EntityType returns the reflect.Type of E.
func (k Kind[E, C]) EntityType() reflect.Type {
	return reflect.TypeFor[E]()
}

// ConfigType returns the reflect.Type of C.
func (k Kind[E, C]) ConfigType() reflect.Type {
	return reflect.TypeFor[C]()
}

// Register is shorthand for Register(r, k, p).
func (k Kind[E, C]) Register(r *Registry, p Pool[E, C]) (Entry, error) {
	return Register(r, k, p)
}

// Create is shorthand for Create(r, k, cfg).
func (k Kind[E, C]) Create(r *Registry, cfg C) (E, error) {
	return Create(r, k, cfg)
}

// CreateContext is shorthand for CreateContext(ctx, r, k, cfg).
func (k Kind[E, C]) CreateContext(ctx context.Context, r *Registry, cfg C) (E, error) {
	return CreateContext(ctx, r, k, cfg)
}

// Release is shorthand for Release(r, k, e).
func (k Kind[E, C]) Release(r *Registry, e E) error {
	return Release(r, k, e)
}
