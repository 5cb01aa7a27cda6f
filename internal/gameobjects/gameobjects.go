// Package gameobjects holds the pooled scene objects and the kinds they are
// registered under.
//
// Every object owns one root view node for its whole pooled lifetime. Init
// builds the children and transform from the config; Reset detaches the root
// from its scene and tears the children down again, so a reused object is
// indistinguishable from a fresh one.
package gameobjects

import (
	"fmt"

	"github.com/zeusync/entitypool/internal/assets"
	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/pool"
	"github.com/zeusync/entitypool/internal/core/registry"
)

var (
	Rectangles     = registry.NewKind[*Rectangle, RectangleConfig]("rectangle")
	RectangleChess = registry.NewKind[*Rectangle, RectangleConfig]("rectangleChess")
	SpriteGrids    = registry.NewKind[*SpriteGrid, SpriteGridConfig]("spriteGrid")
	Sprites        = registry.NewKind[*Sprite, SpriteConfig]("sprite")
	Spines         = registry.NewKind[*Spine, SpineConfig]("spine")
)

// Kinds lists the name of every kind above.
var Kinds = []string{
	Rectangles.Name(),
	RectangleChess.Name(),
	SpriteGrids.Name(),
	Sprites.Name(),
	Spines.Name(),
}

var (
	_ entity.Viewer  = (*Rectangle)(nil)
	_ entity.Viewer  = (*SpriteGrid)(nil)
	_ entity.Viewer  = (*Sprite)(nil)
	_ entity.Viewer  = (*Spine)(nil)
	_ entity.Updater = (*Spine)(nil)
)

// PoolSettings sizes the factory of one kind.
type PoolSettings struct {
	Prewarm  int
	Capacity int
	Policy   pool.Policy
}

// DefaultPrewarm is the number of idle instances built per kind when no
// settings are given.
func DefaultPrewarm() map[string]int {
	return map[string]int{
		Rectangles.Name():  10,
		SpriteGrids.Name(): 5,
		Sprites.Name():     15,
		Spines.Name():      2,
	}
}

// RegisterDefaults registers one factory per kind on r. Kinds missing from
// settings get DefaultPrewarm, unbounded. opts are applied to every factory
// before the per-kind settings. A factory replaced by this call is closed.
func RegisterDefaults(r *registry.Registry, src assets.Source, settings map[string]PoolSettings, opts ...pool.Option) error {
	if src == nil {
		return fmt.Errorf("register game objects: nil asset source")
	}
	resolve := func(kind string) PoolSettings {
		if s, ok := settings[kind]; ok {
			return s
		}
		return PoolSettings{Prewarm: DefaultPrewarm()[kind]}
	}

	newRectangle := func() *Rectangle { return NewRectangle() }
	if err := register(r, Rectangles, newRectangle, resolve(Rectangles.Name()), opts); err != nil {
		return err
	}
	if err := register(r, RectangleChess, newRectangle, resolve(RectangleChess.Name()), opts); err != nil {
		return err
	}
	if err := register(r, SpriteGrids, func() *SpriteGrid { return NewSpriteGrid(src) }, resolve(SpriteGrids.Name()), opts); err != nil {
		return err
	}
	if err := register(r, Sprites, func() *Sprite { return NewSprite(src) }, resolve(Sprites.Name()), opts); err != nil {
		return err
	}
	return register(r, Spines, func() *Spine { return NewSpine(src) }, resolve(Spines.Name()), opts)
}

func register[E pool.Poolable[C], C any](r *registry.Registry, k registry.Kind[E, C], construct func() E, s PoolSettings, opts []pool.Option) error {
	all := make([]pool.Option, 0, len(opts)+4)
	all = append(all, opts...)
	all = append(all,
		pool.WithName(k.Name()),
		pool.WithPrewarm(s.Prewarm),
		pool.WithCapacity(s.Capacity),
		pool.WithExhaustPolicy(s.Policy),
	)

	f, err := pool.New[E, C](construct, all...)
	if err != nil {
		return fmt.Errorf("kind %s: %w", k.Name(), err)
	}
	prev, err := k.Register(r, f)
	if err != nil {
		return err
	}
	if prev != nil {
		prev.Close(DestroyView)
	}
	return nil
}

// DestroyView destroys the view of e if it has one. It is meant for
// registry.Close and Factory.Close.
func DestroyView(e any) {
	if v, ok := e.(entity.Viewer); ok {
		v.View().Destroy()
	}
}
