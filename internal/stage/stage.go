// Package stage is the orchestration layer: it spawns entities through the
// registry, keeps their views attached to one root node, ticks updaters once
// per frame and hands entities back to their pools on despawn.
//
// A Stage is driven from a single goroutine, like a render loop. The registry
// and pools behind it remain safe for concurrent use.
package stage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/events/bus"
	"github.com/zeusync/entitypool/internal/core/observability/log"
	"github.com/zeusync/entitypool/internal/core/observability/poolobs"
	"github.com/zeusync/entitypool/internal/core/pool"
	"github.com/zeusync/entitypool/internal/core/registry"
	"github.com/zeusync/entitypool/internal/core/view"
)

// Event types published by the stage.
const (
	EventSpawned   = "stage.spawned"
	EventDespawned = "stage.despawned"
)

var (
	ErrNotSpawned = errors.New("entity not spawned on this stage")
	ErrClosed     = errors.New("stage closed")
)

// Placement is the payload of stage events.
type Placement struct {
	Kind   string
	NodeID string
}

type Stage struct {
	reg    *registry.Registry
	logger log.Log
	bus    bus.EventBus
	root   *view.Node

	counters *poolobs.Counters
	subs     []bus.Subscription

	mu       sync.Mutex
	spawned  map[any]*placement
	updaters []entity.Updater
	frame    uint64
	closed   bool
}

func New(reg *registry.Registry, logger log.Log, b bus.EventBus) *Stage {
	s := &Stage{
		reg:      reg,
		logger:   logger.With(log.String("component", "stage")),
		bus:      b,
		root:     view.NewNode("stage"),
		counters: poolobs.NewCounters(),
		spawned:  make(map[any]*placement),
	}
	s.subscribePoolEvents()
	s.logger.Info("stage ready", log.Strings("kinds", reg.Kinds()))
	return s
}

// placement is the stage's record of one spawned entity.
type placement struct {
	kind    string
	updater entity.Updater
	view    *view.Node
}

func (p *placement) nodeID() string {
	if p.view == nil {
		return ""
	}
	return p.view.ID()
}

// subscribePoolEvents feeds pool lifecycle events published by a
// poolobs.BusObserver into the stage counters.
func (s *Stage) subscribePoolEvents() {
	handlers := map[string]func(poolobs.Lifecycle){
		poolobs.EventConstructed: func(l poolobs.Lifecycle) { s.counters.OnConstruct(l.Factory) },
		poolobs.EventAcquired:    func(l poolobs.Lifecycle) { s.counters.OnAcquire(l.Factory, l.Reused) },
		poolobs.EventReleased:    func(l poolobs.Lifecycle) { s.counters.OnRelease(l.Factory) },
		poolobs.EventRejected:    func(l poolobs.Lifecycle) { s.counters.OnReject(l.Factory, l.Err) },
	}
	for typ, handle := range handlers {
		sub, err := s.bus.Subscribe(typ, func(e bus.Event) error {
			if l, ok := e.Data().(poolobs.Lifecycle); ok {
				handle(l)
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("subscribe to pool events", log.String("type", typ), log.Error(err))
			continue
		}
		s.subs = append(s.subs, sub)
	}
}

// Root is the node every spawned view is attached to.
func (s *Stage) Root() *view.Node { return s.root }

// Spawn creates an entity of kind k through the registry and places it on the stage.
func Spawn[E pool.Poolable[C], C any](s *Stage, k registry.Kind[E, C], cfg C) (E, error) {
	return SpawnContext(context.Background(), s, k, cfg)
}

// SpawnContext is Spawn with a context bounding a blocking pool.
func SpawnContext[E pool.Poolable[C], C any](ctx context.Context, s *Stage, k registry.Kind[E, C], cfg C) (E, error) {
	var zero E
	if s.isClosed() {
		return zero, ErrClosed
	}

	e, err := registry.CreateContext(ctx, s.reg, k, cfg)
	if err != nil {
		s.logger.Warn("spawn failed", log.String("kind", k.Name()), log.Error(err))
		return zero, err
	}

	nodeID := s.attach(k.Name(), e)
	s.publish(EventSpawned, Placement{Kind: k.Name(), NodeID: nodeID})
	s.logger.Debug("spawned", log.String("kind", k.Name()), log.String("node", nodeID))
	return e, nil
}

// Despawn releases e to the pool of kind k and removes it from the stage.
// An entity that was never spawned here is rejected without touching the pool.
// If the release fails the entity stays on the stage.
func Despawn[E pool.Poolable[C], C any](s *Stage, k registry.Kind[E, C], e E) error {
	nodeID, err := s.placed(k.Name(), e)
	if err != nil {
		return err
	}

	if err = registry.Release(s.reg, k, e); err != nil {
		s.logger.Error("despawn release failed", log.String("kind", k.Name()), log.Error(err))
		return err
	}
	s.detach(e)
	s.publish(EventDespawned, Placement{Kind: k.Name(), NodeID: nodeID})
	s.logger.Debug("despawned", log.String("kind", k.Name()), log.String("node", nodeID))
	return nil
}

// attach tracks e and puts its view under the root. An entity that is still
// tracked was released behind the stage's back and reused; its old record is
// replaced so it is never ticked twice.
func (s *Stage) attach(kind string, e any) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.untrackLocked(e)
	p := &placement{kind: kind}
	if u, ok := e.(entity.Updater); ok {
		p.updater = u
		s.updaters = append(s.updaters, u)
	}
	if v, ok := e.(entity.Viewer); ok {
		p.view = v.View()
		s.root.AddChild(p.view)
	}
	s.spawned[e] = p
	return p.nodeID()
}

func (s *Stage) placed(kind string, e any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	p, ok := s.spawned[e]
	if !ok || p.kind != kind {
		return "", fmt.Errorf("despawn %s: %w", kind, ErrNotSpawned)
	}
	return p.nodeID(), nil
}

func (s *Stage) detach(e any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.spawned[e]; ok && p.view != nil && p.view.Parent() == s.root {
		p.view.Detach()
	}
	s.untrackLocked(e)
}

func (s *Stage) untrackLocked(e any) {
	p, ok := s.spawned[e]
	if !ok {
		return
	}
	delete(s.spawned, e)
	if p.updater == nil {
		return
	}
	for i, cur := range s.updaters {
		if cur == p.updater {
			s.updaters = append(s.updaters[:i], s.updaters[i+1:]...)
			return
		}
	}
}

// pruneLocked drops entities whose view left the root without Despawn,
// which is what happens when they are released straight to their pool.
func (s *Stage) pruneLocked() {
	for e, p := range s.spawned {
		if p.view != nil && p.view.Parent() != s.root {
			s.untrackLocked(e)
		}
	}
}

// Update forwards dt, in seconds, to every spawned updater in spawn order.
func (s *Stage) Update(dt float64) {
	s.mu.Lock()
	s.pruneLocked()
	updaters := make([]entity.Updater, len(s.updaters))
	copy(updaters, s.updaters)
	s.frame++
	s.mu.Unlock()

	for _, u := range updaters {
		u.Update(dt)
	}
}

// Run ticks the stage fps times per second. onFrame, if non-nil, runs after
// each Update with the 1-based frame number and the elapsed seconds. Run
// stops after frames ticks, or when ctx is done if frames is 0.
func (s *Stage) Run(ctx context.Context, fps, frames int, onFrame func(frame int, dt float64)) error {
	if fps <= 0 {
		return fmt.Errorf("stage: fps must be positive, got %d", fps)
	}
	if frames < 0 {
		return fmt.Errorf("stage: frames must not be negative, got %d", frames)
	}

	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("loop started", log.Int("fps", fps), log.Duration("interval", interval), log.Int("frames", frames))
	last := time.Now()
	for n := 1; frames == 0 || n <= frames; n++ {
		if ctx.Err() != nil {
			return s.stopped(ctx, n-1, frames)
		}
		select {
		case <-ctx.Done():
			return s.stopped(ctx, n-1, frames)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Update(dt)
			if onFrame != nil {
				onFrame(n, dt)
			}
		}
	}
	s.logger.Info("loop finished", log.Int("frames", frames))
	return nil
}

func (s *Stage) stopped(ctx context.Context, ran, frames int) error {
	s.logger.Info("loop stopped", log.Int("frames", ran))
	if frames == 0 {
		return nil
	}
	return ctx.Err()
}

// Frame returns the number of Update calls so far.
func (s *Stage) Frame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Active returns the number of spawned entities per kind.
func (s *Stage) Active() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	out := make(map[string]int)
	for _, p := range s.spawned {
		out[p.kind]++
	}
	return out
}

// Stats returns the pool snapshot of every registered kind.
func (s *Stage) Stats() map[string]pool.Stats {
	return s.reg.Stats()
}

// Counts returns the lifecycle counters gathered from the bus since New.
func (s *Stage) Counts() map[string]poolobs.Count {
	return s.counters.Snapshot()
}

// LogStats writes one info line per registered kind.
func (s *Stage) LogStats() {
	counts := s.Counts()
	for kind, st := range s.Stats() {
		s.logger.Info("pool stats",
			log.String("kind", kind),
			log.Uint64("constructed", st.Constructed),
			log.Uint64("created", st.Created),
			log.Uint64("reused", st.Reused),
			log.Uint64("released", st.Released),
			log.Uint64("rejected", st.Rejected),
			log.Int("idle", st.Idle),
			log.Int("active", st.Active),
			log.Float64("hit_rate", counts[kind].HitRate()),
		)
	}
}

// Close closes every factory in the registry, destroying all views, and
// detaches from the bus. Spawn fails afterwards.
func (s *Stage) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	clear(s.spawned)
	s.updaters = nil
	s.mu.Unlock()

	s.reg.Close(func(_ string, e any) {
		if v, ok := e.(entity.Viewer); ok {
			v.View().Destroy()
		}
	})
	s.root.Destroy()
	for _, sub := range s.subs {
		_ = s.bus.Unsubscribe(sub)
	}
	s.logger.Info("stage closed")
}

func (s *Stage) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Stage) publish(typ string, p Placement) {
	if err := s.bus.Publish(bus.NewEvent(typ, "stage", p)); err != nil {
		s.logger.Warn("event handler failed", log.String("type", typ), log.Error(err))
	}
}
