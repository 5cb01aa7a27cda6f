// Package poolobs adapts pool lifecycle hooks to the logger, the event bus
// and in-memory counters. The pool core never logs on its own; the
// application opts in by attaching these observers.
package poolobs

import (
	"sync"
	"sync/atomic"

	"github.com/zeusync/entitypool/internal/core/events/bus"
	"github.com/zeusync/entitypool/internal/core/observability/log"
	"github.com/zeusync/entitypool/internal/core/pool"
)

// Event types published by BusObserver.
const (
	EventConstructed = "pool.constructed"
	EventAcquired    = "pool.acquired"
	EventReleased    = "pool.released"
	EventRejected    = "pool.rejected"
)

// Lifecycle is the payload of every pool event.
type Lifecycle struct {
	Factory string
	Reused  bool
	Err     error
}

var (
	_ pool.Observer = (*LogObserver)(nil)
	_ pool.Observer = (*BusObserver)(nil)
	_ pool.Observer = (*Counters)(nil)
)

// LogObserver writes construct/acquire/release at debug and rejections at warn.
type LogObserver struct {
	logger log.Log
}

func NewLogObserver(logger log.Log) *LogObserver {
	return &LogObserver{logger: logger.With(log.String("component", "pool"))}
}

func (o *LogObserver) OnConstruct(factory string) {
	o.logger.Debug("instance constructed", log.String("factory", factory))
}

func (o *LogObserver) OnAcquire(factory string, reused bool) {
	o.logger.Debug("instance acquired", log.String("factory", factory), log.Bool("reused", reused))
}

func (o *LogObserver) OnRelease(factory string) {
	o.logger.Debug("instance released", log.String("factory", factory))
}

func (o *LogObserver) OnReject(factory string, err error) {
	o.logger.Warn("pool operation rejected", log.String("factory", factory), log.Error(err))
}

// BusObserver publishes one event per lifecycle hook. Handler errors are
// dropped: an observer cannot fail the pool operation it reports on.
type BusObserver struct {
	bus    bus.EventBus
	source string
}

func NewBusObserver(b bus.EventBus, source string) *BusObserver {
	return &BusObserver{bus: b, source: source}
}

func (o *BusObserver) OnConstruct(factory string) {
	_ = o.bus.Publish(bus.NewEvent(EventConstructed, o.source, Lifecycle{Factory: factory}))
}

func (o *BusObserver) OnAcquire(factory string, reused bool) {
	_ = o.bus.Publish(bus.NewEvent(EventAcquired, o.source, Lifecycle{Factory: factory, Reused: reused}))
}

func (o *BusObserver) OnRelease(factory string) {
	_ = o.bus.Publish(bus.NewEvent(EventReleased, o.source, Lifecycle{Factory: factory}))
}

func (o *BusObserver) OnReject(factory string, err error) {
	_ = o.bus.Publish(bus.NewEvent(EventRejected, o.source, Lifecycle{Factory: factory, Err: err}))
}

// Counters aggregates lifecycle counts per factory name.
type Counters struct {
	mu       sync.RWMutex
	counters map[string]*counter
}

type counter struct {
	constructed atomic.Uint64
	acquired    atomic.Uint64
	reused      atomic.Uint64
	released    atomic.Uint64
	rejected    atomic.Uint64
}

// Count is a snapshot of one factory's counters.
type Count struct {
	Constructed uint64
	Acquired    uint64
	Reused      uint64
	Released    uint64
	Rejected    uint64
}

// HitRate is the share of acquisitions served from the free list.
func (c Count) HitRate() float64 {
	if c.Acquired == 0 {
		return 0
	}
	return float64(c.Reused) / float64(c.Acquired)
}

func NewCounters() *Counters {
	return &Counters{counters: make(map[string]*counter)}
}

func (c *Counters) get(factory string) *counter {
	c.mu.RLock()
	ct, ok := c.counters[factory]
	c.mu.RUnlock()
	if ok {
		return ct
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ct, ok = c.counters[factory]; !ok {
		ct = &counter{}
		c.counters[factory] = ct
	}
	return ct
}

func (c *Counters) OnConstruct(factory string) {
	c.get(factory).constructed.Add(1)
}

func (c *Counters) OnAcquire(factory string, reused bool) {
	ct := c.get(factory)
	ct.acquired.Add(1)
	if reused {
		ct.reused.Add(1)
	}
}

func (c *Counters) OnRelease(factory string) {
	c.get(factory).released.Add(1)
}

func (c *Counters) OnReject(factory string, _ error) {
	c.get(factory).rejected.Add(1)
}

// Snapshot returns the counters of every factory seen so far.
func (c *Counters) Snapshot() map[string]Count {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Count, len(c.counters))
	for name, ct := range c.counters {
		out[name] = Count{
			Constructed: ct.constructed.Load(),
			Acquired:    ct.acquired.Load(),
			Reused:      ct.reused.Load(),
			Released:    ct.released.Load(),
			Rejected:    ct.rejected.Load(),
		}
	}
	return out
}
