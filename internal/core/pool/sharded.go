package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Sharded spreads one entity type over several independent factories so
// that callers on different workers contend on different locks. A caller
// picks its shard with a key, typically a worker or session identifier.
type Sharded[E Poolable[C], C any] struct {
	name   string
	shards []*Factory[E, C]
	owners sync.Map // E -> shard index
}

// NewSharded builds n shards around construct. Pre-warm and capacity are
// split across shards, with the remainder going to the lowest indices.
func NewSharded[E Poolable[C], C any](n int, construct func() E, opts ...Option) (*Sharded[E, C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: shard count %d", ErrInvalidOption, n)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.capacity > 0 && o.capacity < n {
		return nil, fmt.Errorf("%w: capacity %d below shard count %d", ErrInvalidOption, o.capacity, n)
	}

	s := &Sharded[E, C]{
		name:   o.name,
		shards: make([]*Factory[E, C], n),
	}
	for i := range s.shards {
		so := o
		so.name = fmt.Sprintf("%s#%d", o.name, i)
		so.prewarm = split(o.prewarm, n, i)
		so.capacity = split(o.capacity, n, i)

		f, err := newFactory[E, C](construct, so)
		if err != nil {
			return nil, err
		}
		s.shards[i] = f
	}
	return s, nil
}

func split(total, n, i int) int {
	share := total / n
	if i < total%n {
		share++
	}
	return share
}

// Shard returns the index key maps to.
func (s *Sharded[E, C]) Shard(key string) int {
	return int(xxhash.Sum64String(key) % uint64(len(s.shards)))
}

// Len returns the number of shards.
func (s *Sharded[E, C]) Len() int {
	return len(s.shards)
}

// Create is CreateContext with a background context.
func (s *Sharded[E, C]) Create(key string, cfg C) (E, error) {
	return s.CreateContext(context.Background(), key, cfg)
}

// CreateContext creates an instance from the shard selected by key.
func (s *Sharded[E, C]) CreateContext(ctx context.Context, key string, cfg C) (E, error) {
	idx := s.Shard(key)
	e, err := s.shards[idx].CreateContext(ctx, cfg)
	if err != nil {
		return e, err
	}
	// instances never migrate between shards, so the first store is final
	s.owners.LoadOrStore(e, idx)
	return e, nil
}

// Release returns e to the shard that built it.
func (s *Sharded[E, C]) Release(e E) error {
	idx, ok := s.owners.Load(e)
	if !ok {
		return fmt.Errorf("pool %s: %w", s.name, ErrForeignEntity)
	}
	return s.shards[idx.(int)].Release(e)
}

// Stats sums the shard counters under the sharded name.
func (s *Sharded[E, C]) Stats() Stats {
	total := s.shards[0].Stats()
	total.Name = s.name
	for _, f := range s.shards[1:] {
		total = total.Add(f.Stats())
	}
	return total
}

// ShardStats returns one snapshot per shard.
func (s *Sharded[E, C]) ShardStats() []Stats {
	out := make([]Stats, len(s.shards))
	for i, f := range s.shards {
		out[i] = f.Stats()
	}
	return out
}

// Close closes every shard.
func (s *Sharded[E, C]) Close(destroy func(E)) {
	for _, f := range s.shards {
		f.Close(destroy)
	}
	s.owners.Clear()
}
