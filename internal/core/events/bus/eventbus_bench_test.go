package bus

import (
	"sync/atomic"
	"testing"
)

// no-op handler that increments a counter to avoid compiler eliminating logic
func makeHandler(c *int64) EventHandler {
	return func(Event) error {
		atomic.AddInt64(c, 1)
		return nil
	}
}

func BenchmarkPublishSingleSubscriber(b *testing.B) {
	bus := New()
	var c int64
	_, _ = bus.Subscribe("tick", makeHandler(&c))
	e := NewEvent("tick", "bench", nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Publish(e)
	}
}

func BenchmarkPublishWithWildcard(b *testing.B) {
	bus := New()
	var c int64
	for i := 0; i < 4; i++ {
		_, _ = bus.Subscribe("tick", makeHandler(&c))
	}
	_, _ = bus.Subscribe(Wildcard, makeHandler(&c))
	e := NewEvent("tick", "bench", nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Publish(e)
	}
}

func BenchmarkPublishParallel(b *testing.B) {
	bus := New()
	var c int64
	_, _ = bus.Subscribe("tick", makeHandler(&c))
	e := NewEvent("tick", "bench", nil)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = bus.Publish(e)
		}
	})
}
