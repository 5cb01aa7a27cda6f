package pool

import (
	"fmt"
	"sync/atomic"
	"testing"
)

func BenchmarkFactoryCreateRelease(b *testing.B) {
	f, err := New[*widget, widgetConfig](func() *widget { return &widget{} }, WithPrewarm(1))
	if err != nil {
		b.Fatal(err)
	}
	cfg := widgetConfig{Label: "bench", Size: 1}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w, err := f.Create(cfg)
		if err != nil {
			b.Fatal(err)
		}
		if err = f.Release(w); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFactoryParallel(b *testing.B) {
	f, err := New[*widget, widgetConfig](func() *widget { return &widget{} })
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			w, err := f.Create(widgetConfig{})
			if err != nil {
				b.Error(err)
				return
			}
			_ = f.Release(w)
		}
	})
}

func BenchmarkShardedParallel(b *testing.B) {
	for _, shards := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("shards=%d", shards), func(b *testing.B) {
			s, err := NewSharded[*widget, widgetConfig](shards, func() *widget { return &widget{} })
			if err != nil {
				b.Fatal(err)
			}
			var worker atomic.Int64
			b.RunParallel(func(pb *testing.PB) {
				key := fmt.Sprintf("worker-%d", worker.Add(1))
				for pb.Next() {
					w, err := s.Create(key, widgetConfig{})
					if err != nil {
						b.Error(err)
						return
					}
					_ = s.Release(w)
				}
			})
		})
	}
}
