package sequence

import (
	"cmp"
	"iter"
	"sort"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator from a slice of T.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// Keys creates an Iterator over the keys of a map. Order is unspecified.
func Keys[K comparable, V any](data map[K]V) *Iterator[K] {
	return &Iterator[K]{
		seq: func(yield func(K) bool) {
			for k := range data {
				if !yield(k) {
					return
				}
			}
		},
	}
}

// Entry is a key/value pair produced by Entries.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Entries creates an Iterator over the key/value pairs of a map.
func Entries[K comparable, V any](data map[K]V) *Iterator[Entry[K, V]] {
	return &Iterator[Entry[K, V]]{
		seq: func(yield func(Entry[K, V]) bool) {
			for k, v := range data {
				if !yield(Entry[K, V]{Key: k, Value: v}) {
					return
				}
			}
		},
	}
}

// Seq returns the underlying sequence function for the iterator.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Pull converts the iterator into a pull-style next/stop pair.
func (i *Iterator[T]) Pull() (next func() (T, bool), stop func()) {
	return iter.Pull(i.Seq())
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Sort returns a new Iterator with elements sorted according to the provided less function.
func (i *Iterator[T]) Sort(less func(a, b T) bool) *Iterator[T] {
	data := i.Collect()
	sort.SliceStable(data, func(a, b int) bool {
		return less(data[a], data[b])
	})
	return From(data)
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			i.seq(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Sorted collects an iterator of ordered values in ascending order.
func Sorted[T cmp.Ordered](it *Iterator[T]) []T {
	return it.Sort(func(a, b T) bool { return a < b }).Collect()
}

// ToMap builds a map from the iterator using key and value selectors.
func ToMap[T any, K comparable, V any](it *Iterator[T], keyFn func(T) K, valFn func(T) V) map[K]V {
	out := make(map[K]V)
	it.seq(func(v T) bool {
		out[keyFn(v)] = valFn(v)
		return true
	})
	return out
}
