package generic

// Stack is a LIFO container backed by a slice. The zero value is ready to use.
// It is not safe for concurrent use.
type Stack[T any] struct {
	items []T
}

func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// NewHotStack returns a stack pre-filled with hotSize values from generate.
func NewHotStack[T any](generate func() T, hotSize int) *Stack[T] {
	s := NewStack[T](hotSize)
	for i := 0; i < hotSize; i++ {
		s.Push(generate())
	}
	return s
}

func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Pop removes and returns the most recently pushed value.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items[n-1] = zero // drop the reference held by the backing array
	s.items = s.items[:n-1]
	return v, true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Drain empties the stack, calling fn for each value from top to bottom.
func (s *Stack[T]) Drain(fn func(T)) {
	for {
		v, ok := s.Pop()
		if !ok {
			return
		}
		if fn != nil {
			fn(v)
		}
	}
}
