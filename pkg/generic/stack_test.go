package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackLIFO(t *testing.T) {
	s := NewStack[int](0)
	s.Push(1)
	s.Push(2)
	s.Push(3)

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStackZeroValue(t *testing.T) {
	var s Stack[string]
	_, ok := s.Pop()
	assert.False(t, ok)
	s.Push("a")
	assert.Equal(t, 1, s.Len())
}

func TestNewHotStack(t *testing.T) {
	n := 0
	s := NewHotStack(func() *int {
		n++
		v := n
		return &v
	}, 4)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 4, n)
}

func TestStackDrain(t *testing.T) {
	s := NewStack[int](3)
	for i := 1; i <= 3; i++ {
		s.Push(i)
	}
	var order []int
	s.Drain(func(v int) { order = append(order, v) })
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Equal(t, 0, s.Len())

	s.Push(9)
	s.Drain(nil)
	assert.Equal(t, 0, s.Len())
}
