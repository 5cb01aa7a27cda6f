package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeIdentity(t *testing.T) {
	n := NewNode("root")
	assert.NotEmpty(t, n.ID())
	assert.Equal(t, 1.0, n.ScaleX)
	assert.Equal(t, 1.0, n.Alpha)
	assert.True(t, n.Visible)
	assert.NotEqual(t, n.ID(), NewNode("root").ID())
}

func TestAddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)

	assert.Equal(t, 0, a.ChildCount())
	assert.Equal(t, 1, b.ChildCount())
	assert.Same(t, b, c.Parent())

	a.AddChild(a)
	assert.Equal(t, 0, a.ChildCount(), "self-parenting is ignored")
}

func TestRemoveChildren(t *testing.T) {
	root := NewNode("root")
	for i := 0; i < 3; i++ {
		root.AddChild(NewNode("leaf"))
	}
	removed := root.RemoveChildren()
	require.Len(t, removed, 3)
	for _, c := range removed {
		assert.Nil(t, c.Parent())
	}
	assert.Equal(t, 0, root.ChildCount())
}

func TestDestroySubtree(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	leaf.Texture = "bunny.png"
	root.AddChild(mid)
	mid.AddChild(leaf)

	mid.Destroy()

	assert.Equal(t, 0, root.ChildCount())
	assert.True(t, mid.Destroyed())
	assert.True(t, leaf.Destroyed())
	assert.Empty(t, leaf.Texture)
	assert.Nil(t, leaf.Parent())
}

func TestResetTransform(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(10, 20)
	n.SetScale(2, 3)
	n.SetPivot(5, 5)
	n.Rotation = 1.2
	n.Alpha = 0.3
	n.Tint = 0xff0000
	n.Visible = false

	n.ResetTransform()

	assert.Equal(t, NewNode("n").Bounds(), n.Bounds())
	assert.Zero(t, n.X)
	assert.Zero(t, n.Rotation)
	assert.Equal(t, 1.0, n.ScaleY)
	assert.Zero(t, n.Tint)
	assert.True(t, n.Visible)
}

func TestBounds(t *testing.T) {
	root := NewNode("grid")
	for i := 0; i < 2; i++ {
		cell := NewNode("cell")
		cell.Width, cell.Height = 10, 10
		cell.SetPosition(float64(i)*20, 0)
		root.AddChild(cell)
	}

	b := root.Bounds()
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 30, Height: 10}, b)
	cx, cy := b.Center()
	assert.Equal(t, 15.0, cx)
	assert.Equal(t, 5.0, cy)

	assert.Equal(t, Rect{}, NewNode("empty").Bounds())
}

func TestBoundsPivot(t *testing.T) {
	n := NewNode("rect")
	n.Width, n.Height = 100, 50
	n.SetPivot(50, 25)
	assert.Equal(t, Rect{X: -50, Y: -25, Width: 100, Height: 50}, n.Bounds())
}

func TestWalkStopsEarly(t *testing.T) {
	root := NewNode("root")
	root.AddChild(NewNode("a"))
	root.AddChild(NewNode("b"))

	visited := 0
	root.Walk(func(*Node) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}
