// Package view is a headless scene node used as the presentation handle of
// pooled entities. The pooling core only holds references to nodes; drawing
// them is the business of whatever renderer sits behind the stage.
package view

import (
	"math"

	"github.com/google/uuid"
)

// Rect is an axis-aligned rectangle in local coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Node is a transformable scene element. Nodes are not safe for concurrent use.
type Node struct {
	id    string
	Label string

	X, Y           float64
	ScaleX, ScaleY float64
	PivotX, PivotY float64
	Rotation       float64
	Alpha          float64
	Visible        bool
	Width, Height  float64 // intrinsic size of leaf content
	Tint           uint32
	Texture        string

	destroyed bool
	parent    *Node
	children  []*Node
}

// NewNode returns a node with an identity transform.
func NewNode(label string) *Node {
	n := &Node{id: uuid.NewString(), Label: label}
	n.ResetTransform()
	return n
}

// ID is assigned at construction and survives reuse.
func (n *Node) ID() string { return n.id }

func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) Destroyed() bool { return n.destroyed }

// AddChild appends child, detaching it from any previous parent first.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child if it belongs to n and reports whether it did.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveChildren detaches every child and returns them.
func (n *Node) RemoveChildren() []*Node {
	out := n.children
	for _, c := range out {
		c.parent = nil
	}
	n.children = nil
	return out
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Destroy detaches n and destroys its whole subtree. A destroyed node must not be reused.
func (n *Node) Destroy() {
	n.Detach()
	for _, c := range n.RemoveChildren() {
		c.Destroy()
	}
	n.Texture = ""
	n.destroyed = true
}

func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
}

func (n *Node) SetScale(x, y float64) {
	n.ScaleX, n.ScaleY = x, y
}

func (n *Node) SetPivot(x, y float64) {
	n.PivotX, n.PivotY = x, y
}

// ResetTransform restores position, scale, pivot, rotation, alpha, size, tint and visibility.
func (n *Node) ResetTransform() {
	n.X, n.Y = 0, 0
	n.ScaleX, n.ScaleY = 1, 1
	n.PivotX, n.PivotY = 0, 0
	n.Rotation = 0
	n.Alpha = 1
	n.Visible = true
	n.Width, n.Height = 0, 0
	n.Tint = 0
	n.Texture = ""
}

// Bounds returns the local bounding box of n's own content and its direct children.
// Child rotation is ignored.
func (n *Node) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x0, y0, x1, y1 float64) {
		minX, minY = math.Min(minX, x0), math.Min(minY, y0)
		maxX, maxY = math.Max(maxX, x1), math.Max(maxY, y1)
	}

	if n.Width > 0 || n.Height > 0 {
		extend(-n.PivotX, -n.PivotY, n.Width-n.PivotX, n.Height-n.PivotY)
	}
	for _, c := range n.children {
		b := c.Bounds()
		if b.Width == 0 && b.Height == 0 {
			continue
		}
		x0 := c.X + b.X*c.ScaleX
		y0 := c.Y + b.Y*c.ScaleY
		extend(x0, y0, x0+b.Width*c.ScaleX, y0+b.Height*c.ScaleY)
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Walk visits n and its descendants depth-first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
