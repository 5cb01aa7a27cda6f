package gameobjects

import (
	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/view"
)

type RectangleConfig struct {
	X, Y          float64
	Width, Height float64
	Color         uint32
	Opacity       float64
	// Centered places the origin of the rectangle at its midpoint.
	Centered bool
}

func (c RectangleConfig) validate() error {
	if c.Width <= 0 {
		return entity.Invalidf("width", "must be positive, got %g", c.Width)
	}
	if c.Height <= 0 {
		return entity.Invalidf("height", "must be positive, got %g", c.Height)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return entity.Invalidf("opacity", "must be within [0,1], got %g", c.Opacity)
	}
	return nil
}

// Rectangle is a solid color fill.
type Rectangle struct {
	view   *view.Node
	fill   *view.Node
	config RectangleConfig
}

func NewRectangle() *Rectangle {
	return &Rectangle{view: view.NewNode("rectangle")}
}

func (r *Rectangle) Init(cfg RectangleConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	fill := view.NewNode("fill")
	fill.Width, fill.Height = cfg.Width, cfg.Height
	fill.Tint = cfg.Color
	fill.Alpha = cfg.Opacity
	if cfg.Centered {
		fill.SetPosition(-cfg.Width/2, -cfg.Height/2)
	}

	r.view.AddChild(fill)
	r.view.SetPosition(cfg.X, cfg.Y)
	r.fill = fill
	r.config = cfg
	return nil
}

func (r *Rectangle) Reset() {
	r.view.Detach()
	if r.fill != nil {
		r.fill.Destroy()
		r.fill = nil
	}
	r.view.RemoveChildren()
	r.view.ResetTransform()
	r.config = RectangleConfig{}
}

func (r *Rectangle) View() *view.Node { return r.view }

// Config returns the config the rectangle was initialized with.
func (r *Rectangle) Config() RectangleConfig { return r.config }
