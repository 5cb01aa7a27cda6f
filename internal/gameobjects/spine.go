package gameobjects

import (
	"github.com/zeusync/entitypool/internal/assets"
	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/view"
)

type SpineConfig struct {
	ImgURL string
	X, Y   float64
	// Scale defaults to 1 when zero.
	Scale float64
	// Animation, if set, loops on track 0.
	Animation string
	// Speed is the track time scale. Zero means 1.
	Speed float64
}

func (c SpineConfig) validate() error {
	if c.Scale < 0 {
		return entity.Invalidf("scale", "must be positive, got %g", c.Scale)
	}
	if c.Speed < 0 {
		return entity.Invalidf("speed", "must not be negative, got %g", c.Speed)
	}
	return nil
}

// Spine is a skeletal animation. It advances its track on every Update.
type Spine struct {
	src       assets.Source
	view      *view.Node
	skeleton  *view.Node
	animation string
	timeScale float64
	trackTime float64
}

func NewSpine(src assets.Source) *Spine {
	return &Spine{src: src, view: view.NewNode("spine")}
}

func (s *Spine) Init(cfg SpineConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	data, err := s.src.Skeleton(cfg.ImgURL)
	if err != nil {
		return entity.Invalid("imgUrl", err.Error())
	}
	if cfg.Animation != "" && !data.HasAnimation(cfg.Animation) {
		return entity.Invalidf("animation", "skeleton %s has no animation %q", data.URL, cfg.Animation)
	}

	scale, speed := cfg.Scale, cfg.Speed
	if scale == 0 {
		scale = 1
	}
	if speed == 0 {
		speed = 1
	}

	skeleton := view.NewNode("skeleton")
	skeleton.Texture = data.URL
	skeleton.Width, skeleton.Height = data.Width, data.Height
	skeleton.SetScale(scale, scale)

	s.view.AddChild(skeleton)
	s.view.SetPosition(cfg.X, cfg.Y)
	s.skeleton = skeleton
	s.animation = cfg.Animation
	s.timeScale = speed
	return nil
}

func (s *Spine) Reset() {
	s.view.Detach()
	if s.skeleton != nil {
		s.skeleton.Destroy()
		s.skeleton = nil
	}
	s.view.RemoveChildren()
	s.view.ResetTransform()
	s.animation = ""
	s.timeScale = 0
	s.trackTime = 0
}

func (s *Spine) View() *view.Node { return s.view }

// Update advances the track by dt scaled by the time scale.
func (s *Spine) Update(dt float64) {
	s.Advance(dt)
}

// Advance moves the track time forward. It is a no-op without an animation.
func (s *Spine) Advance(dt float64) {
	if s.animation == "" || dt <= 0 {
		return
	}
	s.trackTime += dt * s.timeScale
}

func (s *Spine) Animation() string { return s.animation }

func (s *Spine) TimeScale() float64 { return s.timeScale }

// TrackTime is the scaled time elapsed on the current animation.
func (s *Spine) TrackTime() float64 { return s.trackTime }
