package gameobjects

import (
	"github.com/zeusync/entitypool/internal/assets"
	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/view"
)

type SpriteConfig struct {
	ImgURL string
	X, Y   float64
	// Scale defaults to 1 when zero.
	Scale float64
	// Anchor is the normalized origin on both axes, 0 is top-left and 0.5 the middle.
	Anchor float64
}

func (c SpriteConfig) validate() error {
	if c.Scale < 0 {
		return entity.Invalidf("scale", "must be positive, got %g", c.Scale)
	}
	if c.Anchor < 0 || c.Anchor > 1 {
		return entity.Invalidf("anchor", "must be within [0,1], got %g", c.Anchor)
	}
	return nil
}

// Sprite is a single textured node.
type Sprite struct {
	src     assets.Source
	view    *view.Node
	texture assets.Texture
}

func NewSprite(src assets.Source) *Sprite {
	return &Sprite{src: src, view: view.NewNode("sprite")}
}

func (s *Sprite) Init(cfg SpriteConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	tex, err := s.src.Texture(cfg.ImgURL)
	if err != nil {
		return entity.Invalid("imgUrl", err.Error())
	}

	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}
	s.view.Texture = tex.URL
	s.view.Width, s.view.Height = tex.Width, tex.Height
	s.view.SetPivot(tex.Width*cfg.Anchor, tex.Height*cfg.Anchor)
	s.view.SetScale(scale, scale)
	s.view.SetPosition(cfg.X, cfg.Y)
	s.texture = tex
	return nil
}

func (s *Sprite) Reset() {
	s.view.Detach()
	s.view.ResetTransform()
	s.texture = assets.Texture{}
}

func (s *Sprite) View() *view.Node { return s.view }

// Texture returns the texture bound at Init, zero after Reset.
func (s *Sprite) Texture() assets.Texture { return s.texture }
