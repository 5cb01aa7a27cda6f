package gameobjects

import (
	"github.com/zeusync/entitypool/internal/assets"
	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/view"
)

type SpriteGridConfig struct {
	ImgURL     string
	X, Y       float64
	GridAmount int
	Columns    int
	// Spacing is the distance between the origins of neighbouring cells.
	Spacing float64
}

func (c SpriteGridConfig) validate() error {
	if c.GridAmount < 0 {
		return entity.Invalidf("gridAmount", "must not be negative, got %d", c.GridAmount)
	}
	if c.Columns <= 0 {
		return entity.Invalidf("columns", "must be positive, got %d", c.Columns)
	}
	if c.Spacing < 0 {
		return entity.Invalidf("spacing", "must not be negative, got %g", c.Spacing)
	}
	return nil
}

// SpriteGrid lays out GridAmount copies of one texture in rows of Columns.
type SpriteGrid struct {
	src   assets.Source
	view  *view.Node
	cells []*view.Node
	local view.Rect
}

func NewSpriteGrid(src assets.Source) *SpriteGrid {
	return &SpriteGrid{src: src, view: view.NewNode("spriteGrid")}
}

func (g *SpriteGrid) Init(cfg SpriteGridConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	tex, err := g.src.Texture(cfg.ImgURL)
	if err != nil {
		return entity.Invalid("imgUrl", err.Error())
	}

	for i := 0; i < cfg.GridAmount; i++ {
		cell := view.NewNode("cell")
		cell.Texture = tex.URL
		cell.Width, cell.Height = tex.Width, tex.Height
		cell.SetPosition(float64(i%cfg.Columns)*cfg.Spacing, float64(i/cfg.Columns)*cfg.Spacing)
		g.view.AddChild(cell)
		g.cells = append(g.cells, cell)
	}
	g.view.SetPosition(cfg.X, cfg.Y)
	g.local = g.view.Bounds()
	return nil
}

func (g *SpriteGrid) Reset() {
	g.view.Detach()
	for _, c := range g.cells {
		c.Destroy()
	}
	clear(g.cells)
	g.cells = g.cells[:0]
	g.view.RemoveChildren()
	g.view.ResetTransform()
	g.local = view.Rect{}
}

func (g *SpriteGrid) View() *view.Node { return g.view }

// Cells returns the number of laid out sprites.
func (g *SpriteGrid) Cells() int { return len(g.cells) }

// LocalSize is the untransformed size of the grid, measured at Init.
func (g *SpriteGrid) LocalSize() (width, height float64) {
	return g.local.Width, g.local.Height
}

// LocalCenter is the midpoint of the grid in its own coordinates.
func (g *SpriteGrid) LocalCenter() (x, y float64) {
	return g.local.Center()
}
