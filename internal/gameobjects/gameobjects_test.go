package gameobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/entitypool/internal/assets"
	"github.com/zeusync/entitypool/internal/core/entity"
	"github.com/zeusync/entitypool/internal/core/pool"
	"github.com/zeusync/entitypool/internal/core/registry"
	"github.com/zeusync/entitypool/internal/core/view"
)

const (
	bunnyURL = "assets/bunny.png"
	coinURL  = "assets/coin.png"
	heroURL  = "assets/hero.json"
)

func testCatalog(t *testing.T) *assets.Catalog {
	t.Helper()
	c, err := assets.Load(
		[]assets.Texture{
			{URL: bunnyURL, Width: 26, Height: 37},
			{URL: coinURL, Width: 64, Height: 64},
		},
		[]assets.Skeleton{{URL: heroURL, Width: 120, Height: 240, Animations: []string{"idle", "walk"}}},
	)
	require.NoError(t, err)
	return c
}

// pristine compares the observable state of a root node with a freshly built one.
func pristine(t *testing.T, n *view.Node) {
	t.Helper()
	fresh := view.NewNode(n.Label)
	assert.Nil(t, n.Parent())
	assert.Zero(t, n.ChildCount())
	assert.Equal(t, fresh.X, n.X)
	assert.Equal(t, fresh.Y, n.Y)
	assert.Equal(t, fresh.ScaleX, n.ScaleX)
	assert.Equal(t, fresh.ScaleY, n.ScaleY)
	assert.Equal(t, fresh.PivotX, n.PivotX)
	assert.Equal(t, fresh.PivotY, n.PivotY)
	assert.Equal(t, fresh.Rotation, n.Rotation)
	assert.Equal(t, fresh.Alpha, n.Alpha)
	assert.Equal(t, fresh.Texture, n.Texture)
	assert.Equal(t, fresh.Width, n.Width)
	assert.False(t, n.Destroyed())
}

func TestRectangleLifecycle(t *testing.T) {
	r := NewRectangle()
	id := r.View().ID()
	cfg := RectangleConfig{X: 400, Y: 300, Width: 300, Height: 300, Color: 0xff0000, Opacity: 1, Centered: true}
	require.NoError(t, r.Init(cfg))

	assert.Equal(t, cfg, r.Config())
	assert.Equal(t, 400.0, r.View().X)
	require.Equal(t, 1, r.View().ChildCount())
	fill := r.View().Children()[0]
	assert.Equal(t, uint32(0xff0000), fill.Tint)
	assert.Equal(t, view.Rect{X: -150, Y: -150, Width: 300, Height: 300}, r.View().Bounds())

	r.View().Rotation = 0.78
	r.View().SetScale(1.2, 1.2)
	r.Reset()

	pristine(t, r.View())
	assert.True(t, fill.Destroyed())
	assert.Equal(t, RectangleConfig{}, r.Config())
	assert.Equal(t, id, r.View().ID(), "root node survives reuse")

	require.NoError(t, r.Init(RectangleConfig{Width: 10, Height: 20, Opacity: 0.5}))
	assert.Equal(t, view.Rect{Width: 10, Height: 20}, r.View().Bounds())
}

func TestRectangleValidation(t *testing.T) {
	cases := map[string]RectangleConfig{
		"width":   {Width: 0, Height: 1},
		"height":  {Width: 1, Height: -1},
		"opacity": {Width: 1, Height: 1, Opacity: 1.5},
	}
	for field, cfg := range cases {
		t.Run(field, func(t *testing.T) {
			err := NewRectangle().Init(cfg)
			var cfgErr *entity.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, field, cfgErr.Field)
			assert.ErrorIs(t, err, entity.ErrInvalidConfig)
		})
	}
}

func TestSpriteGridLayout(t *testing.T) {
	g := NewSpriteGrid(testCatalog(t))
	require.NoError(t, g.Init(SpriteGridConfig{ImgURL: bunnyURL, X: 100, Y: 50, GridAmount: 25, Columns: 5, Spacing: 40}))

	assert.Equal(t, 25, g.Cells())
	w, h := g.LocalSize()
	assert.Equal(t, 4*40.0+26, w)
	assert.Equal(t, 4*40.0+37, h)
	cx, cy := g.LocalCenter()
	assert.Equal(t, w/2, cx)
	assert.Equal(t, h/2, cy)

	last := g.View().Children()[24]
	assert.Equal(t, 160.0, last.X)
	assert.Equal(t, 160.0, last.Y)
	assert.Equal(t, bunnyURL, last.Texture)

	g.Reset()
	pristine(t, g.View())
	assert.Zero(t, g.Cells())
	assert.True(t, last.Destroyed())
	w, h = g.LocalSize()
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestSpriteGridRejectsUnknownImage(t *testing.T) {
	g := NewSpriteGrid(testCatalog(t))
	err := g.Init(SpriteGridConfig{ImgURL: "missing.png", GridAmount: 1, Columns: 1})
	var cfgErr *entity.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "imgUrl", cfgErr.Field)

	err = g.Init(SpriteGridConfig{ImgURL: bunnyURL, GridAmount: 1, Columns: 0})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "columns", cfgErr.Field)
}

func TestSpriteAnchorAndScale(t *testing.T) {
	s := NewSprite(testCatalog(t))
	require.NoError(t, s.Init(SpriteConfig{ImgURL: coinURL, X: 10, Y: 20, Anchor: 0.5, Scale: 0.5}))

	n := s.View()
	assert.Equal(t, coinURL, n.Texture)
	assert.Equal(t, 32.0, n.PivotX)
	assert.Equal(t, 0.5, n.ScaleX)
	assert.Equal(t, coinURL, s.Texture().URL)

	s.Reset()
	pristine(t, n)
	assert.Equal(t, assets.Texture{}, s.Texture())

	require.NoError(t, s.Init(SpriteConfig{ImgURL: coinURL}))
	assert.Equal(t, 1.0, n.ScaleX, "zero scale means 1")

	err := NewSprite(testCatalog(t)).Init(SpriteConfig{ImgURL: coinURL, Anchor: 2})
	assert.ErrorIs(t, err, entity.ErrInvalidConfig)
}

func TestSpineAdvance(t *testing.T) {
	s := NewSpine(testCatalog(t))
	require.NoError(t, s.Init(SpineConfig{ImgURL: heroURL, Animation: "walk", Speed: 2}))

	assert.Equal(t, "walk", s.Animation())
	assert.Equal(t, 2.0, s.TimeScale())
	s.Update(0.5)
	s.Advance(0.25)
	assert.InDelta(t, 1.5, s.TrackTime(), 1e-9)

	skeleton := s.View().Children()[0]
	s.Reset()
	pristine(t, s.View())
	assert.True(t, skeleton.Destroyed())
	assert.Empty(t, s.Animation())
	assert.Zero(t, s.TrackTime())

	require.NoError(t, s.Init(SpineConfig{ImgURL: heroURL}))
	assert.Equal(t, 1.0, s.TimeScale())
	s.Update(1)
	assert.Zero(t, s.TrackTime(), "no animation, nothing advances")
}

func TestSpineRejectsUnknownAnimation(t *testing.T) {
	err := NewSpine(testCatalog(t)).Init(SpineConfig{ImgURL: heroURL, Animation: "fly"})
	var cfgErr *entity.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "animation", cfgErr.Field)
}

func TestRegisterDefaults(t *testing.T) {
	r := registry.New()
	require.NoError(t, RegisterDefaults(r, testCatalog(t), map[string]PoolSettings{
		Sprites.Name(): {Prewarm: 2, Capacity: 2},
	}))

	assert.ElementsMatch(t, Kinds, r.Kinds())
	stats := r.Stats()
	assert.Equal(t, 10, stats[Rectangles.Name()].Idle)
	assert.Equal(t, 0, stats[RectangleChess.Name()].Idle)
	assert.Equal(t, 5, stats[SpriteGrids.Name()].Idle)
	assert.Equal(t, 2, stats[Sprites.Name()].Idle)
	assert.Equal(t, 2, stats[Spines.Name()].Idle)

	for i := 0; i < 2; i++ {
		_, err := Sprites.Create(r, SpriteConfig{ImgURL: coinURL})
		require.NoError(t, err)
	}
	_, err := Sprites.Create(r, SpriteConfig{ImgURL: coinURL})
	assert.ErrorIs(t, err, pool.ErrPoolExhausted)

	grid, err := SpriteGrids.Create(r, SpriteGridConfig{ImgURL: bunnyURL, GridAmount: 4, Columns: 2, Spacing: 30})
	require.NoError(t, err)
	require.NoError(t, SpriteGrids.Release(r, grid))
	again, err := SpriteGrids.Create(r, SpriteGridConfig{ImgURL: bunnyURL, GridAmount: 1, Columns: 1})
	require.NoError(t, err)
	assert.Same(t, grid, again)
	assert.Equal(t, 1, again.Cells())
}

func TestReleaseDetachesFromScene(t *testing.T) {
	r := registry.New()
	require.NoError(t, RegisterDefaults(r, testCatalog(t), nil))
	scene := view.NewNode("scene")

	rect, err := Rectangles.Create(r, RectangleConfig{Width: 5, Height: 5, Opacity: 1})
	require.NoError(t, err)
	sprite, err := Sprites.Create(r, SpriteConfig{ImgURL: coinURL})
	require.NoError(t, err)
	grid, err := SpriteGrids.Create(r, SpriteGridConfig{ImgURL: bunnyURL, GridAmount: 2, Columns: 2})
	require.NoError(t, err)
	spine, err := Spines.Create(r, SpineConfig{ImgURL: heroURL})
	require.NoError(t, err)
	for _, n := range []*view.Node{rect.View(), sprite.View(), grid.View(), spine.View()} {
		scene.AddChild(n)
	}
	require.Equal(t, 4, scene.ChildCount())

	require.NoError(t, registry.Release(r, Rectangles, rect))
	require.NoError(t, Sprites.Release(r, sprite))
	require.NoError(t, SpriteGrids.Release(r, grid))
	require.NoError(t, Spines.Release(r, spine))

	assert.Zero(t, scene.ChildCount(), "pooled objects are not part of any scene")
	pristine(t, rect.View())
	pristine(t, sprite.View())
	pristine(t, grid.View())
	pristine(t, spine.View())
}

func TestRegisterDefaultsReplacesAndDestroys(t *testing.T) {
	r := registry.New()
	src := testCatalog(t)
	require.NoError(t, RegisterDefaults(r, src, nil))
	rect, err := Rectangles.Create(r, RectangleConfig{Width: 1, Height: 1})
	require.NoError(t, err)

	require.NoError(t, RegisterDefaults(r, src, nil))
	assert.True(t, rect.View().Destroyed(), "replaced factory is closed")

	assert.Error(t, RegisterDefaults(r, nil, nil))
}

func TestDestroyView(t *testing.T) {
	r := NewRectangle()
	DestroyView(r)
	assert.True(t, r.View().Destroyed())
	DestroyView(struct{}{})
}
