package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup(t *testing.T) {
	c, err := Load(
		[]Texture{{URL: "bunny.png", Width: 26, Height: 37}},
		[]Skeleton{{URL: "hero.json", Width: 200, Height: 300, Animations: []string{"idle", "run"}}},
	)
	require.NoError(t, err)

	tex, err := c.Texture("bunny.png")
	require.NoError(t, err)
	assert.Equal(t, 26.0, tex.Width)

	sk, err := c.Skeleton("hero.json")
	require.NoError(t, err)
	assert.True(t, sk.HasAnimation("run"))
	assert.False(t, sk.HasAnimation("fly"))

	sk.Animations[0] = "mutated"
	again, err := c.Skeleton("hero.json")
	require.NoError(t, err)
	assert.Equal(t, "idle", again.Animations[0])

	textures, skeletons := c.Len()
	assert.Equal(t, 1, textures)
	assert.Equal(t, 1, skeletons)
}

func TestCatalogMiss(t *testing.T) {
	c := NewCatalog()
	_, err := c.Texture("nope.png")
	assert.ErrorIs(t, err, ErrAssetNotFound)
	_, err = c.Skeleton("nope.json")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	_, err := Load([]Texture{{URL: "", Width: 1, Height: 1}}, nil)
	assert.ErrorIs(t, err, ErrInvalidAsset)

	_, err = Load([]Texture{{URL: "flat.png", Width: 0, Height: 1}}, nil)
	assert.ErrorIs(t, err, ErrInvalidAsset)

	_, err = Load(nil, []Skeleton{{URL: ""}})
	assert.ErrorIs(t, err, ErrInvalidAsset)
}
