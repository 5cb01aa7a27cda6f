// Package assets resolves asset URLs to the metadata pooled game objects need
// at Init time. Decoding and uploading are left to the renderer.
package assets

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidAsset  = errors.New("invalid asset")
)

// Source is what game objects acquire textures and skeletons from.
type Source interface {
	Texture(url string) (Texture, error)
	Skeleton(url string) (Skeleton, error)
}

type Texture struct {
	URL    string  `yaml:"url" toml:"url" json:"url"`
	Width  float64 `yaml:"width" toml:"width" json:"width"`
	Height float64 `yaml:"height" toml:"height" json:"height"`
}

type Skeleton struct {
	URL        string   `yaml:"url" toml:"url" json:"url"`
	Width      float64  `yaml:"width" toml:"width" json:"width"`
	Height     float64  `yaml:"height" toml:"height" json:"height"`
	Animations []string `yaml:"animations" toml:"animations" json:"animations"`
}

// HasAnimation reports whether name is one of the skeleton's animations.
func (s Skeleton) HasAnimation(name string) bool {
	return slices.Contains(s.Animations, name)
}

// Catalog is an in-memory Source. It is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	textures  map[string]Texture
	skeletons map[string]Skeleton
}

var _ Source = (*Catalog)(nil)

func NewCatalog() *Catalog {
	return &Catalog{
		textures:  make(map[string]Texture),
		skeletons: make(map[string]Skeleton),
	}
}

// Load builds a catalog from config entries. The first invalid entry aborts.
func Load(textures []Texture, skeletons []Skeleton) (*Catalog, error) {
	c := NewCatalog()
	for _, t := range textures {
		if err := c.AddTexture(t); err != nil {
			return nil, err
		}
	}
	for _, s := range skeletons {
		if err := c.AddSkeleton(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddTexture stores t under its URL, replacing any previous entry.
func (c *Catalog) AddTexture(t Texture) error {
	if t.URL == "" {
		return fmt.Errorf("%w: texture without url", ErrInvalidAsset)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: texture %s: size %gx%g", ErrInvalidAsset, t.URL, t.Width, t.Height)
	}
	c.mu.Lock()
	c.textures[t.URL] = t
	c.mu.Unlock()
	return nil
}

// AddSkeleton stores s under its URL, replacing any previous entry.
func (c *Catalog) AddSkeleton(s Skeleton) error {
	if s.URL == "" {
		return fmt.Errorf("%w: skeleton without url", ErrInvalidAsset)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: skeleton %s: size %gx%g", ErrInvalidAsset, s.URL, s.Width, s.Height)
	}
	s.Animations = slices.Clone(s.Animations)
	c.mu.Lock()
	c.skeletons[s.URL] = s
	c.mu.Unlock()
	return nil
}

func (c *Catalog) Texture(url string) (Texture, error) {
	c.mu.RLock()
	t, ok := c.textures[url]
	c.mu.RUnlock()
	if !ok {
		return Texture{}, fmt.Errorf("texture %q: %w", url, ErrAssetNotFound)
	}
	return t, nil
}

func (c *Catalog) Skeleton(url string) (Skeleton, error) {
	c.mu.RLock()
	s, ok := c.skeletons[url]
	c.mu.RUnlock()
	if !ok {
		return Skeleton{}, fmt.Errorf("skeleton %q: %w", url, ErrAssetNotFound)
	}
	s.Animations = slices.Clone(s.Animations)
	return s, nil
}

// Len returns the number of textures and skeletons.
func (c *Catalog) Len() (textures, skeletons int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures), len(c.skeletons)
}
