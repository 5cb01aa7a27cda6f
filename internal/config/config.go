// Package config loads the stage configuration from YAML, TOML or JSON.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/entitypool/internal/assets"
	"github.com/zeusync/entitypool/internal/core/observability/log"
	"github.com/zeusync/entitypool/internal/core/pool"
	"github.com/zeusync/entitypool/internal/gameobjects"
	"github.com/zeusync/entitypool/pkg/sequence"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalid           = errors.New("invalid config")
)

type Config struct {
	Logging LoggingConfig         `yaml:"logging" toml:"logging" json:"logging"`
	Loop    LoopConfig            `yaml:"loop" toml:"loop" json:"loop"`
	Pools   map[string]PoolConfig `yaml:"pools" toml:"pools" json:"pools"`
	Assets  AssetsConfig          `yaml:"assets" toml:"assets" json:"assets"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"` // "json" or "console"
}

type LoopConfig struct {
	FPS    int `yaml:"fps" toml:"fps" json:"fps"`
	Frames int `yaml:"frames" toml:"frames" json:"frames"` // 0 runs until interrupted
}

// PoolConfig sizes the factory of one kind. An entry replaces the defaults
// of its kind as a whole.
type PoolConfig struct {
	Prewarm  int    `yaml:"prewarm" toml:"prewarm" json:"prewarm"`
	Capacity int    `yaml:"capacity" toml:"capacity" json:"capacity"` // 0 is unbounded
	Policy   string `yaml:"policy" toml:"policy" json:"policy"`       // "fail" or "block"
}

type AssetsConfig struct {
	Textures  []assets.Texture  `yaml:"textures" toml:"textures" json:"textures"`
	Skeletons []assets.Skeleton `yaml:"skeletons" toml:"skeletons" json:"skeletons"`
}

// Load reads path on top of Default and validates the result. The decoder
// is chosen by file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	case ".toml":
		var md toml.MetaData
		md, err = toml.Decode(string(data), cfg)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown keys %v", undecoded)
			}
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		return nil, fmt.Errorf("config %s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	pools := make(map[string]PoolConfig)
	for kind, n := range gameobjects.DefaultPrewarm() {
		pools[kind] = PoolConfig{Prewarm: n, Policy: pool.PolicyFail.String()}
	}

	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Loop: LoopConfig{
			FPS: 60,
		},
		Pools: pools,
		Assets: AssetsConfig{
			Textures: []assets.Texture{
				{URL: "assets/bunny.png", Width: 26, Height: 37},
				{URL: "coin", Width: 128, Height: 128},
			},
			Skeletons: []assets.Skeleton{
				{URL: "assets/spineboy/spineboy.json", Width: 470, Height: 600, Animations: []string{"idle", "walk", "run", "jump"}},
			},
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown encoding %q", c.Logging.Format))
	}
	if c.Loop.FPS <= 0 {
		errs = append(errs, fmt.Errorf("loop.fps: must be positive, got %d", c.Loop.FPS))
	}
	if c.Loop.Frames < 0 {
		errs = append(errs, fmt.Errorf("loop.frames: must not be negative, got %d", c.Loop.Frames))
	}

	for _, kind := range sequence.Sorted(sequence.Keys(c.Pools)) {
		p := c.Pools[kind]
		if !slices.Contains(gameobjects.Kinds, kind) {
			errs = append(errs, fmt.Errorf("pools.%s: unknown kind", kind))
			continue
		}
		if p.Prewarm < 0 || p.Capacity < 0 {
			errs = append(errs, fmt.Errorf("pools.%s: negative size", kind))
		}
		if p.Capacity > 0 && p.Prewarm > p.Capacity {
			errs = append(errs, fmt.Errorf("pools.%s: prewarm %d exceeds capacity %d", kind, p.Prewarm, p.Capacity))
		}
		if _, err := pool.ParsePolicy(p.Policy); err != nil {
			errs = append(errs, fmt.Errorf("pools.%s: %w", kind, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// LogLevel returns the parsed logging level. Call after Validate.
func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Logging.Level)
	return level
}

// PoolSettings converts the pools section for gameobjects.RegisterDefaults.
func (c *Config) PoolSettings() (map[string]gameobjects.PoolSettings, error) {
	out := make(map[string]gameobjects.PoolSettings, len(c.Pools))
	for kind, p := range c.Pools {
		policy, err := pool.ParsePolicy(p.Policy)
		if err != nil {
			return nil, fmt.Errorf("pools.%s: %w", kind, err)
		}
		out[kind] = gameobjects.PoolSettings{Prewarm: p.Prewarm, Capacity: p.Capacity, Policy: policy}
	}
	return out, nil
}

// Catalog builds the asset catalog from the assets section.
func (c *Config) Catalog() (*assets.Catalog, error) {
	return assets.Load(c.Assets.Textures, c.Assets.Skeletons)
}
