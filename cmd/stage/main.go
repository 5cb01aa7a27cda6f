package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/entitypool/internal/config"
	"github.com/zeusync/entitypool/internal/gameobjects"
	"github.com/zeusync/entitypool/internal/injector"
	"github.com/zeusync/entitypool/internal/stage"
)

const (
	screenWidth  = 1280.0
	screenHeight = 720.0
)

func main() {
	configPath := flag.String("config", "", "path to a .yaml, .toml or .json config file")
	frames := flag.Int("frames", -1, "number of frames to run, 0 runs until interrupted (overrides loop.frames)")
	churn := flag.Int("churn", 12, "coins kept on stage by the churn loop")
	flag.Parse()

	if err := run(*configPath, *frames, *churn); err != nil {
		fmt.Fprintln(os.Stderr, "stage:", err)
		os.Exit(1)
	}
}

func run(configPath string, frames, churn int) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if frames >= 0 {
		cfg.Loop.Frames = frames
	}

	st, cleanup, err := injector.InitializeStage(cfg)
	if err != nil {
		return fmt.Errorf("initialize stage: %w", err)
	}
	defer cleanup()
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = populate(st); err != nil {
		return err
	}

	coins := newCoinChurn(st, churn)
	err = st.Run(ctx, cfg.Loop.FPS, cfg.Loop.Frames, func(frame int, _ float64) {
		coins.tick(frame)
	})
	st.LogStats()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return coins.err
}

// populate lays out the demo scene.
func populate(st *stage.Stage) error {
	grid, err := stage.Spawn(st, gameobjects.SpriteGrids, gameobjects.SpriteGridConfig{
		ImgURL:     "assets/bunny.png",
		X:          screenWidth / 6,
		Y:          screenHeight / 4,
		GridAmount: 25,
		Columns:    5,
		Spacing:    40,
	})
	if err != nil {
		return err
	}
	grid.View().SetPosition(grid.View().X+150, grid.View().Y+100)
	grid.View().SetScale(2, 2)
	grid.View().Rotation = -20 * math.Pi / 180

	rect, err := stage.Spawn(st, gameobjects.Rectangles, gameobjects.RectangleConfig{
		X:        screenWidth / 2,
		Y:        screenHeight / 2,
		Width:    300,
		Height:   300,
		Color:    0xff0000,
		Opacity:  1,
		Centered: true,
	})
	if err != nil {
		return err
	}
	rect.View().SetScale(1.2, 1.2)
	rect.View().Rotation = 45 * math.Pi / 180

	if _, err = stage.Spawn(st, gameobjects.RectangleChess, gameobjects.RectangleConfig{
		X:        screenWidth * 0.75,
		Y:        screenHeight * 0.7,
		Width:    250,
		Height:   250,
		Color:    0x00ff00,
		Opacity:  1,
		Centered: true,
	}); err != nil {
		return err
	}

	if _, err = stage.Spawn(st, gameobjects.Sprites, gameobjects.SpriteConfig{
		ImgURL: "coin",
		X:      screenWidth * 0.08,
		Y:      screenHeight * 0.9,
		Anchor: 0.5,
		Scale:  0.5,
	}); err != nil {
		return err
	}

	_, err = stage.Spawn(st, gameobjects.Spines, gameobjects.SpineConfig{
		ImgURL:    "assets/spineboy/spineboy.json",
		X:         screenWidth * 0.3,
		Y:         screenHeight * 0.95,
		Scale:     0.4,
		Animation: "walk",
	})
	return err
}

// coinChurn keeps a bounded queue of coins on stage, despawning the oldest
// every frame, so the sprite pool serves most spawns from its free list.
type coinChurn struct {
	st    *stage.Stage
	limit int
	live  []*gameobjects.Sprite
	err   error
}

func newCoinChurn(st *stage.Stage, limit int) *coinChurn {
	return &coinChurn{st: st, limit: limit}
}

func (c *coinChurn) tick(frame int) {
	if c.err != nil || c.limit <= 0 {
		return
	}
	if len(c.live) >= c.limit {
		if c.err = stage.Despawn(c.st, gameobjects.Sprites, c.live[0]); c.err != nil {
			return
		}
		c.live = c.live[1:]
	}

	coin, err := stage.Spawn(c.st, gameobjects.Sprites, gameobjects.SpriteConfig{
		ImgURL: "coin",
		X:      float64(frame % screenWidth),
		Y:      screenHeight / 2,
		Anchor: 0.5,
		Scale:  0.25,
	})
	if err != nil {
		c.err = err
		return
	}
	c.live = append(c.live, coin)
}
