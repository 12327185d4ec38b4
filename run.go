package corkboard

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	Debug  bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the scene until the window is closed.
// For full control, implement ebiten.Game yourself and call Scene.Update and
// Scene.Draw directly.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("corkboard: window size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	scene.SetDebugMode(cfg.Debug)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	Logger().Info("window opened", slog.String("title", cfg.Title),
		slog.Int("width", cfg.Width), slog.Int("height", cfg.Height))
	if err := ebiten.RunGame(&game{scene: scene}); err != nil {
		return fmt.Errorf("corkboard: run: %w", err)
	}
	Logger().Info("window closed")
	return nil
}
