//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"tiledworld/internal/app"
	"tiledworld/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	wcfg := world.DefaultConfig()
	wcfg.Width = cfg.Width
	wcfg.Height = cfg.Height
	wcfg.Seed = cfg.Seed

	w := world.NewWithConfig(wcfg)
	w.Reset(cfg.Seed)

	game := app.New(w, cfg.Scale, cfg.HUDWidth, cfg.Seed)
	size := w.Size()

	ebiten.SetWindowTitle("tiledworld")
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
