//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"gen-ca/internal/app"
	"gen-ca/internal/core"
	"gen-ca/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	gameCfg := cfg.GameConfig()
	ctrl, err := game.New(gameCfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.LoadPattern(ctrl); err != nil {
		log.Fatalf("load pattern: %v", err)
	}

	g := app.New(ctrl, cfg.Scale, cfg.HUDWidth, gameCfg.Seed)
	st := ctrl.State()

	ebiten.SetWindowTitle("gen-ca: " + st.Rule)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(st.Columns*cfg.Scale+cfg.HUDWidth, st.Rows*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
