package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/character2d/config"
	"github.com/milk9111/character2d/logging"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal("viewer: bad configuration", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("viewer: logger", "err", err)
	}

	game, err := newViewer(cfg, logger)
	if err != nil {
		logger.Fatal("viewer: setup", "err", err)
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("character2d viewer")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("viewer: run", "err", err)
	}
}
