package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/objects2d/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML engine config")
	debug := flag.Bool("debug", false, "start with hitboxes and the physics overlay shown")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "demo"})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	if *debug {
		cfg.Debug.Hitboxes = true
		cfg.Debug.Space = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		if err := cfg.Validate(); err != nil {
			logger.Fatal("invalid flags", "err", err)
		}
	}
	logger.SetLevel(cfg.Level())
	log.SetDefault(logger)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatal("create game", "err", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal("run", "err", err)
	}
}
