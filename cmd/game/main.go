package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Ghost-Loop/internal/config"
	"github.com/Garsondee/Ghost-Loop/internal/game"
	"github.com/Garsondee/Ghost-Loop/internal/stage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", config.Path(), "path to the TOML config")
	stagePath := flag.String("stage", "", "stage YAML (overrides session.stage)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if *stagePath != "" {
		cfg.Session.Stage = *stagePath
	}
	st, err := stage.Load(cfg.Session.Stage)
	if err != nil {
		return err
	}

	g, err := game.New(cfg, st, log)
	if err != nil {
		return err
	}
	defer g.Session().Close()

	log.Info("starting",
		zap.String("stage", st.Name),
		zap.String("session", g.Session().ID().String()),
		zap.Int("tps", cfg.Window.TPS),
	)

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(cfg.Window.TPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("stopped", zap.Any("stats", g.Session().Stats()))
	return nil
}
