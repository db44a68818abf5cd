package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/sceneflow/client/engine"
	"github.com/cbodonnell/sceneflow/client/flow"
	"github.com/cbodonnell/sceneflow/client/game"
	"github.com/cbodonnell/sceneflow/client/scenes"
	"github.com/cbodonnell/sceneflow/pkg/config"
	"github.com/cbodonnell/sceneflow/pkg/log"
	"github.com/cbodonnell/sceneflow/pkg/version"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
)

func main() {
	logLevel := flag.String("log-level", "", "Log level, overrides the config file")
	configPath := flag.String("config", "", "Path to a TOML config file")
	debug := flag.Bool("debug", false, "Show the debug overlay")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	default:
		panic(fmt.Sprintf("Unknown profile mode %q", *profileMode))
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
		cfg = loaded
	}

	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	parsedLogLevel, err := log.ParseLogLevel(level)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := config.NewStore(cfg)
	if *configPath != "" {
		go func() {
			if err := store.Watch(ctx, *configPath); err != nil {
				log.Error("Config watcher stopped: %v", err)
			}
		}()
	}

	e, err := engine.New(engine.Options{
		Surface: engine.Surface{
			ID:     cfg.Window.ID,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
		},
		LoadingText:       cfg.Loading.Text,
		LoadingBackground: cfg.Loading.Background,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create engine: %v", err))
	}

	controller, err := flow.NewController(e, scenes.NewBuilder(e, store), flow.ControllerOptions{
		ReadyTimeout: cfg.Flow.ReadyTimeout.Duration(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create scene flow: %v", err))
	}
	if err := controller.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start scene flow: %v", err))
	}

	g, err := game.NewGame(game.NewGameOptions{
		Debug:      *debug,
		Engine:     e,
		Controller: controller,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.ID)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Error("Failed to run game: %v", err)
	}

	if err := controller.Dispose(); err != nil {
		log.Error("Failed to dispose scene flow: %v", err)
	}
}
