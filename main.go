package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/proximity-nav/internal/config"
	"github.com/iburimskiy/proximity-nav/internal/game"
	"github.com/iburimskiy/proximity-nav/internal/inspect"
	"github.com/iburimskiy/proximity-nav/internal/prefs"
	"github.com/iburimskiy/proximity-nav/internal/scene"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfig+")")
	dbPath := flag.String("db", "", "preferences database (default $"+config.EnvDB+" or the user config dir)")
	inspectAddr := flag.String("inspect", "", "serve the debug API on this address, e.g. 127.0.0.1:8089")
	mute := flag.Bool("mute", false, "disable click sounds")
	flag.Parse()

	if config.LoadEnv() {
		log.Println("[INFO] Loaded environment variables from .env file")
	} else {
		log.Println("[WARN] No .env file found, using system environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *dbPath != "" {
		cfg.DB = *dbPath
	}
	if *inspectAddr != "" {
		cfg.InspectAddr = *inspectAddr
	}
	if *mute {
		cfg.Sound = false
	}
	if cfg.DB == "" {
		cfg.DB = prefs.DefaultPath()
	}

	// Preferences are optional; the nav still works without them.
	var (
		scenePrefs   scene.Prefs
		inspectPrefs inspect.Prefs
	)
	store, err := prefs.Open(cfg.DB)
	if err != nil {
		log.Printf("[WARN] preferences disabled: %v", err)
		store = nil
	} else {
		defer store.Close()
		scenePrefs, inspectPrefs = store, store
		log.Printf("[INFO] preferences at %s", store.Path())
	}

	sc, err := scene.New(cfg, scenePrefs)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.InspectAddr != "" {
		animators := map[string]inspect.Snapshotter{}
		for name, a := range sc.Animators() {
			animators[name] = a
		}
		go func() {
			if err := inspect.Serve(ctx, cfg.InspectAddr, inspect.NewRouter(animators, inspectPrefs)); err != nil {
				log.Printf("[WARN] inspect server: %v", err)
			}
		}()
	}

	g := game.New(sc, store, cfg.Sound)
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Proximity Nav - Space: theme, L: load layout, Esc/Q: quit")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		game.ShowError(err)
		log.Print(err)
	}
}

func fatal(err error) {
	game.ShowError(err)
	log.Fatal(err)
}
