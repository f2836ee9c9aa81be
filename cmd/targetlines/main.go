package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/pkg/profile"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/game"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/placeholders"
	"chosenoffset.com/targetlines/internal/presets"
	"chosenoffset.com/targetlines/internal/render"
	ebitenrender "chosenoffset.com/targetlines/internal/render/ebiten"
	"chosenoffset.com/targetlines/internal/scene"
)

func main() {
	configPath := flag.String("config", "targetlines.json", "config file")
	presetPath := flag.String("preset", "", "rule preset to apply over the config")
	textureDir := flag.String("textures", "", "directory holding line.png, outline.png and edge.png")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	verbose := flag.Bool("v", false, "log debug records")
	seed := flag.Uint64("seed", 1, "simulation seed")
	enemies := flag.Int("enemies", 4, "number of enemies")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		log.Fatalf("Unknown profile mode %q", *profileMode)
	}

	screenWidth := 1280
	screenHeight := 720

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *presetPath != "" {
		preset, err := presets.Load(*presetPath)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		presets.Apply(cfg, preset)
		log.Printf("Applied preset %s (%d rules)", preset.Name, len(preset.Rules))
	}

	var textures render.TextureSet
	if *textureDir != "" {
		textures, err = render.LoadTextureSet(loader, *textureDir)
		if err != nil {
			log.Printf("Warning: %v", err)
		}
	} else {
		textures = placeholders.Textures(renderer.NewTexture)
	}

	opts := scene.DefaultOptions()
	opts.Seed = *seed
	opts.Enemies = *enemies
	opts.Width, opts.Height = screenWidth, screenHeight

	g := game.New(cfg, opts, textures)
	manager := game.NewManager(g, renderer, inputMgr)

	// Set up the window
	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle("Target Lines")
	engine.SetWindowResizable(true)

	log.Println("Starting demo...")
	if err := engine.RunGame(manager); err != nil && !errors.Is(err, game.ErrQuit) {
		log.Fatal(err)
	}
}
