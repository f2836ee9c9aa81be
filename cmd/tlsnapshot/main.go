// Command tlsnapshot runs the demo scene without a window and writes frames
// as PNG files.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/pkg/profile"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/game"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/placeholders"
	"chosenoffset.com/targetlines/internal/presets"
	"chosenoffset.com/targetlines/internal/render"
	"chosenoffset.com/targetlines/internal/render/raster"
	"chosenoffset.com/targetlines/internal/scene"
)

func main() {
	configPath := flag.String("config", "targetlines.json", "config file")
	presetPath := flag.String("preset", "", "rule preset to apply over the config")
	textureDir := flag.String("textures", "", "directory holding line.png, outline.png and edge.png")
	outDir := flag.String("out", "snapshots", "directory to write frames to")
	frames := flag.Int("frames", 180, "number of frames to simulate")
	every := flag.Int("every", 30, "save every n-th frame")
	fps := flag.Float64("fps", 60, "simulated frames per second")
	width := flag.Int("width", 1280, "frame width")
	height := flag.Int("height", 720, "frame height")
	seed := flag.Uint64("seed", 1, "simulation seed")
	firstPerson := flag.Int("first-person-at", -1, "frame at which to toggle first person, -1 for never")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	verbose := flag.Bool("v", false, "log debug records")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logging.SetLogger(logger)
	gg.SetLogger(logger)

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		log.Fatalf("Unknown profile mode %q", *profileMode)
	}

	if *every < 1 || *fps <= 0 {
		log.Fatalf("-every must be at least 1 and -fps positive")
	}

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
	}

	var textures render.TextureSet
	if *textureDir != "" {
		textures, err = render.LoadTextureSet(raster.Loader{}, *textureDir)
		if err != nil {
			log.Printf("Warning: %v", err)
		}
	} else {
		textures = placeholders.Textures(func(img image.Image) render.Texture { return raster.NewTexture(img) })
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	opts := scene.DefaultOptions()
	opts.Seed = *seed
	opts.Width, opts.Height = *width, *height
	g := game.New(cfg, opts, textures)
	g.ShowHelp = false

	canvas := raster.NewCanvas(*width, *height)
	defer canvas.Close()

	saved := 0
	for frame := 0; frame < *frames; frame++ {
		if frame == *firstPerson {
			g.Apply(game.ActionToggleFirstPerson)
		}
		g.Step(1 / *fps)

		canvas.Clear(game.Background)
		stats := g.Draw(canvas)

		if frame%*every != 0 {
			continue
		}
		path := filepath.Join(*outDir, fmt.Sprintf("frame_%05d.png", frame))
		if err := canvas.SavePNG(path); err != nil {
			log.Fatalf("Failed to write frame: %v", err)
		}
		saved++
		logger.Debug("frame saved", "path", path, "lines", stats.Lines, "drawn", stats.Drawn)
	}

	fmt.Printf("Wrote %d frames to %s\n", saved, *outDir)
}
