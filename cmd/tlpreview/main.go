// Command tlpreview shows the demo scene and its target lines in a terminal.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/game"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/render/term"
	"chosenoffset.com/targetlines/internal/scene"
)

// Pixels covered by one terminal cell. Cells are about twice as tall as
// they are wide.
const (
	cellWidth  = 8
	cellHeight = 16
)

var runeActions = map[rune]game.Action{
	'f': game.ActionToggleFirstPerson,
	's': game.ActionToggleSolid,
	'd': game.ActionToggleDebug,
	'o': game.ActionToggleOcclusion,
	' ': game.ActionToggleSheathe,
	'p': game.ActionPause,
	'h': game.ActionToggleHelp,
	'q': game.ActionQuit,
}

func actionFor(ev *tcell.EventKey) game.Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.ActionQuit
	case tcell.KeyUp:
		return game.ActionMoreEnemies
	case tcell.KeyDown:
		return game.ActionFewerEnemies
	case tcell.KeyRune:
		return runeActions[ev.Rune()]
	}
	return game.ActionNone
}

func main() {
	configPath := flag.String("config", "targetlines.json", "config file")
	logPath := flag.String("log", "", "file to write log records to; the terminal is busy drawing")
	verbose := flag.Bool("v", false, "log debug records")
	seed := flag.Uint64("seed", 1, "simulation seed")
	flag.Parse()

	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		level := slog.LevelInfo
		if *verbose {
			level = slog.LevelDebug
		}
		logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// Block glyphs read better than stretched texture cells
	cfg.SolidColor = true

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	opts := scene.DefaultOptions()
	opts.Seed = *seed
	opts.Width, opts.Height = cols*cellWidth, rows*cellHeight
	g := game.New(cfg, opts, term.DefaultGlyphs())
	canvas := term.NewCanvas(cols, rows, cellWidth, cellHeight)

	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if err := g.Apply(actionFor(ev)); errors.Is(err, game.ErrQuit) {
					return
				}
			case *tcell.EventResize:
				cols, rows = screen.Size()
				canvas.Resize(cols, rows)
				g.Resize(cols*cellWidth, rows*cellHeight)
				screen.Sync()
			}

		case now := <-ticker.C:
			g.Step(now.Sub(last).Seconds())
			last = now

			canvas.Clear()
			g.Draw(canvas)
			screen.Clear()
			canvas.Flush(screen)
			screen.Show()
		}
	}
}
