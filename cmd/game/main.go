package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/younwookim/pixelrun/internal/application/game"
	"github.com/younwookim/pixelrun/internal/application/replay"
	"github.com/younwookim/pixelrun/internal/application/scene"
	"github.com/younwookim/pixelrun/internal/application/scene/playing"
	"github.com/younwookim/pixelrun/internal/application/shell"
	"github.com/younwookim/pixelrun/internal/application/state"
	"github.com/younwookim/pixelrun/internal/infrastructure/audio"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
	"github.com/younwookim/pixelrun/internal/infrastructure/platform"
	"github.com/younwookim/pixelrun/internal/infrastructure/storage"
)

//go:embed configs
var configFS embed.FS

// appName names the save data directory.
const appName = "pixelrun"

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded session (e.g., -replay replay.json)")
	headless := flag.Bool("headless", false, "With -replay, simulate without a window and print the result")
	seedFlag := flag.Int64("seed", 0, "Level seed (0 uses the configured seed)")
	flag.Parse()

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, err := loader.LoadLevel(cfg.Level.Map)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	var recorded *replay.ReplayData
	if *replayFlag != "" {
		recorded, err = loadReplay(*replayFlag, cfg.Level.Map)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
	}

	if *headless {
		if recorded == nil {
			log.Fatalf("-headless needs -replay")
		}
		summary, err := runHeadless(cfg, level, recorded)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		log.Printf("[Replay] %s", summary)
		return
	}

	store := storage.Open(appName)
	host := platform.NewLocal(store)
	if err := platform.Require(host, platform.MajorVersion); err != nil {
		log.Fatalf("Platform: %v", err)
	}

	sounds := audio.NewPlayer(ebaudio.NewContext(audio.SampleRate))

	sessions := 0
	newGame := func(difficulty int, finish func(state.Result) scene.Scene) (scene.Scene, error) {
		sessions++
		recordPath := sessionPath(*recordFlag, sessions)
		if recordPath != "" {
			log.Printf("[Main] Session %d records to %s", sessions, recordPath)
		}
		opts := playing.Options{
			Seed:       *seedFlag,
			Difficulty: difficulty,
			RecordPath: recordPath,
			Replay:     recorded,
			Sounds:     sounds,
			OnFinish:   finish,
		}
		// A replay plays once
		recorded = nil
		return playing.New(cfg, level, opts)
	}

	screenW, screenH := playing.ScreenSize(cfg, level)
	sh := shell.New(store, host, sounds, newGame, screenW, screenH)

	g := game.New(sh.MainMenu(), screenW, screenH)
	g.SetDT(1.0 / float64(cfg.Display.Framerate))
	g.SetUpdateInterval(time.Duration(cfg.Display.UpdateInterval) * time.Millisecond)
	sh.Quit = g.Stop

	// Set up ebiten
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
