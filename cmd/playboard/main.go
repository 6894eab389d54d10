package main

import (
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/playbook/internal/application/library"
	"github.com/younwookim/playbook/internal/application/render"
	"github.com/younwookim/playbook/internal/infrastructure/config"
	"github.com/younwookim/playbook/internal/infrastructure/logger"
	"github.com/younwookim/playbook/internal/infrastructure/store"
)

func main() {
	configDir := flag.String("config", "", "Load board.json from this directory instead of the embedded copy")
	team := flag.String("team", "", "Team id (overrides config)")
	list := flag.Bool("list", false, "List the team's saved plays and exit")
	tag := flag.String("tag", "", "With -list, only show plays with this tag")
	playID := flag.String("play", "", "Open a saved play by id")
	headless := flag.Bool("headless", false, "With -play, animate without a window and log each step")
	traceOut := flag.String("trace", "", "Record raw board input to this file, or \"auto\" for a timestamped name")
	traceIn := flag.String("replay-trace", "", "Replay an input trace through the recorder and print the diagram JSON")
	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *team != "" {
		cfg.Team.ID = *team
	}

	logs := logger.New(logger.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console,
	})
	defer logger.Sync(logs)

	st, err := store.Open(cfg.Store.Driver, cfg.Store.SQLiteFile, cfg.Store.DatabaseURL)
	if err != nil {
		logs.Fatalw("failed to open play store", "driver", cfg.Store.Driver, "error", err)
	}
	defer st.Close()
	logs.Infow("play store ready", "driver", cfg.Store.Driver, "team", cfg.Team.ID)

	ps, closePubSub := newPubSub(cfg.PubSub, logs)
	defer closePubSub()

	a := &app{
		cfg:    cfg,
		lib:    library.NewService(st, ps, logs),
		events: ps,
		log:    logs,
		timing: timingFromConfig(cfg.Timing),
		out:    os.Stdout,
	}

	switch {
	case *list:
		err = a.list(*tag)
	case *traceIn != "":
		err = a.replayTrace(*traceIn)
	case *playID != "" && *headless:
		err = a.playHeadless(*playID)
	default:
		err = a.runWindow(*playID, traceFile(*traceOut))
	}
	if err != nil {
		logs.Errorw("playboard exited with error", "error", err)
		logger.Sync(logs)
		os.Exit(1)
	}
}

func loadConfig(dir string) (*config.BoardConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadBoard()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").LoadBoard()
}

func setupWindow(cfg *config.BoardConfig) {
	ebiten.SetWindowSize(render.ScreenWidth*cfg.Display.Scale, render.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle("Playboard")
	ebiten.SetTPS(cfg.Display.Framerate)
}
