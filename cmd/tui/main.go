package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/Garsondee/Box-Cutter/internal/store"
	"github.com/Garsondee/Box-Cutter/internal/tui"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var configPath, bestPath string
	flag.StringVar(&configPath, "config", envOr("BOXCUTTER_CONFIG", "boxcutter.json"), "JSON tuning file")
	flag.StringVar(&bestPath, "best", envOr("BOXCUTTER_BEST", "boxcutter.best"), "best-score store file")
	flag.Parse()

	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	kv, err := store.OpenFile(bestPath)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.HideCursor()

	w, h := screen.Size()
	eng := game.New(cfg, tui.Bounds(cfg, w, h),
		game.WithBestScoreStore(store.NewBestScore(kv, cfg.GameID)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tui.New(screen, eng).Run(ctx); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
