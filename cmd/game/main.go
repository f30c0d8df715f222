package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Garsondee/Box-Cutter/internal/app"
	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/Garsondee/Box-Cutter/internal/store"
	"github.com/Garsondee/Box-Cutter/internal/submit"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

// Play area in world units. At the default cell size this is an 80x60 grid.
const (
	fieldWidth  = 640
	fieldHeight = 480
)

func main() {
	// A missing .env is fine; the flags carry their own defaults.
	_ = godotenv.Load()

	var configPath, bestPath, scoreURL string
	var scale float64
	var autopilot, mute bool
	var seed int64

	flag.StringVar(&configPath, "config", envOr("BOXCUTTER_CONFIG", "boxcutter.json"), "JSON tuning file")
	flag.StringVar(&bestPath, "best", envOr("BOXCUTTER_BEST", "boxcutter.best"), "best-score store file")
	flag.StringVar(&scoreURL, "score-url", envOr("BOXCUTTER_SCORE_URL", ""), "websocket URL that receives game-over scores")
	flag.Float64Var(&scale, "scale", 1.5, "screen pixels per world unit")
	flag.BoolVar(&autopilot, "autopilot", false, "start in attract mode")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	flag.Int64Var(&seed, "seed", 1, "autopilot seed")
	flag.Parse()

	cfg, err := game.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	kv, err := store.OpenFile(bestPath)
	if err != nil {
		log.Fatal(err)
	}

	eng := game.New(cfg, game.Rect{W: fieldWidth, H: fieldHeight},
		game.WithBestScoreStore(store.NewBestScore(kv, cfg.GameID)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if scoreURL != "" {
		sub := submit.New(scoreURL, 0, log.Default())
		sub.Subscribe(eng.Events())
		go func() {
			if err := sub.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("score submitter stopped: %v", err)
			}
		}()
	}

	a := app.New(eng, app.Options{
		Scale:     scale,
		Sound:     !mute,
		Autopilot: autopilot,
		Seed:      seed,
		Logger:    log.Default(),
	})
	ebiten.SetWindowTitle("Box Cutter")
	ebiten.SetWindowSize(a.Size())
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
