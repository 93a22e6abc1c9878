// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/defs"
	"hex-fire-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	seed := flag.Int64("seed", 0, "PRNG seed, 0 = random")
	towersPath := flag.String("towers", "", "path to tower definitions JSON")
	firesPath := flag.String("fires", "", "path to fire definitions JSON")
	flag.Parse()

	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	if *towersPath != "" {
		if err := defs.LoadTowerDefinitions(*towersPath); err != nil {
			log.Fatalf("failed to load tower definitions: %v", err)
		}
	}
	if *firesPath != "" {
		if err := defs.LoadFireDefinitions(*firesPath); err != nil {
			log.Fatalf("failed to load fire definitions: %v", err)
		}
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, *seed))

	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Hex Fire Defense")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
