// internal/state/game_state.go
package state

import (
	"fmt"
	"log"
	"time"

	game "hex-fire-defense/internal/app"
	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/pkg/hexmap"
	"hex-fire-defense/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Горячие клавиши выбора инструмента расстановки.
var towerHotkeys = map[ebiten.Key]string{
	ebiten.Key1: "TOWER_JET",
	ebiten.Key2: "TOWER_SPREAD",
	ebiten.Key3: "TOWER_PULSING",
	ebiten.Key4: "TOWER_RAIN",
	ebiten.Key5: "TOWER_BOMBER",
}

// GameState — основное игровое состояние: ввод, тик симуляции, отрисовка.
type GameState struct {
	sm       *StateMachine
	game     *game.Game
	renderer *render.HexRenderer

	tool          string // выбранный тип башни, либо "TANK" / "BOMB"
	selectedTower types.EntityID
	hasSelection  bool
	lastClickTime time.Time
}

func NewGameState(sm *StateMachine, seed int64) *GameState {
	gameLogic := game.NewGame(seed)
	renderer := render.NewHexRenderer(gameLogic.HexMap, config.HexSize, config.ScreenWidth, config.ScreenHeight)
	return &GameState{
		sm:            sm,
		game:          gameLogic,
		renderer:      renderer,
		tool:          "TOWER_JET",
		lastClickTime: time.Now(),
	}
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}

	g.handleInput()
	g.game.Update(deltaTime)

	for _, e := range g.game.DrainEvents() {
		switch e.Type {
		case event.TowerDestroyed, event.ItemDestroyed:
			log.Printf("event: %s %v", e.Type, e.Data)
		}
	}
}

func (g *GameState) handleInput() {
	for key, defID := range towerHotkeys {
		if inpututil.IsKeyJustPressed(key) {
			g.tool = defID
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.tool = "TANK"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.tool = "BOMB"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.game.StartWave()
	}

	if g.hasSelection {
		if inpututil.IsKeyJustPressed(ebiten.KeyE) {
			if tower, ok := g.game.ECS.Towers[g.selectedTower]; ok {
				g.game.RotateTower(g.selectedTower, (tower.Direction+1)%6)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyU) {
			g.game.UpgradeTowerRange(g.selectedTower)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.game.UpgradeTowerPower(g.selectedTower)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.game.UpgradeTowerShield(g.selectedTower)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.handleGameClick(x, y, ebiten.MouseButtonLeft)
		g.lastClickTime = time.Now()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.handleGameClick(x, y, ebiten.MouseButtonRight)
		g.lastClickTime = time.Now()
	}
}

func (g *GameState) handleGameClick(x, y int, button ebiten.MouseButton) {
	hex := g.renderer.ScreenToHex(float64(x), float64(y))
	tile := g.game.HexMap.At(hex)
	if tile == nil {
		return
	}

	if button == ebiten.MouseButtonRight {
		if tile.Occupant.Kind == hexmap.OccupantTower {
			g.game.RemoveTower(tile.Occupant.ID)
			g.hasSelection = false
		}
		return
	}

	// Левый клик по своей башне — выбор, по пустой клетке — установка.
	if tile.Occupant.Kind == hexmap.OccupantTower {
		g.selectedTower = tile.Occupant.ID
		g.hasSelection = true
		return
	}
	g.hasSelection = false

	switch g.tool {
	case "TANK":
		g.game.PlaceWaterTank(hex)
	case "BOMB":
		g.game.PlaceSuppressionBomb(hex, 1)
	default:
		g.game.PlaceTower(hex, g.tool, 0)
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	var selected hexmap.Hex
	if g.hasSelection {
		if tower, ok := g.game.ECS.Towers[g.selectedTower]; ok {
			selected = tower.Hex
		} else {
			g.hasSelection = false
		}
	}
	g.renderer.Draw(screen, g.game, selected, g.hasSelection)

	wave, phase := g.game.WaveInfo()
	phaseLabel := "placement"
	if phase == component.ActivePhase {
		phaseLabel = fmt.Sprintf("wave %d (%.0fs)", wave.Number, wave.TimeRemaining)
	}
	g.renderer.DrawLabel(screen, fmt.Sprintf("%s | tool: %s | fires: %d", phaseLabel, g.tool, len(g.game.BurningHexes())))
}

func (g *GameState) Exit() {}
