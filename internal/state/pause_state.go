// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PauseState замораживает игру: симуляция не тикает, последний кадр
// остаётся на экране под затемнением.
type PauseState struct {
	sm   *StateMachine
	prev *GameState
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{sm: sm, prev: prev}
}

func (p *PauseState) Enter() {}

func (p *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.sm.SetState(p.prev)
	}
}

func (p *PauseState) Draw(screen *ebiten.Image) {
	p.prev.Draw(screen)
	overlay := ebiten.NewImage(screen.Bounds().Dx(), screen.Bounds().Dy())
	overlay.Fill(color.RGBA{0, 0, 0, 140})
	screen.DrawImage(overlay, nil)
	ebitenutil.DebugPrint(screen, "PAUSED (F9 to resume)")
}

func (p *PauseState) Exit() {}
