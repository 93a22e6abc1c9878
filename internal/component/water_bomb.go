// component/water_bomb.go
package component

import (
	"hex-fire-defense/internal/types"
	"hex-fire-defense/pkg/hexmap"
)

// WaterBomb — снаряд бомбардира. Полёт моделируется как прогресс [0,1],
// а не как асинхронное ожидание.
type WaterBomb struct {
	TowerID    types.EntityID
	Start      hexmap.Hex
	Target     hexmap.Hex
	Progress   float64
	Speed      float64 // гексов в секунду
	PowerLevel int
	Power      float64 // базовая мощность удара, зафиксирована при запуске
	Exploded   bool    // защита от повторной детонации
}
