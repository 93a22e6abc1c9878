// component/water_tank.go
package component

import "hex-fire-defense/pkg/hexmap"

// WaterTank — пассивный бак с водой. При разрушении взрывается,
// гася огонь в зоне и запуская цепную детонацию соседних баков.
type WaterTank struct {
	Hex       hexmap.Hex
	Health    float64
	MaxHealth float64
	Active    bool // false после взрыва: повторно не детонирует
}
