// component/suppression_bomb.go
package component

import "hex-fire-defense/pkg/hexmap"

// SuppressionBomb взводится при установке, запускает отсчёт в первый тик,
// когда горит её клетка или сосед, и детонирует ровно один раз.
type SuppressionBomb struct {
	Hex       hexmap.Hex
	Level     int
	Triggered bool
	Countdown float64
	Detonated bool
}
