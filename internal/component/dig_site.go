// component/dig_site.go
package component

import "hex-fire-defense/pkg/hexmap"

// DigSite — раскоп. Живёт всю группу волн; чистый урон за тик —
// урон огня минус вода, налитая башнями в этом же тике.
type DigSite struct {
	Hex       hexmap.Hex
	Health    float64
	MaxHealth float64

	// Вода, накопленная в текущем тике. Сбрасывается каждый тик,
	// не переносится.
	WaterThisTick float64
}
