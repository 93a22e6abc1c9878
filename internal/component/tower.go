// component/tower.go
package component

import "hex-fire-defense/pkg/hexmap"

// Shield поглощает урон от огня вместо здоровья башни.
// При Health <= 0 щит снимается безвозвратно.
type Shield struct {
	Level  int
	Health float64
}

type Tower struct {
	DefID      string     // ID из towers.json
	Hex        hexmap.Hex // Гекс, на котором стоит башня
	Direction  int        // Направление 0-5 (индекс в hexmap.NeighborDirections)
	RangeLevel int        // Уровень дальности, 1-4
	PowerLevel int        // Уровень мощности, 1-4
	Health     float64
	MaxHealth  float64
	Shield     *Shield // nil, если щита нет

	// Кэш целей, пересчитывается при установке, повороте и улучшении.
	AffectedHexes []hexmap.Hex

	AttackTimer float64 // для PULSING и BOMBER
}
