// internal/event/types.go
package event

import (
	"hex-fire-defense/internal/types"
	"hex-fire-defense/pkg/hexmap"
)

const (
	FireExtinguished EventType = "FireExtinguished" // Огонь потушен
	FireIgnited      EventType = "FireIgnited"      // Клетка загорелась
	TowerDestroyed   EventType = "TowerDestroyed"   // Башня уничтожена огнём
	ItemDestroyed    EventType = "ItemDestroyed"    // Разрушаемый объект уничтожен
	TankExploded     EventType = "TankExploded"     // Бак с водой взорвался
	BombDetonated    EventType = "BombDetonated"    // Водяная бомба сдетонировала
	WaveStarted      EventType = "WaveStarted"
	WaveEnded        EventType = "WaveEnded"
	GroupEnded       EventType = "GroupEnded" // Конец группы волн
)

// FireExtinguishedPayload сопровождает FireExtinguished: что горело и где.
type FireExtinguishedPayload struct {
	FireType types.FireType
	Hex      hexmap.Hex
}

// ItemDestroyedPayload сопровождает ItemDestroyed.
type ItemDestroyedPayload struct {
	ID    types.EntityID
	Cause string // "fire", "water", "explosion"
}

// WavePayload сопровождает WaveStarted/WaveEnded/GroupEnded.
type WavePayload struct {
	Number      int
	Group       int
	WaveInGroup int
}
