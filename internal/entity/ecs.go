// internal/entity/ecs.go
package entity

import (
	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/types"
)

type ECS struct {
	GameTime         float64
	NextID           types.EntityID
	Towers           map[types.EntityID]*component.Tower
	WaterBombs       map[types.EntityID]*component.WaterBomb
	WaterTanks       map[types.EntityID]*component.WaterTank
	SuppressionBombs map[types.EntityID]*component.SuppressionBomb
	DigSites         map[types.EntityID]*component.DigSite
	Items            map[types.EntityID]*component.Item
	FireSpawners     map[types.EntityID]*component.FireSpawner
	Wave             *component.Wave
	GameState        *component.GameState
}

func NewECS() *ECS {
	return &ECS{
		NextID:           1,
		Towers:           make(map[types.EntityID]*component.Tower),
		WaterBombs:       make(map[types.EntityID]*component.WaterBomb),
		WaterTanks:       make(map[types.EntityID]*component.WaterTank),
		SuppressionBombs: make(map[types.EntityID]*component.SuppressionBomb),
		DigSites:         make(map[types.EntityID]*component.DigSite),
		Items:            make(map[types.EntityID]*component.Item),
		FireSpawners:     make(map[types.EntityID]*component.FireSpawner),
		Wave:             nil,
		GameState: &component.GameState{
			Phase: component.PlacementPhase,
		},
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}
