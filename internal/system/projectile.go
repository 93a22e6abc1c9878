// internal/system/projectile.go
package system

import (
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/entity"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/pkg/hexmap"
)

// WaterBombSystem ведёт водяные бомбы к целям и детонирует их.
// Полёт — это прогресс [0,1] вдоль отрезка старт-цель.
type WaterBombSystem struct {
	ecs        *entity.ECS
	hexMap     *hexmap.HexMap
	dispatcher *event.Dispatcher
	fire       *FireSystem
	hazards    *HazardSystem
}

func NewWaterBombSystem(ecs *entity.ECS, hexMap *hexmap.HexMap, dispatcher *event.Dispatcher, fire *FireSystem, hazards *HazardSystem) *WaterBombSystem {
	return &WaterBombSystem{
		ecs:        ecs,
		hexMap:     hexMap,
		dispatcher: dispatcher,
		fire:       fire,
		hazards:    hazards,
	}
}

func (s *WaterBombSystem) Update(deltaTime float64) {
	var finished []types.EntityID
	for id, bomb := range s.ecs.WaterBombs {
		if bomb.Exploded {
			finished = append(finished, id)
			continue
		}
		dist := float64(bomb.Start.Distance(bomb.Target))
		if dist < 1 {
			dist = 1
		}
		bomb.Progress += bomb.Speed * deltaTime / dist
		if bomb.Progress >= 1 {
			s.detonate(bomb.Target, bomb.Power, bomb.PowerLevel)
			bomb.Exploded = true
			finished = append(finished, id)
		}
	}
	for _, id := range finished {
		delete(s.ecs.WaterBombs, id)
	}
}

// detonate раздаёт воду по кольцам вокруг точки удара: уровень мощности N
// открывает кольца 0..N-1, каждое со своим множителем затухания.
func (s *WaterBombSystem) detonate(target hexmap.Hex, power float64, powerLevel int) {
	rings := powerLevel
	if rings < 1 {
		rings = 1
	}
	if rings > len(config.BombRingMultipliers) {
		rings = len(config.BombRingMultipliers)
	}
	for k := 0; k < rings; k++ {
		amount := power * config.BombRingMultipliers[k]
		for _, hex := range s.hexMap.HexesInRing(target, k) {
			tile := s.hexMap.At(hex)
			if tile == nil {
				continue
			}
			if tile.Burning {
				s.fire.ExtinguishHex(hex, amount)
			}
			s.hazards.ApplyWater(hex, amount)
		}
	}
	s.dispatcher.Dispatch(event.Event{Type: event.BombDetonated, Data: target})
}
