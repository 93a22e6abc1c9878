// internal/system/hazard.go
package system

import (
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/defs"
	"hex-fire-defense/internal/entity"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/pkg/hexmap"
)

// HazardSystem обслуживает разрушаемые объекты на карте: водяные баки с
// цепной детонацией, подавляющие бомбы, раскопы и предметы.
type HazardSystem struct {
	ecs        *entity.ECS
	hexMap     *hexmap.HexMap
	dispatcher *event.Dispatcher
	fire       *FireSystem

	// Вода из башен за текущий тик, по бакам. Сбрасывается каждый тик.
	tankWater map[types.EntityID]float64
}

func NewHazardSystem(ecs *entity.ECS, hexMap *hexmap.HexMap, dispatcher *event.Dispatcher, fire *FireSystem) *HazardSystem {
	return &HazardSystem{
		ecs:        ecs,
		hexMap:     hexMap,
		dispatcher: dispatcher,
		fire:       fire,
		tankWater:  make(map[types.EntityID]float64),
	}
}

// ApplyWater направляет воду башни объекту на клетке: бакам и предметам
// она наносит урон, раскопам идёт в зачёт против урона огня в этом же
// тике. Урон предметам применяется сразу, без накопления.
func (s *HazardSystem) ApplyWater(hex hexmap.Hex, amount float64) {
	if amount <= 0 {
		return
	}
	tile := s.hexMap.At(hex)
	if tile == nil {
		return
	}
	switch tile.Occupant.Kind {
	case hexmap.OccupantWaterTank:
		s.tankWater[tile.Occupant.ID] += amount
	case hexmap.OccupantDigSite:
		if ds := s.ecs.DigSites[tile.Occupant.ID]; ds != nil {
			ds.WaterThisTick += amount
		}
	case hexmap.OccupantItem:
		if it := s.ecs.Items[tile.Occupant.ID]; it != nil {
			it.Health -= amount
			if it.Health <= 0 {
				s.destroyItem(tile.Occupant.ID, "water")
			}
		}
	}
}

func (s *HazardSystem) Update(deltaTime float64) {
	s.updateTanks(deltaTime)
	s.updateSuppressionBombs(deltaTime)
	s.updateDigSites(deltaTime)
	s.updateItems(deltaTime)
}

func (s *HazardSystem) updateTanks(deltaTime float64) {
	var exploding []types.EntityID
	for id, tank := range s.ecs.WaterTanks {
		if !tank.Active {
			continue
		}
		dmg := s.tankWater[id]
		if tile := s.hexMap.At(tank.Hex); tile != nil && tile.Burning {
			dmg += defs.FireDPS(tile.FireType) * deltaTime
		}
		if dmg <= 0 {
			continue
		}
		tank.Health -= dmg
		if tank.Health <= 0 {
			exploding = append(exploding, id)
		}
	}
	clear(s.tankWater)

	for _, id := range exploding {
		s.explodeTank(id)
	}
}

// explodeTank детонирует бак и все баки, попавшие в зону взрыва, по
// рабочему списку. Флаг Active снимается до обработки соседей, так что
// циклы в графе «кто кого задевает» завершаются за один проход.
func (s *HazardSystem) explodeTank(start types.EntityID) {
	worklist := []types.EntityID{start}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		tank, ok := s.ecs.WaterTanks[id]
		if !ok || !tank.Active {
			continue
		}
		tank.Active = false

		if tile := s.hexMap.At(tank.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantWaterTank && tile.Occupant.ID == id {
			tile.Occupant = hexmap.Occupant{}
		}
		s.fire.ClearZone(tank.Hex, config.WaterTankBlastRadius)
		s.dispatcher.Dispatch(event.Event{Type: event.TankExploded, Data: tank.Hex})
		s.dispatcher.Dispatch(event.Event{
			Type: event.ItemDestroyed,
			Data: event.ItemDestroyedPayload{ID: id, Cause: "explosion"},
		})
		delete(s.ecs.WaterTanks, id)

		for otherID, other := range s.ecs.WaterTanks {
			if other.Active && tank.Hex.Distance(other.Hex) <= config.WaterTankBlastRadius {
				worklist = append(worklist, otherID)
			}
		}
	}
}

func (s *HazardSystem) updateSuppressionBombs(deltaTime float64) {
	for id, bomb := range s.ecs.SuppressionBombs {
		if bomb.Detonated {
			delete(s.ecs.SuppressionBombs, id)
			continue
		}
		if !bomb.Triggered {
			if s.fireNearby(bomb.Hex) {
				bomb.Triggered = true
				bomb.Countdown = config.SuppressionBombDelay
			}
			continue
		}
		bomb.Countdown -= deltaTime
		if bomb.Countdown > 0 {
			continue
		}
		bomb.Detonated = true
		radius := config.SuppressionBombRadius + bomb.Level
		s.fire.ClearZone(bomb.Hex, radius)
		if tile := s.hexMap.At(bomb.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantSuppressionBomb && tile.Occupant.ID == id {
			tile.Occupant = hexmap.Occupant{}
		}
		s.dispatcher.Dispatch(event.Event{Type: event.BombDetonated, Data: bomb.Hex})
		delete(s.ecs.SuppressionBombs, id)
	}
}

func (s *HazardSystem) fireNearby(hex hexmap.Hex) bool {
	if tile := s.hexMap.At(hex); tile != nil && tile.Burning {
		return true
	}
	for _, n := range s.hexMap.Neighbors(hex) {
		if tile := s.hexMap.At(n); tile != nil && tile.Burning {
			return true
		}
	}
	return false
}

func (s *HazardSystem) updateDigSites(deltaTime float64) {
	for id, ds := range s.ecs.DigSites {
		var fireDmg float64
		if tile := s.hexMap.At(ds.Hex); tile != nil && tile.Burning {
			fireDmg = defs.FireDPS(tile.FireType) * deltaTime
		}
		// Вода за этот тик идёт в зачёт; избыток не лечит и не переносится.
		net := fireDmg - ds.WaterThisTick
		ds.WaterThisTick = 0
		if net <= 0 {
			continue
		}
		ds.Health -= net
		if ds.Health > 0 {
			continue
		}
		if tile := s.hexMap.At(ds.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantDigSite && tile.Occupant.ID == id {
			tile.Occupant = hexmap.Occupant{}
		}
		delete(s.ecs.DigSites, id)
		s.dispatcher.Dispatch(event.Event{
			Type: event.ItemDestroyed,
			Data: event.ItemDestroyedPayload{ID: id, Cause: "fire"},
		})
	}
}

func (s *HazardSystem) updateItems(deltaTime float64) {
	for id, it := range s.ecs.Items {
		tile := s.hexMap.At(it.Hex)
		if tile == nil || !tile.Burning {
			continue
		}
		it.Health -= defs.FireDPS(tile.FireType) * deltaTime
		if it.Health <= 0 {
			s.destroyItem(id, "fire")
		}
	}
}

func (s *HazardSystem) destroyItem(id types.EntityID, cause string) {
	it, ok := s.ecs.Items[id]
	if !ok {
		return
	}
	if tile := s.hexMap.At(it.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantItem && tile.Occupant.ID == id {
		tile.Occupant = hexmap.Occupant{}
	}
	delete(s.ecs.Items, id)
	s.dispatcher.Dispatch(event.Event{
		Type: event.ItemDestroyed,
		Data: event.ItemDestroyedPayload{ID: id, Cause: cause},
	})
}
