// internal/system/tower.go
package system

import (
	"log"

	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/defs"
	"hex-fire-defense/internal/entity"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/internal/utils"
	"hex-fire-defense/pkg/hexmap"
)

// TowerSystem применяет урон огня к башням, восстанавливает их здоровье
// и выполняет атаки: непрерывные струи, импульсы и запуск водяных бомб.
type TowerSystem struct {
	ecs        *entity.ECS
	hexMap     *hexmap.HexMap
	dispatcher *event.Dispatcher
	fire       *FireSystem
	hazards    *HazardSystem
	rng        *utils.PRNGService
}

func NewTowerSystem(ecs *entity.ECS, hexMap *hexmap.HexMap, dispatcher *event.Dispatcher, fire *FireSystem, hazards *HazardSystem, rng *utils.PRNGService) *TowerSystem {
	return &TowerSystem{
		ecs:        ecs,
		hexMap:     hexMap,
		dispatcher: dispatcher,
		fire:       fire,
		hazards:    hazards,
		rng:        rng,
	}
}

func (s *TowerSystem) Update(deltaTime float64) {
	var destroyed []types.EntityID

	for id, tower := range s.ecs.Towers {
		def, ok := defs.TowerLibrary[tower.DefID]
		if !ok {
			log.Printf("Error: Tower definition not found for ID: %s", tower.DefID)
			continue
		}

		// Урон от огня на собственной клетке, иначе — регенерация.
		tile := s.hexMap.At(tower.Hex)
		if tile != nil && tile.Burning {
			dmg := defs.FireDPS(tile.FireType) * deltaTime
			if tower.Shield != nil {
				tower.Shield.Health -= dmg
				if tower.Shield.Health <= 0 {
					tower.Shield = nil // щит снимается безвозвратно
				}
			} else {
				tower.Health -= dmg
				if tower.Health <= 0 {
					destroyed = append(destroyed, id)
					continue
				}
			}
		} else if tower.Health < tower.MaxHealth {
			tower.Health += config.TowerRegenPerSecond * deltaTime
			if tower.Health > tower.MaxHealth {
				tower.Health = tower.MaxHealth
			}
		}

		switch def.Type {
		case defs.TowerJet, defs.TowerSpread, defs.TowerRain:
			power := def.PowerAt(tower.PowerLevel)
			for _, hex := range tower.AffectedHexes {
				s.applyAttack(hex, power*deltaTime)
			}
		case defs.TowerPulsing:
			interval := def.IntervalAt(tower.RangeLevel)
			if interval <= 0 {
				continue
			}
			tower.AttackTimer += deltaTime
			for tower.AttackTimer >= interval {
				tower.AttackTimer -= interval
				burst := def.PowerAt(tower.PowerLevel) * interval
				for _, hex := range tower.AffectedHexes {
					s.applyAttack(hex, burst)
				}
			}
		case defs.TowerBomber:
			interval := def.IntervalAt(tower.RangeLevel)
			if interval <= 0 {
				continue
			}
			tower.AttackTimer += deltaTime
			for tower.AttackTimer >= interval {
				tower.AttackTimer -= interval
				s.launchBomb(id, tower, &def)
			}
		}
	}

	for _, id := range destroyed {
		s.DestroyTower(id)
	}
}

// applyAttack реализует общую семантику «атаки» клетки водой: горящая
// клетка тушится, а баки, раскопы и предметы получают ту же мощность
// как урон.
func (s *TowerSystem) applyAttack(hex hexmap.Hex, amount float64) {
	tile := s.hexMap.At(hex)
	if tile == nil {
		return
	}
	if tile.Burning {
		s.fire.ExtinguishHex(hex, amount)
	}
	s.hazards.ApplyWater(hex, amount)
}

// launchBomb запускает водяную бомбу в клетку на взвешенно-случайной
// дистанции вдоль направления башни, прижимая цель к ближайшей
// существующей клетке.
func (s *TowerSystem) launchBomb(towerID types.EntityID, tower *component.Tower, def *defs.TowerDefinition) {
	dist := s.rng.TriangularRange(def.MinDistanceAt(tower.RangeLevel), def.MaxDistanceAt(tower.RangeLevel))

	dir := hexmap.NeighborDirections[tower.Direction%6]
	target := tower.Hex
	found := false
	for d := dist; d >= 1; d-- {
		candidate := tower.Hex.Add(dir.Scale(d))
		if s.hexMap.Contains(candidate) {
			target = candidate
			found = true
			break
		}
	}
	if !found {
		return // вся линия за краем карты
	}

	id := s.ecs.NewEntity()
	s.ecs.WaterBombs[id] = &component.WaterBomb{
		TowerID:    towerID,
		Start:      tower.Hex,
		Target:     target,
		Progress:   0,
		Speed:      config.WaterBombSpeed,
		PowerLevel: tower.PowerLevel,
		Power:      def.PowerAt(tower.PowerLevel),
	}
}

// DestroyTower удаляет башню навсегда (без возврата) и сообщает о потере.
func (s *TowerSystem) DestroyTower(id types.EntityID) {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return
	}
	if tile := s.hexMap.At(tower.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantTower && tile.Occupant.ID == id {
		tile.Occupant = hexmap.Occupant{}
	}
	delete(s.ecs.Towers, id)
	s.dispatcher.Dispatch(event.Event{Type: event.TowerDestroyed, Data: id})
}

// RecomputeAffected пересчитывает кэш целей башни. Вызывается при
// установке, повороте и улучшении дальности. Собственная клетка башни
// всегда входит в набор.
func (s *TowerSystem) RecomputeAffected(tower *component.Tower) {
	def, ok := defs.TowerLibrary[tower.DefID]
	if !ok {
		tower.AffectedHexes = []hexmap.Hex{tower.Hex}
		return
	}

	hexes := []hexmap.Hex{tower.Hex}
	switch def.Type {
	case defs.TowerJet:
		hexes = append(hexes, s.lineFrom(tower.Hex, tower.Direction, def.RangeAt(tower.RangeLevel))...)
	case defs.TowerSpread:
		// Три луча: прямой по направлению и два фланговых под ±30°.
		// Фланговые идут вдоль гекс-диагоналей: повороты вектора
		// направления на ±60°, чередуемые с самим направлением.
		r := def.RangeAt(tower.RangeLevel)
		dir := hexmap.NeighborDirections[tower.Direction%6]
		left := hexmap.Hex{Q: -dir.R, R: dir.Q + dir.R}
		right := hexmap.Hex{Q: dir.Q + dir.R, R: -dir.Q}
		hexes = append(hexes, s.lineFrom(tower.Hex, tower.Direction, r)...)
		hexes = append(hexes, s.staggeredLine(tower.Hex, right, dir, r)...)
		hexes = append(hexes, s.staggeredLine(tower.Hex, left, dir, r)...)
	case defs.TowerPulsing:
		hexes = append(hexes, s.hexMap.Neighbors(tower.Hex)...)
	case defs.TowerRain:
		for _, h := range s.hexMap.HexesInRange(tower.Hex, def.RangeAt(tower.RangeLevel)) {
			if h != tower.Hex {
				hexes = append(hexes, h)
			}
		}
	case defs.TowerBomber:
		// Непрерывного эффекта нет: только собственная клетка.
	}
	tower.AffectedHexes = hexes
}

func (s *TowerSystem) lineFrom(origin hexmap.Hex, direction, length int) []hexmap.Hex {
	dir := hexmap.NeighborDirections[direction%6]
	var out []hexmap.Hex
	for i := 1; i <= length; i++ {
		hex := origin.Add(dir.Scale(i))
		if !s.hexMap.Contains(hex) {
			break
		}
		out = append(out, hex)
	}
	return out
}

// staggeredLine строит луч, чередуя два единичных направления, начиная с
// first. Чередование фланга с основным направлением кладёт клетки вдоль
// диагонали — луч под 30° к основному.
func (s *TowerSystem) staggeredLine(origin, first, second hexmap.Hex, length int) []hexmap.Hex {
	var out []hexmap.Hex
	cur := origin
	for i := 1; i <= length; i++ {
		if i%2 == 1 {
			cur = cur.Add(first)
		} else {
			cur = cur.Add(second)
		}
		if !s.hexMap.Contains(cur) {
			break
		}
		out = append(out, cur)
	}
	return out
}
