// internal/system/wave.go
package system

import (
	"log"

	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/entity"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/pathgen"
	"hex-fire-defense/internal/utils"
	"hex-fire-defense/pkg/hexmap"
)

// WaveSystem ведёт цикл «расстановка → волна → расстановка» и границы
// групп волн: перегенерацию путей, спавнеров и раскопов.
type WaveSystem struct {
	ecs        *entity.ECS
	hexMap     *hexmap.HexMap
	dispatcher *event.Dispatcher
	fire       *FireSystem
	paths      *pathgen.Generator
	rng        *utils.PRNGService
	difficulty *config.DifficultyConfig

	placementTimer float64
}

func NewWaveSystem(ecs *entity.ECS, hexMap *hexmap.HexMap, dispatcher *event.Dispatcher, fire *FireSystem, paths *pathgen.Generator, rng *utils.PRNGService, difficulty *config.DifficultyConfig) *WaveSystem {
	return &WaveSystem{
		ecs:            ecs,
		hexMap:         hexMap,
		dispatcher:     dispatcher,
		fire:           fire,
		paths:          paths,
		rng:            rng,
		difficulty:     difficulty,
		placementTimer: difficulty.PlacementDuration,
	}
}

func (s *WaveSystem) Update(deltaTime float64) {
	switch s.ecs.GameState.Phase {
	case component.PlacementPhase:
		s.placementTimer -= deltaTime
		if s.placementTimer <= 0 {
			s.StartWave()
		}
	case component.ActivePhase:
		if s.ecs.Wave == nil {
			return
		}
		s.ecs.Wave.TimeRemaining -= deltaTime
		if s.ecs.Wave.TimeRemaining <= 0 {
			s.endWave()
		}
	}
}

// StartWave запускает следующую волну. Вызов в активной фазе — no-op.
func (s *WaveSystem) StartWave() {
	if s.ecs.GameState.Phase != component.PlacementPhase {
		return
	}

	number := 1
	if s.ecs.Wave != nil {
		number = s.ecs.Wave.Number + 1
	}
	wpg := s.difficulty.WavesPerGroup
	s.ecs.Wave = &component.Wave{
		Number:        number,
		Group:         (number-1)/wpg + 1,
		WaveInGroup:   (number-1)%wpg + 1,
		TimeRemaining: s.difficulty.WaveDuration,
	}
	s.ecs.GameState.Phase = component.ActivePhase

	s.dispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: s.wavePayload()})
	s.fire.SeedStartingFires(s.difficulty.StartingFireCount(s.ecs.Wave.WaveInGroup))
	log.Printf("Wave %d started (group %d, wave %d in group)",
		number, s.ecs.Wave.Group, s.ecs.Wave.WaveInGroup)
}

func (s *WaveSystem) endWave() {
	wave := s.ecs.Wave

	// Синхронная очистка переходного состояния: награды за дотушивание
	// после конца волны не начисляются.
	s.fire.ClearAllFires()
	for id := range s.ecs.WaterBombs {
		delete(s.ecs.WaterBombs, id)
	}

	s.dispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: s.wavePayload()})

	if wave.WaveInGroup == s.difficulty.WavesPerGroup {
		s.dispatcher.Dispatch(event.Event{Type: event.GroupEnded, Data: s.wavePayload()})
		s.PrepareGroup(wave.Group + 1)
	}

	s.ecs.GameState.Phase = component.PlacementPhase
	s.placementTimer = s.difficulty.PlacementDuration
}

// PrepareGroup строит поле для группы волн: новые пути, спавнеры огня и
// раскопы. Вызывается при старте игры и на каждой границе группы.
func (s *WaveSystem) PrepareGroup(group int) {
	s.paths.Generate(s.difficulty.PathCount(group))
	s.respawnFireSpawners(s.difficulty.SpawnerCount(group))
	s.reseedDigSites(s.difficulty.DigSites.PerGroup)
}

func (s *WaveSystem) respawnFireSpawners(count int) {
	for id, spawner := range s.ecs.FireSpawners {
		if tile := s.hexMap.At(spawner.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantFireSpawner {
			tile.Occupant = hexmap.Occupant{}
		}
		delete(s.ecs.FireSpawners, id)
	}

	for i := 0; i < count; i++ {
		hex, ok := s.pickFreeCell(func(h hexmap.Hex) bool {
			if s.hexMap.TownCenter.Distance(h) < s.hexMap.Radius/2 {
				return false
			}
			// Зоны влияния спавнеров не накладываются друг на друга.
			for _, other := range s.ecs.FireSpawners {
				if other.Hex.Distance(h) <= config.SpawnerInfluenceRadius {
					return false
				}
			}
			return true
		})
		if !ok {
			log.Printf("Warning: no free cell for fire spawner %d of %d", i+1, count)
			break
		}
		id := s.ecs.NewEntity()
		s.ecs.FireSpawners[id] = &component.FireSpawner{Hex: hex}
		s.hexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantFireSpawner, ID: id}
	}
}

func (s *WaveSystem) reseedDigSites(count int) {
	for id, ds := range s.ecs.DigSites {
		if tile := s.hexMap.At(ds.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantDigSite {
			tile.Occupant = hexmap.Occupant{}
		}
		delete(s.ecs.DigSites, id)
	}

	for i := 0; i < count; i++ {
		hex, ok := s.pickFreeCell(func(h hexmap.Hex) bool {
			return s.hexMap.TownCenter.Distance(h) > hexmap.TownRingRadius
		})
		if !ok {
			log.Printf("Warning: no free cell for dig site %d of %d", i+1, count)
			break
		}
		id := s.ecs.NewEntity()
		s.ecs.DigSites[id] = &component.DigSite{
			Hex:       hex,
			Health:    config.DigSiteHealth,
			MaxHealth: config.DigSiteHealth,
		}
		s.hexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantDigSite, ID: id}
	}
}

// pickFreeCell выбирает случайную пустую негородскую клетку вне путей,
// удовлетворяющую дополнительному предикату.
func (s *WaveSystem) pickFreeCell(accept func(hexmap.Hex) bool) (hexmap.Hex, bool) {
	var candidates []hexmap.Hex
	for hex, tile := range s.hexMap.Tiles {
		if tile.IsTown || tile.IsPath || tile.Occupant.Kind != hexmap.OccupantNone {
			continue
		}
		if accept != nil && !accept(hex) {
			continue
		}
		candidates = append(candidates, hex)
	}
	if len(candidates) == 0 {
		return hexmap.Hex{}, false
	}
	return candidates[s.rng.Intn(len(candidates))], true
}

func (s *WaveSystem) wavePayload() event.WavePayload {
	w := s.ecs.Wave
	if w == nil {
		return event.WavePayload{}
	}
	return event.WavePayload{Number: w.Number, Group: w.Group, WaveInGroup: w.WaveInGroup}
}
