// internal/system/fire.go
package system

import (
	"math"

	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/defs"
	"hex-fire-defense/internal/entity"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/internal/utils"
	"hex-fire-defense/pkg/hexmap"
)

// pendingFire — отложенный результат возгорания или распространения.
// Все намерения тика собираются в список и применяются после обхода,
// чтобы загоревшаяся в этом тике клетка не распространялась в нём же.
type pendingFire struct {
	hex  hexmap.Hex
	tier types.FireType
}

// FireSystem управляет возгоранием, распространением, эволюцией и тушением огня.
type FireSystem struct {
	ecs        *entity.ECS
	hexMap     *hexmap.HexMap
	dispatcher *event.Dispatcher
	rng        *utils.PRNGService
	difficulty *config.DifficultyConfig

	// Внешний бафф распространения (способности боссов). 1.0 — нет баффа.
	spreadBuff float64

	// Тушение за тик суммируется по клеткам и применяется одним проходом,
	// чтобы пересечение нуля проверялось после суммы всех струй.
	pendingExtinguish map[hexmap.Hex]float64
}

func NewFireSystem(ecs *entity.ECS, hexMap *hexmap.HexMap, dispatcher *event.Dispatcher, rng *utils.PRNGService, difficulty *config.DifficultyConfig) *FireSystem {
	return &FireSystem{
		ecs:               ecs,
		hexMap:            hexMap,
		dispatcher:        dispatcher,
		rng:               rng,
		difficulty:        difficulty,
		spreadBuff:        1.0,
		pendingExtinguish: make(map[hexmap.Hex]float64),
	}
}

// SetSpreadBuff задаёт внешний множитель распространения.
func (s *FireSystem) SetSpreadBuff(m float64) {
	if m <= 0 {
		m = 1.0
	}
	s.spreadBuff = m
}

func (s *FireSystem) waveNumbers() (wave, waveInGroup int) {
	if s.ecs.Wave == nil {
		return 1, 1
	}
	return s.ecs.Wave.Number, s.ecs.Wave.WaveInGroup
}

// Update выполняет фазу огня: пересчёт струй, розыгрыш возгораний и
// распространения по снапшоту, затем применение отложенных результатов.
// Между волнами огонь заморожен: ни возгораний, ни распространения.
func (s *FireSystem) Update(deltaTime float64) {
	if s.ecs.GameState.Phase != component.ActivePhase {
		return
	}

	s.refreshSprayFlags()

	wave, waveInGroup := s.waveNumbers()
	probs := s.difficulty.SpawnProbabilities(wave)
	maxTier := s.difficulty.MaxFireTier(wave)

	// Снапшот горящих клеток на начало тика.
	var burning []hexmap.Hex
	for hex, tile := range s.hexMap.Tiles {
		if tile.Burning {
			burning = append(burning, hex)
		}
	}

	var pending []pendingFire

	// Возгорание.
	ignitionChance := s.difficulty.IgnitionChancePerSecond(waveInGroup) * deltaTime
	for hex, tile := range s.hexMap.Tiles {
		if tile.Burning || tile.IsTown || tile.Occupant.Kind == hexmap.OccupantFireSpawner {
			continue
		}
		if s.rng.Chance(ignitionChance) {
			pending = append(pending, pendingFire{hex: hex, tier: s.rng.PickFireType(probs)})
		}
	}

	// Распространение.
	baseRate := s.difficulty.BaseSpreadRate(wave)
	spreadScale := s.difficulty.SpreadScale(waveInGroup)
	for _, src := range burning {
		srcTile := s.hexMap.At(src)
		if srcTile == nil || !srcTile.Burning {
			continue
		}
		result := srcTile.FireType.Next()
		if result > maxTier {
			result = maxTier
		}

		chance := baseRate * spreadScale *
			defs.FireSpreadMultiplier(srcTile.FireType) * s.spreadBuff
		if srcTile.BeingSprayed {
			chance *= config.SprayedSpreadFactor
		}

		for _, n := range s.hexMap.Neighbors(src) {
			target := s.hexMap.At(n)
			if target == nil || target.IsTown || target.Occupant.Kind == hexmap.OccupantFireSpawner {
				continue // тихий no-op, не ошибка
			}
			if target.Burning && target.FireType >= result {
				continue // только захват строго более сильным типом
			}
			p := chance * s.situationMultiplier(src, n) * deltaTime
			if s.rng.Chance(p) {
				pending = append(pending, pendingFire{hex: n, tier: result})
			}
		}
	}

	// Применение отложенных результатов.
	for _, pf := range pending {
		s.applyFire(pf.hex, pf.tier)
	}
}

// situationMultiplier классифицирует пару источник-сосед.
func (s *FireSystem) situationMultiplier(src, dst hexmap.Hex) float64 {
	srcTile := s.hexMap.At(src)
	dstTile := s.hexMap.At(dst)

	// Соседство с городом.
	for _, n := range s.hexMap.Neighbors(dst) {
		if s.hexMap.IsTown(n) {
			return config.TownAdjacentMultiplier
		}
	}

	if srcTile.IsPath && dstTile.IsPath {
		srcDist := s.hexMap.TownCenter.Distance(src)
		dstDist := s.hexMap.TownCenter.Distance(dst)
		if dstDist < srcDist {
			return config.PathTowardTownMultiplier
		}
		return config.PathLateralMultiplier
	}
	if !srcTile.IsPath && dstTile.IsPath {
		return config.PathEntryMultiplier
	}

	// Нормальный случай; близость спавнера переопределяет его кольцевым
	// затуханием ringReductionFactor^(ring-1).
	if ring := s.nearestSpawnerRing(dst); ring > 0 && ring <= config.SpawnerInfluenceRadius {
		return math.Pow(config.RingReductionFactor, float64(ring-1))
	}
	return 1.0
}

func (s *FireSystem) nearestSpawnerRing(hex hexmap.Hex) int {
	best := -1
	for _, spawner := range s.ecs.FireSpawners {
		d := spawner.Hex.Distance(hex)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// applyFire применяет одно отложенное намерение. Если клетка к этому
// моменту горит не слабее, попытка превращается в «refill»: запас здоровья
// текущего огня пополняется до максимума, тип никогда не понижается.
func (s *FireSystem) applyFire(hex hexmap.Hex, tier types.FireType) {
	tile := s.hexMap.At(hex)
	if tile == nil || tile.IsTown || tile.Occupant.Kind == hexmap.OccupantFireSpawner {
		return
	}
	if tile.Burning && tile.FireType >= tier {
		tile.ExtinguishProgress = tile.MaxExtinguishTime
		return
	}
	wasBurning := tile.Burning
	tile.Burning = true
	tile.FireType = tier
	tile.MaxExtinguishTime = defs.FireExtinguishTime(tier)
	tile.ExtinguishProgress = tile.MaxExtinguishTime
	if !wasBurning {
		s.dispatcher.Dispatch(event.Event{Type: event.FireIgnited, Data: hex})
	}
}

// IgniteAt зажигает клетку напрямую (посев очагов в начале волны, тесты).
func (s *FireSystem) IgniteAt(hex hexmap.Hex, tier types.FireType) {
	s.applyFire(hex, tier)
}

// SeedStartingFires зажигает count случайных свободных клеток.
func (s *FireSystem) SeedStartingFires(count int) {
	wave, _ := s.waveNumbers()
	probs := s.difficulty.SpawnProbabilities(wave)

	var candidates []hexmap.Hex
	for hex, tile := range s.hexMap.Tiles {
		if tile.Burning || tile.IsTown || tile.Occupant.Kind == hexmap.OccupantFireSpawner {
			continue
		}
		candidates = append(candidates, hex)
	}
	for i := 0; i < count && len(candidates) > 0; i++ {
		idx := s.rng.Intn(len(candidates))
		s.applyFire(candidates[idx], s.rng.PickFireType(probs))
		candidates[idx] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
}

// ExtinguishHex накапливает тушение клетки в текущем тике. Несколько башен
// могут лить на одну клетку: вклады суммируются, пересечение нуля
// проверяется один раз в ResolveExtinguish.
func (s *FireSystem) ExtinguishHex(hex hexmap.Hex, amount float64) {
	if amount <= 0 {
		return
	}
	s.pendingExtinguish[hex] += amount
}

// ResolveExtinguish применяет накопленное тушение и шлёт ровно одно
// событие FireExtinguished на потушенную клетку.
func (s *FireSystem) ResolveExtinguish() {
	for hex, amount := range s.pendingExtinguish {
		tile := s.hexMap.At(hex)
		if tile == nil || !tile.Burning {
			continue
		}
		tile.ExtinguishProgress -= amount
		if tile.ExtinguishProgress <= 0 {
			tier := tile.FireType
			tile.ClearFire()
			s.dispatcher.Dispatch(event.Event{
				Type: event.FireExtinguished,
				Data: event.FireExtinguishedPayload{FireType: tier, Hex: hex},
			})
		}
	}
	clear(s.pendingExtinguish)
}

// ClearZone мгновенно гасит весь огонь в радиусе (взрывы баков и
// подавляющих бомб), с событием на каждую потушенную клетку.
func (s *FireSystem) ClearZone(center hexmap.Hex, radius int) {
	for _, hex := range s.hexMap.HexesInRange(center, radius) {
		tile := s.hexMap.At(hex)
		if tile == nil || !tile.Burning {
			continue
		}
		tier := tile.FireType
		tile.ClearFire()
		s.dispatcher.Dispatch(event.Event{
			Type: event.FireExtinguished,
			Data: event.FireExtinguishedPayload{FireType: tier, Hex: hex},
		})
	}
}

// Stoke — способность босса: поднимает огонь на один тип (не выше
// максимума волны) и полностью восстанавливает его запас. Никогда не
// понижает.
func (s *FireSystem) Stoke(hex hexmap.Hex) {
	tile := s.hexMap.At(hex)
	if tile == nil || !tile.Burning {
		return
	}
	wave, _ := s.waveNumbers()
	maxTier := s.difficulty.MaxFireTier(wave)
	next := tile.FireType.Next()
	if next > maxTier {
		next = maxTier
	}
	if next > tile.FireType {
		tile.FireType = next
		tile.MaxExtinguishTime = defs.FireExtinguishTime(next)
	}
	tile.ExtinguishProgress = tile.MaxExtinguishTime
}

// ClearAllFires гасит всё синхронно в конце волны, без событий:
// награды за «дотушивание» по окончании волны не начисляются.
func (s *FireSystem) ClearAllFires() {
	for _, tile := range s.hexMap.Tiles {
		tile.ClearFire()
	}
	clear(s.pendingExtinguish)
}

// refreshSprayFlags пересчитывает транзитный флаг BeingSprayed: клетка под
// струёй, если входит в кэш целей хотя бы одной небомбардирской башни.
func (s *FireSystem) refreshSprayFlags() {
	for _, tile := range s.hexMap.Tiles {
		tile.BeingSprayed = false
	}
	for _, tower := range s.ecs.Towers {
		def, ok := defs.TowerLibrary[tower.DefID]
		if !ok || def.Type == defs.TowerBomber {
			continue
		}
		for _, hex := range tower.AffectedHexes {
			if tile := s.hexMap.At(hex); tile != nil {
				tile.BeingSprayed = true
			}
		}
	}
}
