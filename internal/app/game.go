// internal/app/game.go
package app

import (
	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/defs"
	"hex-fire-defense/internal/entity"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/pathgen"
	"hex-fire-defense/internal/system"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/internal/utils"
	"hex-fire-defense/pkg/hexmap"
)

// Game — фасад симуляции: владеет картой, ECS и системами, задаёт порядок
// тика и предоставляет API расстановки и запросов внешнему слою.
type Game struct {
	ECS        *entity.ECS
	HexMap     *hexmap.HexMap
	Dispatcher *event.Dispatcher
	Rng        *utils.PRNGService
	Difficulty *config.DifficultyConfig

	FireSystem      *system.FireSystem
	HazardSystem    *system.HazardSystem
	TowerSystem     *system.TowerSystem
	WaterBombSystem *system.WaterBombSystem
	WaveSystem      *system.WaveSystem

	queue *event.Queue
}

// NewGame создаёт игру со встроенной кривой сложности.
// Сид 0 означает недетерминированный запуск.
func NewGame(seed int64) *Game {
	return NewGameWithDifficulty(seed, config.DefaultDifficulty())
}

func NewGameWithDifficulty(seed int64, difficulty *config.DifficultyConfig) *Game {
	if difficulty == nil {
		panic("app: nil difficulty config")
	}

	ecs := entity.NewECS()
	hexMap := hexmap.NewHexMap(config.MapRadius)
	dispatcher := event.NewDispatcher()
	rng := utils.NewPRNGService(seed)

	fire := system.NewFireSystem(ecs, hexMap, dispatcher, rng, difficulty)
	hazards := system.NewHazardSystem(ecs, hexMap, dispatcher, fire)
	towers := system.NewTowerSystem(ecs, hexMap, dispatcher, fire, hazards, rng)
	bombs := system.NewWaterBombSystem(ecs, hexMap, dispatcher, fire, hazards)
	paths := pathgen.NewGenerator(hexMap, rng, difficulty.Paths.TargetLength)
	waves := system.NewWaveSystem(ecs, hexMap, dispatcher, fire, paths, rng, difficulty)

	g := &Game{
		ECS:             ecs,
		HexMap:          hexMap,
		Dispatcher:      dispatcher,
		Rng:             rng,
		Difficulty:      difficulty,
		FireSystem:      fire,
		HazardSystem:    hazards,
		TowerSystem:     towers,
		WaterBombSystem: bombs,
		WaveSystem:      waves,
		queue:           event.NewQueue(),
	}

	for _, t := range []event.EventType{
		event.FireIgnited, event.FireExtinguished, event.TowerDestroyed,
		event.ItemDestroyed, event.TankExploded, event.BombDetonated,
		event.WaveStarted, event.WaveEnded, event.GroupEnded,
	} {
		dispatcher.Subscribe(t, g.queue)
	}

	// Поле первой группы волн готовится сразу, до первой расстановки.
	waves.PrepareGroup(1)
	return g
}

// Update выполняет один тик симуляции в фиксированном порядке: огонь,
// башни, снаряды, разрушаемые объекты, сведение тушения, расписание волн.
func (g *Game) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	g.ECS.GameTime += deltaTime

	g.FireSystem.Update(deltaTime)
	g.TowerSystem.Update(deltaTime)
	g.WaterBombSystem.Update(deltaTime)
	g.HazardSystem.Update(deltaTime)
	g.FireSystem.ResolveExtinguish()
	g.WaveSystem.Update(deltaTime)
}

// DrainEvents отдаёт события, накопленные с прошлого вызова. Внешний слой
// (звук, прогрессия, UI) обрабатывает их между тиками, не входя в симуляцию.
func (g *Game) DrainEvents() []event.Event {
	return g.queue.Drain()
}

// canPlaceAt — общая проверка клетки для любой установки.
func (g *Game) canPlaceAt(hex hexmap.Hex) bool {
	tile := g.HexMap.At(hex)
	return tile != nil &&
		!tile.IsTown &&
		!tile.IsPath &&
		!tile.Burning &&
		tile.Occupant.Kind == hexmap.OccupantNone
}

// PlaceTower ставит башню указанного типа. Неудача — это no-op с false.
func (g *Game) PlaceTower(hex hexmap.Hex, defID string, direction int) (types.EntityID, bool) {
	if !g.canPlaceAt(hex) {
		return 0, false
	}
	if _, ok := defs.TowerLibrary[defID]; !ok {
		return 0, false
	}
	if direction < 0 || direction > 5 {
		return 0, false
	}

	id := g.ECS.NewEntity()
	tower := &component.Tower{
		DefID:      defID,
		Hex:        hex,
		Direction:  direction,
		RangeLevel: 1,
		PowerLevel: 1,
		Health:     config.TowerMaxHealth,
		MaxHealth:  config.TowerMaxHealth,
	}
	g.ECS.Towers[id] = tower
	g.HexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantTower, ID: id}
	g.TowerSystem.RecomputeAffected(tower)
	return id, true
}

// RotateTower поворачивает башню в направление 0-5.
func (g *Game) RotateTower(id types.EntityID, direction int) bool {
	tower, ok := g.ECS.Towers[id]
	if !ok || direction < 0 || direction > 5 {
		return false
	}
	tower.Direction = direction
	g.TowerSystem.RecomputeAffected(tower)
	return true
}

// UpgradeTowerRange повышает уровень дальности (до 4).
func (g *Game) UpgradeTowerRange(id types.EntityID) bool {
	tower, ok := g.ECS.Towers[id]
	if !ok || tower.RangeLevel >= config.MaxUpgradeLevel {
		return false
	}
	tower.RangeLevel++
	g.TowerSystem.RecomputeAffected(tower)
	return true
}

// UpgradeTowerPower повышает уровень мощности (до 4).
func (g *Game) UpgradeTowerPower(id types.EntityID) bool {
	tower, ok := g.ECS.Towers[id]
	if !ok || tower.PowerLevel >= config.MaxUpgradeLevel {
		return false
	}
	tower.PowerLevel++
	return true
}

// UpgradeTowerShield ставит щит или повышает его уровень; запас щита
// каждый раз восстанавливается полностью.
func (g *Game) UpgradeTowerShield(id types.EntityID) bool {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return false
	}
	level := 1
	if tower.Shield != nil {
		if tower.Shield.Level >= config.MaxUpgradeLevel {
			return false
		}
		level = tower.Shield.Level + 1
	}
	tower.Shield = &component.Shield{
		Level:  level,
		Health: float64(level) * config.ShieldHealthPerLevel,
	}
	return true
}

// RemoveTower — добровольный снос: клетка освобождается, событий нет.
func (g *Game) RemoveTower(id types.EntityID) bool {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return false
	}
	if tile := g.HexMap.At(tower.Hex); tile != nil && tile.Occupant.Kind == hexmap.OccupantTower && tile.Occupant.ID == id {
		tile.Occupant = hexmap.Occupant{}
	}
	delete(g.ECS.Towers, id)
	return true
}

// PlaceWaterTank ставит бак с водой.
func (g *Game) PlaceWaterTank(hex hexmap.Hex) (types.EntityID, bool) {
	if !g.canPlaceAt(hex) {
		return 0, false
	}
	id := g.ECS.NewEntity()
	g.ECS.WaterTanks[id] = &component.WaterTank{
		Hex:       hex,
		Health:    config.WaterTankHealth,
		MaxHealth: config.WaterTankHealth,
		Active:    true,
	}
	g.HexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantWaterTank, ID: id}
	return id, true
}

// PlaceSuppressionBomb ставит подавляющую бомбу указанного уровня (1-4).
func (g *Game) PlaceSuppressionBomb(hex hexmap.Hex, level int) (types.EntityID, bool) {
	if !g.canPlaceAt(hex) {
		return 0, false
	}
	if level < 1 {
		level = 1
	}
	if level > config.MaxUpgradeLevel {
		level = config.MaxUpgradeLevel
	}
	id := g.ECS.NewEntity()
	g.ECS.SuppressionBombs[id] = &component.SuppressionBomb{Hex: hex, Level: level}
	g.HexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantSuppressionBomb, ID: id}
	return id, true
}

// SpawnItem кладёт предмет на клетку. Когда и что выпадает, решает
// внешний слой прогрессии; симуляция лишь жжёт и поливает предметы.
func (g *Game) SpawnItem(hex hexmap.Hex) (types.EntityID, bool) {
	if !g.canPlaceAt(hex) {
		return 0, false
	}
	id := g.ECS.NewEntity()
	g.ECS.Items[id] = &component.Item{
		Hex:       hex,
		Health:    config.ItemHealth,
		MaxHealth: config.ItemHealth,
	}
	g.HexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantItem, ID: id}
	return id, true
}

// StokeFire — хук способности босса: раздуть огонь на клетке.
func (g *Game) StokeFire(hex hexmap.Hex) {
	g.FireSystem.Stoke(hex)
}

// StartWave запускает волну из фазы расстановки.
func (g *Game) StartWave() {
	g.WaveSystem.StartWave()
}

// AllHexes возвращает карту клеток. Читать можно свободно, писать — только
// через API игры.
func (g *Game) AllHexes() map[hexmap.Hex]*hexmap.Tile {
	return g.HexMap.Tiles
}

// AllTowers возвращает живые башни по ID.
func (g *Game) AllTowers() map[types.EntityID]*component.Tower {
	return g.ECS.Towers
}

// AllWaterBombs возвращает снаряды в полёте по ID.
func (g *Game) AllWaterBombs() map[types.EntityID]*component.WaterBomb {
	return g.ECS.WaterBombs
}

// BurningHexes возвращает все горящие клетки.
func (g *Game) BurningHexes() []hexmap.Hex {
	var out []hexmap.Hex
	for hex, tile := range g.HexMap.Tiles {
		if tile.Burning {
			out = append(out, hex)
		}
	}
	return out
}

// WaveInfo возвращает копию состояния волны (Number == 0 до первой волны)
// и текущую фазу.
func (g *Game) WaveInfo() (component.Wave, component.GamePhase) {
	phase := g.ECS.GameState.Phase
	if g.ECS.Wave == nil {
		return component.Wave{}, phase
	}
	return *g.ECS.Wave, phase
}
