// internal/app/game_test.go
package app

import (
	"testing"

	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/pkg/hexmap"
)

func freeHex(g *Game, t *testing.T) hexmap.Hex {
	t.Helper()
	for hex, tile := range g.HexMap.Tiles {
		if !tile.IsTown && !tile.IsPath && !tile.Burning && tile.Occupant.Kind == hexmap.OccupantNone {
			return hex
		}
	}
	t.Fatal("no free cell on the map")
	return hexmap.Hex{}
}

func TestPlacementValidation(t *testing.T) {
	g := NewGame(1)

	if _, ok := g.PlaceTower(g.HexMap.TownCenter, "TOWER_JET", 0); ok {
		t.Error("placement on a town cell must fail")
	}
	for hex, tile := range g.HexMap.Tiles {
		if tile.IsPath {
			if _, ok := g.PlaceTower(hex, "TOWER_JET", 0); ok {
				t.Error("placement on a path cell must fail")
			}
			break
		}
	}
	if _, ok := g.PlaceTower(hexmap.Hex{Q: 100, R: 100}, "TOWER_JET", 0); ok {
		t.Error("placement outside the map must fail")
	}

	hex := freeHex(g, t)
	if _, ok := g.PlaceTower(hex, "NO_SUCH_TOWER", 0); ok {
		t.Error("placement of an unknown tower type must fail")
	}
	if _, ok := g.PlaceTower(hex, "TOWER_JET", 6); ok {
		t.Error("direction outside 0-5 must fail")
	}

	id, ok := g.PlaceTower(hex, "TOWER_JET", 0)
	if !ok {
		t.Fatal("valid placement failed")
	}
	if _, ok := g.PlaceTower(hex, "TOWER_RAIN", 0); ok {
		t.Error("double occupancy must fail")
	}
	if _, ok := g.PlaceWaterTank(hex); ok {
		t.Error("tank on an occupied cell must fail")
	}

	if !g.RemoveTower(id) {
		t.Fatal("voluntary removal failed")
	}
	if g.HexMap.At(hex).Occupant.Kind != hexmap.OccupantNone {
		t.Error("cell not freed after removal")
	}
	if _, ok := g.PlaceWaterTank(hex); !ok {
		t.Error("freed cell must accept a new occupant")
	}
}

func TestUpgradesCapAtMaxLevel(t *testing.T) {
	g := NewGame(1)
	id, ok := g.PlaceTower(freeHex(g, t), "TOWER_JET", 0)
	if !ok {
		t.Fatal("placement failed")
	}

	upgrades := 0
	for g.UpgradeTowerRange(id) {
		upgrades++
	}
	if upgrades != 3 {
		t.Errorf("range upgrades = %d, want 3 (levels 1 -> 4)", upgrades)
	}
	upgrades = 0
	for g.UpgradeTowerPower(id) {
		upgrades++
	}
	if upgrades != 3 {
		t.Errorf("power upgrades = %d, want 3", upgrades)
	}
	upgrades = 0
	for g.UpgradeTowerShield(id) {
		upgrades++
	}
	if upgrades != 4 {
		t.Errorf("shield upgrades = %d, want 4 (no shield -> level 4)", upgrades)
	}
}

func TestRotationRecomputesTargets(t *testing.T) {
	g := NewGame(1)
	hex := freeHex(g, t)
	id, _ := g.PlaceTower(hex, "TOWER_JET", 0)
	tower := g.ECS.Towers[id]
	before := append([]hexmap.Hex(nil), tower.AffectedHexes...)

	if !g.RotateTower(id, 3) {
		t.Fatal("rotation failed")
	}
	if len(tower.AffectedHexes) > 1 && len(before) > 1 && tower.AffectedHexes[1] == before[1] {
		t.Error("target cache unchanged after rotation")
	}
	if g.RotateTower(id, 7) {
		t.Error("rotation to an invalid direction must fail")
	}
}

func TestPlacementPhaseStaysFireFree(t *testing.T) {
	g := NewGame(1)

	// Почти всё окно расстановки: огня быть не должно.
	for i := 0; i < 190; i++ {
		g.Update(0.1)
	}
	if _, phase := g.WaveInfo(); phase != component.PlacementPhase {
		t.Fatal("placement window must still be open")
	}
	if burning := g.BurningHexes(); len(burning) != 0 {
		t.Fatalf("%d cells burning before the first wave", len(burning))
	}
}

func TestFullSessionSmoke(t *testing.T) {
	g := NewGame(7)

	// Немного обороны перед стартом.
	for i, defID := range []string{"TOWER_JET", "TOWER_RAIN", "TOWER_BOMBER"} {
		g.PlaceTower(freeHex(g, t), defID, i%6)
	}
	g.PlaceWaterTank(freeHex(g, t))
	g.PlaceSuppressionBomb(freeHex(g, t), 2)

	g.StartWave()
	if _, phase := g.WaveInfo(); phase != component.ActivePhase {
		t.Fatal("wave did not start")
	}

	sawStart := false
	for _, e := range g.DrainEvents() {
		if e.Type == event.WaveStarted {
			sawStart = true
		}
	}
	if !sawStart {
		t.Error("WaveStarted not delivered through the queue")
	}

	// Две волны симуляции мелкими тиками; инвариант огня держится всюду.
	for i := 0; i < 2000; i++ {
		g.Update(0.05)
		g.DrainEvents()
		for hex, tile := range g.HexMap.Tiles {
			if tile.Burning != (tile.FireType != types.FireNone) {
				t.Fatalf("tick %d: cell %v violates the fire invariant", i, hex)
			}
			if tile.ExtinguishProgress < 0 || tile.ExtinguishProgress > tile.MaxExtinguishTime {
				t.Fatalf("tick %d: cell %v progress %.2f outside [0, %.2f]",
					i, hex, tile.ExtinguishProgress, tile.MaxExtinguishTime)
			}
		}
	}
}
