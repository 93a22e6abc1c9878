// internal/system/hazard_test.go
package system

import (
	"testing"

	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/types"
	"hex-fire-defense/pkg/hexmap"
)

func (w *testWorld) placeTank(hex hexmap.Hex, health float64) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.WaterTanks[id] = &component.WaterTank{Hex: hex, Health: health, MaxHealth: config.WaterTankHealth, Active: true}
	w.hexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantWaterTank, ID: id}
	return id
}

func (w *testWorld) placeDigSite(hex hexmap.Hex) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.DigSites[id] = &component.DigSite{Hex: hex, Health: config.DigSiteHealth, MaxHealth: config.DigSiteHealth}
	w.hexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantDigSite, ID: id}
	return id
}

func (w *testWorld) placeItem(hex hexmap.Hex, health float64) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.Items[id] = &component.Item{Hex: hex, Health: health, MaxHealth: config.ItemHealth}
	w.hexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantItem, ID: id}
	return id
}

func TestTankChainExplosion(t *testing.T) {
	w := newTestWorld(1)
	// Три бака в цепочке: каждый в зоне взрыва предыдущего (радиус 2).
	a := hexmap.Hex{Q: 3, R: 0}
	b := hexmap.Hex{Q: 5, R: 0}
	c := hexmap.Hex{Q: 7, R: 0}
	w.placeTank(a, 1)
	w.placeTank(b, config.WaterTankHealth)
	w.placeTank(c, config.WaterTankHealth)

	w.fire.IgniteAt(a, types.FireCinder) // 2 урона в секунду добивают первый бак
	w.fire.IgniteAt(hexmap.Hex{Q: 4, R: 0}, types.FireFlame)
	w.queue.Drain()

	w.hazards.Update(1.0)

	if len(w.ecs.WaterTanks) != 0 {
		t.Fatalf("tanks left = %d, want full chain detonation", len(w.ecs.WaterTanks))
	}
	for _, h := range []hexmap.Hex{a, b, c} {
		if w.hexMap.At(h).Occupant.Kind != hexmap.OccupantNone {
			t.Errorf("cell %v not freed", h)
		}
	}
	// Огонь в зонах взрывов потушен.
	if w.hexMap.At(a).Burning || w.hexMap.At(hexmap.Hex{Q: 4, R: 0}).Burning {
		t.Error("fire inside blast zones survived")
	}
	if got := w.countEvents(event.TankExploded); got != 3 {
		t.Errorf("TankExploded events = %d, want 3", got)
	}
	if got := w.countEvents(event.ItemDestroyed); got != 3 {
		t.Errorf("ItemDestroyed events = %d, want 3", got)
	}
}

func TestTankTakesTowerWater(t *testing.T) {
	w := newTestWorld(1)
	hex := hexmap.Hex{Q: 3, R: 0}
	id := w.placeTank(hex, 10)

	w.hazards.ApplyWater(hex, 4)
	w.hazards.Update(1.0)
	if got := w.ecs.WaterTanks[id].Health; got != 6 {
		t.Errorf("tank health = %.1f, want 6", got)
	}

	// Вода не переносится между тиками.
	w.hazards.Update(1.0)
	if got := w.ecs.WaterTanks[id].Health; got != 6 {
		t.Errorf("tank health = %.1f, want unchanged 6", got)
	}
}

func TestSuppressionBombLifecycle(t *testing.T) {
	w := newTestWorld(1)
	hex := hexmap.Hex{Q: 3, R: 0}
	id := w.ecs.NewEntity()
	w.ecs.SuppressionBombs[id] = &component.SuppressionBomb{Hex: hex, Level: 1}
	w.hexMap.At(hex).Occupant = hexmap.Occupant{Kind: hexmap.OccupantSuppressionBomb, ID: id}

	// Без огня рядом бомба спит.
	w.hazards.Update(1.0)
	if w.ecs.SuppressionBombs[id].Triggered {
		t.Fatal("bomb triggered without fire nearby")
	}

	w.fire.IgniteAt(hexmap.Hex{Q: 4, R: 0}, types.FireCinder)
	w.queue.Drain()

	w.hazards.Update(0.1)
	bomb := w.ecs.SuppressionBombs[id]
	if !bomb.Triggered {
		t.Fatal("bomb must trigger when a neighbor burns")
	}

	// Отсчёт: детонация строго после задержки.
	w.hazards.Update(config.SuppressionBombDelay - 0.1)
	if _, alive := w.ecs.SuppressionBombs[id]; !alive {
		t.Fatal("bomb detonated before the countdown expired")
	}
	w.hazards.Update(0.2)
	if _, alive := w.ecs.SuppressionBombs[id]; alive {
		t.Fatal("bomb must detonate and self-remove")
	}

	if w.hexMap.At(hexmap.Hex{Q: 4, R: 0}).Burning {
		t.Error("fire inside the suppression zone survived")
	}
	if w.hexMap.At(hex).Occupant.Kind != hexmap.OccupantNone {
		t.Error("cell not freed after detonation")
	}
	if got := w.countEvents(event.BombDetonated); got != 1 {
		t.Errorf("BombDetonated events = %d, want exactly 1", got)
	}

	// Повторных детонаций нет.
	w.hazards.Update(5.0)
	if got := w.countEvents(event.BombDetonated); got != 1 {
		t.Errorf("BombDetonated events after extra ticks = %d, want still 1", got)
	}
}

func TestDigSiteNetDamage(t *testing.T) {
	w := newTestWorld(1)
	hex := hexmap.Hex{Q: 3, R: 0}
	id := w.placeDigSite(hex)
	w.fire.IgniteAt(hex, types.FireCinder) // 2 урона в секунду

	// Вода полностью гасит урон тика; избыток не лечит.
	w.hazards.ApplyWater(hex, 5)
	w.hazards.Update(1.0)
	if got := w.ecs.DigSites[id].Health; got != config.DigSiteHealth {
		t.Errorf("health = %.1f, want unchanged %v", got, config.DigSiteHealth)
	}

	// Аккумулятор сброшен: без воды урон проходит.
	w.hazards.Update(1.0)
	if got := w.ecs.DigSites[id].Health; got != config.DigSiteHealth-2 {
		t.Errorf("health = %.1f, want %v", got, config.DigSiteHealth-2)
	}
}

func TestItemDestroyedByTowerWater(t *testing.T) {
	w := newTestWorld(1)
	hex := hexmap.Hex{Q: 3, R: 0}
	id := w.placeItem(hex, 10)

	// Вода предметам вредит сразу, без тикового аккумулятора.
	w.hazards.ApplyWater(hex, 4)
	if got := w.ecs.Items[id].Health; got != 6 {
		t.Fatalf("item health = %.1f, want 6", got)
	}
	w.queue.Drain()

	w.hazards.ApplyWater(hex, 6)
	if _, alive := w.ecs.Items[id]; alive {
		t.Fatal("item survived lethal water damage")
	}
	if w.hexMap.At(hex).Occupant.Kind != hexmap.OccupantNone {
		t.Error("cell not freed")
	}
	events := w.queue.Drain()
	if len(events) != 1 || events[0].Type != event.ItemDestroyed {
		t.Fatalf("events = %v, want one ItemDestroyed", events)
	}
	payload := events[0].Data.(event.ItemDestroyedPayload)
	if payload.ID != id || payload.Cause != "water" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestItemBurnsDown(t *testing.T) {
	w := newTestWorld(1)
	hex := hexmap.Hex{Q: 3, R: 0}
	id := w.placeItem(hex, 3)
	w.fire.IgniteAt(hex, types.FireCinder) // 2 урона в секунду
	w.queue.Drain()

	w.hazards.Update(1.0)
	if got := w.ecs.Items[id].Health; got != 1 {
		t.Fatalf("item health = %.1f, want 1", got)
	}

	w.hazards.Update(1.0)
	if _, alive := w.ecs.Items[id]; alive {
		t.Fatal("item survived the fire")
	}
	events := w.queue.Drain()
	if len(events) != 1 || events[0].Type != event.ItemDestroyed {
		t.Fatalf("events = %v, want one ItemDestroyed", events)
	}
	if payload := events[0].Data.(event.ItemDestroyedPayload); payload.Cause != "fire" {
		t.Errorf("cause = %q, want fire", payload.Cause)
	}
}

func TestDigSiteDestroyedByFire(t *testing.T) {
	w := newTestWorld(1)
	hex := hexmap.Hex{Q: 3, R: 0}
	id := w.placeDigSite(hex)
	w.ecs.DigSites[id].Health = 1
	w.fire.IgniteAt(hex, types.FireCinder)
	w.queue.Drain()

	w.hazards.Update(1.0)

	if _, alive := w.ecs.DigSites[id]; alive {
		t.Fatal("dig site survived lethal damage")
	}
	if w.hexMap.At(hex).Occupant.Kind != hexmap.OccupantNone {
		t.Error("cell not freed")
	}
	events := w.queue.Drain()
	if len(events) != 1 || events[0].Type != event.ItemDestroyed {
		t.Fatalf("events = %v, want one ItemDestroyed", events)
	}
	payload := events[0].Data.(event.ItemDestroyedPayload)
	if payload.ID != id || payload.Cause != "fire" {
		t.Errorf("payload = %+v", payload)
	}
}
