// internal/system/wave_test.go
package system

import (
	"testing"

	"hex-fire-defense/internal/component"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/event"
	"hex-fire-defense/internal/pathgen"
	"hex-fire-defense/internal/utils"
	"hex-fire-defense/pkg/hexmap"
)

type waveTestWorld struct {
	*testWorld
	waves *WaveSystem
}

func newWaveTestWorld(seed int64) *waveTestWorld {
	w := newTestWorld(seed)
	difficulty := config.DefaultDifficulty()
	rng := utils.NewPRNGService(seed + 1000)
	paths := pathgen.NewGenerator(w.hexMap, rng, difficulty.Paths.TargetLength)
	dispatcher := event.NewDispatcher()
	dispatcher.Subscribe(event.WaveStarted, w.queue)
	dispatcher.Subscribe(event.WaveEnded, w.queue)
	dispatcher.Subscribe(event.GroupEnded, w.queue)
	waves := NewWaveSystem(w.ecs, w.hexMap, dispatcher, w.fire, paths, rng, difficulty)
	return &waveTestWorld{testWorld: w, waves: waves}
}

func (w *waveTestWorld) burningCount() int {
	n := 0
	for _, tile := range w.hexMap.Tiles {
		if tile.Burning {
			n++
		}
	}
	return n
}

func TestStartWaveSeedsFires(t *testing.T) {
	w := newWaveTestWorld(1)
	w.waves.StartWave()

	if w.ecs.GameState.Phase != component.ActivePhase {
		t.Fatal("phase must be active after StartWave")
	}
	wave := w.ecs.Wave
	if wave == nil || wave.Number != 1 || wave.Group != 1 || wave.WaveInGroup != 1 {
		t.Fatalf("wave = %+v, want number/group/waveInGroup = 1/1/1", wave)
	}
	// Волна 1 в группе: startingFires = base 2.
	if got := w.burningCount(); got != 2 {
		t.Errorf("burning cells = %d, want 2 starting fires", got)
	}
	if got := w.countEvents(event.WaveStarted); got != 1 {
		t.Errorf("WaveStarted events = %d, want 1", got)
	}
}

func TestStartWaveDuringActiveIsNoop(t *testing.T) {
	w := newWaveTestWorld(1)
	w.waves.StartWave()
	w.waves.StartWave()

	if w.ecs.Wave.Number != 1 {
		t.Errorf("wave number = %d, StartWave in active phase must be a no-op", w.ecs.Wave.Number)
	}
	if got := w.countEvents(event.WaveStarted); got != 1 {
		t.Errorf("WaveStarted events = %d, want 1", got)
	}
}

func TestWaveEndReturnsToPlacement(t *testing.T) {
	w := newWaveTestWorld(1)
	w.waves.StartWave()
	w.queue.Drain()

	// Переходное состояние, которое конец волны обязан убрать.
	bombID := w.ecs.NewEntity()
	w.ecs.WaterBombs[bombID] = &component.WaterBomb{Start: hexmap.Hex{Q: 3, R: 0}, Target: hexmap.Hex{Q: 5, R: 0}, Speed: 6}

	w.ecs.Wave.TimeRemaining = 0.1
	w.waves.Update(0.2)

	if w.ecs.GameState.Phase != component.PlacementPhase {
		t.Fatal("phase must return to placement")
	}
	if got := w.burningCount(); got != 0 {
		t.Errorf("burning cells = %d, want 0 after wave end", got)
	}
	if len(w.ecs.WaterBombs) != 0 {
		t.Error("in-flight bombs must be cleared at wave end")
	}
	if got := w.countEvents(event.WaveEnded); got != 1 {
		t.Errorf("WaveEnded events = %d, want 1", got)
	}
	if got := w.countEvents(event.GroupEnded); got != 0 {
		t.Errorf("GroupEnded events = %d, want 0 mid-group", got)
	}
}

func TestWaveNumberingAcrossGroups(t *testing.T) {
	w := newWaveTestWorld(1)

	// Прогоняем шесть волн: пятая закрывает группу 1.
	for i := 0; i < 6; i++ {
		w.waves.StartWave()
		w.ecs.Wave.TimeRemaining = 0.01
		w.waves.Update(0.02)
	}

	if got := w.countEvents(event.GroupEnded); got != 1 {
		t.Errorf("GroupEnded events = %d, want 1 after six waves", got)
	}

	w.waves.StartWave()
	wave := w.ecs.Wave
	if wave.Number != 7 || wave.Group != 2 || wave.WaveInGroup != 2 {
		t.Errorf("wave = %+v, want 7/2/2", wave)
	}
}

func TestGroupBoundaryRebuildsField(t *testing.T) {
	w := newWaveTestWorld(3)
	w.waves.PrepareGroup(1)

	// Группа 1: два пути, ноль спавнеров, два раскопа.
	pathCells := 0
	for _, tile := range w.hexMap.Tiles {
		if tile.IsPath {
			pathCells++
		}
	}
	if pathCells == 0 {
		t.Fatal("no path cells after PrepareGroup(1)")
	}
	if len(w.ecs.FireSpawners) != 0 {
		t.Errorf("spawners = %d, want 0 in group 1", len(w.ecs.FireSpawners))
	}
	if len(w.ecs.DigSites) != 2 {
		t.Errorf("dig sites = %d, want 2", len(w.ecs.DigSites))
	}

	w.waves.PrepareGroup(2)
	if len(w.ecs.FireSpawners) != 1 {
		t.Errorf("spawners = %d, want 1 in group 2", len(w.ecs.FireSpawners))
	}
	if len(w.ecs.DigSites) != 2 {
		t.Errorf("dig sites = %d, want reseeded 2", len(w.ecs.DigSites))
	}
	for _, spawner := range w.ecs.FireSpawners {
		tile := w.hexMap.At(spawner.Hex)
		if tile.Occupant.Kind != hexmap.OccupantFireSpawner {
			t.Errorf("spawner cell %v not marked", spawner.Hex)
		}
	}
}

func TestPlacementAutoStart(t *testing.T) {
	w := newWaveTestWorld(1)
	if w.ecs.GameState.Phase != component.PlacementPhase {
		t.Fatal("game must begin in placement phase")
	}

	// Таймер расстановки истекает — волна стартует сама.
	w.waves.Update(config.DefaultDifficulty().PlacementDuration + 1)
	if w.ecs.GameState.Phase != component.ActivePhase {
		t.Error("wave must auto-start when the placement timer expires")
	}
}
