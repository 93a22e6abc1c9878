// internal/config/difficulty_test.go
package config

import (
	"math"
	"strings"
	"testing"

	"hex-fire-defense/internal/types"
)

func TestDefaultDifficulty(t *testing.T) {
	cfg := DefaultDifficulty()
	if cfg.WavesPerGroup != 5 {
		t.Errorf("WavesPerGroup = %d, want 5", cfg.WavesPerGroup)
	}
	if len(cfg.SpawnTable) == 0 {
		t.Fatal("empty spawn table")
	}
	for _, row := range cfg.SpawnTable {
		sum := 0.0
		for _, p := range row.Probabilities {
			sum += p
		}
		if math.Abs(sum-1.0) > 0.01 {
			t.Errorf("wave %d: probabilities sum to %.4f", row.Wave, sum)
		}
	}
}

func TestParseDifficultyErrors(t *testing.T) {
	base := `
wavesPerGroup: 5
placementDuration: 20
waveDuration: 45
ignition: { baseChancePerSecond: 0.004, perWaveScale: 0.25 }
startingFires: { base: 2, perWave: 1 }
spread: { baseRatePerSecond: 0.05, waveRateGrowth: 0.01, perWaveScale: 0.15 }
paths: { base: 2, perGroup: 1, max: 6, targetLength: 9 }
spawners: { base: 0, perGroup: 1, max: 3 }
digSites: { perGroup: 2 }
`
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "not yaml",
			yaml:    "{{{",
			wantErr: "failed to parse",
		},
		{
			name:    "empty table",
			yaml:    base + "spawnTable: []",
			wantErr: "spawnTable cannot be empty",
		},
		{
			name: "bad sum",
			yaml: base + `spawnTable:
  - { wave: 1, probabilities: [0.50, 0.00, 0.00, 0.00, 0.00, 0.00] }`,
			wantErr: "sum to",
		},
		{
			name: "wrong count",
			yaml: base + `spawnTable:
  - { wave: 1, probabilities: [1.00] }`,
			wantErr: "expected 6 probabilities",
		},
		{
			name: "duplicate wave",
			yaml: base + `spawnTable:
  - { wave: 1, probabilities: [1.00, 0.00, 0.00, 0.00, 0.00, 0.00] }
  - { wave: 1, probabilities: [1.00, 0.00, 0.00, 0.00, 0.00, 0.00] }`,
			wantErr: "duplicate",
		},
		{
			name: "missing wave 1",
			yaml: base + `spawnTable:
  - { wave: 2, probabilities: [1.00, 0.00, 0.00, 0.00, 0.00, 0.00] }`,
			wantErr: "row for wave 1",
		},
		{
			name: "valid",
			yaml: base + `spawnTable:
  - { wave: 1, probabilities: [1.00, 0.00, 0.00, 0.00, 0.00, 0.00] }`,
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDifficulty([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestSpawnProbabilitiesLookup(t *testing.T) {
	cfg := DefaultDifficulty()

	w1 := cfg.SpawnProbabilities(1)
	if w1[0] != 1.0 {
		t.Errorf("wave 1 cinder probability = %.2f, want 1.00", w1[0])
	}

	// После последней строки таблица повторяет её.
	last := cfg.SpawnTable[len(cfg.SpawnTable)-1]
	beyond := cfg.SpawnProbabilities(last.Wave + 100)
	for i, p := range beyond {
		if p != last.Probabilities[i] {
			t.Errorf("beyond-table probability %d = %.2f, want %.2f", i, p, last.Probabilities[i])
		}
	}
}

func TestMaxFireTier(t *testing.T) {
	cfg := DefaultDifficulty()
	tests := []struct {
		wave int
		want types.FireType
	}{
		{1, types.FireCinder},
		{2, types.FireFlame},
		{5, types.FireBlaze},
		{8, types.FireFirestorm},
		{11, types.FireInferno},
		{14, types.FireCataclysm},
		{100, types.FireCataclysm},
	}
	for _, tt := range tests {
		if got := cfg.MaxFireTier(tt.wave); got != tt.want {
			t.Errorf("MaxFireTier(%d) = %v, want %v", tt.wave, got, tt.want)
		}
	}
}

func TestDifficultyCurves(t *testing.T) {
	cfg := DefaultDifficulty()

	if got := cfg.StartingFireCount(1); got != 2 {
		t.Errorf("StartingFireCount(1) = %d, want 2", got)
	}
	if got := cfg.StartingFireCount(3); got != 4 {
		t.Errorf("StartingFireCount(3) = %d, want 4", got)
	}

	if cfg.IgnitionChancePerSecond(2) <= cfg.IgnitionChancePerSecond(1) {
		t.Error("ignition chance must grow within a group")
	}
	if cfg.SpreadScale(1) != 1.0 {
		t.Errorf("SpreadScale(1) = %.2f, want 1.0", cfg.SpreadScale(1))
	}

	if got := cfg.PathCount(100); got != cfg.Paths.Max {
		t.Errorf("PathCount(100) = %d, want capped at %d", got, cfg.Paths.Max)
	}
	if got := cfg.SpawnerCount(1); got != 0 {
		t.Errorf("SpawnerCount(1) = %d, want 0", got)
	}
	if got := cfg.SpawnerCount(100); got != cfg.Spawners.Max {
		t.Errorf("SpawnerCount(100) = %d, want capped at %d", got, cfg.Spawners.Max)
	}
}
