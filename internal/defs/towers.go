// internal/defs/towers.go
package defs

import (
	"image/color"
)

// TowerType defines the targeting behavior of a tower.
type TowerType string

const (
	TowerJet     TowerType = "JET"
	TowerSpread  TowerType = "SPREAD"
	TowerPulsing TowerType = "PULSING"
	TowerRain    TowerType = "RAIN"
	TowerBomber  TowerType = "BOMBER"
)

// TowerDefinition holds all the static data for a specific type of tower.
// Per-level arrays are indexed by level-1; levels run 1..4.
type TowerDefinition struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type TowerType `json:"type"`

	// Range per rangeLevel: line length for JET/SPREAD, radius for RAIN,
	// unused for PULSING (always the 6 neighbors).
	Range [4]int `json:"range"`

	// AttackInterval per rangeLevel, seconds. Used by PULSING and BOMBER.
	AttackInterval [4]float64 `json:"attack_interval"`

	// Power per powerLevel: extinguish units per second (continuous types),
	// or the burst/impact base for PULSING and BOMBER.
	Power [4]float64 `json:"power"`

	// BOMBER only: throw distance bounds per rangeLevel.
	MinDistance [4]int `json:"min_distance,omitempty"`
	MaxDistance [4]int `json:"max_distance,omitempty"`

	Visuals Visuals `json:"visuals"`
}

// Visuals contains parameters for rendering a tower.
type Visuals struct {
	Color        color.RGBA `json:"color"`
	RadiusFactor float64    `json:"radius_factor"`
	StrokeWidth  float64    `json:"stroke_width"`
}

// RangeAt возвращает дальность для уровня (1-4), безопасно обрезая индекс.
func (d *TowerDefinition) RangeAt(level int) int {
	return d.Range[clampLevel(level)]
}

// IntervalAt возвращает интервал атаки для уровня (1-4).
func (d *TowerDefinition) IntervalAt(level int) float64 {
	return d.AttackInterval[clampLevel(level)]
}

// PowerAt возвращает мощность для уровня (1-4).
func (d *TowerDefinition) PowerAt(level int) float64 {
	return d.Power[clampLevel(level)]
}

// MinDistanceAt и MaxDistanceAt возвращают границы броска бомбардира.
func (d *TowerDefinition) MinDistanceAt(level int) int {
	return d.MinDistance[clampLevel(level)]
}

func (d *TowerDefinition) MaxDistanceAt(level int) int {
	return d.MaxDistance[clampLevel(level)]
}

func clampLevel(level int) int {
	if level < 1 {
		return 0
	}
	if level > 4 {
		return 3
	}
	return level - 1
}

// TowerLibrary is the library of all tower definitions, keyed by ID.
// Defaults are overridden by LoadTowerDefinitions when a file is provided.
var TowerLibrary = map[string]TowerDefinition{
	"TOWER_JET": {
		ID: "TOWER_JET", Name: "Jet", Type: TowerJet,
		Range:   [4]int{3, 4, 5, 6},
		Power:   [4]float64{3, 4.5, 6, 8},
		Visuals: Visuals{Color: color.RGBA{80, 160, 255, 255}, RadiusFactor: 0.45, StrokeWidth: 2},
	},
	"TOWER_SPREAD": {
		ID: "TOWER_SPREAD", Name: "Spread", Type: TowerSpread,
		Range:   [4]int{2, 3, 3, 4},
		Power:   [4]float64{2, 3, 4, 5.5},
		Visuals: Visuals{Color: color.RGBA{90, 200, 230, 255}, RadiusFactor: 0.45, StrokeWidth: 2},
	},
	"TOWER_PULSING": {
		ID: "TOWER_PULSING", Name: "Pulsing", Type: TowerPulsing,
		AttackInterval: [4]float64{3.0, 2.5, 2.0, 1.5},
		Power:          [4]float64{3, 4, 5.5, 7},
		Visuals:        Visuals{Color: color.RGBA{130, 130, 255, 255}, RadiusFactor: 0.45, StrokeWidth: 2},
	},
	"TOWER_RAIN": {
		ID: "TOWER_RAIN", Name: "Rain", Type: TowerRain,
		Range:   [4]int{1, 2, 2, 3},
		Power:   [4]float64{1.5, 2.2, 3, 4},
		Visuals: Visuals{Color: color.RGBA{100, 120, 220, 255}, RadiusFactor: 0.45, StrokeWidth: 2},
	},
	"TOWER_BOMBER": {
		ID: "TOWER_BOMBER", Name: "Bomber", Type: TowerBomber,
		AttackInterval: [4]float64{4.0, 3.4, 2.8, 2.2},
		Power:          [4]float64{6, 9, 12, 16},
		MinDistance:    [4]int{2, 2, 3, 3},
		MaxDistance:    [4]int{4, 5, 6, 8},
		Visuals:        Visuals{Color: color.RGBA{70, 90, 180, 255}, RadiusFactor: 0.45, StrokeWidth: 2},
	},
}
