// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	HexSize      = 19.0
	MapRadius    = 13
	MaxDeltaTime = 0.06

	// Башни
	TowerMaxHealth       = 100.0
	TowerRegenPerSecond  = 2.0 // восстановление здоровья вне огня
	ShieldHealthPerLevel = 50.0
	MaxUpgradeLevel      = 4

	// Водяные бомбы (снаряды бомбардира)
	WaterBombSpeed = 6.0 // гексов в секунду

	// Опасности
	WaterTankHealth       = 60.0
	WaterTankBlastRadius  = 2
	SuppressionBombDelay  = 1.5 // секунд от триггера до детонации
	SuppressionBombRadius = 1   // базовый радиус зоны, +1 за уровень
	DigSiteHealth         = 120.0
	ItemHealth            = 30.0

	// Множители распространения огня по ситуациям
	TownAdjacentMultiplier   = 0.5
	PathTowardTownMultiplier = 1.6
	PathLateralMultiplier    = 1.2
	PathEntryMultiplier      = 1.4
	RingReductionFactor      = 0.6  // затухание вокруг спавнера, ^(ring-1)
	SpawnerInfluenceRadius   = 3    // кольца влияния спавнера
	SprayedSpreadFactor      = 0.75 // источник под струёй распространяется хуже
)

var (
	// Кольцевые множители взрыва водяной бомбы, индекс — номер кольца.
	// Уровень мощности открывает кольца: уровень N задевает кольца 0..N-1.
	BombRingMultipliers = []float64{1.0, 0.85, 0.70, 0.55}

	BackgroundColor = color.RGBA{20, 20, 30, 255}
	EmptyColor      = color.RGBA{70, 100, 120, 220}
	TownColor       = color.RGBA{50, 205, 50, 255}
	SpawnerColor    = color.RGBA{120, 40, 40, 255}
	TankColor       = color.RGBA{60, 140, 220, 255}
	BombColor       = color.RGBA{220, 220, 90, 255}
	DigSiteColor    = color.RGBA{150, 110, 60, 255}
	ItemColor       = color.RGBA{210, 170, 230, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	StrokeWidth     = 2.0

	// Цвета путей по индексу пути (берутся по модулю).
	PathColors = []color.RGBA{
		{194, 178, 128, 255}, // песочный
		{170, 150, 190, 255},
		{140, 180, 150, 255},
		{190, 160, 140, 255},
		{150, 160, 200, 255},
		{200, 170, 170, 255},
	}
)
