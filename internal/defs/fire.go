// internal/defs/fire.go
package defs

import (
	"image/color"

	"hex-fire-defense/internal/types"
)

// FireDefinition holds all the static data for one fire tier.
type FireDefinition struct {
	Type             string     `json:"type"`
	DamagePerSecond  float64    `json:"damage_per_second"`
	ExtinguishTime   float64    `json:"extinguish_time"`
	SpreadMultiplier float64    `json:"spread_multiplier"`
	Color            color.RGBA `json:"color"`
}

// FireLibrary is the library of all fire definitions, keyed by tier.
// The defaults below are overridden by LoadFireDefinitions when an
// external file is provided.
var FireLibrary = map[types.FireType]FireDefinition{
	types.FireCinder:    {Type: "cinder", DamagePerSecond: 2, ExtinguishTime: 5, SpreadMultiplier: 1.0, Color: color.RGBA{255, 170, 90, 255}},
	types.FireFlame:     {Type: "flame", DamagePerSecond: 4, ExtinguishTime: 9, SpreadMultiplier: 1.15, Color: color.RGBA{255, 140, 50, 255}},
	types.FireBlaze:     {Type: "blaze", DamagePerSecond: 7, ExtinguishTime: 14, SpreadMultiplier: 1.3, Color: color.RGBA{255, 100, 30, 255}},
	types.FireFirestorm: {Type: "firestorm", DamagePerSecond: 11, ExtinguishTime: 20, SpreadMultiplier: 1.5, Color: color.RGBA{240, 60, 20, 255}},
	types.FireInferno:   {Type: "inferno", DamagePerSecond: 16, ExtinguishTime: 28, SpreadMultiplier: 1.7, Color: color.RGBA{210, 30, 30, 255}},
	types.FireCataclysm: {Type: "cataclysm", DamagePerSecond: 24, ExtinguishTime: 40, SpreadMultiplier: 2.0, Color: color.RGBA{170, 10, 60, 255}},
}

// FireDPS возвращает урон в секунду для типа огня.
// Неизвестный тип деградирует до безопасного значения 1, а не роняет тик.
func FireDPS(t types.FireType) float64 {
	if def, ok := FireLibrary[t]; ok {
		return def.DamagePerSecond
	}
	return 1
}

// FireExtinguishTime возвращает полный запас «здоровья» огня данного типа.
func FireExtinguishTime(t types.FireType) float64 {
	if def, ok := FireLibrary[t]; ok {
		return def.ExtinguishTime
	}
	return 1
}

// FireSpreadMultiplier возвращает множитель распространения типа огня.
func FireSpreadMultiplier(t types.FireType) float64 {
	if def, ok := FireLibrary[t]; ok {
		return def.SpreadMultiplier
	}
	return 1
}

// fireTypeByName — обратный индекс для загрузки определений из JSON.
var fireTypeByName = map[string]types.FireType{
	"cinder":    types.FireCinder,
	"flame":     types.FireFlame,
	"blaze":     types.FireBlaze,
	"firestorm": types.FireFirestorm,
	"inferno":   types.FireInferno,
	"cataclysm": types.FireCataclysm,
}
