// internal/config/difficulty.go
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"hex-fire-defense/internal/types"
)

//go:embed difficulty.yaml
var defaultDifficultyYAML []byte

// DifficultyConfig задаёт все числовые кривые сложности. Таблица
// вероятностей типов огня считается офлайн-инструментом; ядро только
// читает готовые строки.
type DifficultyConfig struct {
	WavesPerGroup     int     `yaml:"wavesPerGroup"`
	PlacementDuration float64 `yaml:"placementDuration"`
	WaveDuration      float64 `yaml:"waveDuration"`

	Ignition struct {
		BaseChancePerSecond float64 `yaml:"baseChancePerSecond"`
		PerWaveScale        float64 `yaml:"perWaveScale"`
	} `yaml:"ignition"`

	StartingFires struct {
		Base    int `yaml:"base"`
		PerWave int `yaml:"perWave"`
	} `yaml:"startingFires"`

	Spread struct {
		BaseRatePerSecond float64 `yaml:"baseRatePerSecond"`
		WaveRateGrowth    float64 `yaml:"waveRateGrowth"`
		PerWaveScale      float64 `yaml:"perWaveScale"`
	} `yaml:"spread"`

	Paths struct {
		Base         int `yaml:"base"`
		PerGroup     int `yaml:"perGroup"`
		Max          int `yaml:"max"`
		TargetLength int `yaml:"targetLength"`
	} `yaml:"paths"`

	Spawners struct {
		Base     int `yaml:"base"`
		PerGroup int `yaml:"perGroup"`
		Max      int `yaml:"max"`
	} `yaml:"spawners"`

	DigSites struct {
		PerGroup int `yaml:"perGroup"`
	} `yaml:"digSites"`

	SpawnTable []SpawnRow `yaml:"spawnTable"`
}

// SpawnRow — одна строка таблицы вероятностей типов огня.
// Probabilities идут в порядке от Cinder до Cataclysm и суммируются в 1.
type SpawnRow struct {
	Wave          int       `yaml:"wave"`
	Probabilities []float64 `yaml:"probabilities"`
}

// LoadDifficulty читает конфигурацию сложности из YAML-файла.
func LoadDifficulty(path string) (*DifficultyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty file: %w", err)
	}
	return parseDifficulty(data)
}

// DefaultDifficulty возвращает встроенную конфигурацию.
// Встроенный YAML проходит ту же валидацию, поэтому ошибка здесь — это
// ошибка сборки, а не рантайма.
func DefaultDifficulty() *DifficultyConfig {
	cfg, err := parseDifficulty(defaultDifficultyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded difficulty config is invalid: %v", err))
	}
	return cfg
}

func parseDifficulty(data []byte) (*DifficultyConfig, error) {
	var cfg DifficultyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty YAML: %w", err)
	}
	if err := validateDifficulty(&cfg); err != nil {
		return nil, fmt.Errorf("invalid difficulty config: %w", err)
	}
	sort.Slice(cfg.SpawnTable, func(i, j int) bool {
		return cfg.SpawnTable[i].Wave < cfg.SpawnTable[j].Wave
	})
	return &cfg, nil
}

func validateDifficulty(cfg *DifficultyConfig) error {
	if cfg.WavesPerGroup <= 0 {
		return fmt.Errorf("wavesPerGroup must be positive, got %d", cfg.WavesPerGroup)
	}
	if cfg.PlacementDuration <= 0 || cfg.WaveDuration <= 0 {
		return fmt.Errorf("phase durations must be positive")
	}
	if cfg.Ignition.BaseChancePerSecond <= 0 {
		return fmt.Errorf("ignition.baseChancePerSecond must be positive")
	}
	if cfg.Paths.Base <= 0 || cfg.Paths.TargetLength <= 0 {
		return fmt.Errorf("paths.base and paths.targetLength must be positive")
	}
	if len(cfg.SpawnTable) == 0 {
		return fmt.Errorf("spawnTable cannot be empty")
	}
	seen := make(map[int]bool)
	for _, row := range cfg.SpawnTable {
		if row.Wave <= 0 {
			return fmt.Errorf("spawnTable wave numbers must be positive, got %d", row.Wave)
		}
		if seen[row.Wave] {
			return fmt.Errorf("duplicate spawnTable entry for wave %d", row.Wave)
		}
		seen[row.Wave] = true
		if len(row.Probabilities) != types.FireTypeCount {
			return fmt.Errorf("wave %d: expected %d probabilities, got %d",
				row.Wave, types.FireTypeCount, len(row.Probabilities))
		}
		sum := 0.0
		for i, p := range row.Probabilities {
			if p < 0 {
				return fmt.Errorf("wave %d: probability %d is negative", row.Wave, i)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 0.01 {
			return fmt.Errorf("wave %d: probabilities sum to %.4f, expected 1.00", row.Wave, sum)
		}
	}
	if !seen[1] {
		return fmt.Errorf("spawnTable must contain a row for wave 1")
	}
	return nil
}

// SpawnProbabilities возвращает шесть вероятностей типов огня для волны.
// Берётся строка с наибольшим номером волны, не превышающим запрошенный;
// после последней строки таблица повторяет её.
func (cfg *DifficultyConfig) SpawnProbabilities(wave int) [types.FireTypeCount]float64 {
	var out [types.FireTypeCount]float64
	row := cfg.SpawnTable[0]
	for _, r := range cfg.SpawnTable {
		if r.Wave > wave {
			break
		}
		row = r
	}
	copy(out[:], row.Probabilities)
	return out
}

// MaxFireTier возвращает сильнейший тип огня, доступный на волне
// (последний с ненулевой вероятностью). Ограничивает эволюцию и stoking.
func (cfg *DifficultyConfig) MaxFireTier(wave int) types.FireType {
	probs := cfg.SpawnProbabilities(wave)
	maxTier := types.FireCinder
	for i, p := range probs {
		if p > 0 {
			maxTier = types.FireCinder + types.FireType(i)
		}
	}
	return maxTier
}

// IgnitionChancePerSecond — шанс самовозгорания клетки в секунду,
// линейно растущий с номером волны в группе.
func (cfg *DifficultyConfig) IgnitionChancePerSecond(waveInGroup int) float64 {
	return cfg.Ignition.BaseChancePerSecond * (1 + cfg.Ignition.PerWaveScale*float64(waveInGroup-1))
}

// StartingFireCount — сколько очагов зажигается в начале волны.
func (cfg *DifficultyConfig) StartingFireCount(waveInGroup int) int {
	return cfg.StartingFires.Base + cfg.StartingFires.PerWave*(waveInGroup-1)
}

// SpreadScale — общий множитель распространения внутри группы волн.
func (cfg *DifficultyConfig) SpreadScale(waveInGroup int) float64 {
	return 1 + cfg.Spread.PerWaveScale*float64(waveInGroup-1)
}

// BaseSpreadRate — базовый шанс распространения в секунду для абсолютной волны.
// Вклад типа огня добавляется отдельным множителем из его определения.
func (cfg *DifficultyConfig) BaseSpreadRate(wave int) float64 {
	return cfg.Spread.BaseRatePerSecond * (1 + cfg.Spread.WaveRateGrowth*float64(wave-1))
}

// PathCount — число путей для группы волн.
func (cfg *DifficultyConfig) PathCount(group int) int {
	n := cfg.Paths.Base + cfg.Paths.PerGroup*(group-1)
	if cfg.Paths.Max > 0 && n > cfg.Paths.Max {
		n = cfg.Paths.Max
	}
	return n
}

// SpawnerCount — число огненных спавнеров для группы волн.
func (cfg *DifficultyConfig) SpawnerCount(group int) int {
	n := cfg.Spawners.Base + cfg.Spawners.PerGroup*(group-1)
	if cfg.Spawners.Max > 0 && n > cfg.Spawners.Max {
		n = cfg.Spawners.Max
	}
	return n
}
