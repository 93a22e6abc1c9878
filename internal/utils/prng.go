// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"hex-fire-defense/internal/types"
)

// PRNGService — это обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом во всей игре.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Chance выполняет одну вероятностную попытку: true с вероятностью p.
// p вне [0,1] обрезается.
func (s *PRNGService) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// PickFireType выполняет взвешенный выбор типа огня по шести весам
// (в порядке от Cinder до Cataclysm). Если все веса нулевые или
// отрицательные, возвращается Cinder.
func (s *PRNGService) PickFireType(weights [types.FireTypeCount]float64) types.FireType {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return types.FireCinder
	}

	r := s.rng.Float64() * total
	upto := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		upto += w
		if r < upto {
			return types.FireCinder + types.FireType(i)
		}
	}
	return types.FireCataclysm
}

// TriangularRange возвращает случайное целое в [min, max] с треугольным
// распределением, пик которого приходится на середину диапазона.
func (s *PRNGService) TriangularRange(min, max int) int {
	if max <= min {
		return min
	}
	span := float64(max - min)
	// Среднее двух равномерных величин даёт треугольное распределение.
	v := (s.rng.Float64() + s.rng.Float64()) / 2
	result := min + int(v*(span+1))
	if result > max {
		result = max
	}
	return result
}
