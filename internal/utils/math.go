// internal/utils/math.go
package utils

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to float64, t float64) float64 {
	return from + (to-from)*t
}

// Clamp обрезает значение до диапазона [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
