// pkg/hexmap/hex.go
package hexmap

// Hex представляет гекс в осевых координатах (Q, R)
type Hex struct {
	Q, R int
}

// NeighborDirections defines the 6 possible directions from a hex, starting from East and going counter-clockwise.
// This order is crucial for angle-to-direction calculations and tower rotation.
var NeighborDirections = []Hex{
	{Q: 1, R: 0}, {Q: 0, R: -1}, {Q: -1, R: 0},
	{Q: -1, R: 1}, {Q: 0, R: 1}, {Q: 1, R: -1},
}

// ToPixel конвертирует гекс в пиксельные координаты (pointy top ориентация)
func (h Hex) ToPixel(hexSize float64) (x, y float64) {
	x = hexSize * (Sqrt3*float64(h.Q) + Sqrt3/2*float64(h.R))
	y = hexSize * (3.0 / 2.0 * float64(h.R))
	return
}

// PixelToHex конвертирует пиксельные координаты в гекс.
// offsetX/offsetY — положение центра карты на экране.
func PixelToHex(x, y, offsetX, offsetY, hexSize float64) Hex {
	x -= offsetX
	y -= offsetY
	q := (Sqrt3/3*x - 1.0/3*y) / hexSize
	r := (2.0 / 3 * y) / hexSize
	return axialRound(q, r)
}

// AllPossibleNeighbors возвращает всех возможных соседей гекса
func (h Hex) AllPossibleNeighbors() []Hex {
	return []Hex{
		{h.Q + 1, h.R},
		{h.Q + 1, h.R - 1},
		{h.Q, h.R - 1},
		{h.Q - 1, h.R},
		{h.Q - 1, h.R + 1},
		{h.Q, h.R + 1},
	}
}

// Add возвращает сумму двух гексов
func (h Hex) Add(other Hex) Hex {
	return Hex{
		Q: h.Q + other.Q,
		R: h.R + other.R,
	}
}

// Subtract возвращает разность двух гексов
func (h Hex) Subtract(other Hex) Hex {
	return Hex{
		Q: h.Q - other.Q,
		R: h.R - other.R,
	}
}

// Distance вычисляет расстояние между гексами
func (h Hex) Distance(to Hex) int {
	dq := h.Q - to.Q
	dr := h.R - to.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// Lerp выполняет линейную интерполяцию между двумя гексами
func (a Hex) Lerp(b Hex, t float64) Hex {
	q := float64(a.Q)*(1-t) + float64(b.Q)*t
	r := float64(a.R)*(1-t) + float64(b.R)*t
	return axialRound(q, r)
}

// LineTo возвращает гексы на прямой между двумя точками
func (start Hex) LineTo(end Hex) []Hex {
	n := start.Distance(end)
	results := make([]Hex, 0, n+1)
	if n == 0 {
		return append(results, start)
	}
	for i := 0; i <= n; i++ {
		t := 1.0 / float64(n) * float64(i)
		results = append(results, start.Lerp(end, t))
	}
	return results
}

// Direction returns a normalized hex vector (length 1) pointing from the origin towards h.
func (h Hex) Direction() Hex {
	if h.Q == 0 && h.R == 0 {
		return h // No direction from origin to origin
	}
	absQ, absR, absS := abs(h.Q), abs(h.R), abs(-h.Q-h.R)
	if absQ >= absR && absQ >= absS {
		return Hex{h.Q / absQ, h.R / absQ}
	}
	if absR >= absQ && absR >= absS {
		return Hex{h.Q / absR, h.R / absR}
	}
	return Hex{h.Q / absS, h.R / absS}
}

// Scale multiplies a hex vector by a scalar.
func (h Hex) Scale(factor int) Hex {
	return Hex{h.Q * factor, h.R * factor}
}

// DirectionIndex возвращает индекс направления (0-5) для единичного вектора,
// либо -1, если вектор не является одним из шести базовых направлений.
func DirectionIndex(v Hex) int {
	for i, d := range NeighborDirections {
		if d == v {
			return i
		}
	}
	return -1
}
