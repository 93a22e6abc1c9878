// pkg/hexmap/map.go
package hexmap

import (
	"hex-fire-defense/internal/types"
)

// OccupantKind перечисляет, что может стоять на гексе. Кроме огня — он
// хранится отдельными полями и может сосуществовать с любым обитателем.
type OccupantKind int

const (
	OccupantNone OccupantKind = iota
	OccupantTower
	OccupantWaterTank
	OccupantSuppressionBomb
	OccupantItem
	OccupantDigSite
	OccupantFireSpawner
)

// Occupant — тегированное объединение «кто стоит на гексе».
// Kind == OccupantNone означает пустой гекс, ID тогда равен 0.
type Occupant struct {
	Kind OccupantKind
	ID   types.EntityID
}

// Tile хранит состояние одного гекса.
type Tile struct {
	IsTown    bool
	IsPath    bool
	PathIndex int // -1, если гекс не принадлежит пути

	Occupant Occupant

	// Состояние огня. Инвариант: Burning == (FireType != FireNone),
	// ExtinguishProgress всегда в диапазоне [0, MaxExtinguishTime].
	Burning            bool
	FireType           types.FireType
	ExtinguishProgress float64
	MaxExtinguishTime  float64
	BeingSprayed       bool // пересчитывается каждый тик
}

// HexMap владеет всеми гексами карты. Остальные компоненты читают и пишут
// клетки только через эту структуру и не кэшируют ссылки между тиками.
type HexMap struct {
	Tiles      map[Hex]*Tile
	Radius     int
	TownCenter Hex
}

// TownRingRadius — расстояние кольца, с которого стартуют пути
// (город занимает радиусы 0 и 1).
const TownRingRadius = 2

// NewHexMap создаёт карту-шестиугольник заданного радиуса с городом в центре:
// 7 городских гексов (центр плюс первое кольцо).
func NewHexMap(radius int) *HexMap {
	tiles := make(map[Hex]*Tile)
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			tiles[Hex{q, r}] = &Tile{PathIndex: -1}
		}
	}

	hm := &HexMap{
		Tiles:      tiles,
		Radius:     radius,
		TownCenter: Hex{0, 0},
	}
	for _, h := range hm.HexesInRange(hm.TownCenter, 1) {
		hm.Tiles[h].IsTown = true
	}
	return hm
}

// Contains сообщает, существует ли гекс на карте.
func (hm *HexMap) Contains(hex Hex) bool {
	_, exists := hm.Tiles[hex]
	return exists
}

// At возвращает клетку или nil для несуществующих координат.
// Вызывающий обязан проверять nil и пропускать такие гексы.
func (hm *HexMap) At(hex Hex) *Tile {
	return hm.Tiles[hex]
}

// Neighbors возвращает существующих соседей гекса.
func (hm *HexMap) Neighbors(h Hex) []Hex {
	all := h.AllPossibleNeighbors()
	valid := make([]Hex, 0, 6)
	for _, n := range all {
		if _, exists := hm.Tiles[n]; exists {
			valid = append(valid, n)
		}
	}
	return valid
}

// HexesInRange возвращает все существующие гексы на расстоянии <= radius от центра.
func (hm *HexMap) HexesInRange(center Hex, radius int) []Hex {
	var result []Hex
	for q := -radius; q <= radius; q++ {
		for r := max(-radius, -q-radius); r <= min(radius, -q+radius); r++ {
			hex := center.Add(Hex{Q: q, R: r})
			if hm.Contains(hex) {
				result = append(result, hex)
			}
		}
	}
	return result
}

// HexesInRing возвращает существующие гексы на расстоянии ровно k от центра.
// Для k == 0 возвращается сам центр.
func (hm *HexMap) HexesInRing(center Hex, k int) []Hex {
	if k == 0 {
		if hm.Contains(center) {
			return []Hex{center}
		}
		return nil
	}
	var result []Hex
	// Стандартный обход кольца: циклический порядок направлений,
	// старт со стороны юго-запада, шесть сторон по k шагов.
	cyclic := []Hex{
		{1, 0}, {1, -1}, {0, -1},
		{-1, 0}, {-1, 1}, {0, 1},
	}
	hex := center.Add(cyclic[4].Scale(k))
	for side := 0; side < 6; side++ {
		for step := 0; step < k; step++ {
			if hm.Contains(hex) {
				result = append(result, hex)
			}
			hex = hex.Add(cyclic[side])
		}
	}
	return result
}

// TownRing возвращает 12 гексов кольца, окружающего городской кластер.
func (hm *HexMap) TownRing() []Hex {
	return hm.HexesInRing(hm.TownCenter, TownRingRadius)
}

// IsTown сообщает, принадлежит ли гекс городскому кластеру.
func (hm *HexMap) IsTown(hex Hex) bool {
	tile := hm.At(hex)
	return tile != nil && tile.IsTown
}

// ClearPaths снимает отметки путей со всех клеток (перед перегенерацией).
func (hm *HexMap) ClearPaths() {
	for _, tile := range hm.Tiles {
		tile.IsPath = false
		tile.PathIndex = -1
	}
}

// ClearFire гасит клетку, не трогая обитателя.
func (t *Tile) ClearFire() {
	t.Burning = false
	t.FireType = types.FireNone
	t.ExtinguishProgress = 0
	t.MaxExtinguishTime = 0
	t.BeingSprayed = false
}
