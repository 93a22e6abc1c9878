// internal/pathgen/pathgen.go
package pathgen

import (
	"log"

	"hex-fire-defense/internal/utils"
	"hex-fire-defense/pkg/hexmap"
)

// Path — один сгенерированный путь: стартовая клетка на кольце города и
// цепочка клеток, уходящая к краю карты.
type Path struct {
	Index int
	Cells []hexmap.Hex
}

// Generator строит пути случайным блужданием наружу от кольца города.
// Пути не пересекаются и не возвращаются внутрь кольца.
type Generator struct {
	hexMap       *hexmap.HexMap
	rng          *utils.PRNGService
	targetLength int
}

func NewGenerator(hexMap *hexmap.HexMap, rng *utils.PRNGService, targetLength int) *Generator {
	if hexMap == nil || rng == nil {
		panic("pathgen: nil hexMap or rng")
	}
	if targetLength < 2 {
		targetLength = 2
	}
	return &Generator{hexMap: hexMap, rng: rng, targetLength: targetLength}
}

// Generate снимает старые отметки путей и строит count новых.
// Стартовые клетки выбираются инъективно из кольца города, с предпочтением
// клеток, не соседствующих с уже построенными путями.
func (g *Generator) Generate(count int) []Path {
	g.hexMap.ClearPaths()

	used := make(map[hexmap.Hex]bool)
	usedStarts := make(map[hexmap.Hex]bool)
	var paths []Path

	for i := 0; i < count; i++ {
		start, ok := g.pickStart(used, usedStarts)
		if !ok {
			log.Printf("pathgen: ring exhausted, built %d of %d paths", len(paths), count)
			break
		}
		usedStarts[start] = true

		cells := g.walk(start, used)
		for _, c := range cells {
			used[c] = true
		}
		paths = append(paths, Path{Index: i, Cells: cells})
	}

	for _, p := range paths {
		for _, c := range p.Cells {
			tile := g.hexMap.At(c)
			tile.IsPath = true
			tile.PathIndex = p.Index
		}
	}
	return paths
}

// pickStart выбирает свободную клетку кольца. Сначала — клетки без соседей
// в существующих путях, иначе любая свободная.
func (g *Generator) pickStart(used, usedStarts map[hexmap.Hex]bool) (hexmap.Hex, bool) {
	var clear, any []hexmap.Hex
	for _, h := range g.hexMap.TownRing() {
		if used[h] || usedStarts[h] || g.hexMap.At(h).Occupant.Kind != hexmap.OccupantNone {
			continue
		}
		any = append(any, h)
		adjacent := false
		for _, n := range g.hexMap.Neighbors(h) {
			if used[n] {
				adjacent = true
				break
			}
		}
		if !adjacent {
			clear = append(clear, h)
		}
	}
	pool := clear
	if len(pool) == 0 {
		pool = any
	}
	if len(pool) == 0 {
		return hexmap.Hex{}, false
	}
	return pool[g.rng.Intn(len(pool))], true
}

// walk ведёт путь наружу, пока не достигнет целевой длины, тупика или
// вынужденного прилипания к самому себе.
func (g *Generator) walk(start hexmap.Hex, used map[hexmap.Hex]bool) []hexmap.Hex {
	cells := []hexmap.Hex{start}
	inPath := map[hexmap.Hex]bool{start: true}
	current := start
	lastDir := -1

	for len(cells) < g.targetLength {
		candidates, tiers := g.classify(current, inPath, used)
		best := g.bestTier(tiers)
		if best < 0 || best == tierSelfOnly {
			break // тупик либо остались только клетки вплотную к самому пути
		}

		var pool []hexmap.Hex
		for i, c := range candidates {
			if tiers[i] == best {
				pool = append(pool, c)
			}
		}
		next := g.pickBiased(current, pool, lastDir, len(cells))

		lastDir = hexmap.DirectionIndex(next.Subtract(current))
		cells = append(cells, next)
		inPath[next] = true
		current = next
	}
	return cells
}

// Ярусы предпочтения кандидатов, от лучшего к худшему.
const (
	tierFarClear = iota // дальше от города, чистое соседство
	tierFarOther        // дальше, но рядом чужой путь
	tierNearClear
	tierNearOther
	tierSelfOnly // прилипает к собственному пути
)

func (g *Generator) classify(current hexmap.Hex, inPath, used map[hexmap.Hex]bool) ([]hexmap.Hex, []int) {
	curDist := g.hexMap.TownCenter.Distance(current)
	var candidates []hexmap.Hex
	var tiers []int

	for _, c := range g.hexMap.Neighbors(current) {
		tile := g.hexMap.At(c)
		if tile.IsTown || used[c] || inPath[c] {
			continue
		}
		// Занятые клетки (башни, баки, бомбы) путь обходит стороной.
		if tile.Occupant.Kind != hexmap.OccupantNone {
			continue
		}
		// Назад внутрь кольца города пути не ходят.
		if g.hexMap.TownCenter.Distance(c) <= hexmap.TownRingRadius {
			continue
		}

		adjSelf, adjOther := false, false
		for _, n := range g.hexMap.Neighbors(c) {
			if n == current {
				continue
			}
			switch {
			case inPath[n]:
				adjSelf = true
			case used[n]:
				adjOther = true
			}
		}

		far := g.hexMap.TownCenter.Distance(c) > curDist
		var tier int
		switch {
		case adjSelf && !adjOther:
			tier = tierSelfOnly
		case far && !adjOther:
			tier = tierFarClear
		case far:
			tier = tierFarOther
		case !adjOther:
			tier = tierNearClear
		default:
			tier = tierNearOther
		}
		candidates = append(candidates, c)
		tiers = append(tiers, tier)
	}
	return candidates, tiers
}

func (g *Generator) bestTier(tiers []int) int {
	best := -1
	for _, t := range tiers {
		if best < 0 || t < best {
			best = t
		}
	}
	return best
}

// pickBiased выбирает из пула с бонусом за продолжение прежнего направления.
// Бонус линейно затухает с длиной пути, чтобы хвосты вились свободнее.
func (g *Generator) pickBiased(current hexmap.Hex, pool []hexmap.Hex, lastDir, length int) hexmap.Hex {
	if len(pool) == 1 {
		return pool[0]
	}
	bias := 2.0 * (1.0 - float64(length)/float64(g.targetLength))
	if bias < 0 || lastDir < 0 {
		bias = 0
	}

	weights := make([]float64, len(pool))
	total := 0.0
	for i, c := range pool {
		w := 1.0
		if lastDir >= 0 && hexmap.DirectionIndex(c.Subtract(current)) == lastDir {
			w += bias
		}
		weights[i] = w
		total += w
	}

	r := g.rng.Float64() * total
	upto := 0.0
	for i, w := range weights {
		upto += w
		if r < upto {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}
