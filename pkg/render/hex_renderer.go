// pkg/render/hex_renderer.go
package render

import (
	"image/color"
	"math"

	"hex-fire-defense/internal/app"
	"hex-fire-defense/internal/config"
	"hex-fire-defense/internal/defs"
	"hex-fire-defense/pkg/hexmap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// HexRenderer рисует карту и сущности. Заливка и обводка гексов собираются
// через vector.Path в переиспользуемые буферы вершин.
type HexRenderer struct {
	hexMap       *hexmap.HexMap
	hexSize      float64
	offsetX      float64
	offsetY      float64
	screenWidth  int
	screenHeight int
	whiteImg     *ebiten.Image
	fillVs       []ebiten.Vertex
	fillIs       []uint16
	strokeVs     []ebiten.Vertex
	strokeIs     []uint16
	fontFace     font.Face
}

func NewHexRenderer(hexMap *hexmap.HexMap, hexSize float64, screenWidth, screenHeight int) *HexRenderer {
	whiteImg := ebiten.NewImage(1, 1)
	whiteImg.Fill(color.White)

	return &HexRenderer{
		hexMap:       hexMap,
		hexSize:      hexSize,
		offsetX:      float64(screenWidth) / 2,
		offsetY:      float64(screenHeight) / 2,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		whiteImg:     whiteImg,
		fillVs:       make([]ebiten.Vertex, 0, 18),
		fillIs:       make([]uint16, 0, 18),
		strokeVs:     make([]ebiten.Vertex, 0, 36),
		strokeIs:     make([]uint16, 0, 36),
		fontFace:     basicfont.Face7x13,
	}
}

// ScreenToHex переводит экранные координаты в гекс.
func (r *HexRenderer) ScreenToHex(x, y float64) hexmap.Hex {
	return hexmap.PixelToHex(x, y, r.offsetX, r.offsetY, r.hexSize)
}

func (r *HexRenderer) hexCenter(hex hexmap.Hex) (float64, float64) {
	x, y := hex.ToPixel(r.hexSize)
	return x + r.offsetX, y + r.offsetY
}

func (r *HexRenderer) Draw(screen *ebiten.Image, g *app.Game, selected hexmap.Hex, hasSelection bool) {
	screen.Fill(config.BackgroundColor)

	for hex, tile := range r.hexMap.Tiles {
		r.drawHexFill(screen, hex, r.tileColor(tile))
	}
	for hex := range r.hexMap.Tiles {
		r.drawHexOutline(screen, hex, 1)
	}
	if hasSelection && r.hexMap.Contains(selected) {
		r.drawHexOutline(screen, selected, float32(config.StrokeWidth)+1)
	}

	r.drawEntities(screen, g)
}

// tileColor выбирает заливку клетки. Огонь перекрывает всё остальное.
func (r *HexRenderer) tileColor(tile *hexmap.Tile) color.RGBA {
	if tile.Burning {
		if def, ok := defs.FireLibrary[tile.FireType]; ok {
			return def.Color
		}
	}
	if tile.IsTown {
		return config.TownColor
	}
	if tile.Occupant.Kind == hexmap.OccupantFireSpawner {
		return config.SpawnerColor
	}
	if tile.IsPath {
		return config.PathColors[tile.PathIndex%len(config.PathColors)]
	}
	return config.EmptyColor
}

func (r *HexRenderer) appendHexPath(hex hexmap.Hex) vector.Path {
	x, y := r.hexCenter(hex)
	path := vector.Path{}
	for i := 0; i < 6; i++ {
		angle := math.Pi/3*float64(i) + math.Pi/6
		px := x + r.hexSize*math.Cos(angle)
		py := y + r.hexSize*math.Sin(angle)
		if i == 0 {
			path.MoveTo(float32(px), float32(py))
		} else {
			path.LineTo(float32(px), float32(py))
		}
	}
	path.Close()
	return path
}

func (r *HexRenderer) drawHexFill(target *ebiten.Image, hex hexmap.Hex, fillColor color.RGBA) {
	path := r.appendHexPath(hex)
	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	colorize(r.fillVs, fillColor)
	target.DrawTriangles(r.fillVs, r.fillIs, r.whiteImg, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (r *HexRenderer) drawHexOutline(target *ebiten.Image, hex hexmap.Hex, width float32) {
	path := r.appendHexPath(hex)
	r.strokeVs, r.strokeIs = path.AppendVerticesAndIndicesForStroke(r.strokeVs[:0], r.strokeIs[:0], &vector.StrokeOptions{Width: width})
	colorize(r.strokeVs, color.RGBA{110, 140, 160, 255})
	target.DrawTriangles(r.strokeVs, r.strokeIs, r.whiteImg, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func colorize(vs []ebiten.Vertex, c color.RGBA) {
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
}

func (r *HexRenderer) drawEntities(screen *ebiten.Image, g *app.Game) {
	// Баки, бомбы и раскопы — под башнями.
	for _, tank := range g.ECS.WaterTanks {
		x, y := r.hexCenter(tank.Hex)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r.hexSize*0.4), config.TankColor, true)
	}
	for _, bomb := range g.ECS.SuppressionBombs {
		x, y := r.hexCenter(bomb.Hex)
		c := config.BombColor
		if bomb.Triggered {
			c = color.RGBA{255, 120, 60, 255} // отсчёт пошёл
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r.hexSize*0.3), c, true)
	}
	for _, ds := range g.ECS.DigSites {
		x, y := r.hexCenter(ds.Hex)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r.hexSize*0.45), config.DigSiteColor, true)
		r.drawHealthBar(screen, x, y, ds.Health/ds.MaxHealth)
	}
	for _, it := range g.ECS.Items {
		x, y := r.hexCenter(it.Hex)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r.hexSize*0.25), config.ItemColor, true)
	}

	for _, tower := range g.ECS.Towers {
		def, ok := defs.TowerLibrary[tower.DefID]
		if !ok {
			continue
		}
		x, y := r.hexCenter(tower.Hex)
		radius := r.hexSize * def.Visuals.RadiusFactor
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), def.Visuals.Color, true)

		// Штрих направления.
		dir := hexmap.NeighborDirections[tower.Direction%6]
		dx, dy := dir.ToPixel(r.hexSize)
		norm := math.Hypot(dx, dy)
		if norm > 0 {
			ex := x + dx/norm*r.hexSize*0.8
			ey := y + dy/norm*r.hexSize*0.8
			vector.StrokeLine(screen, float32(x), float32(y), float32(ex), float32(ey), float32(def.Visuals.StrokeWidth), config.TextLightColor, true)
		}
		if tower.Shield != nil {
			vector.StrokeCircle(screen, float32(x), float32(y), float32(radius+3), 1.5, color.RGBA{120, 220, 255, 255}, true)
		}
		r.drawHealthBar(screen, x, y, tower.Health/tower.MaxHealth)
	}

	// Снаряды в полёте: позиция интерполируется по прогрессу.
	for _, bomb := range g.ECS.WaterBombs {
		sx, sy := r.hexCenter(bomb.Start)
		tx, ty := r.hexCenter(bomb.Target)
		x := sx + (tx-sx)*bomb.Progress
		y := sy + (ty-sy)*bomb.Progress
		vector.DrawFilledCircle(screen, float32(x), float32(y), 4, color.RGBA{140, 200, 255, 255}, true)
	}
}

func (r *HexRenderer) drawHealthBar(screen *ebiten.Image, cx, cy, ratio float64) {
	if ratio >= 1 {
		return
	}
	if ratio < 0 {
		ratio = 0
	}
	w := float32(r.hexSize)
	x := float32(cx) - w/2
	y := float32(cy) + float32(r.hexSize)*0.55
	vector.DrawFilledRect(screen, x, y, w, 3, color.RGBA{40, 40, 40, 255}, false)
	vector.DrawFilledRect(screen, x, y, w*float32(ratio), 3, color.RGBA{90, 220, 90, 255}, false)
}

// DrawLabel выводит строку статуса в левом верхнем углу.
func (r *HexRenderer) DrawLabel(screen *ebiten.Image, label string) {
	text.Draw(screen, label, r.fontFace, 8, 16, config.TextLightColor)
}
