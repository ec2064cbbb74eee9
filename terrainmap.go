package biomegraph

import (
	"image"
	"image/color"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/voidshard/biomegraph/internal/encoding"
	"github.com/voidshard/biomegraph/internal/line"
)

const (
	// bit numbers for our bitmap
	bitRoad     = 0
	bitEdge     = 1
	bitWater    = 2
	bitSmoothed = 3
)

// TerrainMap is a graphical representation of a Terrain's height & alpha maps
type TerrainMap interface {
	// Save as custom file in a format defined by the library
	Save(fpath string) error

	// SaveAdv saves as an image with the given color scheme
	SaveAdv(fpath string, scheme *ColourScheme) error

	// CustomImage returns an image with the given color scheme
	CustomImage(scheme *ColourScheme) (image.Image, error)

	// Height at x,y in [0,1]
	Height(x, y int) (float64, error)

	// Layer returns the heaviest texture layer at x,y
	Layer(x, y int) (int, error)

	// NodeID of the biome nearest x,y
	NodeID(x, y int) (int, error)

	IsRoad(x, y int) bool
	IsBiomeEdge(x, y int) bool
	IsWater(x, y int) bool
	IsSmoothed(x, y int) bool
}

// imageMap is a particular implementation of TerrainMap using a RGBA64
type imageMap struct {
	// Map is an RGBA64 image where each pixel of 64 bits is split via
	//
	// R [16 bits] -> height quantized over [0,1]
	// G [16 bits] -> biome node id
	// B [16 bits] -> unused
	// A [16 bits]
	//   16-9 [8 bits] -> heaviest texture layer
	//    8-1 [8 bits] -> bitmap (true if set, false if not)
	//       bit 0 -> isRoad
	//       bit 1 -> isBiomeEdge
	//       bit 2 -> isWater
	//       bit 3 -> isSmoothed
	//       bit 4-7 -> unused
	//
	im *image.RGBA64

	// texture layer names by index, for colouring
	layers []string

	// temporary image for road / edge lines.
	// We draw the lines with a drawing lib & then transfer this
	// information into our main image in endDraw()
	ctx *gg.Context
}

// ColourScheme defines how various features of a terrain should be coloured.
type ColourScheme struct {
	Roads color.Color
	Edges color.Color
	Water color.Color

	// Layers by texture name, unnamed layers take from Palette
	Layers  map[string]color.Color
	Palette []color.Color

	// ShadeHeight darkens lower ground
	ShadeHeight bool
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Roads: colornames.Sandybrown,
		Edges: colornames.Black,
		Water: colornames.Steelblue,
		Layers: map[string]color.Color{
			"water": colornames.Steelblue,
			"road":  colornames.Sandybrown,
		},
		Palette: []color.Color{
			colornames.Forestgreen,
			colornames.Khaki,
			colornames.Sienna,
			colornames.Lightgray,
			colornames.Darkolivegreen,
			colornames.Wheat,
			colornames.Seagreen,
			colornames.Rosybrown,
		},
		ShadeHeight: true,
	}
}

// colourFor returns the colour of a texture layer
func (s *ColourScheme) colourFor(layer int, name string) color.Color {
	if c, ok := s.Layers[name]; ok {
		return c
	}
	if len(s.Palette) == 0 {
		return colornames.White
	}
	return s.Palette[layer%len(s.Palette)]
}

// Map renders the given height & alpha maps along with roads & biome edges.
// Both maps must have the same resolution.
func (t *Terrain) Map(height HeightMap, alpha AlphaMap) (TerrainMap, error) {
	if height.Size() != alpha.Size() {
		return nil, errors.Errorf("height map is %d cells, alpha map is %d", height.Size(), alpha.Size())
	}

	res := height.Size()
	cellSize := t.cfg.MapSize / float64(res)
	m := newMap(image.Rect(0, 0, res, res))
	for _, l := range t.textures.layers {
		m.layers = append(m.layers, l.Name)
	}

	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			id, b := t.closestBiome(r2.Point{X: float64(x) * cellSize, Y: float64(y) * cellSize})

			bm := bitmap.New(8)
			if b != nil && !b.Navigable() {
				bm.Set(bitWater, true)
			}
			m.setCell(x, y, height[y][x], id, alpha.Dominant(x, y), bm)
		}
	}

	for _, e := range t.BiomeBorders() {
		m.drawEdge(toPixel(e[0], cellSize), toPixel(e[1], cellSize))
	}
	for _, r := range t.RoadLines() {
		m.drawRoad(toPixel(r[0], cellSize), toPixel(r[1], cellSize), t.cfg.RoadWidth)
	}
	m.endDraw()

	for _, c := range line.GridCells(res, cellSize, t.RoadLines(), t.cfg.RoadWidth) {
		m.setBit(c.X, c.Y, bitSmoothed)
	}

	return m, nil
}

// toPixel converts a map position to image co-ords
func toPixel(p r2.Point, cellSize float64) r2.Point {
	return r2.Point{X: p.X / cellSize, Y: p.Y / cellSize}
}

// Save the TerrainMap as is to disk
func (c *imageMap) Save(fpath string) error {
	return savePNG(fpath, c.im)
}

// CustomImage returns the TerrainMap coloured with the given Scheme
func (c *imageMap) CustomImage(scheme *ColourScheme) (image.Image, error) {
	bnds := c.im.Bounds()
	im := image.NewRGBA(bnds)

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			bm := c.getBM(dx, dy)

			if bm.Get(bitRoad) {
				im.Set(dx, dy, scheme.Roads)
				continue
			} else if bm.Get(bitEdge) {
				im.Set(dx, dy, scheme.Edges)
				continue
			}

			layer, err := c.Layer(dx, dy)
			if err != nil {
				return nil, err
			}
			name := ""
			if layer < len(c.layers) {
				name = c.layers[layer]
			}
			col := scheme.colourFor(layer, name)
			if bm.Get(bitWater) && scheme.Water != nil {
				col = scheme.Water
			}

			if scheme.ShadeHeight {
				h, _ := c.Height(dx, dy)
				col = shade(col, 0.5+h/2)
			}
			im.Set(dx, dy, col)
		}
	}

	return im, nil
}

// shade scales the colour channels of col by f
func shade(col color.Color, f float64) color.Color {
	r, g, b, a := col.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * f),
		G: uint16(float64(g) * f),
		B: uint16(float64(b) * f),
		A: uint16(a),
	}
}

// SaveAdv essentially saves the TerrainMap using the given scheme to disk.
// Essentially sugar around "CustomImage()" followed by writing out a PNG.
func (c *imageMap) SaveAdv(fpath string, scheme *ColourScheme) error {
	im, err := c.CustomImage(scheme)
	if err != nil {
		return err
	}
	ctx := gg.NewContextForRGBA(im.(*image.RGBA))
	return ctx.SavePNG(fpath)
}

// Height returns the height at x,y
func (c *imageMap) Height(x, y int) (float64, error) {
	if c.isOutOfBounds(x, y) {
		return 0, errors.Wrapf(ErrLookup, "(%d,%d) is out of bounds", x, y)
	}
	return encoding.Dequantize16(c.im.RGBA64At(x, y).R), nil
}

// Layer returns the heaviest texture layer at x,y
func (c *imageMap) Layer(x, y int) (int, error) {
	if c.isOutOfBounds(x, y) {
		return -1, errors.Wrapf(ErrLookup, "(%d,%d) is out of bounds", x, y)
	}
	layer, _ := encoding.Split16(c.im.RGBA64At(x, y).A)
	return int(layer), nil
}

// NodeID returns the biome node at x,y
func (c *imageMap) NodeID(x, y int) (int, error) {
	if c.isOutOfBounds(x, y) {
		return -1, errors.Wrapf(ErrLookup, "(%d,%d) is out of bounds", x, y)
	}
	return int(c.im.RGBA64At(x, y).G), nil
}

// setCell writes everything we know about x,y
func (c *imageMap) setCell(x, y int, height float64, node, layer int, bm bitmap.Bitmap) {
	v := c.im.RGBA64At(x, y)
	v.R = encoding.Quantize16(height)
	v.G = uint16(node)
	v.A = encoding.Merge8(uint8(layer), bm.Data(false)[0])
	c.im.SetRGBA64(x, y, v)
}

// setBit sets a single bitmap bit at x,y
func (c *imageMap) setBit(x, y, bit int) {
	if c.isOutOfBounds(x, y) {
		return
	}
	bm := c.getBM(x, y)
	bm.Set(bit, true)
	c.setBM(x, y, bm)
}

// setBM sets the 8 bit bitmap at x,y
func (c *imageMap) setBM(x, y int, bm bitmap.Bitmap) {
	current := c.im.RGBA64At(x, y)
	layer, _ := encoding.Split16(current.A)
	current.A = encoding.Merge8(layer, bm.Data(false)[0])
	c.im.SetRGBA64(x, y, current)
}

// getBM gets the 8 bit bitmap at x,y
func (c *imageMap) getBM(x, y int) bitmap.Bitmap {
	current := c.im.RGBA64At(x, y)
	_, bmdata := encoding.Split16(current.A)
	return bitmap.Bitmap([]byte{bmdata})
}

// IsRoad returns if there is a road at x,y
func (c *imageMap) IsRoad(x, y int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bitRoad)
}

// IsBiomeEdge returns if a border between biomes crosses x,y
func (c *imageMap) IsBiomeEdge(x, y int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bitEdge)
}

// IsWater returns if x,y is in a biome that can't be walked on
func (c *imageMap) IsWater(x, y int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bitWater)
}

// IsSmoothed returns if x,y is smoothed along roads
func (c *imageMap) IsSmoothed(x, y int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bitSmoothed)
}

// isOutOfBounds determines if x,y is outside of the image area
func (c *imageMap) isOutOfBounds(x, y int) bool {
	return !image.Pt(x, y).In(c.im.Bounds())
}

// endDraw copies our road / edge sketch to our proper map.
func (c *imageMap) endDraw() {
	temp := c.ctx.Image()
	bnds := temp.Bounds()

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			r, _, b, _ := temp.At(dx, dy).RGBA()
			if r>>8 > 0 {
				c.setBit(dx, dy, bitRoad)
			}
			if b>>8 > 0 {
				c.setBit(dx, dy, bitEdge)
			}
		}
	}
}

// drawEdge (line) on to our scratch image
func (c *imageMap) drawEdge(a, b r2.Point) {
	c.ctx.SetColor(color.RGBA{0, 0, 255, 255})
	c.ctx.SetLineWidth(1)
	c.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
	c.ctx.Stroke()
}

// drawRoad (line) on to our scratch image
func (c *imageMap) drawRoad(a, b r2.Point, width int) {
	if width < 1 {
		width = 1
	}
	c.ctx.SetColor(color.RGBA{255, 0, 0, 255})
	c.ctx.SetLineCapRound()
	c.ctx.SetLineWidth(float64(width))
	c.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
	c.ctx.Stroke()
}

// newMap returns a new map with the given bounds
func newMap(bounds image.Rectangle) *imageMap {
	ctx := gg.NewContextForRGBA(image.NewRGBA(bounds))
	ctx.SetRGBA(0, 0, 0, 0)
	ctx.Clear()

	return &imageMap{
		ctx:    ctx,
		im:     image.NewRGBA64(bounds),
		layers: []string{},
	}
}
