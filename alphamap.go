package biomegraph

import (
	"github.com/golang/geo/r2"
	"go.uber.org/zap"

	"github.com/voidshard/biomegraph/internal/line"
	"github.com/voidshard/biomegraph/internal/raster"
)

// GenerateAlphaMap builds a HeightMapResolution square grid with one weight
// per texture layer. Each cell gets weight 1 in the layer of the (jittered)
// nearest biome, every other layer is 0.
func (t *Terrain) GenerateAlphaMap() (AlphaMap, error) {
	if err := t.cfg.validateRaster(); err != nil {
		return nil, err
	}

	res := t.cfg.HeightMapResolution
	cellSize := t.CellSize()
	result := raster.NewLayers(res, t.TextureCount())

	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			for layer, w := range t.SampleBiomeTexture(r2.Point{X: float64(x) * cellSize, Y: float64(y) * cellSize}) {
				result[y][x][layer] = w
			}
		}
	}

	t.log.Debug("generated alphamap", zap.Int("resolution", res), zap.Int("layers", t.TextureCount()))
	return result, nil
}

// PaintRoads returns a copy of alpha with the road layer painted along every
// path between biomes, RoadWidth cells either side.
func (t *Terrain) PaintRoads(alpha AlphaMap) AlphaMap {
	return PaintLayer(alpha, t.CellSize(), t.RoadLines(), t.cfg.RoadWidth, t.RoadLayer())
}

// PaintLayer returns a copy of alpha where every cell the lines pass through
// (plus width cells around them) is set entirely to layer.
func PaintLayer(alpha AlphaMap, cellSize float64, lines []Segment, width, layer int) AlphaMap {
	out := alpha.Copy()
	for _, c := range line.GridCells(alpha.Size(), cellSize, lines, width) {
		weights := out[c.Y][c.X]
		for i := range weights {
			weights[i] = 0
		}
		weights[layer] = 1
	}
	return out
}
