package biomegraph

import (
	"github.com/voidshard/biomegraph/internal/line"
	"github.com/voidshard/biomegraph/internal/raster"
)

// Smoothing averages each cell with its neighbours in a box of rows
// [y-s, y+s] & columns [x-s, x+s). Cells off the map are left out of the
// average. Inputs are never modified, a smoothed copy is returned.
// Grids that aren't square panic.

// SmoothHeightMap smooths every cell
func SmoothHeightMap(h HeightMap, squareSize int) HeightMap {
	return raster.Smooth(h, squareSize)
}

// SmoothAlphaMap smooths every layer of every cell
func SmoothAlphaMap(a AlphaMap, squareSize int) AlphaMap {
	return raster.SmoothLayers(a, squareSize)
}

// SmoothHeightMapWithLines smooths only the cells the lines pass through,
// plus lineWidth cells around them.
func SmoothHeightMapWithLines(h HeightMap, cellSize float64, lines []Segment, lineWidth, squareSize int) HeightMap {
	return raster.SmoothCells(h, line.GridCells(h.Size(), cellSize, lines, lineWidth), squareSize)
}

// SmoothAlphaMapWithLines is SmoothHeightMapWithLines for every layer
func SmoothAlphaMapWithLines(a AlphaMap, cellSize float64, lines []Segment, lineWidth, squareSize int) AlphaMap {
	return raster.SmoothLayerCells(a, line.GridCells(a.Size(), cellSize, lines, lineWidth), squareSize)
}

// SmoothRoads smooths h along every path between biomes using the
// terrain's RoadWidth & SmoothSize.
func (t *Terrain) SmoothRoads(h HeightMap) HeightMap {
	return SmoothHeightMapWithLines(h, t.CellSize(), t.RoadLines(), t.cfg.RoadWidth, t.cfg.SmoothSize)
}

// SmoothBorders blends alpha along the borders of biomes that allow it
func (t *Terrain) SmoothBorders(a AlphaMap) AlphaMap {
	return SmoothAlphaMapWithLines(a, t.CellSize(), t.BiomeSmoothBorders(), t.cfg.RoadWidth, t.cfg.SmoothSize)
}
