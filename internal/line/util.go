package line

import (
	"image"
	"math"
	"sort"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/voidshard/biomegraph/internal/geom"
)

// listPlot meets the Plotter interface,
// In our case we just append the x,y to a list,
type listPlot struct {
	pts []image.Point
}

// Set records a new point on the line
func (l *listPlot) Set(x, y int) {
	l.pts = append(l.pts, image.Pt(x, y))
}

// setPlot collects unique points
type setPlot map[image.Point]bool

// Set records a new point on the line
func (s setPlot) Set(x, y int) {
	s[image.Pt(x, y)] = true
}

// PointsBetween returns all points on a line between a,b
func PointsBetween(a, b image.Point) []image.Point {
	lp := &listPlot{pts: []image.Point{}}
	bresenham(lp, a.X, a.Y, b.X, b.Y)
	return lp.pts
}

// toCell converts a world coordinate to a grid index clamped to [0, resolution)
func toCell(v, cellSize float64, resolution int) int {
	c := int(math.Floor(v / cellSize))
	if c < 0 {
		return 0
	}
	if c > resolution-1 {
		return resolution - 1
	}
	return c
}

// GridCells rasterizes segments onto a square grid of resolution cells each
// cellSize wide, then grows the result by width cells in every direction.
//
// Segments are clipped to the grid first, those entirely off it are skipped.
// Returned points are (X: column, Y: row) where column comes from the
// segment x & row from the segment y. Points are sorted row major.
func GridCells(resolution int, cellSize float64, segments []geom.Segment, width int) []image.Point {
	extent := r1.Interval{Lo: 0, Hi: float64(resolution) * cellSize}
	grid := r2.Rect{X: extent, Y: extent}

	cells := setPlot{}
	for _, seg := range segments {
		s, ok := seg.Clip(grid)
		if !ok {
			continue
		}
		bresenham(
			cells,
			toCell(s[0].X, cellSize, resolution), toCell(s[0].Y, cellSize, resolution),
			toCell(s[1].X, cellSize, resolution), toCell(s[1].Y, cellSize, resolution),
		)
	}

	grown := setPlot{}
	for c := range cells {
		for y := c.Y - width; y <= c.Y+width; y++ {
			for x := c.X - width; x <= c.X+width; x++ {
				if x < 0 || x >= resolution || y < 0 || y >= resolution {
					continue
				}
				grown.Set(x, y)
			}
		}
	}

	out := make([]image.Point, 0, len(grown))
	for p := range grown {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
