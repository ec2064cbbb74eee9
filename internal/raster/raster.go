package raster

import (
	"fmt"
)

// Grid is a square field of values indexed grid[y][x]
type Grid [][]float64

// Layers is a square field of per layer weights indexed layers[y][x][layer]
type Layers [][][]float64

// NewGrid returns a zeroed resolution x resolution grid
func NewGrid(resolution int) Grid {
	g := make(Grid, resolution)
	for y := range g {
		g[y] = make([]float64, resolution)
	}
	return g
}

// Size is the number of rows (and columns)
func (g Grid) Size() int {
	return len(g)
}

// Copy returns an independent copy
func (g Grid) Copy() Grid {
	out := make(Grid, len(g))
	for y := range g {
		out[y] = make([]float64, len(g[y]))
		copy(out[y], g[y])
	}
	return out
}

// Rotate180 returns the grid turned half way round
func (g Grid) Rotate180() Grid {
	n := len(g)
	out := NewGrid(n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[n-1-y][n-1-x] = g[y][x]
		}
	}
	return out
}

// MinMax returns the smallest & largest values
func (g Grid) MinMax() (float64, float64) {
	if len(g) == 0 {
		return 0, 0
	}
	lo, hi := g[0][0], g[0][0]
	for _, row := range g {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

// mustSquare panics if the grid isn't square.
func (g Grid) mustSquare() {
	for y, row := range g {
		if len(row) != len(g) {
			panic(fmt.Sprintf("raster: row %d has %d columns, expected %d", y, len(row), len(g)))
		}
	}
}

// NewLayers returns a zeroed resolution x resolution field with count layers per cell
func NewLayers(resolution, count int) Layers {
	l := make(Layers, resolution)
	for y := range l {
		l[y] = make([][]float64, resolution)
		for x := range l[y] {
			l[y][x] = make([]float64, count)
		}
	}
	return l
}

// Size is the number of rows (and columns)
func (l Layers) Size() int {
	return len(l)
}

// Count is the number of layers per cell
func (l Layers) Count() int {
	if len(l) == 0 || len(l[0]) == 0 {
		return 0
	}
	return len(l[0][0])
}

// Copy returns an independent copy
func (l Layers) Copy() Layers {
	out := make(Layers, len(l))
	for y := range l {
		out[y] = make([][]float64, len(l[y]))
		for x := range l[y] {
			out[y][x] = make([]float64, len(l[y][x]))
			copy(out[y][x], l[y][x])
		}
	}
	return out
}

// Layer extracts a single layer as a grid
func (l Layers) Layer(i int) Grid {
	out := NewGrid(len(l))
	for y := range l {
		for x := range l[y] {
			out[y][x] = l[y][x][i]
		}
	}
	return out
}

// Dominant returns the index of the heaviest layer at (x, y).
// Ties go to the lowest index.
func (l Layers) Dominant(x, y int) int {
	best := 0
	for i, w := range l[y][x] {
		if w > l[y][x][best] {
			best = i
		}
	}
	return best
}

// mustSquare panics if the field isn't square with the same layer count everywhere.
func (l Layers) mustSquare() {
	count := l.Count()
	for y, row := range l {
		if len(row) != len(l) {
			panic(fmt.Sprintf("raster: row %d has %d columns, expected %d", y, len(row), len(l)))
		}
		for x, cell := range row {
			if len(cell) != count {
				panic(fmt.Sprintf("raster: cell (%d,%d) has %d layers, expected %d", x, y, len(cell), count))
			}
		}
	}
}
