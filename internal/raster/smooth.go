package raster

import (
	"image"
)

// window returns the box around (row, col): rows [row-s, row+s] and
// columns [col-s, col+s). The column range is one short on the high side.
func window(row, col, s int) (r0, r1, c0, c1 int) {
	return row - s, row + s, col - s, col + s - 1
}

// average of the in bounds values of g in the box around (row, col)
func average(g Grid, row, col, s int) float64 {
	r0, r1, c0, c1 := window(row, col, s)
	n := len(g)

	sum := 0.0
	count := 0
	for y := r0; y <= r1; y++ {
		if y < 0 || y >= n {
			continue
		}
		for x := c0; x <= c1; x++ {
			if x < 0 || x >= n {
				continue
			}
			sum += g[y][x]
			count++
		}
	}
	if count == 0 {
		return g[row][col]
	}
	return sum / float64(count)
}

// averageLayer is average for one layer of l
func averageLayer(l Layers, layer, row, col, s int) float64 {
	r0, r1, c0, c1 := window(row, col, s)
	n := len(l)

	sum := 0.0
	count := 0
	for y := r0; y <= r1; y++ {
		if y < 0 || y >= n {
			continue
		}
		for x := c0; x <= c1; x++ {
			if x < 0 || x >= n {
				continue
			}
			sum += l[y][x][layer]
			count++
		}
	}
	if count == 0 {
		return l[row][col][layer]
	}
	return sum / float64(count)
}

// Smooth box filters every cell of g. The input is not modified.
func Smooth(g Grid, s int) Grid {
	g.mustSquare()
	out := g.Copy()
	for y := range g {
		for x := range g[y] {
			out[y][x] = average(g, y, x, s)
		}
	}
	return out
}

// SmoothCells box filters only the given cells (X: column, Y: row).
// Cells outside the grid are ignored. The input is not modified.
func SmoothCells(g Grid, cells []image.Point, s int) Grid {
	g.mustSquare()
	out := g.Copy()
	for _, c := range cells {
		if c.X < 0 || c.Y < 0 || c.X >= len(g) || c.Y >= len(g) {
			continue
		}
		out[c.Y][c.X] = average(g, c.Y, c.X, s)
	}
	return out
}

// SmoothLayers box filters every layer of every cell.
func SmoothLayers(l Layers, s int) Layers {
	l.mustSquare()
	out := l.Copy()
	for y := range l {
		for x := range l[y] {
			for i := range l[y][x] {
				out[y][x][i] = averageLayer(l, i, y, x, s)
			}
		}
	}
	return out
}

// SmoothLayerCells box filters every layer of the given cells.
func SmoothLayerCells(l Layers, cells []image.Point, s int) Layers {
	l.mustSquare()
	out := l.Copy()
	for _, c := range cells {
		if c.X < 0 || c.Y < 0 || c.X >= len(l) || c.Y >= len(l) {
			continue
		}
		for i := range l[c.Y][c.X] {
			out[c.Y][c.X][i] = averageLayer(l, i, c.Y, c.X, s)
		}
	}
	return out
}
