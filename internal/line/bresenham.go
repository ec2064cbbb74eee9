package line

// all octant integer bresenham, see
// stackoverflow.com/questions/11678693/all-cases-covered-bresenhams-line-algorithm

// Plotter interface for bresenham
type Plotter interface {
	Set(x int, y int)
}

// sign of v as -1, 0, 1
func sign(v int) int {
	if v < 0 {
		return -1
	} else if v > 0 {
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bresenham plots every cell from (x1, y1) to (x2, y2) inclusive.
// The major axis is x only if |dx| > |dy|; equal lengths step along y.
func bresenham(p Plotter, x1, y1, x2, y2 int) {
	w := x2 - x1
	h := y2 - y1

	dx1, dy1 := sign(w), sign(h) // diagonal step
	dx2, dy2 := sign(w), 0       // straight step

	longest := abs(w)
	shortest := abs(h)
	if !(longest > shortest) {
		longest, shortest = abs(h), abs(w)
		dx2, dy2 = 0, sign(h)
	}

	numerator := longest >> 1
	for i := 0; i <= longest; i++ {
		p.Set(x1, y1)
		numerator += shortest
		if !(numerator < longest) {
			numerator -= longest
			x1 += dx1
			y1 += dy1
		} else {
			x1 += dx2
			y1 += dy2
		}
	}
}
