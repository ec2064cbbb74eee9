package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Segment is a straight line between two points
type Segment [2]r2.Point

// Length of the segment
func (s Segment) Length() float64 {
	return s[1].Sub(s[0]).Norm()
}

// Reversed returns the segment with its ends swapped
func (s Segment) Reversed() Segment {
	return Segment{s[1], s[0]}
}

// Key returns a string that is the same for a segment & its reverse.
func (s Segment) Key() string {
	a, b := s[0], s[1]
	if b.X < a.X || (a.X == b.X && b.Y < a.Y) {
		a, b = b, a
	}
	return fmt.Sprintf("%g,%g-%g,%g", a.X, a.Y, b.X, b.Y)
}

// ClosestPoint returns the point on the segment nearest to p
func (s Segment) ClosestPoint(p r2.Point) r2.Point {
	d := s[1].Sub(s[0])
	l2 := d.Dot(d)
	if l2 == 0 {
		return s[0]
	}
	t := p.Sub(s[0]).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return s[0].Add(d.Mul(t))
}

// Clip returns the part of the segment inside rect (Liang-Barsky).
// False if no part of the segment is inside.
func (s Segment) Clip(rect r2.Rect) (Segment, bool) {
	p0, p1 := s[0], s[1]
	d := p1.Sub(p0)

	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0 // parallel, keep only if inside
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}

	if !clip(-d.X, p0.X-rect.X.Lo) ||
		!clip(d.X, rect.X.Hi-p0.X) ||
		!clip(-d.Y, p0.Y-rect.Y.Lo) ||
		!clip(d.Y, rect.Y.Hi-p0.Y) {
		return Segment{}, false
	}

	return Segment{p0.Add(d.Mul(t0)), p0.Add(d.Mul(t1))}, true
}

// BoundsEpsilon absorbs float error in cell vertices computed on the bounds.
const BoundsEpsilon = 1e-6

// OnBounds returns if the point touches or exceeds the edge of rect.
// The comparison is inclusive, a point exactly on the edge counts.
func OnBounds(p r2.Point, rect r2.Rect) bool {
	return p.X <= rect.X.Lo+BoundsEpsilon || p.X >= rect.X.Hi-BoundsEpsilon ||
		p.Y <= rect.Y.Lo+BoundsEpsilon || p.Y >= rect.Y.Hi-BoundsEpsilon
}

// SquareDist returns the squared distance between a & b
func SquareDist(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
