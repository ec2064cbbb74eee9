package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// A Polygon is an ordered ring of points, the last point forms an
// edge with the first.
type Polygon struct {
	Points []r2.Point
}

// NewPolygon returns a polygon over the given points (which are not copied).
func NewPolygon(points []r2.Point) *Polygon {
	return &Polygon{Points: points}
}

// Bounds returns the smallest rect holding every point.
func (p *Polygon) Bounds() r2.Rect {
	if len(p.Points) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(p.Points...)
}

// IsClosed returns whether the polygon has enough points to enclose anything.
func (p *Polygon) IsClosed() bool {
	return len(p.Points) >= 3
}

// Contains returns whether the point is inside the polygon (even-odd rule).
// Points exactly on an edge may land either side.
func (p *Polygon) Contains(point r2.Point) bool {
	if !p.IsClosed() {
		return false
	}

	contains := false
	j := len(p.Points) - 1
	for i := 0; i < len(p.Points); i++ {
		if intersectsWithRaycast(point, p.Points[j], p.Points[i]) {
			contains = !contains
		}
		j = i
	}
	return contains
}

// intersectsWithRaycast returns if a ray cast from point along +x crosses
// the edge (start, end).
func intersectsWithRaycast(point, start, end r2.Point) bool {
	if (start.Y > point.Y) == (end.Y > point.Y) {
		return false // edge is entirely above or below
	}
	crossX := start.X + (point.Y-start.Y)*(end.X-start.X)/(end.Y-start.Y)
	return point.X < crossX
}

// Area returns the signed area; positive when points wind counter clockwise
// (with y pointing up).
func (p *Polygon) Area() float64 {
	if !p.IsClosed() {
		return 0
	}
	sum := 0.0
	j := len(p.Points) - 1
	for i := 0; i < len(p.Points); i++ {
		sum += p.Points[j].Cross(p.Points[i])
		j = i
	}
	return sum / 2
}

// Centroid returns the area weighted centre of the polygon.
// False is returned if the polygon has no area.
func (p *Polygon) Centroid() (r2.Point, bool) {
	area := p.Area()
	if math.Abs(area) < 1e-12 {
		return r2.Point{}, false
	}

	cx, cy := 0.0, 0.0
	j := len(p.Points) - 1
	for i := 0; i < len(p.Points); i++ {
		a, b := p.Points[j], p.Points[i]
		f := a.Cross(b)
		cx += (a.X + b.X) * f
		cy += (a.Y + b.Y) * f
		j = i
	}
	return r2.Point{X: cx / (6 * area), Y: cy / (6 * area)}, true
}

// Lines returns the polygon edges as segments, including the closing edge.
func (p *Polygon) Lines() []Segment {
	if len(p.Points) < 2 {
		return []Segment{}
	}
	out := make([]Segment, 0, len(p.Points))
	for i := range p.Points {
		out = append(out, Segment{p.Points[i], p.Points[(i+1)%len(p.Points)]})
	}
	return out
}

// ClosestPoint returns the point on the polygon boundary nearest to pt.
func (p *Polygon) ClosestPoint(pt r2.Point) r2.Point {
	if len(p.Points) == 1 {
		return p.Points[0]
	}
	best := pt
	dist := math.Inf(1)
	for _, s := range p.Lines() {
		c := s.ClosestPoint(pt)
		d := c.Sub(pt).Norm()
		if d < dist {
			dist = d
			best = c
		}
	}
	return best
}

// Distance returns the distance from pt to the polygon boundary.
func (p *Polygon) Distance(pt r2.Point) float64 {
	if len(p.Points) == 0 {
		return math.Inf(1)
	}
	return p.ClosestPoint(pt).Sub(pt).Norm()
}

// OffsetToCenter returns a copy with every point pulled towards centre by dist.
// Points closer than dist collapse onto the centre.
func (p *Polygon) OffsetToCenter(centre r2.Point, dist float64) *Polygon {
	out := make([]r2.Point, len(p.Points))
	for i, pt := range p.Points {
		dir := centre.Sub(pt)
		n := dir.Norm()
		if n <= dist {
			out[i] = centre
			continue
		}
		out[i] = pt.Add(dir.Mul(dist / n))
	}
	return NewPolygon(out)
}
