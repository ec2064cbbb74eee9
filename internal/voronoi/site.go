package voronoi

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/biomegraph/internal/geom"
)

// Site exposes useful functions of a voronoi diagram Site
type Site interface {
	ID() int
	Point() r2.Point

	Edges() []geom.Segment
	Polygon() *geom.Polygon
	Contains(p r2.Point) bool
	Bounds() r2.Rect
	Neighbours() []*Neighbour

	// OnBorder is true if any edge of the cell touches the diagram bounds
	OnBorder() bool

	// Degenerate is true if the site has no cell of its own (ie. it
	// sits exactly on top of an earlier site)
	Degenerate() bool

	// Twin is the ID of the earlier site a duplicate sits on top of,
	// -1 if the site is not a duplicate.
	Twin() int
}

// Neighbour is a Site & the Edge(s) it shares with another cell.
// See Neighbours()
type Neighbour struct {
	Site  Site
	Edges []geom.Segment
}

// vSite is a wrapper around Voronoi & VoronoiCell
type vSite struct {
	id         int
	point      r2.Point
	parent     *Voronoi
	cell       *VoronoiCell
	poly       *geom.Polygon
	edges      []geom.Segment
	border     bool
	degenerate bool
	twin       int
}

// buildPolygon constructs a polygon from the vertices surrounding the site
func (s *vSite) buildPolygon() {
	s.poly = geom.NewPolygon([]r2.Point{})
	s.edges = []geom.Segment{}
	if s.cell == nil {
		return
	}

	for _, edge := range s.cell.Edges {
		start := r2.Point{X: edge[0].X, Y: edge[0].Y}
		end := r2.Point{X: edge[1].X, Y: edge[1].Y}

		s.poly.Points = append(s.poly.Points, start)
		s.edges = append(s.edges, geom.Segment{start, end})

		if geom.OnBounds(start, s.parent.bounds) || geom.OnBounds(end, s.parent.bounds) {
			s.border = true
		}
	}
}

// ID of this site
func (s *vSite) ID() int {
	return s.id
}

// Point is the site centre
func (s *vSite) Point() r2.Point {
	return s.point
}

// Edges returns all edges surrounding this site, in ring order
func (s *vSite) Edges() []geom.Segment {
	return s.edges
}

// Polygon returns the cell outline
func (s *vSite) Polygon() *geom.Polygon {
	return s.poly
}

// Contains returns if this site's cell contains p
func (s *vSite) Contains(p r2.Point) bool {
	return s.poly.Contains(p)
}

// Bounds returns a rectangle that contains the whole cell
func (s *vSite) Bounds() r2.Rect {
	return s.poly.Bounds()
}

// OnBorder returns if the cell touches the edge of the diagram
func (s *vSite) OnBorder() bool {
	return s.border
}

// Degenerate returns if the site failed to get a cell
func (s *vSite) Degenerate() bool {
	return s.degenerate
}

// Twin returns the site this one duplicates, or -1
func (s *vSite) Twin() int {
	return s.twin
}

// Neighbours returns all Sites that share an edge with this site.
func (s *vSite) Neighbours() []*Neighbour {
	ls := []*Neighbour{}
	for _, adj := range s.parent.adjacent {
		var other int
		switch s.id {
		case adj.A:
			other = adj.B
		case adj.B:
			other = adj.A
		default:
			continue
		}
		ls = append(ls, &Neighbour{Site: s.parent.sites[other], Edges: adj.Edges})
	}
	return ls
}
