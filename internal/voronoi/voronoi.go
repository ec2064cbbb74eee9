package voronoi

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/biomegraph/internal/geom"
)

// repairEpsilon is how close two cell vertices must be to be merged
const repairEpsilon = 1e-8

// Adjacency is a pair of sites (A < B) sharing one or more cell edges.
type Adjacency struct {
	A     int
	B     int
	Edges []geom.Segment
}

// Voronoi wraps a VoronoiDiagram with site lookups & adjacency
type Voronoi struct {
	vg       VoronoiDiagram
	sites    []Site
	bounds   r2.Rect
	adjacent []*Adjacency
}

// newVoronoi builds a voronoi diagram for the given sites.
// Sites sitting exactly on top of an earlier site get no cell.
func newVoronoi(bounds r2.Rect, points []r2.Point) *Voronoi {
	me := &Voronoi{bounds: bounds}

	unique := []model2d.Coord{}
	owner := map[model2d.Coord]int{} // coord -> index in unique
	firstOf := []int{}               // index in unique -> first site there
	cellOf := make([]int, len(points))
	twinOf := make([]int, len(points))
	for i, p := range points {
		twinOf[i] = -1
		c := model2d.Coord{X: p.X, Y: p.Y}
		idx, ok := owner[c]
		if ok {
			cellOf[i] = -1 // duplicate, the first site keeps the cell
			twinOf[i] = firstOf[idx]
			continue
		}
		idx = len(unique)
		owner[c] = idx
		unique = append(unique, c)
		firstOf = append(firstOf, i)
		cellOf[i] = idx
	}

	me.vg = VoronoiCells(
		model2d.Coord{X: bounds.X.Lo, Y: bounds.Y.Lo},
		model2d.Coord{X: bounds.X.Hi, Y: bounds.Y.Hi},
		unique,
	)
	me.vg.Repair(repairEpsilon)

	me.sites = make([]Site, len(points))
	for i, p := range points {
		s := &vSite{id: i, point: p, parent: me, twin: twinOf[i]}
		if cellOf[i] < 0 || len(me.vg[cellOf[i]].Edges) < 3 {
			s.degenerate = true
		} else {
			s.cell = me.vg[cellOf[i]]
		}
		s.buildPolygon()
		me.sites[i] = s
	}

	me.buildAdjacency()
	return me
}

// buildAdjacency finds pairs of sites that share an edge.
// After Repair shared vertices are identical so edges can be matched by key.
func (v *Voronoi) buildAdjacency() {
	owners := map[string][]int{}
	segments := map[string]geom.Segment{}
	for _, s := range v.sites {
		for _, e := range s.Edges() {
			key := e.Key()
			owners[key] = append(owners[key], s.ID())
			segments[key] = e
		}
	}

	byPair := map[[2]int]*Adjacency{}
	for key, ids := range owners {
		if len(ids) != 2 || ids[0] == ids[1] {
			continue // edge of the bounds
		}
		a, b := ids[0], ids[1]
		if b < a {
			a, b = b, a
		}
		adj, ok := byPair[[2]int{a, b}]
		if !ok {
			adj = &Adjacency{A: a, B: b}
			byPair[[2]int{a, b}] = adj
		}
		adj.Edges = append(adj.Edges, segments[key])
	}

	v.adjacent = make([]*Adjacency, 0, len(byPair))
	for _, adj := range byPair {
		sort.Slice(adj.Edges, func(i, j int) bool {
			return adj.Edges[i].Key() < adj.Edges[j].Key()
		})
		v.adjacent = append(v.adjacent, adj)
	}
	sort.Slice(v.adjacent, func(i, j int) bool {
		if v.adjacent[i].A != v.adjacent[j].A {
			return v.adjacent[i].A < v.adjacent[j].A
		}
		return v.adjacent[i].B < v.adjacent[j].B
	})
}

// Bounds returns the bounding rect for this diagram
func (v *Voronoi) Bounds() r2.Rect {
	return v.bounds
}

// Sites returns all sites
func (v *Voronoi) Sites() []Site {
	return v.sites
}

// SiteByID returns the given Site by it's ID
func (v *Voronoi) SiteByID(i int) Site {
	if i < 0 || i >= len(v.sites) {
		return nil
	}
	return v.sites[i]
}

// Adjacent returns every pair of sites sharing an edge, sorted by (A, B)
func (v *Voronoi) Adjacent() []*Adjacency {
	return v.adjacent
}

// SiteFor returns the nearest Site ("centre" of a voronoi cell) for the given point.
func (v *Voronoi) SiteFor(p r2.Point) Site {
	dist := -1.0
	var pick Site
	for _, site := range v.sites {
		sdist := geom.SquareDist(site.Point(), p)
		if dist < 0 || sdist < dist {
			dist = sdist
			pick = site
		}
		if dist == 0 {
			return pick
		}
	}
	return pick
}

// DebugRender writes the diagram to os.TempDir "voronoi.png"
func (v *Voronoi) DebugRender() (string, error) {
	fpath := filepath.Join(os.TempDir(), "voronoi.png")
	return fpath, v.vg.Render(fpath)
}
