package cell

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/voidshard/biomegraph/internal/geom"
	"github.com/voidshard/biomegraph/internal/voronoi"
)

// Circut finds the edges running around all "inside" site(s).
// Notes.
// 1. the behavoir of this is undefined if the same site is in both inside & outside
// 2. the segments are sorted by key, not walked in order
// 3. edges of "inside" sites running along bounds count as part of the circut
func Circut(bnds r2.Rect, inside, outside []voronoi.Site) []geom.Segment {
	return deletionMethod(bnds, inside, outside)
}

// deletionMethod starts with every edge of an "inside" site being considered valid.
// We then remove all edges that are not also an edge of an "outside" site, unless
// they lie along the bounds.
// Every edge on the rim of the "inside" sites is by definition either shared with
// an "outside" site OR along a border.
func deletionMethod(bnds r2.Rect, inside, outside []voronoi.Site) []geom.Segment {
	edgeOwnedOutside := map[string]bool{}
	for _, s := range outside {
		for _, edge := range s.Edges() {
			edgeOwnedOutside[edge.Key()] = true
		}
	}

	valid := map[string]geom.Segment{}
	for _, s := range inside {
		for _, edge := range s.Edges() {
			if edge.Length() == 0 {
				continue
			}
			if edgeOwnedOutside[edge.Key()] || alongBounds(edge, bnds) {
				valid[edge.Key()] = edge
			}
		}
	}

	keys := make([]string, 0, len(valid))
	for k := range valid {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	wall := make([]geom.Segment, len(keys))
	for i, k := range keys {
		wall[i] = valid[k]
	}
	return wall
}

// alongBounds returns if both ends of the edge sit on the same side of bnds
func alongBounds(e geom.Segment, bnds r2.Rect) bool {
	near := func(a, b float64) bool {
		return math.Abs(a-b) <= geom.BoundsEpsilon
	}
	a, b := e[0], e[1]
	return (near(a.X, bnds.X.Lo) && near(b.X, bnds.X.Lo)) ||
		(near(a.X, bnds.X.Hi) && near(b.X, bnds.X.Hi)) ||
		(near(a.Y, bnds.Y.Lo) && near(b.Y, bnds.Y.Lo)) ||
		(near(a.Y, bnds.Y.Hi) && near(b.Y, bnds.Y.Hi))
}
