package voronoi

import (
	"image/color"
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// based on
// https://github.com/unixpickle/voronoi-glass/blob/main/voronoi.go
//
// + edge ordering, duplicate handling

type VoronoiCell struct {
	Center model2d.Coord
	Edges  []*model2d.Segment
}

type VoronoiDiagram []*VoronoiCell

// VoronoiCells computes the voronoi cells for a list of
// coordinates, assuming they are all contained within a
// bounding box.
//
// Coordinates must be unique, a repeated coordinate would
// produce two identical overlapping cells.
//
// The resulting Voronoi cells may be slightly misaligned,
// i.e. adjacent edges' coordinates may differ due to
// rounding errors. See VoronoiDiagram.Repair().
func VoronoiCells(min, max model2d.Coord, coords []model2d.Coord) VoronoiDiagram {
	cells := make([]*VoronoiCell, len(coords))
	for i, c := range coords {
		constraints := model2d.NewConvexPolytopeRect(min, max)
		for _, c1 := range coords {
			if c != c1 {
				mp := c.Mid(c1)
				normal := c1.Sub(c).Normalize()
				constraint := &model2d.LinearConstraint{
					Normal: normal,
					Max:    normal.Dot(mp),
				}
				constraints = append(constraints, constraint)
			}
		}
		cells[i] = &VoronoiCell{
			Center: c,
			Edges:  constraints.Mesh().SegmentSlice(),
		}
	}
	return cells
}

// Repair merges nearly identical coordinates to make a
// well-connected graph, then orders each cell's edges
// so they walk around the cell.
func (v VoronoiDiagram) Repair(epsilon float64) {
	coordSlice := v.Coords()
	if len(coordSlice) == 0 {
		return
	}
	coordSet := map[model2d.Coord]bool{}
	for _, c := range coordSlice {
		coordSet[c] = true
	}
	tree := model2d.NewCoordTree(coordSlice)

	mapping := map[model2d.Coord]model2d.Coord{}
	for _, c := range coordSlice {
		if !coordSet[c] {
			continue
		}
		neighbors := neighborsInDistance(tree, c, epsilon)
		for _, n := range neighbors {
			if coordSet[n] {
				coordSet[n] = false
				mapping[n] = c
			}
		}
	}

	for _, cell := range v {
		for i := 0; i < len(cell.Edges); i++ {
			edge := cell.Edges[i]
			for j, c := range edge {
				edge[j] = mapping[c]
			}
			if edge[0] == edge[1] {
				// This was almost a singular edge.
				essentials.UnorderedDelete(&cell.Edges, i)
				i--
			}
		}
		cell.Edges = orderEdges(cell.Edges)
	}
}

// orderEdges chains edges end to start so they walk the cell boundary.
// Edges found pointing the wrong way are flipped. If the ring is broken
// we keep what we have & append the rest as is.
func orderEdges(edges []*model2d.Segment) []*model2d.Segment {
	if len(edges) < 2 {
		return edges
	}

	used := make([]bool, len(edges))
	used[0] = true
	ordered := []*model2d.Segment{edges[0]}
	cur := edges[0][1]

	for len(ordered) < len(edges) {
		found := false
		for i, e := range edges {
			if used[i] {
				continue
			}
			if e[1] == cur {
				e[0], e[1] = e[1], e[0]
			}
			if e[0] == cur {
				used[i] = true
				ordered = append(ordered, e)
				cur = e[1]
				found = true
				break
			}
		}
		if !found {
			break
		}
	}

	for i, e := range edges {
		if !used[i] {
			ordered = append(ordered, e)
		}
	}
	return ordered
}

// Coords returns every unique edge end point in the diagram
func (v VoronoiDiagram) Coords() []model2d.Coord {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, cell := range v {
		for _, s := range cell.Edges {
			for _, p := range s {
				if !coordSet[p] {
					coordSet[p] = true
					coordSlice = append(coordSlice, p)
				}
			}
		}
	}
	return coordSlice
}

// Render draws cells (red) & centres (blue) to a PNG at path
func (v VoronoiDiagram) Render(path string) error {
	mesh2d := model2d.NewMesh()
	for _, cell := range v {
		mesh2d.AddMesh(model2d.NewMeshSegments(cell.Edges))
	}
	size := mesh2d.Max().Sub(mesh2d.Min())
	maxSize := math.Max(size.X, size.Y)

	pointsSolid := model2d.JoinedSolid{}
	for _, cell := range v {
		pointsSolid = append(pointsSolid, &model2d.Circle{
			Center: cell.Center,
			Radius: math.Max(2, maxSize/200),
		})
	}

	bg := model2d.NewRect(mesh2d.Min(), mesh2d.Max())
	return model2d.RasterizeColor(path, []interface{}{
		bg,
		model2d.IntersectedSolid{pointsSolid.Optimize(), bg},
		mesh2d,
	}, []color.Color{
		color.Gray{Y: 0xff},
		color.RGBA{B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, A: 0xff},
	}, 1.0)
}

func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
	panic("unreachable")
}
