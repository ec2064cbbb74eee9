package biomegraph

import (
	"github.com/voidshard/biomegraph/internal/cell"
	"github.com/voidshard/biomegraph/internal/voronoi"
)

// BiomePolygons returns the cell polygon of every non border biome, with the
// biome's fill prefabs & prefab spacing at the same index.
// Biomes without a cell are left out.
func (t *Terrain) BiomePolygons() ([]*Polygon, [][]string, []float64) {
	polys := []*Polygon{}
	prefabs := [][]string{}
	spacing := []float64{}

	for _, s := range t.vor.Sites() {
		b := t.biomeForSite(s.ID())
		if b.IsBorder || b.Polygon == nil {
			continue
		}
		polys = append(polys, b.Polygon)
		prefabs = append(prefabs, append([]string{}, b.Definition.FillPrefabs...))
		spacing = append(spacing, b.Definition.PrefabMinDistance)
	}

	return polys, prefabs, spacing
}

// PrefabAreas returns the polygon of every non border biome with fill
// prefabs, pulled in towards the biome centre by PrefabMinDistance, along
// with the prefabs to fill it with.
// Biomes whose centre is closer than that to their edge are left out.
func (t *Terrain) PrefabAreas() ([]*Polygon, [][]string) {
	areas := []*Polygon{}
	prefabs := [][]string{}

	for _, s := range t.vor.Sites() {
		b := t.biomeForSite(s.ID())
		if b.IsBorder || b.Polygon == nil || len(b.Definition.FillPrefabs) == 0 {
			continue
		}
		dist := b.Definition.PrefabMinDistance
		if dist > 0 && b.Polygon.Distance(b.Center) <= dist {
			continue
		}
		areas = append(areas, b.Polygon.OffsetToCenter(b.Center, dist))
		prefabs = append(prefabs, append([]string{}, b.Definition.FillPrefabs...))
	}

	return areas, prefabs
}

// BiomeBorders returns the cell edges between neighbouring biomes that use
// different textures.
func (t *Terrain) BiomeBorders() []Segment {
	return t.borders(false)
}

// BiomeSmoothBorders is BiomeBorders less the edges between biomes that
// asked not to be blended together.
func (t *Terrain) BiomeSmoothBorders() []Segment {
	return t.borders(true)
}

func (t *Terrain) borders(smooth bool) []Segment {
	out := []Segment{}
	for _, adj := range t.vor.Adjacent() {
		a := t.biomeForSite(adj.A).Definition
		b := t.biomeForSite(adj.B).Definition
		if a.Texture.Name == b.Texture.Name {
			continue
		}
		if smooth && !a.blendsWith(b) {
			continue
		}
		out = append(out, adj.Edges...)
	}
	return out
}

// OuterBorder returns the edges separating navigable biomes from everything
// else (border, water & map edge).
func (t *Terrain) OuterBorder() []Segment {
	inside := []voronoi.Site{}
	outside := []voronoi.Site{}
	for _, s := range t.vor.Sites() {
		if s.Degenerate() {
			continue
		}
		if t.biomeForSite(s.ID()).Navigable() {
			inside = append(inside, s)
		} else {
			outside = append(outside, s)
		}
	}
	return cell.Circut(t.bounds(), inside, outside)
}
