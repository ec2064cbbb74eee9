package biomegraph

import (
	"github.com/golang/geo/r2"

	"github.com/voidshard/biomegraph/internal/geom"
	"github.com/voidshard/biomegraph/internal/raster"
)

// Segment is a straight line between two points
type Segment = geom.Segment

// Polygon is an ordered ring of points
type Polygon = geom.Polygon

// HeightMap is a square grid of heights in [0,1] indexed [y][x]
type HeightMap = raster.Grid

// AlphaMap is a square grid of texture layer weights indexed [y][x][layer]
type AlphaMap = raster.Layers

// Biome is a node in the biome graph; one per voronoi site.
type Biome struct {
	// Center is the site of the voronoi cell
	Center r2.Point

	// Definition is shared between all biomes of the same kind
	Definition *BiomeDefinition

	// IsBorder is set for sites whose cell touches the map edge
	IsBorder bool

	// Polygon bounding the cell. Nil for border biomes & sites without a cell.
	Polygon *Polygon `json:",omitempty"`

	// Blockers are cell edges shared with biomes that cannot be walked on
	Blockers []Segment `json:",omitempty"`
}

// Navigable returns if characters may walk through this biome
func (b *Biome) Navigable() bool {
	return !b.IsBorder && !b.Definition.NotNavigable
}

// SiteNode pairs a voronoi site location with its node ID
type SiteNode struct {
	Site r2.Point
	ID   int
}

// Edge joins two nodes (A < B) of a graph
type Edge struct {
	A      int
	B      int
	Weight float64
}

// snapshot is the JSON form of a Terrain
type snapshot struct {
	Seed     int64
	Sites    []*siteRecord
	Textures []string
	Edges    []Edge
	Paths    []Edge
	Start    *SiteNode `json:",omitempty"`
	End      *SiteNode `json:",omitempty"`
}

// siteRecord is one site & the biome given to it
type siteRecord struct {
	Site       int
	Node       int
	Center     r2.Point
	Biome      string
	IsBorder   bool       `json:",omitempty"`
	Navigable  bool       `json:",omitempty"`
	Degenerate bool       `json:",omitempty"`
	Polygon    []r2.Point `json:",omitempty"`
}
