package voronoi

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// Builder struct makes managing the setup of a voronoi diagram easier.
// Sites are kept in insertion order, a site's index is its ID.
type Builder struct {
	bounds r2.Rect
	sites  []r2.Point
	rng    *rand.Rand
	sfilt  []SiteFilter
	cfilt  []CandidateFilter
}

// NewBuilder returns a new Voronoi diagram builder drawing randomness from rng
func NewBuilder(bounds r2.Rect, rng *rand.Rand) *Builder {
	return &Builder{
		bounds: bounds,
		sites:  []r2.Point{},
		rng:    rng,
	}
}

// SiteCount returns how many sites we've currently got configured
func (b *Builder) SiteCount() int {
	return len(b.sites)
}

// Sites returns a copy of the current site positions, indexed by site ID
func (b *Builder) Sites() []r2.Point {
	out := make([]r2.Point, len(b.sites))
	copy(out, b.sites)
	return out
}

// Voronoi returns the Voronoi diagram given our current sites.
// Nb. there must be at least one site set or this will panic.
func (b *Builder) Voronoi() *Voronoi {
	if len(b.sites) == 0 {
		panic("voronoi diagram requires at least one site")
	}
	return newVoronoi(b.bounds, b.sites)
}

// Relax runs the given number of Lloyd relaxation passes; each pass builds
// the diagram & moves every site to the centroid of its cell.
// Sites without a usable cell stay where they are.
func (b *Builder) Relax(iterations int) {
	for i := 0; i < iterations && len(b.sites) > 0; i++ {
		v := newVoronoi(b.bounds, b.sites)
		for id, s := range v.Sites() {
			if s.Degenerate() {
				continue
			}
			c, ok := s.Polygon().Centroid()
			if !ok {
				continue
			}
			b.sites[id] = b.bounds.ClampPoint(c)
		}
	}
}

// SetCandidateFilters sets filters that accept / reject a proposed site without
// reference to other currently set site(s).
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// SetSiteFilters sets filters that compare proposed sites to all current sites.
func (b *Builder) SetSiteFilters(f ...SiteFilter) {
	b.sfilt = f
}

// AddRandomSite places a site uniformly at random within bounds,
// assuming it obeys all currently set filters.
func (b *Builder) AddRandomSite() (r2.Point, int, bool) {
	// x then y, the order matters for reproducing a given seed
	x := b.bounds.X.Lo + b.rng.Float64()*b.bounds.X.Length()
	y := b.bounds.Y.Lo + b.rng.Float64()*b.bounds.Y.Length()
	candidate := r2.Point{X: x, Y: y}

	if !b.accepted(candidate) {
		return candidate, 0, false
	}
	return candidate, b.addSite(candidate), true
}

// AddSite places a site at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(p r2.Point) (int, bool) {
	if !b.accepted(p) {
		return 0, false
	}
	return b.addSite(p), true
}

// accepted returns if the proposed site location is acceptable to our filters.
// We run CandidateFilter(s) first so we can hopefully reject candidates early.
func (b *Builder) accepted(candidate r2.Point) bool {
	for _, fn := range b.cfilt {
		if !fn(candidate) {
			return false
		}
	}

	if len(b.sfilt) == 0 {
		return true
	}
	for _, s := range b.sites {
		for _, fn := range b.sfilt {
			if !fn(candidate, s) {
				return false
			}
		}
	}
	return true
}

// addSite adds a site, no filters are run.
func (b *Builder) addSite(p r2.Point) int {
	id := len(b.sites)
	b.sites = append(b.sites, p)
	return id
}
