package voronoi

import (
	"github.com/golang/geo/r2"
)

// CandidateFilter accepts or rejects a candidate point based purely on the point.
// These filters are run before SiteFilter(s) which naturally require
// us to iterate each site.
type CandidateFilter func(candidate r2.Point) bool

// SiteFilter is a filter for a candidate point that is run against every
// current site in the builder.
// Ie. we must 'accept' the candidate when compared with every existing site.
type SiteFilter func(candidate, site r2.Point) bool

// MinDistance ensures that a candidate point is at least `dist`
// distance away from every other site.
func (b *Builder) MinDistance(dist float64) SiteFilter {
	return func(candidate, site r2.Point) bool {
		return candidate.Sub(site).Norm() >= dist
	}
}

// Within rejects candidates outside of the given rect.
func Within(rect r2.Rect) CandidateFilter {
	return func(candidate r2.Point) bool {
		return rect.ContainsPoint(candidate)
	}
}
