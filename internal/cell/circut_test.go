package cell

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/voidshard/biomegraph/internal/voronoi"
)

func grid(t *testing.T) *voronoi.Voronoi {
	bnds := r2.Rect{X: r1.Interval{Lo: 0, Hi: 90}, Y: r1.Interval{Lo: 0, Hi: 90}}
	b := voronoi.NewBuilder(bnds, rand.New(rand.NewSource(1)))
	for _, y := range []float64{15, 45, 75} {
		for _, x := range []float64{15, 45, 75} {
			if _, ok := b.AddSite(r2.Point{X: x, Y: y}); !ok {
				t.Fatalf("site (%f,%f) rejected", x, y)
			}
		}
	}
	return b.Voronoi()
}

func TestCircutAroundCentre(t *testing.T) {
	v := grid(t)

	inside := []voronoi.Site{v.SiteByID(4)}
	outside := []voronoi.Site{}
	for _, s := range v.Sites() {
		if s.ID() != 4 {
			outside = append(outside, s)
		}
	}

	wall := Circut(v.Bounds(), inside, outside)
	if len(wall) != 4 {
		t.Fatalf("expected 4 wall segments, got %d: %v", len(wall), wall)
	}
	total := 0.0
	for _, w := range wall {
		total += w.Length()
	}
	if math.Abs(total-120) > 1e-6 {
		t.Errorf("expected perimeter 120, got %f", total)
	}
}

func TestCircutAlongBounds(t *testing.T) {
	v := grid(t)

	// the bottom row is inside, the rest outside
	inside := []voronoi.Site{v.SiteByID(0), v.SiteByID(1), v.SiteByID(2)}
	outside := []voronoi.Site{}
	for _, s := range v.Sites() {
		if s.ID() > 2 {
			outside = append(outside, s)
		}
	}

	total := 0.0
	for _, w := range Circut(v.Bounds(), inside, outside) {
		total += w.Length()
	}
	// 90 shared with the middle row, 90 along y=0 & 30 up each side
	if math.Abs(total-240) > 1e-6 {
		t.Errorf("expected circut length 240, got %f", total)
	}
}
