package biomegraph

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/voidshard/biomegraph/internal/geom"
	"github.com/voidshard/biomegraph/internal/graph"
)

// navigableSites returns (site, node) pairs of every navigable biome in site order.
// Duplicate sites are left out, their twin stands in for them.
func (t *Terrain) navigableSites() []SiteNode {
	out := []SiteNode{}
	for _, s := range t.vor.Sites() {
		if s.Twin() >= 0 {
			continue
		}
		id := t.siteToNode[s.ID()]
		b, _ := t.biomes.NodeData(id)
		if !b.Navigable() {
			continue
		}
		out = append(out, SiteNode{Site: s.Point(), ID: id})
	}
	return out
}

// buildPaths joins every navigable biome into a minimum spanning tree.
// The tree shares node IDs with the biome graph.
func (t *Terrain) buildPaths() {
	t.mst = t.biomes.Copy(false)

	nodes := t.navigableSites()
	if len(nodes) == 0 {
		t.log.Warn("no navigable biomes, there will be no paths")
		return
	}

	// shuffling picks the start without favouring any part of the map
	t.rng.Shuffle(len(nodes), func(i, j int) {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	})
	t.start = nodes[0]
	t.hasStart = true

	for _, p := range prim(nodes[0], nodes[1:]) {
		// both ends exist & differ so this can't fail
		_ = t.mst.AddEdge(p.A, p.B, 1)
	}

	t.end = t.farthestFromStart()
	t.log.Debug(
		"built paths",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", t.mst.EdgeCount()),
		zap.Int("start", t.start.ID),
		zap.Int("end", t.end.ID),
	)
}

// prim builds a minimum spanning tree over the given sites starting from
// start, returning the joins made. Each join is (new member, tree member).
func prim(start SiteNode, rest []SiteNode) []graph.Pair {
	joins := []graph.Pair{}
	tree := []SiteNode{start}
	out := append([]SiteNode{}, rest...)

	// iterate until all nodes are connected to the tree
	for len(out) > 0 {
		bi, bj := -1, -1
		best := 0.0

		// find the closest pair where one node is in the tree and the other isn't
		for i, in := range tree {
			for j, o := range out {
				d := geom.SquareDist(in.Site, o.Site)
				if bj < 0 || d < best {
					bi, bj, best = i, j, d
				}
			}
		}

		joined := out[bj]
		joins = append(joins, graph.Pair{A: joined.ID, B: tree[bi].ID})
		tree = append(tree, joined)
		out = append(out[:bj], out[bj+1:]...)
	}

	return joins
}

// farthestFromStart returns the tree node with the most hops from the start.
// Ties go to the lowest node ID.
func (t *Terrain) farthestFromStart() SiteNode {
	depth := t.mst.Reachable(t.start.ID)

	best := t.start.ID
	for _, id := range t.mst.NodeIDs() {
		d, ok := depth[id]
		if !ok {
			continue
		}
		if d > depth[best] {
			best = id
		}
	}

	b, _ := t.mst.NodeData(best)
	return SiteNode{Site: b.Center, ID: best}
}

// buildNavigation joins each navigable biome to its navigable neighbours
func (t *Terrain) buildNavigation() {
	for _, adj := range t.vor.Adjacent() {
		a := t.siteToNode[adj.A]
		b := t.siteToNode[adj.B]
		if !t.biomeForSite(adj.A).Navigable() || !t.biomeForSite(adj.B).Navigable() {
			continue
		}
		_ = t.biomes.AddEdge(a, b, 1)
	}

	ids := []int{}
	for _, n := range t.navigableSites() {
		ids = append(ids, n.ID)
	}
	if !t.biomes.Connected(ids) {
		t.log.Warn("navigable biomes form islands", zap.Int("navigable", len(ids)))
	}
}

// StartBiomeNode is where the path tree was grown from
func (t *Terrain) StartBiomeNode() (SiteNode, error) {
	if !t.hasStart {
		return SiteNode{}, errors.Wrap(ErrLookup, "no navigable biomes")
	}
	return t.start, nil
}

// EndBiomeNode is the path tree node the most steps from the start
func (t *Terrain) EndBiomeNode() (SiteNode, error) {
	if !t.hasStart {
		return SiteNode{}, errors.Wrap(ErrLookup, "no navigable biomes")
	}
	return t.end, nil
}

// toEdges converts graph edges to our public form
func toEdges(in []graph.Edge) []Edge {
	out := make([]Edge, len(in))
	for i, e := range in {
		out[i] = Edge{A: e.A, B: e.B, Weight: e.Weight}
	}
	return out
}

// NavigationEdges are pairs of neighbouring biomes that can be walked between
func (t *Terrain) NavigationEdges() []Edge {
	return toEdges(t.biomes.Edges())
}

// PathEdges are the edges of the minimum spanning tree over navigable biomes
func (t *Terrain) PathEdges() []Edge {
	return toEdges(t.mst.Edges())
}

// Neighbours returns the biomes reachable in one step from id
func (t *Terrain) Neighbours(id int) ([]int, error) {
	if !t.biomes.Has(id) {
		return nil, errors.Wrapf(ErrLookup, "biome %d", id)
	}
	return t.biomes.Neighbours(id), nil
}

// RoadLines returns each path edge as a line between biome centres
func (t *Terrain) RoadLines() []Segment {
	out := []Segment{}
	for _, e := range t.mst.Edges() {
		a, _ := t.mst.NodeData(e.A)
		b, _ := t.mst.NodeData(e.B)
		out = append(out, Segment{a.Center, b.Center})
	}
	return out
}
