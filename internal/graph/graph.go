package graph

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a node or edge does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSelfEdge is returned when asked to join a node to itself.
	ErrSelfEdge = errors.New("self edge")
)

// Pair is an unordered pair of node IDs, always stored with A < B
// so (a,b) and (b,a) hash the same.
type Pair struct {
	A int
	B int
}

// NewPair returns the sorted pair for a, b
func NewPair(a, b int) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Edge is a weighted undirected edge between two nodes.
type Edge struct {
	Pair
	Weight float64
}

// node is a slot in our arena. Removed nodes are kept around as
// tombstones so IDs stay stable.
type node[T any] struct {
	data  T
	alive bool
}

// Graph maps integer node IDs to node data with weighted undirected edges.
//
// Nodes live in an arena indexed by ID, removed IDs go on a free-list
// and are handed out again by AddNode.
type Graph[T any] struct {
	nodes []node[T]
	free  []int
	edges map[Pair]float64
	adj   map[int]map[int]bool
}

// New returns an empty graph
func New[T any]() *Graph[T] {
	return &Graph[T]{
		nodes: []node[T]{},
		free:  []int{},
		edges: map[Pair]float64{},
		adj:   map[int]map[int]bool{},
	}
}

// Copy returns an independent graph with the same node IDs & data.
// Edges are only copied if withEdges is set.
// Nb. node data itself is copied by value, so pointer types are shared.
func (g *Graph[T]) Copy(withEdges bool) *Graph[T] {
	c := New[T]()
	c.nodes = make([]node[T], len(g.nodes))
	copy(c.nodes, g.nodes)
	c.free = make([]int, len(g.free))
	copy(c.free, g.free)

	if !withEdges {
		return c
	}
	for p, w := range g.edges {
		c.setEdge(p, w)
	}
	return c
}

// AddNode inserts data & returns the new node's ID
func (g *Graph[T]) AddNode(data T) int {
	if len(g.free) > 0 {
		// lowest free slot first so IDs stay compact & predictable
		sort.Ints(g.free)
		id := g.free[0]
		g.free = g.free[1:]
		g.nodes[id] = node[T]{data: data, alive: true}
		return id
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, node[T]{data: data, alive: true})
	return id
}

// RemoveNode drops the node & every edge touching it.
func (g *Graph[T]) RemoveNode(id int) error {
	if !g.Has(id) {
		return errors.Wrapf(ErrNotFound, "node %d", id)
	}
	for n := range g.adj[id] {
		delete(g.edges, NewPair(id, n))
		delete(g.adj[n], id)
	}
	delete(g.adj, id)

	var zero T
	g.nodes[id] = node[T]{data: zero}
	g.free = append(g.free, id)
	return nil
}

// Has returns if the node ID is valid
func (g *Graph[T]) Has(id int) bool {
	return id >= 0 && id < len(g.nodes) && g.nodes[id].alive
}

// NodeData returns the data stored for the given node
func (g *Graph[T]) NodeData(id int) (T, error) {
	if !g.Has(id) {
		var zero T
		return zero, errors.Wrapf(ErrNotFound, "node %d", id)
	}
	return g.nodes[id].data, nil
}

// SetNodeData replaces the data of an existing node
func (g *Graph[T]) SetNodeData(id int, data T) error {
	if !g.Has(id) {
		return errors.Wrapf(ErrNotFound, "node %d", id)
	}
	g.nodes[id].data = data
	return nil
}

// NodeCount returns the number of live nodes
func (g *Graph[T]) NodeCount() int {
	return len(g.nodes) - len(g.free)
}

// NodeIDs returns all live node IDs in ascending order
func (g *Graph[T]) NodeIDs() []int {
	ids := make([]int, 0, g.NodeCount())
	for i, n := range g.nodes {
		if n.alive {
			ids = append(ids, i)
		}
	}
	return ids
}

// AllNodeData returns data for all live nodes, ordered by ID
func (g *Graph[T]) AllNodeData() []T {
	out := make([]T, 0, g.NodeCount())
	for _, n := range g.nodes {
		if n.alive {
			out = append(out, n.data)
		}
	}
	return out
}

// AddEdge joins a & b. If the edge already exists the weight is overwritten,
// we never hold two edges for the same pair.
func (g *Graph[T]) AddEdge(a, b int, weight float64) error {
	if a == b {
		return errors.Wrapf(ErrSelfEdge, "node %d", a)
	}
	if !g.Has(a) {
		return errors.Wrapf(ErrNotFound, "node %d", a)
	}
	if !g.Has(b) {
		return errors.Wrapf(ErrNotFound, "node %d", b)
	}
	g.setEdge(NewPair(a, b), weight)
	return nil
}

func (g *Graph[T]) setEdge(p Pair, weight float64) {
	g.edges[p] = weight

	an, ok := g.adj[p.A]
	if !ok {
		an = map[int]bool{}
		g.adj[p.A] = an
	}
	an[p.B] = true

	bn, ok := g.adj[p.B]
	if !ok {
		bn = map[int]bool{}
		g.adj[p.B] = bn
	}
	bn[p.A] = true
}

// HasEdge returns if a & b are joined
func (g *Graph[T]) HasEdge(a, b int) bool {
	_, ok := g.edges[NewPair(a, b)]
	return ok
}

// EdgeValue returns the weight of the edge between a & b
func (g *Graph[T]) EdgeValue(a, b int) (float64, error) {
	w, ok := g.edges[NewPair(a, b)]
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "edge %d-%d", a, b)
	}
	return w, nil
}

// EdgeCount returns the number of edges
func (g *Graph[T]) EdgeCount() int {
	return len(g.edges)
}

// Edges returns all edges sorted by (A, B)
func (g *Graph[T]) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for p, w := range g.edges {
		out = append(out, Edge{Pair: p, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Neighbours returns the IDs joined to id in ascending order
func (g *Graph[T]) Neighbours(id int) []int {
	out := make([]int, 0, len(g.adj[id]))
	for n := range g.adj[id] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Reachable returns every node reachable from start (including start)
// walking edges breadth first.
func (g *Graph[T]) Reachable(start int) map[int]int {
	depth := map[int]int{}
	if !g.Has(start) {
		return depth
	}
	depth[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbours(cur) {
			if _, seen := depth[n]; seen {
				continue
			}
			depth[n] = depth[cur] + 1
			queue = append(queue, n)
		}
	}
	return depth
}

// Connected returns true if every node in ids can reach every other via edges.
// An empty or single set is trivially connected.
func (g *Graph[T]) Connected(ids []int) bool {
	if len(ids) < 2 {
		return true
	}
	seen := g.Reachable(ids[0])
	for _, id := range ids[1:] {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}
