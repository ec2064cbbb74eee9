package biomegraph

import (
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/voidshard/biomegraph/internal/graph"
	"github.com/voidshard/biomegraph/internal/voronoi"
)

// Terrain holds the biome layout of a map & answers questions about it.
//
// A Terrain is built once & is read only afterwards, however sampling
// functions draw from the terrain's random stream so a Terrain must not
// be used from more than one goroutine at a time.
type Terrain struct {
	cfg       GlobalConfig
	available []*BiomeDefinition

	log       *zap.Logger
	rng       *rand.Rand
	registrar TextureRegistrar

	// Seed used to create the random stream (0 if one was supplied)
	Seed int64

	vor        *voronoi.Voronoi
	biomes     *graph.Graph[*Biome]
	mst        *graph.Graph[*Biome]
	siteToNode map[int]int
	nodeToSite map[int]int
	textures   *textureRegistry

	start    SiteNode
	end      SiteNode
	hasStart bool
}

// New builds a terrain from the global settings & the biomes that may be
// placed. Neither cfg nor biomes are modified.
func New(cfg *GlobalConfig, biomes []*BiomeDefinition, opts ...Option) (*Terrain, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrConfiguration, "config is required")
	}
	if err := cfg.validate(biomes); err != nil {
		return nil, err
	}

	t := &Terrain{
		cfg:       *cfg,
		available: append([]*BiomeDefinition{}, biomes...),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.rng == nil {
		t.Seed = cfg.Seed
		if t.Seed == 0 {
			t.Seed = time.Now().UnixNano()
		}
		t.rng = rand.New(rand.NewSource(t.Seed))
	}

	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewFromConfig is New using the terrain & biome sections of a Config.
func NewFromConfig(cfg *Config, opts ...Option) (*Terrain, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrConfiguration, "config is required")
	}
	return New(&cfg.Terrain, cfg.Biomes, opts...)
}

// build runs the main construction logic. The order matters, every step
// draws from the same random stream.
func (t *Terrain) build() error {
	t.registerTextures()

	t.placeSites()
	t.assignBiomes()
	t.addBlockers()

	t.buildPaths()
	t.buildNavigation()

	t.log.Info(
		"built terrain",
		zap.Int("sites", len(t.vor.Sites())),
		zap.Int("textures", t.TextureCount()),
		zap.Int("paths", t.mst.EdgeCount()),
		zap.Int("navigation_edges", t.biomes.EdgeCount()),
	)
	return nil
}

// bounds of the whole map
func (t *Terrain) bounds() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: 0, Hi: t.cfg.MapSize},
		Y: r1.Interval{Lo: 0, Hi: t.cfg.MapSize},
	}
}

// placeSites randomly scatters sites & relaxes them, then builds the diagram
func (t *Terrain) placeSites() {
	gb := voronoi.NewBuilder(t.bounds(), t.rng)
	if t.cfg.MinSiteDistance > 0 {
		gb.SetSiteFilters(gb.MinDistance(t.cfg.MinSiteDistance))
	}

	// we'll make more attempts than needed incase we pick some invalid points
	for i := 0; i < t.cfg.BiomeSamples*5; i++ {
		if gb.SiteCount() >= t.cfg.BiomeSamples {
			break
		}
		gb.AddRandomSite()
	}
	if gb.SiteCount() < t.cfg.BiomeSamples {
		t.log.Warn(
			"placed fewer sites than requested",
			zap.Int("placed", gb.SiteCount()),
			zap.Int("requested", t.cfg.BiomeSamples),
			zap.Float64("min_site_distance", t.cfg.MinSiteDistance),
		)
	}
	t.log.Debug("placed sites", zap.Int("sites", gb.SiteCount()))

	gb.Relax(t.cfg.LloydRelaxation)
	t.vor = gb.Voronoi()
}

// assignBiomes gives each site a biome & adds it to the graph.
// Sites touching the edge of the map get the border biome.
func (t *Terrain) assignBiomes() {
	t.biomes = graph.New[*Biome]()
	t.siteToNode = map[int]int{}
	t.nodeToSite = map[int]int{}

	border := 0
	for _, s := range t.vor.Sites() {
		var b *Biome
		if s.Twin() >= 0 {
			// duplicates share the cell (& so the biome) of the site they sit on
			twin := t.biomeForSite(s.Twin())
			b = &Biome{Center: s.Point(), Definition: twin.Definition, IsBorder: twin.IsBorder}
			if b.IsBorder {
				border++
			}
			t.log.Warn("duplicate site", zap.Int("site", s.ID()), zap.Int("twin", s.Twin()), zap.String("biome", b.Definition.Name))
		} else if s.OnBorder() {
			b = &Biome{Center: s.Point(), Definition: t.cfg.BorderBiome, IsBorder: true}
			border++
		} else {
			def := t.available[t.rng.Intn(len(t.available))]
			b = &Biome{Center: s.Point(), Definition: def}
			if s.Degenerate() {
				t.log.Warn("could not build polygon for site", zap.Int("site", s.ID()), zap.Float64("x", s.Point().X), zap.Float64("y", s.Point().Y))
			} else {
				b.Polygon = s.Polygon()
			}
		}

		id := t.biomes.AddNode(b)
		t.siteToNode[s.ID()] = id
		t.nodeToSite[id] = s.ID()
	}

	t.log.Debug("assigned biomes", zap.Int("biomes", t.biomes.NodeCount()), zap.Int("border", border))
}

// addBlockers records the edges navigable biomes share with biomes that
// cannot be walked on.
func (t *Terrain) addBlockers() {
	for _, adj := range t.vor.Adjacent() {
		a := t.biomeForSite(adj.A)
		b := t.biomeForSite(adj.B)
		if a.Navigable() == b.Navigable() {
			continue
		}
		if a.Navigable() {
			a.Blockers = append(a.Blockers, adj.Edges...)
		} else {
			b.Blockers = append(b.Blockers, adj.Edges...)
		}
	}
}

// biomeForSite is an internal lookup, every site has a node
func (t *Terrain) biomeForSite(siteID int) *Biome {
	b, _ := t.biomes.NodeData(t.siteToNode[siteID])
	return b
}

// NodeIDForSite returns the biome node built for the given voronoi site
func (t *Terrain) NodeIDForSite(siteID int) (int, error) {
	id, ok := t.siteToNode[siteID]
	if !ok {
		return -1, errors.Wrapf(ErrLookup, "no node for site %d", siteID)
	}
	return id, nil
}

// SiteForNode returns the voronoi site (ID & location) of the given node
func (t *Terrain) SiteForNode(id int) (int, r2.Point, error) {
	siteID, ok := t.nodeToSite[id]
	if !ok {
		return -1, r2.Point{}, errors.Wrapf(ErrLookup, "no site for node %d", id)
	}
	return siteID, t.vor.SiteByID(siteID).Point(), nil
}

// Biome returns the biome with the given node ID.
// The returned biome must not be modified.
func (t *Terrain) Biome(id int) (*Biome, error) {
	b, err := t.biomes.NodeData(id)
	if err != nil {
		return nil, errors.Wrapf(ErrLookup, "biome %d: %v", id, err)
	}
	return b, nil
}

// Sites returns every site & its node, ordered by site ID
func (t *Terrain) Sites() []SiteNode {
	sites := t.vor.Sites()
	out := make([]SiteNode, len(sites))
	for i, s := range sites {
		out[i] = SiteNode{Site: s.Point(), ID: t.siteToNode[s.ID()]}
	}
	return out
}

// NodeIDs returns all biome node IDs in ascending order
func (t *Terrain) NodeIDs() []int {
	return t.biomes.NodeIDs()
}

// Bounds of the map
func (t *Terrain) Bounds() r2.Rect {
	return t.bounds()
}

// Config returns a copy of the settings the terrain was built with
func (t *Terrain) Config() GlobalConfig {
	return t.cfg
}

// JSON returns the terrain layout as json.
// This is a debug view, not something to load a terrain back from.
func (t *Terrain) JSON() ([]byte, error) {
	snap := &snapshot{
		Seed:     t.Seed,
		Sites:    []*siteRecord{},
		Textures: []string{},
		Edges:    t.NavigationEdges(),
		Paths:    t.PathEdges(),
	}
	for _, s := range t.vor.Sites() {
		id := t.siteToNode[s.ID()]
		b := t.biomeForSite(s.ID())
		rec := &siteRecord{
			Site:       s.ID(),
			Node:       id,
			Center:     b.Center,
			Biome:      b.Definition.Name,
			IsBorder:   b.IsBorder,
			Navigable:  b.Navigable(),
			Degenerate: s.Degenerate(),
		}
		if b.Polygon != nil {
			rec.Polygon = b.Polygon.Points
		}
		snap.Sites = append(snap.Sites, rec)
	}
	for _, l := range t.textures.layers {
		snap.Textures = append(snap.Textures, l.Name)
	}
	if t.hasStart {
		start, end := t.start, t.end
		snap.Start = &start
		snap.End = &end
	}
	return json.Marshal(snap)
}

// SaveJSON writes a json file to the given path.
func (t *Terrain) SaveJSON(fpath string) error {
	data, err := t.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0644)
}

// DebugVoronoi renders the underlying voronoi diagram to a temp png,
// returning where it was written.
func (t *Terrain) DebugVoronoi() (string, error) {
	return t.vor.DebugRender()
}
