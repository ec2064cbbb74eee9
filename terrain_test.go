package biomegraph

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func grassBiome() *BiomeDefinition {
	return &BiomeDefinition{
		Name:    "grass",
		Height:  HeightParams{Persistence: 0.5, Lacunarity: 2, LocalMin: 0.3, LocalMax: 0.5, Scale: 10},
		Texture: &TextureLayer{Name: "grass"},
	}
}

func hillsBiome() *BiomeDefinition {
	return &BiomeDefinition{
		Name:          "hills",
		Height:        HeightParams{Persistence: 0.4, Lacunarity: 2, LocalMin: 0.6, LocalMax: 0.9, Scale: 20},
		Texture:       &TextureLayer{Name: "rock"},
		DontBlendWith: []string{"lake"},
		FillPrefabs:   []string{"boulder", "pine"},
	}
}

func lakeBiome() *BiomeDefinition {
	return &BiomeDefinition{
		Name:         "lake",
		Height:       HeightParams{Persistence: 0.5, Lacunarity: 2, LocalMin: 0.05, LocalMax: 0.1, Scale: 5},
		NotNavigable: true,
		Texture:      &TextureLayer{Name: "water"},
	}
}

func testConfig(samples int, seed int64) *GlobalConfig {
	cfg := DefaultConfig().Terrain
	cfg.MapSize = 1000
	cfg.BiomeSamples = samples
	cfg.LloydRelaxation = 2
	cfg.BorderNoise = 2
	cfg.Seed = seed
	cfg.HeightMapResolution = 32
	return &cfg
}

func mustTerrain(t *testing.T, cfg *GlobalConfig, biomes []*BiomeDefinition, opts ...Option) *Terrain {
	t.Helper()
	tr, err := New(cfg, biomes, opts...)
	if err != nil {
		t.Fatalf("failed to build terrain: %v", err)
	}
	return tr
}

func TestPathsSpanNavigableBiomes(t *testing.T) {
	tr := mustTerrain(t, testConfig(60, 11), []*BiomeDefinition{grassBiome(), hillsBiome()})

	nav := tr.navigableSites()
	if len(nav) < 2 {
		t.Fatalf("expected several navigable biomes, got %d", len(nav))
	}

	paths := tr.PathEdges()
	if len(paths) != len(nav)-1 {
		t.Errorf("expected %d path edges, got %d", len(nav)-1, len(paths))
	}

	ids := []int{}
	for _, n := range nav {
		ids = append(ids, n.ID)
	}
	if !tr.mst.Connected(ids) {
		t.Error("expected path tree to connect every navigable biome")
	}

	for _, e := range paths {
		if e.Weight != 1 {
			t.Errorf("expected weight 1, got %f", e.Weight)
		}
		for _, id := range []int{e.A, e.B} {
			b, err := tr.Biome(id)
			if err != nil {
				t.Fatal(err)
			}
			if !b.Navigable() {
				t.Errorf("path edge %d-%d touches non navigable biome %d", e.A, e.B, id)
			}
		}
	}

	if len(tr.RoadLines()) != len(paths) {
		t.Errorf("expected one road line per path edge")
	}
}

func TestNavigationJoinsNeighbours(t *testing.T) {
	tr := mustTerrain(t, testConfig(60, 5), []*BiomeDefinition{grassBiome(), lakeBiome()})

	for _, e := range tr.NavigationEdges() {
		a, _ := tr.Biome(e.A)
		b, _ := tr.Biome(e.B)
		if !a.Navigable() || !b.Navigable() {
			t.Errorf("navigation edge %d-%d touches a non navigable biome", e.A, e.B)
		}
	}

	expected := 0
	for _, adj := range tr.vor.Adjacent() {
		if tr.biomeForSite(adj.A).Navigable() && tr.biomeForSite(adj.B).Navigable() {
			expected++
		}
	}
	if len(tr.NavigationEdges()) != expected {
		t.Errorf("expected %d navigation edges, got %d", expected, len(tr.NavigationEdges()))
	}
}

func TestBorderSitesGetBorderBiome(t *testing.T) {
	cfg := testConfig(40, 3)
	tr := mustTerrain(t, cfg, []*BiomeDefinition{grassBiome(), hillsBiome()})

	border := 0
	for _, s := range tr.vor.Sites() {
		b := tr.biomeForSite(s.ID())
		if s.OnBorder() {
			border++
			if b.Definition != cfg.BorderBiome || !b.IsBorder {
				t.Errorf("site %d: expected border biome, got %s", s.ID(), b.Definition.Name)
			}
			if b.Polygon != nil {
				t.Errorf("site %d: expected no polygon for border biome", s.ID())
			}
		} else if b.IsBorder && s.Twin() < 0 {
			t.Errorf("site %d: inner site flagged as border", s.ID())
		}
	}
	if border == 0 {
		t.Error("expected some sites on the border")
	}
}

func TestSameSeedSameTerrain(t *testing.T) {
	cfg := DefaultConfig().Terrain
	cfg.MapSize = 100
	cfg.BiomeSamples = 10
	cfg.LloydRelaxation = 0
	cfg.Seed = 1234

	biomes := []*BiomeDefinition{grassBiome(), hillsBiome(), lakeBiome()}
	a := mustTerrain(t, &cfg, biomes)
	b := mustTerrain(t, &cfg, biomes)

	if !reflect.DeepEqual(a.Sites(), b.Sites()) {
		t.Error("expected identical sites")
	}
	for _, id := range a.NodeIDs() {
		ba, _ := a.Biome(id)
		bb, _ := b.Biome(id)
		if ba.Definition.Name != bb.Definition.Name {
			t.Errorf("node %d: %s vs %s", id, ba.Definition.Name, bb.Definition.Name)
		}
	}
	if !reflect.DeepEqual(a.PathEdges(), b.PathEdges()) {
		t.Error("expected identical path edges")
	}
	if !reflect.DeepEqual(a.NavigationEdges(), b.NavigationEdges()) {
		t.Error("expected identical navigation edges")
	}

	c := mustTerrain(t, &cfg, biomes, WithRand(rand.New(rand.NewSource(1234))))
	if !reflect.DeepEqual(a.Sites(), c.Sites()) {
		t.Error("expected a supplied stream with the same seed to match")
	}
}

func TestSingleBiome(t *testing.T) {
	registered := []string{}
	reg := TextureRegistrarFunc(func(i int, l *TextureLayer) {
		if i != len(registered) {
			t.Errorf("expected layer %d, got %d", len(registered), i)
		}
		registered = append(registered, l.Name)
	})

	grass := grassBiome()
	tr := mustTerrain(t, testConfig(30, 9), []*BiomeDefinition{grass}, WithTextureRegistrar(reg))

	for _, id := range tr.NodeIDs() {
		b, _ := tr.Biome(id)
		if !b.IsBorder && b.Definition != grass {
			t.Errorf("node %d: expected grass, got %s", id, b.Definition.Name)
		}
	}

	if tr.TextureCount() != 3 {
		t.Errorf("expected 3 texture layers, got %d", tr.TextureCount())
	}
	if !reflect.DeepEqual(registered, []string{"grass", "water", "road"}) {
		t.Errorf("unexpected registration order %v", registered)
	}
	if tr.RoadLayer() != 2 {
		t.Errorf("expected road layer 2, got %d", tr.RoadLayer())
	}
	if i, err := tr.TextureIndex("water"); err != nil || i != 1 {
		t.Errorf("expected water at 1, got %d (%v)", i, err)
	}
}

func TestSharedTextureRegisteredOnce(t *testing.T) {
	// lake & the border biome both use "water"
	tr := mustTerrain(t, testConfig(20, 4), []*BiomeDefinition{grassBiome(), lakeBiome()})
	names := []string{}
	for _, l := range tr.TextureLayers() {
		names = append(names, l.Name)
	}
	if !reflect.DeepEqual(names, []string{"grass", "water", "road"}) {
		t.Errorf("unexpected layers %v", names)
	}
}

func TestStartAndEnd(t *testing.T) {
	tr := mustTerrain(t, testConfig(60, 21), []*BiomeDefinition{grassBiome(), hillsBiome()})

	start, err := tr.StartBiomeNode()
	if err != nil {
		t.Fatal(err)
	}
	end, err := tr.EndBiomeNode()
	if err != nil {
		t.Fatal(err)
	}

	depth := tr.mst.Reachable(start.ID)
	for id, d := range depth {
		if d > depth[end.ID] {
			t.Errorf("node %d is %d steps from the start, further than the end (%d)", id, d, depth[end.ID])
		}
	}

	_, site, err := tr.SiteForNode(start.ID)
	if err != nil {
		t.Fatal(err)
	}
	if site != start.Site {
		t.Errorf("expected start site %v, got %v", start.Site, site)
	}
}

func TestNoNavigableBiomes(t *testing.T) {
	tr := mustTerrain(t, testConfig(20, 2), []*BiomeDefinition{lakeBiome()})

	if len(tr.PathEdges()) != 0 {
		t.Error("expected no paths without navigable biomes")
	}
	if _, err := tr.StartBiomeNode(); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup, got %v", err)
	}
}

func TestLookupErrors(t *testing.T) {
	tr := mustTerrain(t, testConfig(20, 8), []*BiomeDefinition{grassBiome()})

	if _, err := tr.NodeIDForSite(-1); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup for unknown site, got %v", err)
	}
	if _, err := tr.Biome(9999); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup for unknown biome, got %v", err)
	}
	if _, _, err := tr.SiteForNode(9999); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup for unknown node, got %v", err)
	}
	if _, err := tr.Neighbours(9999); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup for unknown neighbours, got %v", err)
	}
	if _, err := tr.TextureIndex("lava"); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup for unknown texture, got %v", err)
	}

	for i, s := range tr.Sites() {
		id, err := tr.NodeIDForSite(i)
		if err != nil || id != s.ID {
			t.Errorf("site %d: expected node %d, got %d (%v)", i, s.ID, id, err)
		}
	}
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GlobalConfig)
		biomes []*BiomeDefinition
	}{
		{"zero map", func(c *GlobalConfig) { c.MapSize = 0 }, nil},
		{"zero samples", func(c *GlobalConfig) { c.BiomeSamples = 0 }, nil},
		{"negative lloyd", func(c *GlobalConfig) { c.LloydRelaxation = -1 }, nil},
		{"no border", func(c *GlobalConfig) { c.BorderBiome = nil }, nil},
		{"no road", func(c *GlobalConfig) { c.RoadTexture = nil }, nil},
		{"no biomes", func(c *GlobalConfig) {}, []*BiomeDefinition{}},
		{"duplicate names", func(c *GlobalConfig) {}, []*BiomeDefinition{grassBiome(), grassBiome()}},
		{"no texture", func(c *GlobalConfig) {}, []*BiomeDefinition{{Name: "bare"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(10, 1)
			tt.mutate(cfg)
			biomes := tt.biomes
			if biomes == nil {
				biomes = []*BiomeDefinition{grassBiome()}
			}
			tr, err := New(cfg, biomes)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
			if tr != nil {
				t.Error("expected no terrain on error")
			}
		})
	}

	if _, err := New(nil, []*BiomeDefinition{grassBiome()}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for nil config, got %v", err)
	}
}

func TestBiomePolygons(t *testing.T) {
	tr := mustTerrain(t, testConfig(40, 6), []*BiomeDefinition{grassBiome(), hillsBiome()})

	polys, prefabs, spacing := tr.BiomePolygons()
	if len(polys) == 0 {
		t.Fatal("expected some polygons")
	}
	if len(polys) != len(prefabs) || len(polys) != len(spacing) {
		t.Fatalf("expected matching lengths, got %d %d %d", len(polys), len(prefabs), len(spacing))
	}

	inner := 0
	for _, s := range tr.vor.Sites() {
		if !s.OnBorder() && !s.Degenerate() {
			inner++
		}
	}
	if len(polys) != inner {
		t.Errorf("expected %d polygons, got %d", inner, len(polys))
	}
	for i, p := range polys {
		if len(p.Points) < 3 {
			t.Errorf("polygon %d has %d points", i, len(p.Points))
		}
	}
}

func TestBorders(t *testing.T) {
	tr := mustTerrain(t, testConfig(80, 13), []*BiomeDefinition{grassBiome(), hillsBiome(), lakeBiome()})

	all := map[string]bool{}
	for _, s := range tr.BiomeBorders() {
		all[s.Key()] = true
	}
	if len(all) == 0 {
		t.Fatal("expected some borders")
	}

	smooth := tr.BiomeSmoothBorders()
	if len(smooth) > len(all) {
		t.Errorf("expected smooth borders to be a subset")
	}
	for _, s := range smooth {
		if !all[s.Key()] {
			t.Errorf("smooth border %v is not a border", s)
		}
	}

	for _, adj := range tr.vor.Adjacent() {
		a := tr.biomeForSite(adj.A).Definition
		b := tr.biomeForSite(adj.B).Definition
		for _, e := range adj.Edges {
			sameTexture := a.Texture.Name == b.Texture.Name
			if sameTexture && all[e.Key()] {
				t.Errorf("border between %s & %s share a texture", a.Name, b.Name)
			}
		}
	}

	for _, s := range smooth {
		for _, adj := range tr.vor.Adjacent() {
			for _, e := range adj.Edges {
				if e.Key() != s.Key() {
					continue
				}
				a := tr.biomeForSite(adj.A).Definition
				b := tr.biomeForSite(adj.B).Definition
				if !a.blendsWith(b) {
					t.Errorf("smooth border between %s & %s which don't blend", a.Name, b.Name)
				}
			}
		}
	}
}

func TestOuterBorder(t *testing.T) {
	tr := mustTerrain(t, testConfig(60, 17), []*BiomeDefinition{grassBiome(), hillsBiome()})

	shared := map[string]bool{}
	for _, adj := range tr.vor.Adjacent() {
		if tr.biomeForSite(adj.A).Navigable() == tr.biomeForSite(adj.B).Navigable() {
			continue
		}
		for _, e := range adj.Edges {
			shared[e.Key()] = true
		}
	}

	wall := tr.OuterBorder()
	if len(wall) == 0 {
		t.Fatal("expected an outer border")
	}
	for _, w := range wall {
		if !shared[w.Key()] {
			t.Errorf("outer border segment %v is not between land & border", w)
		}
	}

	blockers := 0
	for _, id := range tr.NodeIDs() {
		b, _ := tr.Biome(id)
		blockers += len(b.Blockers)
	}
	if blockers != len(shared) {
		t.Errorf("expected %d blockers, got %d", len(shared), blockers)
	}
}

func TestSaveJSON(t *testing.T) {
	tr := mustTerrain(t, testConfig(20, 31), []*BiomeDefinition{grassBiome(), lakeBiome()})

	path := filepath.Join(t.TempDir(), "terrain.json")
	if err := tr.SaveJSON(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Sites) != len(tr.Sites()) {
		t.Errorf("expected %d sites, got %d", len(tr.Sites()), len(snap.Sites))
	}
	if snap.Seed != 31 {
		t.Errorf("expected seed 31, got %d", snap.Seed)
	}
	if len(snap.Paths) != len(tr.PathEdges()) {
		t.Errorf("expected %d paths, got %d", len(tr.PathEdges()), len(snap.Paths))
	}
}

// constSource always returns the same value, so every random site lands on
// the same spot
type constSource int64

func (c constSource) Int63() int64 { return int64(c) }
func (c constSource) Seed(int64) {}

func TestDuplicateSitesFollowTheirTwin(t *testing.T) {
	cfg := testConfig(4, 0)
	cfg.LloydRelaxation = 0

	// 1<<61 gives Float64() == 0.25
	tr := mustTerrain(t, cfg, []*BiomeDefinition{grassBiome()}, WithRand(rand.New(constSource(1<<61))))

	sites := tr.vor.Sites()
	if len(sites) != 4 {
		t.Fatalf("expected 4 sites, got %d", len(sites))
	}
	first := tr.biomeForSite(0)
	if !first.IsBorder || first.Definition != cfg.BorderBiome {
		t.Fatalf("expected the only cell to be border, got %s", first.Definition.Name)
	}

	for _, s := range sites[1:] {
		if !s.Degenerate() || s.Twin() != 0 {
			t.Fatalf("site %d: expected a duplicate of site 0", s.ID())
		}
		b := tr.biomeForSite(s.ID())
		if b.Definition != first.Definition || !b.IsBorder || b.Navigable() {
			t.Errorf("site %d: expected border biome like its twin, got %s", s.ID(), b.Definition.Name)
		}
	}

	if len(tr.PathEdges()) != 0 {
		t.Errorf("expected no paths, got %v", tr.PathEdges())
	}
	if _, err := tr.StartBiomeNode(); !errors.Is(err, ErrLookup) {
		t.Errorf("expected ErrLookup, got %v", err)
	}

	id, err := tr.NearestBiome(sites[2].Point())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := tr.Biome(id)
	if b.Definition != first.Definition {
		t.Errorf("expected sampling to agree with the duplicates, got %s", b.Definition.Name)
	}
}

func TestNearestBiomeIsNearestSite(t *testing.T) {
	tr := mustTerrain(t, testConfig(40, 23), []*BiomeDefinition{grassBiome(), hillsBiome()})

	for _, s := range tr.vor.Sites() {
		id, err := tr.NearestBiome(s.Point())
		if err != nil {
			t.Fatal(err)
		}
		want := s.ID()
		if s.Twin() >= 0 {
			want = s.Twin()
		}
		if id != tr.siteToNode[want] {
			t.Errorf("site %d: expected node %d, got %d", s.ID(), tr.siteToNode[want], id)
		}
	}
}

func TestPrefabAreas(t *testing.T) {
	hills := hillsBiome()
	hills.PrefabMinDistance = 15
	tr := mustTerrain(t, testConfig(40, 6), []*BiomeDefinition{grassBiome(), hills})

	areas, prefabs := tr.PrefabAreas()
	if len(areas) != len(prefabs) {
		t.Fatalf("expected matching lengths, got %d & %d", len(areas), len(prefabs))
	}

	i := 0
	for _, s := range tr.vor.Sites() {
		b := tr.biomeForSite(s.ID())
		if b.Definition != hills || b.Polygon == nil || b.Polygon.Distance(b.Center) <= 15 {
			continue
		}
		if i >= len(areas) {
			t.Fatalf("expected an area for site %d", s.ID())
		}
		if len(areas[i].Points) != len(b.Polygon.Points) {
			t.Errorf("site %d: expected %d points, got %d", s.ID(), len(b.Polygon.Points), len(areas[i].Points))
		}
		for j, p := range areas[i].Points {
			if !b.Polygon.Contains(p) {
				t.Errorf("site %d: inset point %v outside the biome", s.ID(), p)
			}
			moved := b.Polygon.Points[j].Sub(p).Norm()
			if math.Abs(moved-15) > 1e-6 {
				t.Errorf("site %d: expected point moved 15, got %f", s.ID(), moved)
			}
		}
		if prefabs[i][0] != "boulder" {
			t.Errorf("unexpected prefabs %v", prefabs[i])
		}
		i++
	}
	if i != len(areas) {
		t.Errorf("expected %d areas, got %d", i, len(areas))
	}
	if i == 0 {
		t.Error("expected some hills to fill")
	}
}
