package biomegraph

import (
	"math"

	"github.com/pkg/errors"

	"github.com/voidshard/biomegraph/internal/logger"
	"github.com/voidshard/biomegraph/internal/noise"
)

// Config is everything needed to build a terrain, as read from a YAML file.
type Config struct {
	Terrain GlobalConfig       `yaml:"terrain"`
	Biomes  []*BiomeDefinition `yaml:"biomes"`
	Logging logger.Options     `yaml:"logging"`
}

// GlobalConfig holds settings that apply to the whole map
type GlobalConfig struct {
	// MapSize is the side length of the (square) map, required
	MapSize float64 `yaml:"map_size"`

	// BiomeSamples is how many voronoi sites (biomes) we try to place
	BiomeSamples int `yaml:"biome_samples"`

	// LloydRelaxation passes applied to the sites, 0 leaves them as placed
	LloydRelaxation int `yaml:"lloyd_relaxation"`

	// BorderNoise is how far (+/-) sample positions are jittered before
	// finding the nearest biome. Softens the straight voronoi edges.
	BorderNoise float64 `yaml:"border_noise"`

	// BorderBiome is given to every site whose cell touches the map edge
	BorderBiome *BiomeDefinition `yaml:"border_biome"`

	// RoadTexture is painted along paths between biomes
	RoadTexture *TextureLayer `yaml:"road_texture"`

	// Seed for rng (random number chosen if not set)
	Seed int64 `yaml:"seed"`

	// MinSiteDistance rejects random sites closer than this to an existing site.
	// 0 or less is "no min"
	MinSiteDistance float64 `yaml:"min_site_distance"`

	// HeightMapResolution is the width (& height) of generated height / alpha maps
	HeightMapResolution int `yaml:"heightmap_resolution"`

	// Octaves of noise summed per heightmap cell
	Octaves int `yaml:"octaves"`

	// Noise picks the coherent noise, "perlin" (default) or "simplex"
	Noise noise.Kind `yaml:"noise"`

	// SmoothSize is the half width of the smoothing box
	SmoothSize int `yaml:"smooth_size"`

	// RoadWidth is how many cells either side of a road are smoothed / painted
	RoadWidth int `yaml:"road_width"`
}

// BiomeDefinition describes a kind of biome. These are read only once
// handed to New.
type BiomeDefinition struct {
	// Name must be unique
	Name string `yaml:"name"`

	Height HeightParams `yaml:"height"`

	// NotNavigable biomes are left out of the navigation graph & paths
	NotNavigable bool `yaml:"not_navigable"`

	// Texture is the alpha map layer used for this biome, required
	Texture *TextureLayer `yaml:"texture"`

	// DontBlendWith names biomes whose shared borders should not be smoothed
	DontBlendWith []string `yaml:"dont_blend_with"`

	// FillPrefabs are passed through untouched for whoever places props
	FillPrefabs       []string `yaml:"fill_prefabs"`
	PrefabMinDistance float64  `yaml:"prefab_min_distance"`
}

// blendsWith returns false if either side refuses to blend with the other
func (b *BiomeDefinition) blendsWith(o *BiomeDefinition) bool {
	for _, n := range b.DontBlendWith {
		if n == o.Name {
			return false
		}
	}
	for _, n := range o.DontBlendWith {
		if n == b.Name {
			return false
		}
	}
	return true
}

// HeightParams control the noise synthesised for a biome.
type HeightParams struct {
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	LocalMin    float64 `yaml:"local_min"`
	LocalMax    float64 `yaml:"local_max"`
	Scale       float64 `yaml:"scale"`
}

// TextureLayer is a terrain texture. Layers are identified by Name, two biomes
// naming the same texture share a layer.
// Everything other than Name is passed through to the TextureRegistrar.
type TextureLayer struct {
	Name       string  `yaml:"name"`
	Texture    string  `yaml:"texture"`
	NormalMap  string  `yaml:"normal_map"`
	TileSize   float64 `yaml:"tile_size"`
	Smoothness float64 `yaml:"smoothness"`
	Metallic   float64 `yaml:"metallic"`
}

// DefaultConfig returns a Config with sensible default values.
// Biomes are left empty, a terrain needs at least one.
func DefaultConfig() *Config {
	logs := logger.DefaultOptions()
	return &Config{
		Terrain: GlobalConfig{
			MapSize:             1000,
			BiomeSamples:        50,
			LloydRelaxation:     5,
			BorderNoise:         5,
			HeightMapResolution: 128,
			Octaves:             3,
			Noise:               noise.Perlin,
			SmoothSize:          2,
			RoadWidth:           2,
			BorderBiome: &BiomeDefinition{
				Name:         "water",
				NotNavigable: true,
				Height: HeightParams{
					Persistence: 0.5,
					Lacunarity:  0.5,
					LocalMin:    0,
					LocalMax:    0.15,
					Scale:       20,
				},
				Texture: &TextureLayer{Name: "water", TileSize: 10},
			},
			RoadTexture: &TextureLayer{Name: "road", TileSize: 2},
		},
		Biomes:  []*BiomeDefinition{},
		Logging: logs,
	}
}

// validate checks for settings that cannot produce a terrain
func (g *GlobalConfig) validate(biomes []*BiomeDefinition) error {
	if g.MapSize <= 0 || math.IsNaN(g.MapSize) || math.IsInf(g.MapSize, 0) {
		return errors.Wrapf(ErrConfiguration, "map size must be positive, got %f", g.MapSize)
	}
	if g.BiomeSamples <= 0 {
		return errors.Wrapf(ErrConfiguration, "biome samples must be positive, got %d", g.BiomeSamples)
	}
	if g.LloydRelaxation < 0 {
		return errors.Wrapf(ErrConfiguration, "lloyd relaxation cannot be negative, got %d", g.LloydRelaxation)
	}
	if g.BorderNoise < 0 {
		return errors.Wrapf(ErrConfiguration, "border noise cannot be negative, got %f", g.BorderNoise)
	}
	if g.BorderBiome == nil || g.BorderBiome.Texture == nil {
		return errors.Wrap(ErrConfiguration, "border biome with a texture is required")
	}
	if g.RoadTexture == nil {
		return errors.Wrap(ErrConfiguration, "road texture is required")
	}
	if len(biomes) == 0 {
		return errors.Wrap(ErrConfiguration, "at least one biome is required")
	}

	seen := map[string]bool{}
	for i, b := range biomes {
		if b == nil {
			return errors.Wrapf(ErrConfiguration, "biome %d is nil", i)
		}
		if b.Texture == nil {
			return errors.Wrapf(ErrConfiguration, "biome %s has no texture", b.Name)
		}
		if seen[b.Name] {
			return errors.Wrapf(ErrConfiguration, "biome name %s is not unique", b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

// validateRaster checks settings only needed for height / alpha maps
func (g *GlobalConfig) validateRaster() error {
	if g.HeightMapResolution < 1 {
		return errors.Wrapf(ErrConfiguration, "heightmap resolution must be at least 1, got %d", g.HeightMapResolution)
	}
	if g.Octaves < 1 {
		return errors.Wrapf(ErrConfiguration, "octaves must be at least 1, got %d", g.Octaves)
	}
	return nil
}
