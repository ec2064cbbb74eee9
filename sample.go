package biomegraph

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// textureJitter makes texture borders wander further than height borders
// so the two don't line up.
const textureJitter = 1.2

// jitter moves p by up to +/- BorderNoise*scale on each axis
func (t *Terrain) jitter(p r2.Point, scale float64) r2.Point {
	n := t.cfg.BorderNoise * scale
	dx := (t.rng.Float64()*2 - 1) * n
	dy := (t.rng.Float64()*2 - 1) * n
	return r2.Point{X: p.X + dx, Y: p.Y + dy}
}

// closestBiome finds the biome of the site nearest p.
// Ties go to the lower site ID.
func (t *Terrain) closestBiome(p r2.Point) (int, *Biome) {
	s := t.vor.SiteFor(p)
	if s == nil {
		return -1, nil
	}
	return t.siteToNode[s.ID()], t.biomeForSite(s.ID())
}

// NearestBiome returns the node ID of the biome nearest p, without jitter
func (t *Terrain) NearestBiome(p r2.Point) (int, error) {
	id, b := t.closestBiome(p)
	if b == nil {
		return -1, errors.Wrap(ErrLookup, "terrain has no biomes")
	}
	return id, nil
}

// SampleBiomeHeight returns the height settings of the biome nearest p,
// with p jittered by up to BorderNoise. Settings are returned as given.
func (t *Terrain) SampleBiomeHeight(p r2.Point) HeightParams {
	_, b := t.closestBiome(t.jitter(p, 1))
	if b == nil {
		return t.cfg.BorderBiome.Height
	}
	return b.Definition.Height
}

// SampleBiomeTexture returns texture layer weights for p, with p jittered
// by up to 1.2 * BorderNoise.
// Currently this is always exactly one layer with a weight of 1.
func (t *Terrain) SampleBiomeTexture(p r2.Point) map[int]float64 {
	_, b := t.closestBiome(t.jitter(p, textureJitter))
	def := t.cfg.BorderBiome
	if b != nil {
		def = b.Definition
	}
	return map[int]float64{t.textures.index[def.Texture.Name]: 1}
}
