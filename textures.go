package biomegraph

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// textureRegistry hands out alpha map layer indexes by texture name
type textureRegistry struct {
	index  map[string]int
	layers []*TextureLayer
	road   int
}

func newTextureRegistry() *textureRegistry {
	return &textureRegistry{index: map[string]int{}, layers: []*TextureLayer{}}
}

// register returns the layer index for l, adding it if this is a new name
func (r *textureRegistry) register(l *TextureLayer) (int, bool) {
	if i, ok := r.index[l.Name]; ok {
		return i, false
	}
	i := len(r.layers)
	r.index[l.Name] = i
	r.layers = append(r.layers, l)
	return i, true
}

// registerTextures gives every biome texture a layer, followed by the border
// biome's texture & finally the road.
func (t *Terrain) registerTextures() {
	t.textures = newTextureRegistry()

	add := func(l *TextureLayer) int {
		i, added := t.textures.register(l)
		if added {
			t.log.Debug("registered texture", zap.String("texture", l.Name), zap.Int("layer", i))
			if t.registrar != nil {
				t.registrar.RegisterTexture(i, l)
			}
		}
		return i
	}

	for _, b := range t.available {
		add(b.Texture)
	}
	add(t.cfg.BorderBiome.Texture)
	t.textures.road = add(t.cfg.RoadTexture)
}

// TextureLayers returns the registered layers ordered by index
func (t *Terrain) TextureLayers() []*TextureLayer {
	out := make([]*TextureLayer, len(t.textures.layers))
	copy(out, t.textures.layers)
	return out
}

// TextureCount is the number of alpha map layers
func (t *Terrain) TextureCount() int {
	return len(t.textures.layers)
}

// RoadLayer is the alpha map layer roads are painted with
func (t *Terrain) RoadLayer() int {
	return t.textures.road
}

// TextureIndex returns the layer for the named texture
func (t *Terrain) TextureIndex(name string) (int, error) {
	i, ok := t.textures.index[name]
	if !ok {
		return -1, errors.Wrapf(ErrLookup, "texture %s not registered", name)
	}
	return i, nil
}
