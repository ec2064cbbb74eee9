package biomegraph

import (
	"math/rand"

	"go.uber.org/zap"
)

// TextureRegistrar is told about each texture layer as it is given an index.
// Engines use this to bind textures to their alpha map slots.
// Each distinct layer is registered exactly once, in index order.
type TextureRegistrar interface {
	RegisterTexture(index int, layer *TextureLayer)
}

// TextureRegistrarFunc lets a plain func act as a TextureRegistrar
type TextureRegistrarFunc func(index int, layer *TextureLayer)

// RegisterTexture calls f
func (f TextureRegistrarFunc) RegisterTexture(index int, layer *TextureLayer) {
	f(index, layer)
}

// Option configures optional parts of a Terrain
type Option func(*Terrain)

// WithLogger sets the logger, by default nothing is logged
func WithLogger(l *zap.Logger) Option {
	return func(t *Terrain) {
		if l != nil {
			t.log = l
		}
	}
}

// WithRand supplies the random stream, overriding GlobalConfig.Seed.
// The terrain keeps drawing from it when sampling, so it must not be shared
// with anything running concurrently.
func WithRand(rng *rand.Rand) Option {
	return func(t *Terrain) {
		t.rng = rng
	}
}

// WithTextureRegistrar sets who is told about new texture layers
func WithTextureRegistrar(r TextureRegistrar) Option {
	return func(t *Terrain) {
		t.registrar = r
	}
}
