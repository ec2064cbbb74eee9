package biomegraph

import (
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/voidshard/biomegraph/internal/noise"
	"github.com/voidshard/biomegraph/internal/raster"
)

// octaveOffsetRange is how far (+/-) each octave's noise is shifted
const octaveOffsetRange = 100000.0

// CellSize is the width in map units of one height / alpha map cell
func (t *Terrain) CellSize() float64 {
	return t.cfg.MapSize / float64(t.cfg.HeightMapResolution)
}

// GenerateHeightMap builds a HeightMapResolution square grid of heights.
// Each cell takes the height settings of the (jittered) nearest biome &
// sums Octaves layers of noise, remapped into the biome's [LocalMin, LocalMax].
func (t *Terrain) GenerateHeightMap() (HeightMap, error) {
	if err := t.cfg.validateRaster(); err != nil {
		return nil, err
	}
	began := time.Now()

	src, err := noise.New(t.cfg.Noise, t.rng)
	if err != nil {
		return nil, errors.Wrap(ErrConfiguration, err.Error())
	}

	offsets := make([]r2.Point, t.cfg.Octaves)
	for i := range offsets {
		offsets[i] = r2.Point{
			X: (t.rng.Float64()*2 - 1) * octaveOffsetRange,
			Y: (t.rng.Float64()*2 - 1) * octaveOffsetRange,
		}
	}

	res := t.cfg.HeightMapResolution
	cellSize := t.CellSize()
	result := raster.NewGrid(res)

	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			h := t.SampleBiomeHeight(r2.Point{X: float64(x) * cellSize, Y: float64(y) * cellSize})
			result[y][x] = synthesize(src, offsets, h, x, y, t.cfg.MapSize, cellSize)
		}
	}

	t.log.Debug("generated heightmap", zap.Int("resolution", res), zap.Duration("took", time.Since(began)))
	return result, nil
}

// synthesize sums octaves of noise for cell (x,y) & remaps the result
// into the band of h.
func synthesize(src noise.Source, offsets []r2.Point, h HeightParams, x, y int, mapSize, cellSize float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	total := 0.0

	for _, off := range offsets {
		sx := (float64(x) + off.X) / mapSize * frequency * (h.Scale * cellSize)
		sy := (float64(y) + off.Y) / mapSize * frequency * (h.Scale * cellSize)

		// noise between -1 and 1
		total += (src.Sample(sx, sy)*2 - 1) * amplitude

		amplitude *= h.Persistence
		frequency *= h.Lacunarity
	}

	normalized := inverseLerp(-1, 1, total)
	return clamp01((h.LocalMax-h.LocalMin)*normalized + h.LocalMin)
}
