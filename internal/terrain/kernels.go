package terrain

import (
	"fmt"

	"islandgen/internal/config"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source samples fractal coherent noise, roughly in [-1,1].
// Implementations are read-only after construction and safe for concurrent use.
type Source interface {
	Sample(x, y float64) float64
}

// fractal holds the octave settings shared by every kernel.
type fractal struct {
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewSource builds the noise kernel named by p.Noise.
func NewSource(p config.Parameters) (Source, error) {
	f := fractal{octaves: p.Octaves, persistence: p.Persistence, lacunarity: p.Lacunarity}
	switch p.NoiseKernel() {
	case config.NoisePerlin:
		return gradientSource{fractal: f}, nil
	case config.NoiseValue:
		return newValueSource(f, p.Seed), nil
	case config.NoiseSimplex:
		return simplexSource{fractal: f, noise: opensimplex.New(p.Seed)}, nil
	case config.NoiseClassic:
		return newClassicSource(f, p.Seed), nil
	}
	return nil, fmt.Errorf("%w: unknown noise kernel %q", config.ErrInvalidParameters, p.Noise)
}

// gradientSource is the default kernel: tileable improved Perlin noise.
// The seed only enters through the coordinate offset applied by the Generator.
type gradientSource struct {
	fractal
}

func (s gradientSource) Sample(x, y float64) float64 {
	return fractalGradientNoise2D(x, y, s.octaves, s.persistence, s.lacunarity)
}

// valueSource sums value-noise octaves, each on its own lattice, and remaps
// the [0,1] result to [-1,1].
type valueSource struct {
	fractal
	lattices []valueLattice
}

func newValueSource(f fractal, seed int64) valueSource {
	lattices := make([]valueLattice, f.octaves)
	for i := range lattices {
		lattices[i] = newValueLattice(seed, i)
	}
	return valueSource{fractal: f, lattices: lattices}
}

func (s valueSource) Sample(x, y float64) float64 {
	var total, norm float64
	amplitude, frequency := 1.0, 1.0
	for _, l := range s.lattices {
		total += l.sample(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= s.persistence
		frequency *= s.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total/norm*2 - 1
}

// simplexSource sums OpenSimplex octaves.
type simplexSource struct {
	fractal
	noise opensimplex.Noise
}

func (s simplexSource) Sample(x, y float64) float64 {
	var total, norm float64
	amplitude, frequency := 1.0, 1.0
	for i := 0; i < s.octaves; i++ {
		total += s.noise.Eval2(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= s.persistence
		frequency *= s.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

// classicSource wraps the classic gradient noise from go-perlin, where alpha is
// the per-octave amplitude divisor and beta the frequency multiplier.
// Its lattice breaks below -4096 on either axis, so keep seeds above that.
type classicSource struct {
	noise *perlin.Perlin
	norm  float64
}

func newClassicSource(f fractal, seed int64) classicSource {
	norm := 0.0
	amplitude := 1.0
	for i := 0; i < f.octaves; i++ {
		norm += amplitude
		amplitude *= f.persistence
	}
	return classicSource{
		noise: perlin.NewPerlin(1/f.persistence, f.lacunarity, int32(f.octaves), seed),
		norm:  norm,
	}
}

func (s classicSource) Sample(x, y float64) float64 {
	if s.norm == 0 {
		return 0
	}
	return s.noise.Noise2D(x, y) / s.norm
}
