package terrain

import (
	"islandgen/internal/config"

	"github.com/dgravesa/go-parallel/parallel"
	"github.com/go-gl/mathgl/mgl64"
)

// falloffReach scales the center distance so the mask hits zero before the edge.
const falloffReach = 1.2

// Generator samples the island noise field for one parameter set.
type Generator struct {
	params  config.Parameters
	source  Source
	offset  float64
	workers int
}

// NewGenerator validates p and prepares its noise kernel.
func NewGenerator(p config.Parameters) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	src, err := NewSource(p)
	if err != nil {
		return nil, err
	}
	return &Generator{
		params:  p,
		source:  src,
		offset:  float64(p.Seed),
		workers: 1,
	}, nil
}

// WithWorkers sets how many goroutines sample rows. Values below 2 sample sequentially.
// The resulting field is identical either way.
func (g *Generator) WithWorkers(n int) *Generator {
	if n < 1 {
		n = 1
	}
	g.workers = n
	return g
}

// Workers returns the configured sampling concurrency.
func (g *Generator) Workers() int {
	return g.workers
}

// NoiseAt returns the kernel output at grid cell (x,y) mapped to [0,1]
// (before the island mask is applied).
func (g *Generator) NoiseAt(x, y int) float64 {
	nx := float64(x) / float64(g.params.Width)
	ny := float64(y) / float64(g.params.Height)
	v := g.source.Sample(nx*g.params.NoiseScale+g.offset, ny*g.params.NoiseScale+g.offset)
	return (v + 1) / 2
}

// CellAt computes the raw field value at (x,y): noise times the island falloff.
func (g *Generator) CellAt(x, y int) float64 {
	return g.NoiseAt(x, y) * Falloff(x, y, g.params.Width, g.params.Height)
}

// Generate samples every cell into a new raw HeightField.
func (g *Generator) Generate() *HeightField {
	f := NewHeightField(g.params.Width, g.params.Height)
	fillRow := func(y int) {
		row := f.Row(y)
		for x := range row {
			row[x] = g.CellAt(x, y)
		}
	}
	if g.workers < 2 {
		for y := 0; y < f.Height; y++ {
			fillRow(y)
		}
		return f
	}
	// Each row owns a disjoint slice of the field, so no synchronization is needed.
	parallel.WithNumGoroutines(g.workers).For(f.Height, func(y, _ int) {
		fillRow(y)
	})
	return f
}

// Falloff is the radial island mask at (x,y): 1 near the center, 0 from
// 1/1.2 of the way to the edge outward. Each axis is scaled so its edge sits
// at distance 1.
func Falloff(x, y, width, height int) float64 {
	cx := float64(width) / 2
	cy := float64(height) / 2
	d := mgl64.Vec2{(float64(x) - cx) / cx, (float64(y) - cy) / cy}.Len()
	f := 1 - mgl64.Clamp(d*falloffReach, 0, 1)
	return f * f
}
