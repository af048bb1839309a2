package meshing

import (
	"islandgen/internal/config"
	"islandgen/internal/terrain"

	"github.com/go-gl/mathgl/mgl64"
)

// SeaFloorGap is how far the sea-floor cap sits below the flattened water plane.
const SeaFloorGap = 0.1

// Options controls mesh construction.
type Options struct {
	SeaLevel float64
	SeaDepth float64
	SeaFloor bool // build the closing cap under the sea
}

// OptionsFrom extracts mesh options from generation parameters.
func OptionsFrom(p config.Parameters) Options {
	return Options{SeaLevel: p.SeaLevel, SeaDepth: p.SeaDepth, SeaFloor: p.SeaFloor}
}

// WaterPlane returns the elevation submerged terrain vertices are flattened to.
func (o Options) WaterPlane() float64 {
	return o.SeaLevel - o.SeaDepth
}

// FloorPlane returns the elevation of the sea-floor cap.
func (o Options) FloorPlane() float64 {
	return o.WaterPlane() - SeaFloorGap
}

// Build converts a normalized height field into the island mesh: one colored
// vertex per cell, two triangles per grid quad, then (when enabled) a flat
// black cap of the same size with reversed winding that closes the sea volume.
func Build(f *terrain.HeightField, opts Options) *Mesh {
	top := Grid{Width: f.Width, Height: f.Height}
	layers := 1
	if opts.SeaFloor {
		layers = 2
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, top.Len()*layers),
		Faces:    make([]Face, 0, top.Quads()*2*layers),
	}

	m.Terrain = buildTerrain(m, f, top, opts)
	if opts.SeaFloor {
		m.SeaFloor = buildSeaFloor(m, top.Next(), opts)
	}
	return m
}

func buildTerrain(m *Mesh, f *terrain.HeightField, g Grid, opts Options) Layer {
	water := opts.WaterPlane()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			h := f.At(x, y)
			z := water
			if h > opts.SeaLevel {
				z = h
			}
			m.addVertex(mgl64.Vec3{float64(x), z, float64(y)}, Classify(h, opts.SeaLevel).Color())
		}
	}

	first := len(m.Faces)
	for y := 0; y < g.Height-1; y++ {
		for x := 0; x < g.Width-1; x++ {
			v1, v2, v3, v4 := g.Quad(x, y)
			m.addFace(v1, v2, v3)
			m.addFace(v1, v3, v4)
		}
	}
	return Layer{Grid: g, FirstFace: first, Faces: len(m.Faces) - first}
}

func buildSeaFloor(m *Mesh, g Grid, opts Options) Layer {
	floor := opts.FloorPlane()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			m.addVertex(mgl64.Vec3{float64(x), floor, float64(y)}, WaterColor)
		}
	}

	first := len(m.Faces)
	for y := 0; y < g.Height-1; y++ {
		for x := 0; x < g.Width-1; x++ {
			v1, v2, v3, v4 := g.Quad(x, y)
			// Reversed relative to the terrain so the cap faces the other way.
			m.addFace(v1, v3, v2)
			m.addFace(v1, v4, v3)
		}
	}
	return Layer{Grid: g, FirstFace: first, Faces: len(m.Faces) - first}
}
