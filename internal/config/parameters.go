package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidParameters is wrapped by every validation failure.
var ErrInvalidParameters = errors.New("invalid parameters")

// Noise kernel names accepted in Parameters.Noise.
const (
	NoisePerlin  = "perlin"
	NoiseValue   = "value"
	NoiseSimplex = "simplex"
	NoiseClassic = "classic"
)

// NoiseKernels lists every accepted noise kernel name.
var NoiseKernels = []string{NoisePerlin, NoiseValue, NoiseSimplex, NoiseClassic}

// Parameters holds island generation configuration for one run.
// It is passed by value; a run never mutates it.
type Parameters struct {
	Width       int     `json:"width" jsonschema:"title=Width,description=Grid cells along X,minimum=2,default=200"`
	Height      int     `json:"height" jsonschema:"title=Height,description=Grid cells along Y,minimum=2,default=200"`
	SeaLevel    float64 `json:"seaLevel" jsonschema:"title=Sea level,description=Normalized height at or below which a cell is water (0..1)"`
	SeaDepth    float64 `json:"seaDepth" jsonschema:"title=Sea depth,description=How far the flattened sea plane sits below the sea level (>= 0)"`
	NoiseScale  float64 `json:"noiseScale" jsonschema:"title=Noise scale,description=Noise coordinates span per grid (> 0); larger gives more features"`
	Octaves     int     `json:"octaves" jsonschema:"title=Octaves,description=Number of summed noise layers,minimum=1,default=6"`
	Persistence float64 `json:"persistence" jsonschema:"title=Persistence,description=Amplitude factor per octave (0..1]"`
	Lacunarity  float64 `json:"lacunarity" jsonschema:"title=Lacunarity,description=Frequency factor per octave (>= 1)"`
	Seed        int64   `json:"seed" jsonschema:"title=Seed,description=Offset added to noise coordinates and used to seed the noise kernel"`
	Noise       string  `json:"noise,omitempty" jsonschema:"title=Noise kernel,enum=perlin,enum=value,enum=simplex,enum=classic"`
	SeaFloor    bool    `json:"seaFloor" jsonschema:"title=Sea floor cap,description=Close the sea volume with a flat cap below the water plane"`
}

// Default returns the stock island settings.
func Default() Parameters {
	return Parameters{
		Width:       200,
		Height:      200,
		SeaLevel:    0.3,
		SeaDepth:    0.2,
		NoiseScale:  50.0,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Seed:        0,
		Noise:       NoisePerlin,
		SeaFloor:    true,
	}
}

// presets are the bundled example islands. Unset fields keep their defaults.
var presets = map[string]func(p *Parameters){
	"basic": func(p *Parameters) {},
	"high-res": func(p *Parameters) {
		p.Width, p.Height = 400, 400
		p.Seed = 123
	},
	"archipelago": func(p *Parameters) {
		p.Width, p.Height = 250, 250
		p.SeaLevel = 0.4 // higher sea splits the land into several islands
		p.NoiseScale = 40.0
		p.Seed = 999
	},
	"custom": func(p *Parameters) {
		p.Width, p.Height = 300, 300
		p.SeaLevel = 0.25
		p.SeaDepth = 0.3
		p.NoiseScale = 70.0
		p.Octaves = 8
		p.Persistence = 0.6
		p.Lacunarity = 2.5
		p.Seed = 2024
	},
}

// Preset returns the named example settings.
func Preset(name string) (Parameters, error) {
	apply, ok := presets[name]
	if !ok {
		return Parameters{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	p := Default()
	apply(&p)
	return p, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports the first parameter outside its domain.
func (p Parameters) Validate() error {
	switch {
	case p.Width < 2:
		return invalid("width must be >= 2, got %d", p.Width)
	case p.Height < 2:
		return invalid("height must be >= 2, got %d", p.Height)
	case !finite(p.SeaLevel) || p.SeaLevel < 0 || p.SeaLevel > 1:
		return invalid("sea level must be in [0,1], got %v", p.SeaLevel)
	case !finite(p.SeaDepth) || p.SeaDepth < 0:
		return invalid("sea depth must be >= 0, got %v", p.SeaDepth)
	case !finite(p.NoiseScale) || p.NoiseScale <= 0:
		return invalid("noise scale must be > 0, got %v", p.NoiseScale)
	case p.Octaves < 1:
		return invalid("octaves must be >= 1, got %d", p.Octaves)
	case !finite(p.Persistence) || p.Persistence <= 0 || p.Persistence > 1:
		return invalid("persistence must be in (0,1], got %v", p.Persistence)
	case !finite(p.Lacunarity) || p.Lacunarity < 1:
		return invalid("lacunarity must be >= 1, got %v", p.Lacunarity)
	}
	if !knownNoise(p.NoiseKernel()) {
		return invalid("unknown noise kernel %q (have %v)", p.Noise, NoiseKernels)
	}
	return nil
}

// NoiseKernel returns the configured kernel name, falling back to perlin when unset.
func (p Parameters) NoiseKernel() string {
	if p.Noise == "" {
		return NoisePerlin
	}
	return p.Noise
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameters}, args...)...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func knownNoise(name string) bool {
	for _, k := range NoiseKernels {
		if k == name {
			return true
		}
	}
	return false
}
