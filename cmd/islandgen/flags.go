package main

import (
	"flag"
	"fmt"

	"islandgen/internal/config"
)

// paramFlags binds the generation parameters to a flag set. Values set on the
// command line override the preset or config file they are applied to.
type paramFlags struct {
	fs      *flag.FlagSet
	values  config.Parameters
	noFloor bool
	preset  string
	file    string
	workers int
}

func newParamFlags(fs *flag.FlagSet) *paramFlags {
	pf := &paramFlags{fs: fs, values: config.Default()}
	v := &pf.values
	fs.IntVar(&v.Width, "width", v.Width, "terrain width in cells")
	fs.IntVar(&v.Height, "height", v.Height, "terrain height in cells")
	fs.Float64Var(&v.SeaLevel, "sea-level", v.SeaLevel, "sea level in [0,1]")
	fs.Float64Var(&v.SeaDepth, "sea-depth", v.SeaDepth, "depth of the flattened sea below sea level")
	fs.Float64Var(&v.NoiseScale, "scale", v.NoiseScale, "noise scale")
	fs.IntVar(&v.Octaves, "octaves", v.Octaves, "noise octaves")
	fs.Float64Var(&v.Persistence, "persistence", v.Persistence, "amplitude factor per octave")
	fs.Float64Var(&v.Lacunarity, "lacunarity", v.Lacunarity, "frequency factor per octave")
	fs.Int64Var(&v.Seed, "seed", v.Seed, "random seed")
	fs.StringVar(&v.Noise, "noise", v.Noise, fmt.Sprintf("noise kernel %v", config.NoiseKernels))
	fs.BoolVar(&pf.noFloor, "no-sea-floor", false, "skip the sea-floor cap")
	fs.StringVar(&pf.preset, "preset", "", fmt.Sprintf("start from a bundled preset %v", config.PresetNames()))
	fs.StringVar(&pf.file, "config", "", "JSON parameter file")
	fs.IntVar(&pf.workers, "workers", 1, "goroutines sampling noise rows")
	return pf
}

// params resolves the final parameters: defaults, then preset or config file,
// then explicitly set flags.
func (pf *paramFlags) params() (config.Parameters, error) {
	if pf.preset != "" && pf.file != "" {
		return config.Parameters{}, fmt.Errorf("-preset and -config are mutually exclusive")
	}

	p := config.Default()
	switch {
	case pf.preset != "":
		preset, err := config.Preset(pf.preset)
		if err != nil {
			return config.Parameters{}, err
		}
		p = preset
	case pf.file != "":
		loaded, err := config.Load(pf.file)
		if err != nil {
			return config.Parameters{}, err
		}
		p = loaded
	}

	v := pf.values
	pf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			p.Width = v.Width
		case "height":
			p.Height = v.Height
		case "sea-level":
			p.SeaLevel = v.SeaLevel
		case "sea-depth":
			p.SeaDepth = v.SeaDepth
		case "scale":
			p.NoiseScale = v.NoiseScale
		case "octaves":
			p.Octaves = v.Octaves
		case "persistence":
			p.Persistence = v.Persistence
		case "lacunarity":
			p.Lacunarity = v.Lacunarity
		case "seed":
			p.Seed = v.Seed
		case "noise":
			p.Noise = v.Noise
		case "no-sea-floor":
			p.SeaFloor = !pf.noFloor
		}
	})
	return p, p.Validate()
}
