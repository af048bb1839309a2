package meshing

import "github.com/go-gl/mathgl/mgl64"

// Band is the surface class of a cell.
type Band int

const (
	BandWater Band = iota
	BandSand
	BandGrass
	BandRock
)

// Land band thresholds, as a fraction of the height above sea level.
const (
	sandLimit  = 0.3
	grassLimit = 0.6
)

// Vertex colors. These are fixed output constants.
var (
	WaterColor = mgl64.Vec3{0.0, 0.0, 0.0}
	SandColor  = mgl64.Vec3{0.76, 0.70, 0.50}
	GrassColor = mgl64.Vec3{0.13, 0.55, 0.13}
	RockColor  = mgl64.Vec3{0.55, 0.47, 0.37}
)

var bandNames = [...]string{"water", "sand", "grass", "rock"}

func (b Band) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return "unknown"
	}
	return bandNames[b]
}

// Color returns the vertex color for the band.
func (b Band) Color() mgl64.Vec3 {
	switch b {
	case BandSand:
		return SandColor
	case BandGrass:
		return GrassColor
	case BandRock:
		return RockColor
	default:
		return WaterColor
	}
}

// Classify assigns a normalized height to a band. Anything at or below
// seaLevel is water; land is split by its relative height above the sea.
func Classify(h, seaLevel float64) Band {
	if h <= seaLevel {
		return BandWater
	}
	land := (h - seaLevel) / (1.0 - seaLevel)
	switch {
	case land < sandLimit:
		return BandSand
	case land < grassLimit:
		return BandGrass
	default:
		return BandRock
	}
}
