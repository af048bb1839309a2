package terrain

import (
	"math"
)

// Deterministic 2D coherent noise used by the island generator.
// Two built-in kernels live here: tileable gradient (Perlin) noise and
// lattice value noise. Both are pure functions of their inputs.

// RepeatPeriod is the tile size, in noise units, of the gradient kernel.
// Sample domains that stay within one period never see the tile seam.
const RepeatPeriod = 1024.0

// permutation is Ken Perlin's reference table, doubled so lookups of
// perm[a+b] with a,b in [0,255] never wrap.
var permutation = [512]int{}

var basePermutation = [256]int{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// Gradient directions indexed by hash & 15 (x and y components of the
// improved-noise gradient set).
var (
	gradX = [16]float64{1, -1, 1, -1, 1, -1, 1, -1, 0, 0, 0, 0, 1, 0, -1, 0}
	gradY = [16]float64{1, 1, -1, -1, 0, 0, 0, 0, 1, -1, 1, -1, 1, -1, 1, -1}
)

func init() {
	for i := 0; i < 256; i++ {
		permutation[i] = basePermutation[i]
		permutation[i+256] = basePermutation[i]
	}
}

// fade function is used for smoothing (6t^5 - 15t^4 + 10t^3)
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func grad2(hash int, x, y float64) float64 {
	i := hash & 15
	return gradX[i]*x + gradY[i]*y
}

// gradientNoise2D samples single-octave Perlin noise that tiles every
// repeatX/repeatY units. Output is roughly [-1,1] and exactly 0 on lattice points.
func gradientNoise2D(x, y, repeatX, repeatY float64) float64 {
	i := int(math.Floor(math.Mod(x, repeatX)))
	j := int(math.Floor(math.Mod(y, repeatY)))
	ii := int(math.Mod(float64(i+1), repeatX))
	jj := int(math.Mod(float64(j+1), repeatY))
	i &= 255
	j &= 255
	ii &= 255
	jj &= 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	fx := fade(x)
	fy := fade(y)

	a := permutation[i]
	aa := permutation[a+j]
	ab := permutation[a+jj]
	b := permutation[ii]
	ba := permutation[b+j]
	bb := permutation[b+jj]

	return lerp(
		lerp(grad2(permutation[aa], x, y), grad2(permutation[ba], x-1, y), fx),
		lerp(grad2(permutation[ab], x, y-1), grad2(permutation[bb], x-1, y-1), fx),
		fy,
	)
}

// fractalGradientNoise2D sums octaves of tileable gradient noise. The repeat
// period grows with frequency so every octave tiles on the same base period.
// Result is amplitude-normalized, roughly [-1,1].
func fractalGradientNoise2D(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		// An integral period keeps the wrapped lattice index in step with the
		// unwrapped cell offset, so the sum stays continuous where it wraps.
		repeat := math.Round(RepeatPeriod * frequency)
		sum += gradientNoise2D(x*frequency, y*frequency, repeat, repeat) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// valueLattice assigns a pseudo-random height in [0,1) to every integer
// lattice point. The value is the lattice's own seed word.
type valueLattice uint64

// newValueLattice derives an independent lattice for one octave of a seed.
func newValueLattice(seed int64, octave int) valueLattice {
	return valueLattice(mix64(uint64(seed) ^ uint64(octave+1)*0xD1B54A32D192ED03))
}

// mix64 is the SplitMix64 finalizer.
func mix64(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func (l valueLattice) at(ix, iy int64) float64 {
	h := mix64(uint64(l) ^ uint64(ix)*0xC2B2AE3D27D4EB4F ^ uint64(iy)*0x165667B19E3779F9)
	return float64(h>>11) / (1 << 53)
}

// sample interpolates the four surrounding lattice values with the fade curve.
func (l valueLattice) sample(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int64(x0), int64(y0)
	tx, ty := fade(x-x0), fade(y-y0)
	top := lerp(l.at(ix, iy), l.at(ix+1, iy), tx)
	bottom := lerp(l.at(ix, iy+1), l.at(ix+1, iy+1), tx)
	return lerp(top, bottom, ty)
}
