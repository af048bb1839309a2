package preview

import (
	"io"

	"islandgen/internal/meshing"
	"islandgen/internal/terrain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats summarizes the land/water split of a normalized height field.
type Stats struct {
	Total    int
	Water    int
	Land     int
	Sand     int
	Grass    int
	Rock     int
	SeaLevel float64
	Min, Max float64
}

// Summarize counts cells per band using the same classification as the mesh palette.
func Summarize(f *terrain.HeightField, seaLevel float64) Stats {
	s := Stats{Total: f.Len(), SeaLevel: seaLevel}
	s.Min, s.Max = f.Range()
	for _, h := range f.Values() {
		switch meshing.Classify(h, seaLevel) {
		case meshing.BandWater:
			s.Water++
		case meshing.BandSand:
			s.Sand++
		case meshing.BandGrass:
			s.Grass++
		case meshing.BandRock:
			s.Rock++
		}
	}
	s.Land = s.Total - s.Water
	return s
}

// WaterPercent returns the share of water cells in percent.
func (s Stats) WaterPercent() float64 { return percent(s.Water, s.Total) }

// LandPercent returns the share of land cells in percent.
func (s Stats) LandPercent() float64 { return percent(s.Land, s.Total) }

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// Write prints the statistics block. Cell counts are digit-grouped.
func (s Stats) Write(w io.Writer) error {
	_, err := message.NewPrinter(language.English).Fprintf(w,
		"Statistics:\n"+
			"  Total area: %d cells\n"+
			"  Water: %d cells (%.1f%%)\n"+
			"  Land: %d cells (%.1f%%)\n"+
			"    sand %d, grass %d, rock %d\n"+
			"  Sea level: %.2f\n"+
			"  Max height: %.3f\n",
		s.Total,
		s.Water, s.WaterPercent(),
		s.Land, s.LandPercent(),
		s.Sand, s.Grass, s.Rock,
		s.SeaLevel,
		s.Max)
	return err
}
