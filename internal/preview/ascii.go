package preview

import (
	"bufio"
	"io"

	"islandgen/internal/terrain"
)

// Maximum size of the character map.
const (
	MaxRows    = 50
	MaxColumns = 100
)

// Legend explains the characters used by ASCII.
const Legend = "█ = High mountain | ▓ = Mountain | ▒ = Hills | ░ = Low land | . = Beach | ~ = Water"

// Glyph returns the map character for height h.
func Glyph(h, seaLevel float64) rune {
	switch {
	case h <= seaLevel:
		return '~'
	case h <= seaLevel+0.05:
		return '.'
	case h <= seaLevel+0.15:
		return '░'
	case h <= seaLevel+0.30:
		return '▒'
	case h <= seaLevel+0.45:
		return '▓'
	default:
		return '█'
	}
}

// Step returns the sampling stride that fits n cells into at most limit characters.
func Step(n, limit int) int {
	if n <= limit {
		return 1
	}
	return (n + limit - 1) / limit
}

// ASCII writes a downsampled top-down character map of the field, one line per
// sampled row.
func ASCII(w io.Writer, f *terrain.HeightField, seaLevel float64) error {
	bw := bufio.NewWriter(w)
	sy, sx := Step(f.Height, MaxRows), Step(f.Width, MaxColumns)
	for y := 0; y < f.Height; y += sy {
		row := f.Row(y)
		for x := 0; x < f.Width; x += sx {
			bw.WriteRune(Glyph(row[x], seaLevel))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
