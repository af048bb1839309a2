package preview

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"islandgen/internal/config"
	"islandgen/internal/terrain"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func mustRows(t *testing.T, rows [][]float64) *terrain.HeightField {
	t.Helper()
	f, err := terrain.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return f
}

func island(t *testing.T, w, h int) *terrain.HeightField {
	t.Helper()
	p := config.Default()
	p.Width, p.Height, p.Seed = w, h, 42
	g, err := terrain.NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	f := g.Generate()
	f.Normalize()
	return f
}

func TestSummarize(t *testing.T) {
	f := mustRows(t, [][]float64{
		{0, 0.3},
		{0.4, 0.9},
	})
	s := Summarize(f, 0.3)
	if s.Total != 4 || s.Water != 2 || s.Land != 2 {
		t.Fatalf("unexpected split: %+v", s)
	}
	if s.Sand != 1 || s.Grass != 0 || s.Rock != 1 {
		t.Errorf("unexpected bands: sand %d grass %d rock %d", s.Sand, s.Grass, s.Rock)
	}
	if s.WaterPercent() != 50 || s.LandPercent() != 50 {
		t.Errorf("unexpected percentages %f / %f", s.WaterPercent(), s.LandPercent())
	}
	if s.Min != 0 || s.Max != 0.9 {
		t.Errorf("unexpected range [%f,%f]", s.Min, s.Max)
	}

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	for _, want := range []string{"Total area: 4 cells", "Water: 2 cells (50.0%)", "Sea level: 0.30", "Max height: 0.900"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("statistics missing %q:\n%s", want, buf.String())
		}
	}
}

func TestStatsWriteGroupsDigits(t *testing.T) {
	s := Stats{Total: 40000, Water: 12000, Land: 28000, Sand: 1500, Grass: 24500, Rock: 2000, SeaLevel: 0.3, Max: 1}
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	for _, want := range []string{
		"Total area: 40,000 cells",
		"Water: 12,000 cells (30.0%)",
		"Land: 28,000 cells (70.0%)",
		"sand 1,500, grass 24,500, rock 2,000",
		"Max height: 1.000",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("statistics missing %q:\n%s", want, buf.String())
		}
	}
}

func TestGlyph(t *testing.T) {
	cases := []struct {
		h    float64
		want rune
	}{
		{0.1, '~'},
		{0.3, '~'},
		{0.34, '.'},
		{0.4, '░'},
		{0.55, '▒'},
		{0.7, '▓'},
		{0.9, '█'},
	}
	for _, c := range cases {
		if got := Glyph(c.h, 0.3); got != c.want {
			t.Errorf("Glyph(%f) = %q, want %q", c.h, got, c.want)
		}
	}
}

func TestASCIIDimensions(t *testing.T) {
	cases := []struct {
		w, h       int
		cols, rows int
	}{
		{200, 200, 50, 50},
		{120, 30, 60, 30},
		{40, 20, 40, 20},
		{301, 151, 76, 38},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := ASCII(&buf, island(t, c.w, c.h), 0.3); err != nil {
			t.Fatalf("ASCII: %v", err)
		}
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		if len(lines) != c.rows {
			t.Errorf("%dx%d: got %d rows, want %d", c.w, c.h, len(lines), c.rows)
		}
		for i, l := range lines {
			if n := utf8.RuneCountInString(l); n != c.cols {
				t.Fatalf("%dx%d: row %d has %d columns, want %d", c.w, c.h, i, n, c.cols)
			}
		}
		if len(lines) > MaxRows || c.cols > MaxColumns {
			t.Errorf("%dx%d: map exceeds %dx%d", c.w, c.h, MaxColumns, MaxRows)
		}
	}
}

func TestASCIIEdgesAreWater(t *testing.T) {
	var buf bytes.Buffer
	if err := ASCII(&buf, island(t, 60, 40), 0.3); err != nil {
		t.Fatalf("ASCII: %v", err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if strings.Trim(first, "~") != "" {
		t.Errorf("Expected the top row to be all water, got %q", first)
	}
}

func TestRender(t *testing.T) {
	f := mustRows(t, [][]float64{
		{0, 0, 0, 0},
		{0, 1, 0.5, 0},
	})
	img, err := Render(f, 0.3, ImageOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if img.RGBAAt(0, 0) != DefaultSea {
		t.Errorf("Expected sea color at (0,0), got %v", img.RGBAAt(0, 0))
	}
	if img.RGBAAt(1, 1) == DefaultSea {
		t.Errorf("Expected land color at (1,1)")
	}

	scaled, err := Render(f, 0.3, ImageOptions{Size: 64, Caption: "seed 42"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := scaled.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("unexpected scaled bounds %v", b)
	}
}

func TestWriteImageFormats(t *testing.T) {
	img, err := Render(island(t, 30, 20), 0.3, ImageOptions{Size: 90})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"map.png", "map.bmp", "map.tiff", "map.TIF"} {
		path := filepath.Join(dir, name)
		if err := WriteImage(path, img); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		decoded, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Errorf("%s: bounds %v, want %v", name, decoded.Bounds(), img.Bounds())
		}
	}

	if err := WriteImage(filepath.Join(dir, "map.gif"), img); !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat for .gif, got %v", err)
	}
}
