package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"islandgen/internal/export"
	"islandgen/internal/meshing"
	"islandgen/internal/terrain"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// ErrFormat is returned for image paths with an unsupported extension.
var ErrFormat = errors.New("preview: unsupported image format")

// DefaultSea is the water color of rendered previews.
var DefaultSea = color.RGBA{R: 0x1f, G: 0x4e, B: 0x8c, A: 0xff}

// ImageOptions controls Render.
type ImageOptions struct {
	// Size is the longest image side in pixels. Zero keeps one pixel per cell.
	Size    int
	Sea     color.Color
	Caption string
}

// Render draws a top-down map of the field in the mesh palette.
func Render(f *terrain.HeightField, seaLevel float64, opts ImageOptions) (*image.RGBA, error) {
	sea := opts.Sea
	if sea == nil {
		sea = DefaultSea
	}

	src := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x, h := range f.Row(y) {
			band := meshing.Classify(h, seaLevel)
			if band == meshing.BandWater {
				src.Set(x, y, sea)
				continue
			}
			// Brighten with elevation for some relief.
			land := (h - seaLevel) / (1 - seaLevel)
			src.SetRGBA(x, y, toRGBA(band.Color().Mul(0.75+0.25*land)))
		}
	}

	dst := src
	if opts.Size > 0 {
		w, h := fit(f.Width, f.Height, opts.Size)
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	if opts.Caption != "" {
		if err := caption(dst, opts.Caption); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// fit scales (w,h) so the longer side equals size, keeping the aspect ratio.
func fit(w, h, size int) (int, int) {
	if w >= h {
		return size, max(1, h*size/w)
	}
	return max(1, w*size/h), size
}

func toRGBA(c mgl64.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(mgl64.Clamp(c.X(), 0, 1)*255 + 0.5),
		G: uint8(mgl64.Clamp(c.Y(), 0, 1)*255 + 0.5),
		B: uint8(mgl64.Clamp(c.Z(), 0, 1)*255 + 0.5),
		A: 0xff,
	}
}

// caption writes text on a dark band along the bottom edge.
func caption(img *image.RGBA, text string) error {
	b := img.Bounds()
	px := mgl64.Clamp(float64(b.Dy())/24, 9, 32)

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	m := face.Metrics()
	band := (m.Height + fixed.I(4)).Ceil()
	bg := image.Rect(b.Min.X, b.Max.Y-band, b.Max.X, b.Max.Y)
	draw.Draw(img, bg, image.NewUniform(color.RGBA{A: 0xa0}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(b.Min.X+4, b.Max.Y-2-m.Descent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// Encode writes img in the given format: "png", "bmp" or "tiff".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// FormatOf maps a file extension to an Encode format name.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// WriteImage encodes img to path, choosing the format by extension.
func WriteImage(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	return export.Atomic(path, func(w io.Writer) error {
		return Encode(w, img, format)
	})
}
