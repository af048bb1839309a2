package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"islandgen/internal/meshing"

	"github.com/go-gl/mathgl/mgl64"
)

// Header is the tool identity written in the first comment line of every file.
const Header = "3D Island Generator Output"

// ErrWrite marks a failure to create or write an output file.
var ErrWrite = errors.New("export: write failed")

// WriteOBJ writes the mesh as Wavefront OBJ text with per-vertex colors:
// header comments, one "v x y z r g b" line per vertex and one 1-based
// "f a b c" line per face, in mesh order.
func WriteOBJ(w io.Writer, m *meshing.Mesh) error {
	bw := bufio.NewWriterSize(w, 64*1024)

	fmt.Fprintf(bw, "# %s\n", Header)
	fmt.Fprintf(bw, "# Vertices: %d\n", m.VertexCount())
	fmt.Fprintf(bw, "# Faces: %d\n", m.FaceCount())

	// Reused scratch buffer; one line is built at a time.
	line := make([]byte, 0, 96)
	for _, v := range m.Vertices {
		line = append(line[:0], 'v')
		line = appendVec(line, v.Position)
		line = appendVec(line, v.Color)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write vertex: %w", err)
		}
	}

	for _, f := range m.Faces {
		line = append(line[:0], 'f')
		for _, idx := range f {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(idx+1), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write face: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func appendVec(buf []byte, v mgl64.Vec3) []byte {
	for _, c := range v {
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, c, 'f', 6, 64)
	}
	return buf
}
