package meshing

// Grid maps grid coordinates to vertex indices for one vertex block.
// Blocks are laid out row-major: index = Offset + y*Width + x.
type Grid struct {
	Width  int
	Height int
	Offset int
}

// Index returns the vertex index of cell (x,y).
func (g Grid) Index(x, y int) int {
	return g.Offset + y*g.Width + x
}

// Len returns the number of vertices in the block.
func (g Grid) Len() int {
	return g.Width * g.Height
}

// End returns the index one past the block's last vertex.
func (g Grid) End() int {
	return g.Offset + g.Len()
}

// Quads returns the number of cells between grid neighbors.
func (g Grid) Quads() int {
	if g.Width < 2 || g.Height < 2 {
		return 0
	}
	return (g.Width - 1) * (g.Height - 1)
}

// Quad returns the corners of the quad whose top-left cell is (x,y), in order
// (x,y), (x+1,y), (x+1,y+1), (x,y+1).
func (g Grid) Quad(x, y int) (v1, v2, v3, v4 int) {
	return g.Index(x, y), g.Index(x+1, y), g.Index(x+1, y+1), g.Index(x, y+1)
}

// Next returns the grid for a block of the same shape appended after g.
func (g Grid) Next() Grid {
	return Grid{Width: g.Width, Height: g.Height, Offset: g.End()}
}
