package game

import "math"

// Container is the visible surface an overlay is laid over. A zero width or
// height means the surface is absent or hidden.
type Container interface {
	Size() (width, height int)
}

// Cell is one opaque rectangle of the overlay grid.
type Cell struct {
	Row, Col   int
	X, Y, W, H float64
}

// GridOverlay is an m×m mesh of cells covering a container. Cells are kept in
// row-major creation order; removal takes them out of the mesh for good.
type GridOverlay struct {
	id      int
	size    int
	width   float64
	height  float64
	cells   []Cell
	total   int
	mounted bool
}

// GridDimension returns m = round(sqrt(squareCount)).
func GridDimension(squareCount int) int {
	if squareCount <= 0 {
		return 0
	}
	return int(math.Round(math.Sqrt(float64(squareCount))))
}

func newGridOverlay(id, m int, width, height float64) *GridOverlay {
	o := &GridOverlay{
		id:     id,
		size:   m,
		width:  width,
		height: height,
		cells:  make([]Cell, 0, m*m),
		total:  m * m,
	}
	if m == 0 {
		return o
	}
	cellW := width / float64(m)
	cellH := height / float64(m)
	for row := 0; row < m; row++ {
		for col := 0; col < m; col++ {
			o.cells = append(o.cells, Cell{
				Row: row,
				Col: col,
				X:   float64(col) * cellW,
				Y:   float64(row) * cellH,
				W:   cellW,
				H:   cellH,
			})
		}
	}
	return o
}

// ID is a per-manager sequence number, distinct for every overlay built.
func (o *GridOverlay) ID() int { return o.id }

// Dimension returns m, the number of rows and columns.
func (o *GridOverlay) Dimension() int { return o.size }

// Bounds returns the container size the mesh was computed from.
func (o *GridOverlay) Bounds() (width, height float64) { return o.width, o.height }

// Total returns the number of cells the overlay was created with.
func (o *GridOverlay) Total() int { return o.total }

// Remaining returns the number of cells still covering the imagery.
func (o *GridOverlay) Remaining() int { return len(o.cells) }

// Mounted reports whether the overlay is still attached to its container.
func (o *GridOverlay) Mounted() bool { return o.mounted }

// Cells returns a copy of the remaining cells.
func (o *GridOverlay) Cells() []Cell {
	out := make([]Cell, len(o.cells))
	copy(out, o.cells)
	return out
}

// removeAt takes the i-th remaining cell out of the mesh, keeping order.
func (o *GridOverlay) removeAt(i int) Cell {
	c := o.cells[i]
	o.cells = append(o.cells[:i], o.cells[i+1:]...)
	return c
}
