package atlas

import (
	"errors"
	"fmt"
	"image"
)

var ErrInvalidGrid = errors.New("atlas: invalid grid")

// Grid is a uniform cell layout over a sprite sheet. Cells are numbered
// left-to-right, top-to-bottom starting at 0.
type Grid struct {
	CellW   int
	CellH   int
	Columns int
	Rows    int
}

// NewGrid builds a grid from descriptor cell sizes. Descriptors reject
// fractional sizes, so the conversion to whole pixels is exact for them.
func NewGrid(cellW, cellH float64, columns, rows int) Grid {
	return Grid{CellW: int(cellW), CellH: int(cellH), Columns: columns, Rows: rows}
}

func (g Grid) Validate() error {
	if g.CellW <= 0 || g.CellH <= 0 {
		return fmt.Errorf("%w: cell %dx%d", ErrInvalidGrid, g.CellW, g.CellH)
	}
	if g.Columns <= 0 || g.Rows <= 0 {
		return fmt.Errorf("%w: %d columns x %d rows", ErrInvalidGrid, g.Columns, g.Rows)
	}
	return nil
}

// Len is the number of cells.
func (g Grid) Len() int {
	if g.Columns <= 0 || g.Rows <= 0 {
		return 0
	}
	return g.Columns * g.Rows
}

// Bounds is the pixel area the grid covers.
func (g Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.CellW*g.Columns, g.CellH*g.Rows)
}

// Rect returns the pixel rectangle of cell index.
func (g Grid) Rect(index uint32) (image.Rectangle, bool) {
	if int64(index) >= int64(g.Len()) {
		return image.Rectangle{}, false
	}
	col := int(index) % g.Columns
	row := int(index) / g.Columns
	x := col * g.CellW
	y := row * g.CellH
	return image.Rect(x, y, x+g.CellW, y+g.CellH), true
}
