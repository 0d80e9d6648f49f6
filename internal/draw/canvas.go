package draw

import (
	"math"
	"sort"

	"github.com/tomz197/spacesurvivor/internal/physics"
)

// Point is a position in viewport pixels.
type Point struct {
	X, Y float64
}

// cell is one terminal character: a glyph and the sprite that coloured it.
// The zero value is an empty cell.
type cell struct {
	glyph  rune
	sprite string
}

// Canvas maps the pixel viewport onto a grid of terminal cells. Each cell
// covers cellWidth x cellHeight pixels and is lit when its centre lies inside
// a drawn shape. Render only emits the cells that changed since the last frame.
type Canvas struct {
	cols, rows int
	cellWidth  float64
	cellHeight float64

	cells []cell // Current frame, [row*cols + col]
	prev  []cell // Last rendered frame
	force bool   // Next Render repaints every cell

	intersectionBuf []float64 // Reusable buffer for scanline intersections
	scaledBuf       []Point   // Reusable buffer for shape points
}

// NewCanvas creates a canvas of cols x rows cells.
func NewCanvas(cols, rows int, cellWidth, cellHeight float64) *Canvas {
	c := &Canvas{cellWidth: cellWidth, cellHeight: cellHeight}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid size. A new size forces a full repaint.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == c.cols && rows == c.rows && c.cells != nil {
		return
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
	c.prev = make([]cell, cols*rows)
	c.force = true
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

// Cols returns the number of columns.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the number of rows.
func (c *Canvas) Rows() int { return c.rows }

// ViewportSize returns the pixel size covered by the grid.
func (c *Canvas) ViewportSize() (width, height float64) {
	return float64(c.cols) * c.cellWidth, float64(c.rows) * c.cellHeight
}

// Clear empties the current frame.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// At returns the glyph and sprite key at a cell, or a zero glyph if empty.
func (c *Canvas) At(col, row int) (rune, string) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, ""
	}
	cl := c.cells[row*c.cols+col]
	return cl.glyph, cl.sprite
}

// CellAt returns the cell containing a pixel position.
func (c *Canvas) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / c.cellWidth)), int(math.Floor(y / c.cellHeight))
}

func (c *Canvas) set(col, row int, v cell) {
	if col >= 0 && col < c.cols && row >= 0 && row < c.rows {
		c.cells[row*c.cols+col] = v
	}
}

// FillRect lights every cell whose centre lies inside r. A rectangle too
// small to cover any cell centre still lights the cell under its centre,
// so thin shots stay visible.
func (c *Canvas) FillRect(r physics.Rect, glyph rune, sprite string) {
	v := cell{glyph: glyph, sprite: sprite}

	colStart := int(math.Ceil(r.X/c.cellWidth - 0.5))
	colEnd := int(math.Ceil(r.Right()/c.cellWidth-0.5)) - 1
	rowStart := int(math.Ceil(r.Y/c.cellHeight - 0.5))
	rowEnd := int(math.Ceil(r.Bottom()/c.cellHeight-0.5)) - 1

	if colStart > colEnd || rowStart > rowEnd {
		col, row := c.CellAt(r.CenterX(), r.Y+r.Height/2)
		c.set(col, row, v)
		return
	}

	for row := rowStart; row <= rowEnd; row++ {
		for col := colStart; col <= colEnd; col++ {
			c.set(col, row, v)
		}
	}
}

// FillPolygon lights every cell whose centre lies inside the polygon, using
// a scanline fill sampled at cell centres. Points are in pixels.
func (c *Canvas) FillPolygon(points []Point, glyph rune, sprite string) bool {
	if len(points) < 3 {
		return false
	}
	v := cell{glyph: glyph, sprite: sprite}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	lit := false
	rowStart := max(0, int(math.Floor(minY/c.cellHeight)))
	rowEnd := min(c.rows-1, int(math.Ceil(maxY/c.cellHeight)))
	for row := rowStart; row <= rowEnd; row++ {
		scanY := (float64(row) + 0.5) * c.cellHeight

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := range n {
			p1, p2 := points[i], points[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections
		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			colStart := int(math.Ceil(intersections[i]/c.cellWidth - 0.5))
			colEnd := int(math.Floor(intersections[i+1]/c.cellWidth - 0.5))
			for col := colStart; col <= colEnd; col++ {
				c.set(col, row, v)
				lit = true
			}
		}
	}
	return lit
}

// shapeIn scales a unit-square outline into r. The returned slice is reused
// by the next call.
func (c *Canvas) shapeIn(shape []Point, r physics.Rect) []Point {
	if cap(c.scaledBuf) < len(shape) {
		c.scaledBuf = make([]Point, len(shape))
	}
	scaled := c.scaledBuf[:len(shape)]
	for i, p := range shape {
		scaled[i] = Point{X: r.X + p.X*r.Width, Y: r.Y + p.Y*r.Height}
	}
	return scaled
}

// Render writes the cells that changed since the previous Render to cw,
// styled by p. Cells are addressed 1-based in canvas coordinates.
func (c *Canvas) Render(cw *ChunkWriter, p *Palette) {
	for row := range c.rows {
		for col := range c.cols {
			i := row*c.cols + col
			cur := c.cells[i]
			if !c.force && cur == c.prev[i] {
				continue
			}
			c.prev[i] = cur

			cw.MoveCursor(col+1, row+1)
			if cur.glyph == 0 {
				cw.WriteByte(' ')
				continue
			}
			cw.WriteString(p.Glyph(cur.sprite, cur.glyph))
		}
	}
	c.force = false
}
