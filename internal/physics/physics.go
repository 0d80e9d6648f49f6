// Package physics provides collision detection and bounds utilities.
package physics

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// CenterX returns the horizontal centre of the rectangle.
func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

// Overlaps reports whether two rectangles intersect.
// Edges that only touch do not count as an overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Clamp limits v to the range [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampX returns the x coordinate that keeps a rectangle of the given width
// fully inside [0, bound]. A rectangle wider than bound is pinned to 0.
func ClampX(x, width, bound float64) float64 {
	return Clamp(x, 0, bound-width)
}
