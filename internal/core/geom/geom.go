// Package geom holds the primitives shared by the dungeon generator and the
// visibility engine: integer cell rectangles, cells and float points.
package geom

import "math"

// Point represents a 2D point in pixel space
type Point struct {
	X, Y float64
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Lerp interpolates between p (f=0) and q (f=1)
func (p Point) Lerp(q Point, f float64) Point {
	return Point{p.X*(1-f) + q.X*f, p.Y*(1-f) + q.Y*f}
}

// Round snaps the point to the nearest integer coordinates
func (p Point) Round() Point {
	return Point{math.Round(p.X), math.Round(p.Y)}
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Cell represents a grid coordinate
type Cell struct {
	X, Y int
}

// DistSq returns the squared Euclidean distance between two cells
func (c Cell) DistSq(o Cell) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// Center returns the pixel centre of the cell for the given tile size
func (c Cell) Center(tileSize float64) Point {
	return Point{(float64(c.X) + 0.5) * tileSize, (float64(c.Y) + 0.5) * tileSize}
}

// Rect is a half-open cell rectangle covering [X, X+W) x [Y, Y+H)
type Rect struct {
	X, Y, W, H int
}

// Right returns the first column past the rectangle
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps reports whether r and o share at least one cell.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Expand grows the rectangle by dx on the left and right and dy on the top and bottom
func (r Rect) Expand(dx, dy int) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// Contains reports whether the cell lies inside the rectangle
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Bottom()
}

// Center returns the centre cell (rounded down)
func (r Rect) Center() Cell {
	return Cell{r.X + r.W/2, r.Y + r.H/2}
}

// Pixels converts the rectangle's outer edges to pixel coordinates
func (r Rect) Pixels(tileSize float64) (left, top, right, bottom float64) {
	return float64(r.X) * tileSize, float64(r.Y) * tileSize,
		float64(r.Right()) * tileSize, float64(r.Bottom()) * tileSize
}
