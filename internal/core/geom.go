// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned cell rectangle used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Box is a world-space rectangle in pixels.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Overlaps reports strict AABB overlap (touching edges do not count).
func (b Box) Overlaps(other Box) bool {
	return b.X < other.Right() && other.X < b.Right() &&
		b.Y < other.Bottom() && other.Y < b.Bottom()
}

// Circle is a world-space circle used for forgiving hitboxes.
type Circle struct {
	X, Y float64 // Center
	R    float64
}

// CircleHitsBox reports whether the circle reaches into the box, using the
// squared distance from the center to the closest point of the box.
func CircleHitsBox(c Circle, b Box) bool {
	nx := ClampF(c.X, b.X, b.Right())
	ny := ClampF(c.Y, b.Y, b.Bottom())
	dx := c.X - nx
	dy := c.Y - ny
	return dx*dx+dy*dy < c.R*c.R
}

// CirclesOverlap reports whether two circles overlap (squared distance test).
func CirclesOverlap(a, b Circle) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	r := a.R + b.R
	return dx*dx+dy*dy < r*r
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
