package gui

import "fmt"

// BoundingBox is an axis-aligned rectangle stored as its min and max corners.
// It is the region type used by the selection box.
type BoundingBox struct {
	Min, Max Vec2
}

// NewBoundingBox builds a box from two arbitrary corners.
func NewBoundingBox(a, b Vec2) BoundingBox {
	return BoundingBox{Min: a.Min(b), Max: a.Max(b)}
}

// BoundingBoxFromRect converts a position+size rectangle.
func BoundingBoxFromRect(r Rect) BoundingBox {
	return BoundingBox{Min: Vec2{r.X, r.Y}, Max: r.Max()}
}

// Set replaces both corners.
func (b *BoundingBox) Set(minCorner, maxCorner Vec2) {
	b.Min = minCorner
	b.Max = maxCorner
}

// Overlaps reports whether the two boxes intersect with non-zero area.
// Touching edges do not count.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	return b.Min.X < other.Max.X &&
		b.Min.Y < other.Max.Y &&
		other.Min.X < b.Max.X &&
		other.Min.Y < b.Max.Y
}

// Size returns the width and height of the box.
func (b BoundingBox) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// Rect converts the box to position+size form.
func (b BoundingBox) Rect() Rect {
	s := b.Size()
	return Rect{X: b.Min.X, Y: b.Min.Y, W: s.X, H: s.Y}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("Min: (%g, %g) Max: (%g, %g)", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}
