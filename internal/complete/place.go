package complete

// Point is a screen cell.
type Point struct {
	X, Y int
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Rect is a screen region.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Place positions a dropdown of the given size one row below the cursor and
// one column to its left, then moves it back inside viewport. A dropdown
// larger than the viewport is pinned to the viewport's top-left corner.
func Place(cursor Point, size Size, viewport Rect) Point {
	return Point{
		X: clamp(cursor.X-1, viewport.X, viewport.X+viewport.Width-size.Width),
		Y: clamp(cursor.Y+1, viewport.Y, viewport.Y+viewport.Height-size.Height),
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
