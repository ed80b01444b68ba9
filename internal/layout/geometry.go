package layout

// Size is a width and height in points
type Size struct {
	W, H float64
}

// Insets are the safe-area margins of a container
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Rect is a frame in container coordinates; Y grows downward
type Rect struct {
	X, Y, W, H float64
}

// MinY returns the top edge
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains reports whether the point lies inside r (right and bottom edges exclusive)
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Geometry is what the presenter host reports about its container
type Geometry struct {
	Container Size
	SafeArea  Insets
}

// Valid reports whether the geometry can lay out a sheet
func (g Geometry) Valid() bool {
	return g.Container.W > 0 && g.Container.H > 0 && g.SafeArea.Top < g.Container.H
}
