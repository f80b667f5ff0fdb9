package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Crop extracts the rectangle r of g as a new grid.
//
// r is clipped to the grid, so a rectangle that is partly outside yields the
// overlapping part and one that misses the grid entirely yields an empty grid.
// Crop never fails.
func Crop(g Grid, r image.Rectangle) Grid {
	r = r.Canon().Intersect(image.Rect(0, 0, g.Width, g.Height))
	if r.Empty() {
		return Grid{}
	}
	return FromImage(imaging.Crop(g.Image(), r))
}

// CombineHorizontal places right immediately to the right of left. The result
// is as wide as both and as tall as the taller; uncovered pixels are white.
func CombineHorizontal(left, right Grid) Grid {
	width := left.Width + right.Width
	height := max(left.Height, right.Height)
	if width == 0 || height == 0 {
		return Grid{}
	}

	canvas := imaging.New(width, height, color.White)
	canvas = imaging.Paste(canvas, left.Image(), image.Pt(0, 0))
	canvas = imaging.Paste(canvas, right.Image(), image.Pt(left.Width, 0))
	return FromImage(canvas)
}

// SplitVertical cuts g at column x into [0, x) and [x, width).
func SplitVertical(g Grid, x int) (Grid, Grid, error) {
	if x <= 0 || x >= g.Width {
		return Grid{}, Grid{}, fmt.Errorf("split column %d outside (0,%d)", x, g.Width)
	}
	left := Crop(g, image.Rect(0, 0, x, g.Height))
	right := Crop(g, image.Rect(x, 0, g.Width, g.Height))
	return left, right, nil
}
