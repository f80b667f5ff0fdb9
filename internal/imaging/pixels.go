package imaging

import (
	"image"
	"image/color"
	"slices"
)

// Grid is a row-major raster of RGB pixels with its origin at the top-left.
//
// Grid values are treated as immutable: every transformation in this package
// returns a new Grid and leaves its input untouched, so a pass can always read
// the complete pre-pass state of the image it is rewriting.
type Grid struct {
	Width  int
	Height int
	Pix    []RGBColor
}

// NewGrid creates a width × height grid filled with c.
func NewGrid(width, height int, c RGBColor) Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pix := make([]RGBColor, width*height)
	for i := range pix {
		pix[i] = c
	}
	return Grid{Width: width, Height: height, Pix: pix}
}

// FromImage converts any image.Image into a Grid. Alpha is discarded and
// 16-bit channels are reduced to 8 bits.
func FromImage(img image.Image) Grid {
	bounds := img.Bounds()
	g := Grid{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    make([]RGBColor, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Pix[y*g.Width+x] = RGBFromColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}
	return g
}

// Image renders the grid as an opaque NRGBA image with bounds (0,0)-(w,h).
func (g Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Pix[y*g.Width+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// At returns the pixel at (x, y). The caller must stay inside the grid.
func (g Grid) At(x, y int) RGBColor {
	return g.Pix[y*g.Width+x]
}

// Empty reports whether the grid has no pixels.
func (g Grid) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	pix := make([]RGBColor, len(g.Pix))
	copy(pix, g.Pix)
	return Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

// Equal reports whether two grids have the same size and pixels.
func (g Grid) Equal(other Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i := range g.Pix {
		if g.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Map returns a new grid where every pixel is replaced by fn(pixel).
func (g Grid) Map(fn func(RGBColor) RGBColor) Grid {
	out := Grid{Width: g.Width, Height: g.Height, Pix: make([]RGBColor, len(g.Pix))}
	for i, c := range g.Pix {
		out.Pix[i] = fn(c)
	}
	return out
}

// Replace returns a new grid where every pixel matching pred becomes c.
func (g Grid) Replace(pred Predicate, c RGBColor) Grid {
	return g.Map(func(p RGBColor) RGBColor {
		if pred(p) {
			return c
		}
		return p
	})
}

// Colors lists the distinct colors of the grid in first-seen order.
func (g Grid) Colors() []RGBColor {
	seen := make(map[RGBColor]struct{})
	var out []RGBColor
	for _, c := range g.Pix {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Mask derives the ink mask of the grid: a cell is set iff its pixel is not
// exactly pure white.
func (g Grid) Mask() Mask {
	m := Mask{Width: g.Width, Height: g.Height, Bits: make([]bool, len(g.Pix))}
	for i, c := range g.Pix {
		m.Bits[i] = c != White
	}
	return m
}

// Median3x3 applies a 3×3 median filter over the red channel and writes the
// result as equal-RGB gray.
//
// Neighbours outside the grid contribute an intensity of 0, so border pixels
// are biased toward black. All samples come from g; the result is a new grid.
func Median3x3(g Grid) Grid {
	out := Grid{Width: g.Width, Height: g.Height, Pix: make([]RGBColor, len(g.Pix))}
	var window [9]uint8
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= g.Width || ny >= g.Height {
						window[n] = 0
					} else {
						window[n] = g.Pix[ny*g.Width+nx].R
					}
					n++
				}
			}
			slices.Sort(window[:])
			mid := window[4]
			out.Pix[y*g.Width+x] = RGBColor{R: mid, G: mid, B: mid}
		}
	}
	return out
}

// Mask is a row-major boolean ink map with the same dimensions as the Grid it
// was derived from. Masks are never edited; recompute them from the grid.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// Ink reports whether (x, y) holds ink. Coordinates outside the mask are blank.
func (m Mask) Ink(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// BlackPixels counts the ink cells of the mask.
func (m Mask) BlackPixels() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// ColumnInk counts ink cells in column x over the full height. Columns outside
// the mask count as zero.
func (m Mask) ColumnInk(x int) int {
	if x < 0 || x >= m.Width {
		return 0
	}
	n := 0
	for y := 0; y < m.Height; y++ {
		if m.Bits[y*m.Width+x] {
			n++
		}
	}
	return n
}

// RowInk counts ink cells in row y over the full width. Rows outside the mask
// count as zero.
func (m Mask) RowInk(y int) int {
	if y < 0 || y >= m.Height {
		return 0
	}
	n := 0
	for x := 0; x < m.Width; x++ {
		if m.Bits[y*m.Width+x] {
			n++
		}
	}
	return n
}

// VerticalRuns counts the separate ink runs in column x.
func (m Mask) VerticalRuns(x int) int {
	runs := 0
	inRun := false
	for y := 0; y < m.Height; y++ {
		if m.Ink(x, y) {
			if !inRun {
				runs++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	return runs
}

// HorizontalRuns counts the separate ink runs in row y.
func (m Mask) HorizontalRuns(y int) int {
	runs := 0
	inRun := false
	for x := 0; x < m.Width; x++ {
		if m.Ink(x, y) {
			if !inRun {
				runs++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	return runs
}

// Image renders the mask with black ink on a white background.
func (m Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Bits[y*m.Width+x] {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
