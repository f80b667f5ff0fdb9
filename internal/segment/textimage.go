package segment

import (
	"image"

	"github.com/pixelize/pixelize/internal/config"
	"github.com/pixelize/pixelize/internal/detection"
	"github.com/pixelize/pixelize/internal/imaging"
)

// TextImage is a full scanned line on its way through the pipeline.
//
// Each cleaning method swaps in a new grid computed from the previous one
// and re-derives the ink mask. A TextImage has a single owner and is not
// safe for concurrent use.
type TextImage struct {
	grid imaging.Grid
	mask imaging.Mask
	cfg  config.Segmentation
}

// NewTextImage converts img into a TextImage that will be processed with cfg.
func NewTextImage(img image.Image, cfg config.Segmentation) *TextImage {
	return NewTextImageFromGrid(imaging.FromImage(img), cfg)
}

// NewTextImageFromGrid wraps an existing grid. The grid is not copied; grids
// are never modified in place.
func NewTextImageFromGrid(g imaging.Grid, cfg config.Segmentation) *TextImage {
	t := &TextImage{cfg: cfg}
	t.setGrid(g)
	return t
}

func (t *TextImage) setGrid(g imaging.Grid) {
	t.grid = g
	t.mask = g.Mask()
}

// Grid returns the current pixels.
func (t *TextImage) Grid() imaging.Grid { return t.grid }

// Mask returns the ink mask of the current pixels.
func (t *TextImage) Mask() imaging.Mask { return t.mask }

// Image renders the current pixels.
func (t *TextImage) Image() *image.NRGBA { return t.grid.Image() }

// RemoveWatermark erases the watermark line and then runs the median pass.
//
// Pixels selected by the configured watermark predicate are painted black:
// they are whitened, and the pixels so whitened are blackened. Where the line
// crosses blank paper it is only a pixel or two thick and the median pass
// removes it; where it crosses a glyph it merges with the glyph's ink.
func (t *TextImage) RemoveWatermark() {
	if t.cfg.Watermark != nil {
		t.ReplacePixels(t.cfg.Watermark, imaging.Black)
	}
	t.RemoveLonelyArtifacts()
}

// RemoveLonelyArtifacts runs a 3×3 median over the red channel, removing
// isolated noise pixels. The result is gray.
func (t *TextImage) RemoveLonelyArtifacts() {
	t.setGrid(imaging.Median3x3(t.grid))
}

// ReplacePixels paints every pixel matching pred with c.
func (t *TextImage) ReplacePixels(pred imaging.Predicate, c imaging.RGBColor) {
	t.setGrid(t.grid.Replace(pred, c))
}

// ReplacePixelColor paints every pixel equal to current with c.
func (t *TextImage) ReplacePixelColor(current, c imaging.RGBColor) {
	t.ReplacePixels(imaging.Equals(current), c)
}

// ReplaceAboveBrightness paints every pixel brighter than limit with c.
func (t *TextImage) ReplaceAboveBrightness(limit float64, c imaging.RGBColor) {
	t.ReplacePixels(imaging.BrighterThan(limit), c)
}

// Binarize turns pixels brighter than limit white and all others black. The
// resulting ink mask is the same as after ReplaceAboveBrightness(limit, White).
func (t *TextImage) Binarize(limit float64) {
	bright := imaging.BrighterThan(limit)
	t.setGrid(t.grid.Map(func(c imaging.RGBColor) imaging.RGBColor {
		if bright(c) {
			return imaging.White
		}
		return imaging.Black
	}))
}

// Boundaries returns the columns at which the line will be cut.
func (t *TextImage) Boundaries() []int {
	return detection.Boundaries(t.mask, scanWindow(t.cfg), fragmentRule(t.cfg))
}

func scanWindow(cfg config.Segmentation) detection.ScanWindow {
	return detection.ScanWindow{
		Left:   cfg.ScanMarginLeft,
		Right:  cfg.ScanMarginRight,
		Top:    cfg.ScanMarginTop,
		Bottom: cfg.ScanMarginBottom,
	}
}

func fragmentRule(cfg config.Segmentation) detection.FragmentRule {
	return detection.FragmentRule{Columns: cfg.FragmentColumns, MaxInk: cfg.FragmentMaxInk}
}
