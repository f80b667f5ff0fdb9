package segment

import (
	"fmt"
	"image"

	"github.com/pixelize/pixelize/internal/config"
	"github.com/pixelize/pixelize/internal/imaging"
)

// limits are the classification thresholds a CharacterImage is judged by.
type limits struct {
	maxWidth int
	minInk   int
}

func limitsFrom(cfg config.Segmentation) limits {
	return limits{maxWidth: cfg.MaxCharacterWidth, minInk: cfg.MinCharacterInk}
}

// CharacterImage is one cut-out character of a line, tightened to its ink.
type CharacterImage struct {
	grid   imaging.Grid
	mask   imaging.Mask
	place  int
	limits limits
}

// NewCharacterImage builds a character at ordinal place from img, judged by
// the thresholds in cfg.
func NewCharacterImage(img image.Image, place int, cfg config.Segmentation) *CharacterImage {
	return newCharacterImage(imaging.FromImage(img), place, limitsFrom(cfg))
}

func newCharacterImage(g imaging.Grid, place int, l limits) *CharacterImage {
	g = tighten(g)
	return &CharacterImage{grid: g, mask: g.Mask(), place: place, limits: l}
}

// tighten crops g to [left, right) × [up, down), where left and up are the
// first ink column and row and right and down are the last ink column and row
// found scanning back toward index 1. A degenerate box leaves g unchanged.
func tighten(g imaging.Grid) imaging.Grid {
	m := g.Mask()

	left := 0
	for x := 0; x < m.Width; x++ {
		if m.ColumnInk(x) > 0 {
			left = x
			break
		}
	}
	right := 0
	for x := m.Width - 1; x > 0; x-- {
		if m.ColumnInk(x) > 0 {
			right = x
			break
		}
	}
	up := 0
	for y := 0; y < m.Height; y++ {
		if m.RowInk(y) > 0 {
			up = y
			break
		}
	}
	down := 0
	for y := m.Height - 1; y > 0; y-- {
		if m.RowInk(y) > 0 {
			down = y
			break
		}
	}

	if right-left <= 0 || down-up <= 0 {
		return g
	}
	return imaging.Crop(g, image.Rect(left, up, right, down))
}

// Place is the zero-based position of the character in its line.
func (c *CharacterImage) Place() int { return c.place }

// Width of the character in pixels.
func (c *CharacterImage) Width() int { return c.grid.Width }

// Height of the character in pixels.
func (c *CharacterImage) Height() int { return c.grid.Height }

// Empty reports whether the character has no pixels at all.
func (c *CharacterImage) Empty() bool { return c.grid.Empty() }

// Grid returns the character's pixels.
func (c *CharacterImage) Grid() imaging.Grid { return c.grid }

// Mask returns the character's ink mask.
func (c *CharacterImage) Mask() imaging.Mask { return c.mask }

// Image renders the character.
func (c *CharacterImage) Image() *image.NRGBA { return c.grid.Image() }

// InkPixels counts the character's ink pixels.
func (c *CharacterImage) InkPixels() int { return c.mask.BlackPixels() }

// HasMoreThanOneCharacterInside reports that the character is wider than a
// single glyph can be and should be split.
func (c *CharacterImage) HasMoreThanOneCharacterInside() bool {
	return c.grid.Width > c.limits.maxWidth
}

// IsALostFragment reports that the character carries too little ink to be a
// glyph and should be discarded.
func (c *CharacterImage) IsALostFragment() bool {
	return c.InkPixels() < c.limits.minInk
}

// SplitInto2Characters cuts the character vertically at ratePercent of its
// width. The halves are tightened again and numbered firstPlace and
// secondPlace.
func (c *CharacterImage) SplitInto2Characters(ratePercent, firstPlace, secondPlace int) (*CharacterImage, *CharacterImage, error) {
	if ratePercent <= 0 || ratePercent >= 100 {
		return nil, nil, fmt.Errorf("split rate must be between 1 and 99 percent, got %d", ratePercent)
	}
	left, right, err := imaging.SplitVertical(c.grid, ratePercent*c.grid.Width/100)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to split character %d: %w", c.place, err)
	}
	return newCharacterImage(left, firstPlace, c.limits), newCharacterImage(right, secondPlace, c.limits), nil
}

// Compare scores the character's ink mask against a template image resized
// to the character's size.
func (c *CharacterImage) Compare(template image.Image) (*imaging.CompareResult, error) {
	return imaging.CompareWithTemplate(c.mask, template)
}

// withPlace returns a copy of c numbered place.
func (c *CharacterImage) withPlace(place int) *CharacterImage {
	cp := *c
	cp.place = place
	return &cp
}
