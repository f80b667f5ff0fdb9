package segment

import (
	"fmt"
	"image"

	"github.com/pixelize/pixelize/internal/config"
)

// Result is the output of Segment.
type Result struct {
	// Denoised is the line after watermark removal and the median pass.
	Denoised *image.NRGBA
	// Binarized is the black and white line the boundaries were found on.
	Binarized *image.NRGBA
	// Boundaries are the cut columns, ascending.
	Boundaries []int
	// Characters are numbered 0..n-1 left to right.
	Characters []*CharacterImage
}

// Segment runs the whole pipeline on a scanned line.
func Segment(img image.Image, cfg config.Segmentation) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid segmentation config: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	line := NewTextImage(img, cfg)
	line.RemoveWatermark()
	denoised := line.Image()

	line.Binarize(cfg.BrightnessLimit)

	return &Result{
		Denoised:   denoised,
		Binarized:  line.Image(),
		Boundaries: line.Boundaries(),
		Characters: line.SplitIntoCharacterImages(),
	}, nil
}

// Refine applies the usual reaction to the advisory flags: lost fragments
// are dropped, characters holding two glyphs are split at
// cfg.SplitRatePercent, and the survivors are renumbered 0..n-1.
func Refine(chars []*CharacterImage, cfg config.Segmentation) []*CharacterImage {
	out := make([]*CharacterImage, 0, len(chars))
	keep := func(c *CharacterImage) {
		if c.IsALostFragment() {
			return
		}
		out = append(out, c.withPlace(len(out)))
	}

	for _, c := range chars {
		if c.IsALostFragment() {
			continue
		}
		if !c.HasMoreThanOneCharacterInside() {
			keep(c)
			continue
		}
		a, b, err := c.SplitInto2Characters(cfg.SplitRatePercent, 0, 0)
		if err != nil {
			keep(c)
			continue
		}
		keep(a)
		keep(b)
	}
	return out
}
