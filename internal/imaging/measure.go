package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// CompareResult describes how closely two ink masks agree.
type CompareResult struct {
	SimilarityPercent float64 `json:"similarity_percent"`
	MatchingPixels    int     `json:"matching_pixels"`
	TotalPixels       int     `json:"total_pixels"`
}

// CompareMasks counts the cells on which a and b agree (both ink or both
// blank). The masks must have the same dimensions.
func CompareMasks(a, b Mask) (*CompareResult, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("mask sizes differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	total := a.Width * a.Height
	if total == 0 {
		return nil, fmt.Errorf("cannot compare empty masks")
	}

	matching := 0
	for i := range a.Bits {
		if a.Bits[i] == b.Bits[i] {
			matching++
		}
	}

	return &CompareResult{
		SimilarityPercent: math.Round(float64(matching)/float64(total)*10000) / 100,
		MatchingPixels:    matching,
		TotalPixels:       total,
	}, nil
}

// CompareWithTemplate resizes template to the size of m and compares their
// ink masks. Bicubic resampling introduces gray edge pixels in the template,
// and those count as ink.
func CompareWithTemplate(m Mask, template image.Image) (*CompareResult, error) {
	if m.Width == 0 || m.Height == 0 {
		return nil, fmt.Errorf("cannot compare empty masks")
	}
	resized := imaging.Resize(template, m.Width, m.Height, imaging.CatmullRom)
	return CompareMasks(m, FromImage(resized).Mask())
}
