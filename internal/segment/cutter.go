package segment

import (
	"fmt"
	"image"

	"github.com/pixelize/pixelize/internal/config"
	"github.com/pixelize/pixelize/internal/imaging"
)

type segmentKind int

const (
	// segmentFirst ends just before the first boundary; blank leading
	// columns are trimmed.
	segmentFirst segmentKind = iota
	// segmentInterior lies between two boundaries.
	segmentInterior
	// segmentLast runs from the last boundary to the right edge; blank
	// trailing columns are trimmed.
	segmentLast
	// segmentSole covers a line without boundaries and is trimmed on both
	// sides.
	segmentSole
)

func (k segmentKind) String() string {
	switch k {
	case segmentFirst:
		return "first"
	case segmentInterior:
		return "interior"
	case segmentLast:
		return "last"
	case segmentSole:
		return "sole"
	default:
		return fmt.Sprintf("segmentKind(%d)", int(k))
	}
}

// segment spans columns [x0, x1) and rows [y0, y1) of the line. The bounds
// are kept raw because image.Rect would silently swap inverted edges.
type segment struct {
	kind   segmentKind
	x0, x1 int
	y0, y1 int
}

// planSegments turns k boundaries into k+1 cut rectangles, left to right.
func planSegments(boundaries []int, width int, cfg config.Segmentation) []segment {
	top := cfg.RowBandTop
	bottom := cfg.RowBandTop + cfg.RowBandHeight

	if len(boundaries) == 0 {
		return []segment{{kind: segmentSole, x0: cfg.ScanMarginLeft, x1: width, y0: top, y1: bottom}}
	}

	segs := make([]segment, 0, len(boundaries)+1)
	segs = append(segs, segment{
		kind: segmentFirst,
		x0:   cfg.ScanMarginLeft,
		x1:   boundaries[0] - cfg.FirstCutTrailInset,
		y0:   top,
		y1:   bottom,
	})
	for i := 1; i < len(boundaries); i++ {
		segs = append(segs, segment{
			kind: segmentInterior,
			x0:   boundaries[i-1] + cfg.CutLeadInset,
			x1:   boundaries[i],
			y0:   top,
			y1:   bottom,
		})
	}
	last := boundaries[len(boundaries)-1]
	segs = append(segs, segment{
		kind: segmentLast,
		x0:   last + cfg.CutLeadInset,
		x1:   width,
		y0:   top,
		y1:   bottom,
	})
	return segs
}

// cropSegment cuts s out of g. A segment whose right edge falls left of its
// left edge is empty rather than flipped.
func cropSegment(g imaging.Grid, s segment) imaging.Grid {
	if s.x1 <= s.x0 || s.y1 <= s.y0 {
		return imaging.Grid{}
	}
	part := imaging.Crop(g, image.Rect(s.x0, s.y0, s.x1, s.y1))

	switch s.kind {
	case segmentFirst:
		return trimLeading(part)
	case segmentInterior:
		return part
	case segmentLast:
		return trimTrailing(part)
	case segmentSole:
		return trimTrailing(trimLeading(part))
	default:
		panic(fmt.Sprintf("segment: unknown segment kind %v", s.kind))
	}
}

// trimLeading drops the blank columns before the first ink column. A grid
// without ink is returned unchanged.
func trimLeading(g imaging.Grid) imaging.Grid {
	m := g.Mask()
	for x := 0; x < m.Width; x++ {
		if m.ColumnInk(x) > 0 {
			return imaging.Crop(g, image.Rect(x, 0, g.Width, g.Height))
		}
	}
	return g
}

// trimTrailing keeps the columns left of the last ink column, which is the
// ink column with the greatest index met while scanning every column. The
// last ink column itself is not kept. Without ink the result is empty.
func trimTrailing(g imaging.Grid) imaging.Grid {
	m := g.Mask()
	lastInk := 0
	for x := 0; x < m.Width; x++ {
		if m.ColumnInk(x) > 0 {
			lastInk = x
		}
	}
	return imaging.Crop(g, image.Rect(0, 0, lastInk, g.Height))
}

// mergeThin folds the parts left to right. A part no wider than maxWidth is
// appended to the right of the last kept part instead of standing alone; the
// first part is always kept.
func mergeThin(parts []imaging.Grid, maxWidth int) []imaging.Grid {
	out := make([]imaging.Grid, 0, len(parts))
	for _, p := range parts {
		if len(out) > 0 && p.Width <= maxWidth {
			out[len(out)-1] = imaging.CombineHorizontal(out[len(out)-1], p)
			continue
		}
		out = append(out, p)
	}
	return out
}

// SplitIntoCharacterImages cuts the line at its boundaries. Thin slices are
// merged into their left neighbour and the survivors are numbered 0..n-1 in
// reading order.
func (t *TextImage) SplitIntoCharacterImages() []*CharacterImage {
	segs := planSegments(t.Boundaries(), t.grid.Width, t.cfg)

	parts := make([]imaging.Grid, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, cropSegment(t.grid, s))
	}
	parts = mergeThin(parts, t.cfg.MergeMaxWidth)

	chars := make([]*CharacterImage, len(parts))
	for i, p := range parts {
		chars[i] = newCharacterImage(p, i, limitsFrom(t.cfg))
	}
	return chars
}
