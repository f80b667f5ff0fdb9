package detection

import "github.com/pixelize/pixelize/internal/imaging"

// ScanWindow bounds the part of a line scan searched for ink. Columns
// [Left, width-Right) and rows [Top, height-Bottom) are scanned; the margins
// keep border noise out of the boundary list.
type ScanWindow struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// FragmentRule decides when a boundary falls inside a thin noise fragment
// instead of a real gap between glyphs.
type FragmentRule struct {
	// Columns is how many columns, ending at the boundary, are sampled.
	Columns int
	// MaxInk is the largest per-column ink count a fragment column may carry.
	MaxInk int
}

// InkColumns returns, in ascending order, every column of the scan window
// that carries at least one ink pixel inside the window's row band.
func InkColumns(m imaging.Mask, w ScanWindow) []int {
	var cols []int
	for x := w.Left; x < m.Width-w.Right; x++ {
		for y := w.Top; y < m.Height-w.Bottom; y++ {
			if m.Ink(x, y) {
				cols = append(cols, x)
				break
			}
		}
	}
	return cols
}

// Candidates returns the right edges of the ink runs in cols: every column
// whose successor in cols is not the next column. The last ink column of the
// line is never a candidate since nothing follows it.
func Candidates(cols []int) []int {
	var out []int
	for i := 0; i+1 < len(cols); i++ {
		if cols[i]+1 == cols[i+1] {
			continue
		}
		out = append(out, cols[i])
	}
	return out
}

// IsFragment reports whether every one of the rule's columns ending at x
// (x, x-1, ...) holds at most MaxInk ink pixels over the full mask height.
func IsFragment(m imaging.Mask, x int, rule FragmentRule) bool {
	for i := 0; i < rule.Columns; i++ {
		if m.ColumnInk(x-i) > rule.MaxInk {
			return false
		}
	}
	return true
}

// Boundaries finds the cut points of a binarized line: the right edges of ink
// runs that are not fragments, ascending.
func Boundaries(m imaging.Mask, w ScanWindow, rule FragmentRule) []int {
	var out []int
	for _, x := range Candidates(InkColumns(m, w)) {
		if IsFragment(m, x, rule) {
			continue
		}
		out = append(out, x)
	}
	return out
}
