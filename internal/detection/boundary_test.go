package detection

import (
	"reflect"
	"testing"

	"github.com/pixelize/pixelize/internal/imaging"
)

var (
	testWindow = ScanWindow{Left: 5, Right: 3, Top: 3, Bottom: 3}
	testRule   = FragmentRule{Columns: 6, MaxInk: 6}
)

// maskWithBlocks returns a white width×height mask with ink in each block
// [x0, x1] × [y0, y1], inclusive.
func maskWithBlocks(width, height int, blocks ...[4]int) imaging.Mask {
	g := imaging.NewGrid(width, height, imaging.White)
	for _, b := range blocks {
		for y := b[2]; y <= b[3]; y++ {
			for x := b[0]; x <= b[1]; x++ {
				g.Pix[y*width+x] = imaging.Black
			}
		}
	}
	return g.Mask()
}

func TestInkColumns(t *testing.T) {
	m := maskWithBlocks(30, 20,
		[4]int{2, 3, 5, 10},    // left of the window
		[4]int{8, 10, 5, 10},   // inside
		[4]int{14, 14, 0, 2},   // above the row band
		[4]int{18, 18, 17, 19}, // below the row band
		[4]int{20, 21, 16, 16}, // last scanned row
		[4]int{27, 27, 5, 10},  // right margin
	)

	got := InkColumns(m, testWindow)
	want := []int{8, 9, 10, 20, 21}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InkColumns: got %v, want %v", got, want)
	}
}

func TestInkColumns_Blank(t *testing.T) {
	if cols := InkColumns(maskWithBlocks(30, 20), testWindow); len(cols) != 0 {
		t.Errorf("blank mask: got %v", cols)
	}
	// A mask narrower than its margins has nothing to scan.
	if cols := InkColumns(maskWithBlocks(6, 20, [4]int{0, 5, 0, 19}), testWindow); len(cols) != 0 {
		t.Errorf("narrow mask: got %v", cols)
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		cols []int
		want []int
	}{
		{"empty", nil, nil},
		{"single run", []int{5, 6, 7}, nil},
		{"two runs", []int{5, 6, 7, 10, 11}, []int{7}},
		{"three runs", []int{5, 8, 9, 12}, []int{5, 9}},
		{"single column", []int{12}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Candidates(tt.cols); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidates(%v): got %v, want %v", tt.cols, got, tt.want)
			}
		})
	}
}

func TestIsFragment(t *testing.T) {
	m := maskWithBlocks(40, 30,
		[4]int{5, 15, 5, 25},   // a glyph
		[4]int{20, 22, 10, 13}, // a speck of 4 rows
		[4]int{30, 30, 0, 6},   // a thin stroke of 7 rows
	)

	if IsFragment(m, 15, testRule) {
		t.Error("glyph edge should not be a fragment")
	}
	if !IsFragment(m, 22, testRule) {
		t.Error("speck should be a fragment")
	}
	if IsFragment(m, 30, testRule) {
		t.Error("7 ink pixels exceed the limit of 6")
	}
	// The sampled columns reach back over the glyph.
	if IsFragment(m, 18, testRule) {
		t.Error("columns 13..18 include glyph columns")
	}
	if !IsFragment(m, 2, testRule) {
		t.Error("columns before the left edge count as blank")
	}
}

func TestBoundaries(t *testing.T) {
	m := maskWithBlocks(100, 50,
		[4]int{10, 25, 10, 40},
		[4]int{30, 31, 20, 22}, // noise speck between glyphs
		[4]int{40, 55, 10, 40},
		[4]int{70, 85, 10, 40},
	)

	got := Boundaries(m, testWindow, testRule)
	want := []int{25, 55}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Boundaries: got %v, want %v", got, want)
	}

	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("boundaries not ascending: %v", got)
		}
	}
}

func TestBoundaries_SingleGlyph(t *testing.T) {
	m := maskWithBlocks(60, 50, [4]int{10, 25, 10, 40})
	if got := Boundaries(m, testWindow, testRule); len(got) != 0 {
		t.Errorf("single glyph: got %v, want none", got)
	}
}
