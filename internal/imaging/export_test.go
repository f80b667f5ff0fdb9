package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "char_00.png")
	g := NewGrid(6, 4, White)
	g.Pix[0] = Black

	if err := SavePNG(path, g.Image()); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	loaded, err := NewImageCache().LoadGrid(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !loaded.Equal(g) {
		t.Error("saved image differs from source")
	}
}

func TestEncodeBase64PNG(t *testing.T) {
	img := createInMemoryImage(12, 7, color.RGBA{0, 0, 255, 255})

	enc, err := EncodeBase64PNG(img)
	if err != nil {
		t.Fatalf("EncodeBase64PNG failed: %v", err)
	}
	if enc.Width != 12 || enc.Height != 7 {
		t.Errorf("size: got %dx%d, want 12x7", enc.Width, enc.Height)
	}
	if enc.MimeType != "image/png" {
		t.Errorf("MimeType: got %s", enc.MimeType)
	}

	raw, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 12, 7) {
		t.Errorf("decoded bounds: got %v", decoded.Bounds())
	}
}

func TestOverlayColumns(t *testing.T) {
	img := NewGrid(40, 20, White).Image()

	out := OverlayColumns(img, []int{5, 30, 99}, false, "#00FF00")
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}

	green := color.RGBA{0, 255, 0, 255}
	for y := 0; y < 20; y++ {
		if out.RGBAAt(5, y) != green || out.RGBAAt(30, y) != green {
			t.Fatalf("row %d: column line missing", y)
		}
	}
	if out.RGBAAt(6, 10) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("pixels beside a column line should be untouched")
	}
	if img.NRGBAAt(5, 0) != (color.NRGBA{255, 255, 255, 255}) {
		t.Error("OverlayColumns modified its input")
	}
}

func TestOverlayColumns_Labels(t *testing.T) {
	img := NewGrid(40, 20, White).Image()

	out := OverlayColumns(img, []int{10}, true, "not a color")
	if out.RGBAAt(10, 15) != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("invalid color should fall back to red, got %v", out.RGBAAt(10, 15))
	}
	// The label box starts two pixels right of the line.
	if out.RGBAAt(13, 3) == (color.RGBA{255, 255, 255, 255}) && out.RGBAAt(12, 3) == (color.RGBA{255, 255, 255, 255}) {
		t.Error("label not drawn")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"00FF0080", color.RGBA{0, 255, 0, 128}, false},
		{"#12", color.RGBA{}, true},
		{"", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
