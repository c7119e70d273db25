package segment

import (
	"image"
	"image/color"
	"testing"

	"github.com/flaww1/VC-TP/internal/coin"
	"github.com/flaww1/VC-TP/internal/raster"
)

func uniformImage(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFamilyMaskMaterials(t *testing.T) {
	tests := []struct {
		name   string
		c      color.Color
		family coin.Family
		want   bool
	}{
		{"gold tone is gold", color.RGBA{200, 180, 40, 255}, coin.FamilyGold, true},
		{"gold tone is not copper", color.RGBA{200, 180, 40, 255}, coin.FamilyCopper, false},
		{"copper tone is copper", color.RGBA{180, 90, 40, 255}, coin.FamilyCopper, true},
		{"copper tone is not gold", color.RGBA{180, 90, 40, 255}, coin.FamilyGold, false},
		{"silver tone is euro", color.RGBA{150, 150, 150, 255}, coin.FamilyEuro, true},
		{"gold tone is euro (bimetallic center)", color.RGBA{200, 180, 40, 255}, coin.FamilyEuro, true},
		{"blue is nothing", color.RGBA{20, 30, 200, 255}, coin.FamilyEuro, false},
		{"black is nothing", color.RGBA{0, 0, 0, 255}, coin.FamilyGold, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask, err := FamilyMask(uniformImage(tt.c, 8, 8), tt.family)
			if err != nil {
				t.Fatalf("FamilyMask: %v", err)
			}
			fg := mask.ForegroundCount()
			if tt.want && fg != 64 {
				t.Errorf("foreground = %d, want all 64", fg)
			}
			if !tt.want && fg != 0 {
				t.Errorf("foreground = %d, want 0", fg)
			}
		})
	}
}

func TestFamilyMaskRejectsBadInput(t *testing.T) {
	if _, err := FamilyMask(nil, coin.FamilyGold); err == nil {
		t.Error("accepted nil image")
	}
	if _, err := FamilyMask(uniformImage(color.White, 4, 4), coin.FamilyNone); err == nil {
		t.Error("accepted FamilyNone")
	}
}

func TestGrayMaskThreshold(t *testing.T) {
	img := uniformImage(color.Black, 20, 20)
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			img.Set(x, y, color.White)
		}
	}

	mask, err := GrayMask(img, 150, 0)
	if err != nil {
		t.Fatalf("GrayMask: %v", err)
	}
	if got := mask.ForegroundCount(); got != 100 {
		t.Errorf("foreground = %d, want 100", got)
	}
	if mask.At(0, 0) != 0 {
		t.Error("background corner marked foreground")
	}
	if mask.At(10, 10) != 255 {
		t.Error("white center not foreground")
	}
}

func mustMask(t *testing.T, w, h int) *raster.Raster {
	t.Helper()
	r, err := raster.NewBinary(w, h)
	if err != nil {
		t.Fatalf("NewBinary: %v", err)
	}
	return r
}

func TestOpenRemovesSpeckle(t *testing.T) {
	src := mustMask(t, 30, 30)
	// A real object and a lone noise pixel.
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			src.Set(x, y, 255)
		}
	}
	src.Set(3, 3, 255)

	out, err := Open(src, 3)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if out.At(3, 3) != 0 {
		t.Error("speckle survived opening")
	}
	if out.At(14, 14) != 255 {
		t.Error("object interior removed by opening")
	}
}

func TestCloseFillsHole(t *testing.T) {
	src := mustMask(t, 30, 30)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			src.Set(x, y, 255)
		}
	}
	src.Set(14, 14, 0)

	out, err := Close(src, 3)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if out.At(14, 14) != 255 {
		t.Error("hole not filled by closing")
	}
}

func TestErodeDilateInverse(t *testing.T) {
	src := mustMask(t, 20, 20)
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			src.Set(x, y, 255)
		}
	}

	eroded, err := Erode(src, 3)
	if err != nil {
		t.Fatalf("Erode: %v", err)
	}
	if eroded.At(5, 5) != 0 {
		t.Error("square corner survived erosion")
	}
	if eroded.At(10, 10) != 255 {
		t.Error("square interior eroded")
	}

	restored, err := Dilate(eroded, 3)
	if err != nil {
		t.Fatalf("Dilate: %v", err)
	}
	// Opening a solid convex square restores it exactly.
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			if restored.At(x, y) != 255 {
				t.Fatalf("pixel (%d, %d) lost after erode+dilate", x, y)
			}
		}
	}
}

func TestMorphologyRejectsBadElement(t *testing.T) {
	src := mustMask(t, 10, 10)
	if _, err := Erode(src, 0); err == nil {
		t.Error("accepted zero element size")
	}
	if _, err := Dilate(src, 4); err == nil {
		t.Error("accepted even element size")
	}
	if _, err := Open(nil, 3); err == nil {
		t.Error("accepted nil raster")
	}
}
