package blob

import (
	"testing"

	"github.com/flaww1/VC-TP/internal/raster"
)

func labelAndExtract(t *testing.T, src *raster.Raster) []Region {
	t.Helper()
	labels, count, err := Label(src)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	regions, err := ExtractFeatures(labels, count)
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	return regions
}

func TestExtractFeaturesSquare(t *testing.T) {
	src := mustBinary(t, 300, 300)
	fillRect(t, src, 100, 100, 50, 50)

	regions := labelAndExtract(t, src)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	r := regions[0]
	if r.Area != 2500 {
		t.Errorf("Area = %d, want 2500", r.Area)
	}
	if r.X != 100 || r.Y != 100 || r.W != 50 || r.H != 50 {
		t.Errorf("bbox = (%d, %d, %d, %d), want (100, 100, 50, 50)", r.X, r.Y, r.W, r.H)
	}
	// Mean coordinate 124.5 truncates to 124.
	if r.CX != 124 || r.CY != 124 {
		t.Errorf("centroid = (%d, %d), want (124, 124)", r.CX, r.CY)
	}
	// Boundary ring of a filled 50×50 square.
	if r.Perimeter != 196 {
		t.Errorf("Perimeter = %d, want 196", r.Perimeter)
	}
	if r.Label != 1 {
		t.Errorf("Label = %d, want 1", r.Label)
	}
}

func TestExtractFeaturesSinglePixel(t *testing.T) {
	src := mustBinary(t, 20, 20)
	src.Set(7, 9, 255)

	regions := labelAndExtract(t, src)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	r := regions[0]
	if r.Area != 1 || r.Perimeter != 1 {
		t.Errorf("Area, Perimeter = %d, %d, want 1, 1", r.Area, r.Perimeter)
	}
	if r.CX != 7 || r.CY != 9 {
		t.Errorf("centroid = (%d, %d), want (7, 9)", r.CX, r.CY)
	}
	if r.W != 1 || r.H != 1 {
		t.Errorf("bbox size = %dx%d, want 1x1", r.W, r.H)
	}
}

func TestExtractFeaturesMultipleRegions(t *testing.T) {
	src := mustBinary(t, 100, 100)
	fillRect(t, src, 10, 10, 10, 10)
	fillRect(t, src, 50, 60, 20, 5)

	regions := labelAndExtract(t, src)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if regions[0].Label != 1 || regions[1].Label != 2 {
		t.Fatalf("labels = %d, %d, want 1, 2", regions[0].Label, regions[1].Label)
	}
	if regions[0].Area != 100 {
		t.Errorf("first Area = %d, want 100", regions[0].Area)
	}
	if regions[1].Area != 100 {
		t.Errorf("second Area = %d, want 100", regions[1].Area)
	}
	if regions[1].X != 50 || regions[1].Y != 60 || regions[1].W != 20 || regions[1].H != 5 {
		t.Errorf("second bbox = (%d, %d, %d, %d), want (50, 60, 20, 5)",
			regions[1].X, regions[1].Y, regions[1].W, regions[1].H)
	}
}

func TestExtractFeaturesPerimeterRing(t *testing.T) {
	// A 10×10 square with its 8×8 interior removed is all perimeter.
	src := mustBinary(t, 40, 40)
	fillRect(t, src, 10, 10, 10, 10)
	for y := 11; y < 19; y++ {
		for x := 11; x < 19; x++ {
			src.Set(x, y, 0)
		}
	}

	regions := labelAndExtract(t, src)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	r := regions[0]
	if r.Area != 36 {
		t.Errorf("Area = %d, want 36", r.Area)
	}
	if r.Perimeter != r.Area {
		t.Errorf("Perimeter = %d, want %d (every pixel borders the hole or outside)", r.Perimeter, r.Area)
	}
}

func TestExtractFeaturesZeroCount(t *testing.T) {
	m, err := raster.NewLabelMap(10, 10)
	if err != nil {
		t.Fatalf("NewLabelMap: %v", err)
	}
	regions, err := ExtractFeatures(m, 0)
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	if regions != nil {
		t.Errorf("got %d regions, want none", len(regions))
	}
}

func TestExtractFeaturesRejectsBadInput(t *testing.T) {
	if _, err := ExtractFeatures(nil, 3); err == nil {
		t.Error("accepted nil label map")
	}
	if _, err := ExtractFeatures(&raster.LabelMap{}, 3); err == nil {
		t.Error("accepted empty label map")
	}
}
