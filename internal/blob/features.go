package blob

import (
	"fmt"

	"github.com/flaww1/VC-TP/internal/raster"
)

// Region describes one labeled connected component of a single frame.
//
// X, Y, W, H are the tight bounding box. CX, CY is the centroid, computed
// as the integer-truncated mean of member pixel coordinates. Perimeter
// counts member pixels with at least one 4-connected neighbor carrying a
// different label (background included). Regions carry no identity across
// frames; the label value is only meaningful within the frame it came from.
type Region struct {
	X, Y   int
	W, H   int
	Area   int
	CX, CY int

	Perimeter int
	Label     int32
}

// regionAccum collects per-label statistics during the single feature pass.
type regionAccum struct {
	area       int
	perimeter  int
	sumX, sumY int64

	minX, minY int
	maxX, maxY int
}

// ExtractFeatures computes area, perimeter, centroid and bounding box for
// every label in 1..count of a compacted label map.
//
// This is a single accumulating pass over the raster (O(W×H + count))
// rather than one full rescan per label; the produced values are identical
// to the per-label rescan. An empty region (which a compacted label map
// cannot normally contain) yields centroid (0, 0) and is omitted from the
// result.
func ExtractFeatures(m *raster.LabelMap, count int) ([]Region, error) {
	if m == nil || len(m.Labels) == 0 {
		return nil, fmt.Errorf("blob: feature input: %w", raster.ErrEmptyBuffer)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("blob: feature input: %w: %dx%d", raster.ErrBadDimensions, m.Width, m.Height)
	}
	if count <= 0 {
		return nil, nil
	}

	acc := make([]regionAccum, count+1)
	for i := range acc {
		acc[i].minX = m.Width - 1
		acc[i].minY = m.Height - 1
	}

	w, h := m.Width, m.Height
	for y := 1; y < h-1; y++ {
		row := m.Labels[y*w:]
		for x := 1; x < w-1; x++ {
			l := row[x]
			if l <= 0 || int(l) > count {
				continue
			}
			a := &acc[l]
			a.area++
			a.sumX += int64(x)
			a.sumY += int64(y)
			if x < a.minX {
				a.minX = x
			}
			if y < a.minY {
				a.minY = y
			}
			if x > a.maxX {
				a.maxX = x
			}
			if y > a.maxY {
				a.maxY = y
			}
			// Perimeter: any 4-neighbor with a different label, background
			// included.
			if row[x-1] != l || row[x+1] != l ||
				m.Labels[(y-1)*w+x] != l || m.Labels[(y+1)*w+x] != l {
				a.perimeter++
			}
		}
	}

	regions := make([]Region, 0, count)
	for l := 1; l <= count; l++ {
		a := acc[l]
		if a.area == 0 {
			continue
		}
		regions = append(regions, Region{
			X:         a.minX,
			Y:         a.minY,
			W:         a.maxX - a.minX + 1,
			H:         a.maxY - a.minY + 1,
			Area:      a.area,
			CX:        int(a.sumX / int64(a.area)),
			CY:        int(a.sumY / int64(a.area)),
			Perimeter: a.perimeter,
			Label:     int32(l),
		})
	}
	return regions, nil
}
