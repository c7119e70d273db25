package segment

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/flaww1/VC-TP/internal/coin"
	"github.com/flaww1/VC-TP/internal/raster"
)

// hsvRange is one inclusive HSV box test. Hue is in degrees, sat and
// val on the 0..255 scale. A zero max means "no upper bound" for that
// channel.
type hsvRange struct {
	hMin, hMax float64
	sMin, sMax float64
	vMin, vMax float64
}

func (r hsvRange) contains(h, s, v float64) bool {
	if h < r.hMin || h > r.hMax {
		return false
	}
	if s < r.sMin || (r.sMax > 0 && s > r.sMax) {
		return false
	}
	if v < r.vMin || (r.vMax > 0 && v > r.vMax) {
		return false
	}
	return true
}

// Material ranges.
var (
	goldRange     = hsvRange{hMin: 35, hMax: 95, sMin: 40, vMin: 40}
	copperRange   = hsvRange{hMin: 10, hMax: 45, sMin: 70}
	euroGoldRange = hsvRange{hMin: 20, hMax: 95, sMin: 35, vMin: 35}
)

func familyMatch(f coin.Family, h, s, v float64) bool {
	switch f {
	case coin.FamilyGold:
		return goldRange.contains(h, s, v)
	case coin.FamilyCopper:
		return copperRange.contains(h, s, v)
	case coin.FamilyEuro:
		// The silver outer ring reads as low saturation at medium
		// brightness; the gold center needs the same warm-hue box as
		// the gold coins.
		return (s < 60 && v > 80 && v < 240) || euroGoldRange.contains(h, s, v)
	default:
		return false
	}
}

// FamilyMask produces the binary foreground mask for one denomination
// family by testing every pixel's HSV value against the family's
// material ranges. The mask has the frame's dimensions and is not yet
// morphologically cleaned; follow with Open.
func FamilyMask(img image.Image, f coin.Family) (*raster.Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("segment: family mask: %w", raster.ErrEmptyBuffer)
	}
	if f != coin.FamilyCopper && f != coin.FamilyGold && f != coin.FamilyEuro {
		return nil, fmt.Errorf("segment: family mask: no ranges for family %s", f)
	}

	b := img.Bounds()
	out, err := raster.NewBinary(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("segment: family mask: %w", err)
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixel, treated as background.
				continue
			}
			h, s, v := c.Hsv()
			if familyMatch(f, h, s*255, v*255) {
				out.Set(x-b.Min.X, y-b.Min.Y, 255)
			}
		}
	}
	return out, nil
}
