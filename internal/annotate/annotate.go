// Package annotate renders detection overlays onto video frames:
// a circle outline per coin, a center mark and a denomination label.
package annotate

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/flaww1/VC-TP/internal/coin"
	"github.com/flaww1/VC-TP/internal/pipeline"
)

// Outline colors per family.
var (
	copperColor = color.NRGBA{R: 184, G: 115, B: 51, A: 255}
	goldColor   = color.NRGBA{R: 212, G: 175, B: 55, A: 255}
	euroColor   = color.NRGBA{R: 200, G: 200, B: 210, A: 255}
	centerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	labelBg     = color.NRGBA{R: 0, G: 0, B: 0, A: 200}
)

func familyColor(f coin.Family) color.NRGBA {
	switch f {
	case coin.FamilyCopper:
		return copperColor
	case coin.FamilyGold:
		return goldColor
	case coin.FamilyEuro:
		return euroColor
	default:
		return centerColor
	}
}

// Draw returns a copy of the frame with every detection outlined and
// labeled. The input image is not modified.
func Draw(src image.Image, dets []pipeline.Detection) *image.NRGBA {
	out := imaging.Clone(src)
	for _, d := range dets {
		drawDetection(out, d)
	}
	return out
}

func drawDetection(img *image.NRGBA, d pipeline.Detection) {
	c := familyColor(d.Result.Denomination.Family())
	cx, cy := d.Region.CX, d.Region.CY
	radius := int(d.Result.Diameter / 2)

	drawCircle(img, cx, cy, radius, c)
	drawCross(img, cx, cy, 4, centerColor)
	drawLabel(img, cx, cy-radius-6, d.Result.Denomination.String())
}

func setPx(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

// drawCircle plots a midpoint circle outline.
func drawCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	if r <= 0 {
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		setPx(img, cx+x, cy+y, c)
		setPx(img, cx-x, cy+y, c)
		setPx(img, cx+x, cy-y, c)
		setPx(img, cx-x, cy-y, c)
		setPx(img, cx+y, cy+x, c)
		setPx(img, cx-y, cy+x, c)
		setPx(img, cx+y, cy-x, c)
		setPx(img, cx-y, cy-x, c)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func drawCross(img *image.NRGBA, cx, cy, arm int, c color.NRGBA) {
	for d := -arm; d <= arm; d++ {
		setPx(img, cx+d, cy, c)
		setPx(img, cx, cy+d, c)
	}
}

// drawLabel renders text centered at (cx, y) on a dark strip so it
// stays readable over any coin surface.
func drawLabel(img *image.NRGBA, cx, y int, text string) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	w := d.MeasureString(text).Ceil()
	x0 := cx - w/2

	for yy := y - face.Ascent; yy <= y+face.Descent; yy++ {
		for xx := x0 - 2; xx < x0+w+2; xx++ {
			setPx(img, xx, yy, labelBg)
		}
	}

	d.Dot = fixed.P(x0, y)
	d.DrawString(text)
}
