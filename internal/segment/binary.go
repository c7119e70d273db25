package segment

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	bildsegment "github.com/anthonynsimon/bild/segment"

	"github.com/flaww1/VC-TP/internal/raster"
)

// GrayMask produces the general foreground mask: a light Gaussian blur
// to suppress sensor noise, then a global grayscale threshold. Pixels
// at or above level become foreground.
func GrayMask(img image.Image, level uint8, blurRadius float64) (*raster.Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("segment: gray mask: %w", raster.ErrEmptyBuffer)
	}
	src := img
	if blurRadius > 0 {
		src = blur.Gaussian(img, blurRadius)
	}
	gray := bildsegment.Threshold(src, level)

	out := raster.FromGray(gray)
	out.Binarize()
	return out, nil
}

// Erode shrinks foreground by a square structuring element of the
// given odd size: a pixel survives only if its whole neighborhood is
// foreground.
func Erode(src *raster.Raster, size int) (*raster.Raster, error) {
	return morph(src, size, false)
}

// Dilate grows foreground by a square structuring element of the given
// odd size: a pixel becomes foreground if any neighbor is foreground.
func Dilate(src *raster.Raster, size int) (*raster.Raster, error) {
	return morph(src, size, true)
}

// Open erodes then dilates, removing speckle smaller than the element.
func Open(src *raster.Raster, size int) (*raster.Raster, error) {
	eroded, err := Erode(src, size)
	if err != nil {
		return nil, err
	}
	return Dilate(eroded, size)
}

// Close dilates then erodes, filling holes smaller than the element.
func Close(src *raster.Raster, size int) (*raster.Raster, error) {
	dilated, err := Dilate(src, size)
	if err != nil {
		return nil, err
	}
	return Erode(dilated, size)
}

func morph(src *raster.Raster, size int, dilate bool) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("segment: morphology input: %w", err)
	}
	if src.Channels != 1 {
		return nil, fmt.Errorf("segment: morphology input: %w: %d", raster.ErrChannels, src.Channels)
	}
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("segment: morphology: element size must be odd and positive, got %d", size)
	}

	out, err := raster.NewBinary(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	r := size / 2
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			hit := neighborhood(src, x, y, r, dilate)
			if dilate == hit {
				out.Set(x, y, 255)
			}
		}
	}
	return out, nil
}

// neighborhood scans the square window around (x, y). For dilation it
// reports whether any pixel is foreground; for erosion, whether any is
// background (pixels outside the raster count as background).
func neighborhood(src *raster.Raster, x, y, r int, dilate bool) bool {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			xx, yy := x+dx, y+dy
			fg := xx >= 0 && yy >= 0 && xx < src.Width && yy < src.Height && src.At(xx, yy) != 0
			if dilate && fg {
				return true
			}
			if !dilate && !fg {
				return true
			}
		}
	}
	return false
}
