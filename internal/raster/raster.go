package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Sentinel validation errors. These are detected synchronously, before any
// output buffer is touched, and are distinct from a valid "nothing found"
// result.
var (
	ErrEmptyBuffer   = errors.New("raster: empty or nil pixel buffer")
	ErrBadDimensions = errors.New("raster: non-positive width or height")
	ErrChannels      = errors.New("raster: unsupported channel count")
	ErrShapeMismatch = errors.New("raster: dimension mismatch")
)

// Raster is a rectangular buffer of 8-bit samples.
//
// A binary raster has Channels == 1 and samples constrained to {0, 255}.
// Stride is the number of bytes per row, which equals Width*Channels for
// rasters allocated by this package.
type Raster struct {
	Data     []uint8
	Width    int
	Height   int
	Channels int
	Stride   int
}

// New allocates a zeroed raster.
func New(width, height, channels int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, channels)
	}
	return &Raster{
		Data:     make([]uint8, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
		Stride:   width * channels,
	}, nil
}

// NewBinary allocates a zeroed single-channel raster.
func NewBinary(width, height int) (*Raster, error) {
	return New(width, height, 1)
}

// Validate reports whether the raster is usable as engine input.
func (r *Raster) Validate() error {
	if r == nil || len(r.Data) == 0 {
		return ErrEmptyBuffer
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadDimensions, r.Width, r.Height)
	}
	if r.Channels != 1 && r.Channels != 3 {
		return fmt.Errorf("%w: %d", ErrChannels, r.Channels)
	}
	if len(r.Data) < r.Stride*r.Height {
		return fmt.Errorf("%w: buffer %d bytes, need %d", ErrEmptyBuffer, len(r.Data), r.Stride*r.Height)
	}
	return nil
}

// SameShape reports whether two rasters agree on width, height and channels.
func (r *Raster) SameShape(o *Raster) bool {
	return r != nil && o != nil &&
		r.Width == o.Width && r.Height == o.Height && r.Channels == o.Channels
}

// At returns the first-channel sample at (x, y). Callers are expected to
// stay in bounds; the labeler and morphology code iterate interior pixels
// only.
func (r *Raster) At(x, y int) uint8 {
	return r.Data[y*r.Stride+x*r.Channels]
}

// Set writes the first-channel sample at (x, y).
func (r *Raster) Set(x, y int, v uint8) {
	r.Data[y*r.Stride+x*r.Channels] = v
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	cp := *r
	cp.Data = make([]uint8, len(r.Data))
	copy(cp.Data, r.Data)
	return &cp
}

// Binarize forces every non-zero sample to 255 in place, so downstream code
// can rely on the {0, 255} invariant.
func (r *Raster) Binarize() {
	for i, v := range r.Data {
		if v != 0 {
			r.Data[i] = 255
		}
	}
}

// ForegroundCount returns the number of non-zero first-channel samples.
func (r *Raster) ForegroundCount() int {
	n := 0
	for y := 0; y < r.Height; y++ {
		row := r.Data[y*r.Stride:]
		for x := 0; x < r.Width; x++ {
			if row[x*r.Channels] != 0 {
				n++
			}
		}
	}
	return n
}

// FromGray converts an arbitrary image to a single-channel raster using the
// same luminance conversion the rest of the pipeline sees.
func FromGray(img image.Image) *Raster {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Raster{
		Data:     make([]uint8, w*h),
		Width:    w,
		Height:   h,
		Channels: 1,
		Stride:   w,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// NRGBA with R==G==B after Grayscale; take R.
			out.Data[y*w+x] = gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return out
}

// ToGrayImage renders a single-channel raster as *image.Gray, mainly for
// debugging output.
func (r *Raster) ToGrayImage() (*image.Gray, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Channels != 1 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, r.Channels)
	}
	out := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Width], r.Data[y*r.Stride:y*r.Stride+r.Width])
	}
	return out, nil
}

// LabelMap is a label raster: one int32 region identifier per pixel,
// 0 reserved for background. Labels are dense (1..Count after compaction)
// but carry no identity across frames.
type LabelMap struct {
	Labels []int32
	Width  int
	Height int
}

// NewLabelMap allocates a zeroed label map.
func NewLabelMap(width, height int) (*LabelMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	return &LabelMap{
		Labels: make([]int32, width*height),
		Width:  width,
		Height: height,
	}, nil
}

// At returns the label at (x, y).
func (m *LabelMap) At(x, y int) int32 {
	return m.Labels[y*m.Width+x]
}

// Set writes the label at (x, y).
func (m *LabelMap) Set(x, y int, v int32) {
	m.Labels[y*m.Width+x] = v
}
