package coin

import (
	"fmt"

	"github.com/flaww1/VC-TP/internal/blob"
)

// Calibration converts the built-in reference diameters to the actual
// capture geometry using one coin of known denomination. The zero
// value is the identity calibration.
type Calibration struct {
	factor float64
}

// FromReference derives a calibration from a region known to be a
// complete coin of denomination d: the scale factor is the measured
// circular-equivalent diameter over the reference diameter.
func FromReference(r blob.Region, d Denomination) (Calibration, error) {
	ref := d.ReferenceDiameter()
	if ref == 0 {
		return Calibration{}, fmt.Errorf("coin: calibration: no reference diameter for %s", d)
	}
	measured := Diameter(r.Area)
	if measured == 0 {
		return Calibration{}, fmt.Errorf("coin: calibration: region has zero area")
	}
	return Calibration{factor: measured / ref}, nil
}

// Factor returns the pixel scale factor, 1.0 when uncalibrated.
func (c Calibration) Factor() float64 {
	if c.factor <= 0 {
		return 1.0
	}
	return c.factor
}

// Expected returns the calibrated expected pixel diameter for d.
func (c Calibration) Expected(d Denomination) float64 {
	return d.ReferenceDiameter() * c.Factor()
}

// Apply returns a copy of cfg with the calibration's scale set.
func (c Calibration) Apply(cfg Config) Config {
	cfg.Scale = c.Factor()
	return cfg
}
