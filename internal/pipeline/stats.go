package pipeline

import (
	"gonum.org/v1/gonum/stat"

	"github.com/flaww1/VC-TP/internal/blob"
	"github.com/flaww1/VC-TP/internal/coin"
)

// Stats accumulates per-denomination measurement samples over a run,
// one sample per counted coin. The aggregates help judge whether the
// reference diameters match the actual capture geometry.
type Stats struct {
	diameters [coin.NumDenominations + 1][]float64
	areas     [coin.NumDenominations + 1][]float64
}

// NewStats returns an empty accumulator.
func NewStats() *Stats {
	return &Stats{}
}

// Record adds one counted coin's measurements.
func (s *Stats) Record(d coin.Denomination, res coin.Result, r blob.Region) {
	if d <= coin.Unknown || int(d) > coin.NumDenominations {
		return
	}
	s.diameters[d] = append(s.diameters[d], res.Diameter)
	s.areas[d] = append(s.areas[d], float64(r.Area))
}

// Count returns the number of samples for d.
func (s *Stats) Count(d coin.Denomination) int {
	if d <= coin.Unknown || int(d) > coin.NumDenominations {
		return 0
	}
	return len(s.diameters[d])
}

// MeanDiameter returns the mean measured diameter for d, 0 with no
// samples.
func (s *Stats) MeanDiameter(d coin.Denomination) float64 {
	if s.Count(d) == 0 {
		return 0
	}
	return stat.Mean(s.diameters[d], nil)
}

// StdDevDiameter returns the sample standard deviation of d's
// diameters, 0 with fewer than two samples.
func (s *Stats) StdDevDiameter(d coin.Denomination) float64 {
	if s.Count(d) < 2 {
		return 0
	}
	return stat.StdDev(s.diameters[d], nil)
}

// MeanArea returns the mean pixel area for d, 0 with no samples.
func (s *Stats) MeanArea(d coin.Denomination) float64 {
	if s.Count(d) == 0 {
		return 0
	}
	return stat.Mean(s.areas[d], nil)
}
