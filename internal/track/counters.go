package track

import "github.com/flaww1/VC-TP/internal/coin"

// Counters tallies counted coins per denomination. The tracker only
// reads and decrements it during stale-class correction; increments
// are the caller's responsibility, driven by RecordAndCheck results.
type Counters struct {
	counts [coin.NumDenominations + 1]int
}

// Inc adds one counted coin of denomination d.
func (c *Counters) Inc(d coin.Denomination) {
	if d > coin.Unknown && int(d) <= coin.NumDenominations {
		c.counts[d]++
	}
}

// Dec removes one counted coin of denomination d, never below zero.
func (c *Counters) Dec(d coin.Denomination) {
	if d > coin.Unknown && int(d) <= coin.NumDenominations && c.counts[d] > 0 {
		c.counts[d]--
	}
}

// Get returns the count for denomination d.
func (c Counters) Get(d coin.Denomination) int {
	if d <= coin.Unknown || int(d) > coin.NumDenominations {
		return 0
	}
	return c.counts[d]
}

// Total returns the number of counted coins across all denominations.
func (c Counters) Total() int {
	n := 0
	for d := coin.OneCent; d <= coin.TwoEuro; d++ {
		n += c.counts[d]
	}
	return n
}

// Value returns the monetary total in euros.
func (c Counters) Value() float64 {
	var v float64
	for d := coin.OneCent; d <= coin.TwoEuro; d++ {
		v += float64(c.counts[d]) * d.Value()
	}
	return v
}
