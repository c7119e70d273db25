package track

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaww1/VC-TP/internal/coin"
)

func advance(t *Tracker, frames int) {
	for i := 0; i < frames; i++ {
		t.AdvanceFrame()
	}
}

// record mirrors the caller contract: increment the counter only when
// RecordAndCheck reports the object as not yet counted.
func record(t *Tracker, c *Counters, x, y int, d coin.Denomination) {
	if !t.RecordAndCheck(x, y, d, true) {
		c.Inc(d)
	}
}

func TestRecordAndCheckIdempotent(t *testing.T) {
	tr := NewTracker()
	var counters Counters

	record(tr, &counters, 200, 200, coin.TenCent)
	require.Equal(t, 1, counters.Get(coin.TenCent))

	// Same physical coin, one frame later, slightly moved.
	tr.AdvanceFrame()
	record(tr, &counters, 202, 201, coin.TenCent)
	assert.Equal(t, 1, counters.Get(coin.TenCent), "second sighting must not count again")
	assert.Equal(t, 1, tr.Active())

	// Many more sightings within the memory window.
	for i := 0; i < 30; i++ {
		tr.AdvanceFrame()
		record(tr, &counters, 200+i%3, 200, coin.TenCent)
	}
	assert.Equal(t, 1, counters.Get(coin.TenCent))
	assert.Equal(t, 1, counters.Total())
}

func TestRecordAndCheckObserveThenCount(t *testing.T) {
	tr := NewTracker()

	// First pass only observes, nothing is counted yet.
	assert.False(t, tr.RecordAndCheck(100, 100, coin.FiveCent, false))
	assert.False(t, tr.RecordAndCheck(101, 100, coin.FiveCent, false))

	// Counting pass: first call claims the count, later calls see it.
	assert.False(t, tr.RecordAndCheck(102, 101, coin.FiveCent, true))
	assert.True(t, tr.RecordAndCheck(102, 101, coin.FiveCent, true))
}

func TestRecordAndCheckDistinctCoins(t *testing.T) {
	tr := NewTracker()
	var counters Counters

	record(tr, &counters, 100, 100, coin.TwentyCent)
	record(tr, &counters, 400, 300, coin.TwentyCent)

	assert.Equal(t, 2, counters.Get(coin.TwentyCent))
	assert.Equal(t, 2, tr.Active())
}

func TestCorrectionConservation(t *testing.T) {
	tr := NewTracker()
	var counters Counters

	// A 2 euro coin's gold center is first misread as a gold coin.
	record(tr, &counters, 200, 200, coin.FiftyCent)
	require.Equal(t, 1, counters.Get(coin.FiftyCent))

	// The full ring is recognized a few frames later.
	advance(tr, 3)
	tr.CorrectStaleClass(205, 202, &counters)
	record(tr, &counters, 205, 202, coin.TwoEuro)

	assert.Equal(t, 0, counters.Get(coin.FiftyCent), "stale gold count must be rolled back")
	assert.Equal(t, 1, counters.Get(coin.TwoEuro))
	assert.Equal(t, 1, counters.Total(), "one physical coin, one counted unit")
	assert.InDelta(t, 2.00, counters.Value(), 1e-9)
}

func TestCorrectStaleClassLeavesUncountedAlone(t *testing.T) {
	tr := NewTracker()
	var counters Counters

	// Observed but never counted: no increment happened, so the
	// correction must not decrement anything.
	tr.RecordAndCheck(200, 200, coin.TenCent, false)
	counters.Inc(coin.TenCent) // unrelated coin elsewhere

	tr.CorrectStaleClass(200, 200, &counters)
	assert.Equal(t, 1, counters.Get(coin.TenCent))
	assert.Equal(t, coin.Unknown, tr.LookupClass(200, 200), "entry still deleted")
}

func TestEuroSupersedesGoldEntry(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.RecordAndCheck(200, 200, coin.FiftyCent, true))
	tr.AdvanceFrame()

	// Euro detection near the gold entry deletes it before matching,
	// so the euro insert cannot match its own stale predecessor.
	assert.False(t, tr.RecordAndCheck(210, 205, coin.TwoEuro, true))
	assert.Equal(t, coin.TwoEuro, tr.LookupClass(200, 200))
	assert.Equal(t, 1, tr.Active())
}

func TestWraparoundSafety(t *testing.T) {
	tr := NewTracker()
	advance(tr, 999)
	require.Equal(t, 999, tr.Frame())

	assert.False(t, tr.RecordAndCheck(300, 300, coin.OneEuro, true))

	// The clock wraps; the entry stamped at 999 must still match at
	// frame 2 for a class whose memory window covers the gap.
	advance(tr, 3)
	require.Equal(t, 2, tr.Frame())
	assert.True(t, tr.RecordAndCheck(301, 300, coin.OneEuro, true),
		"entry from before the wrap must still be recent")
}

func TestFrameClockWraps(t *testing.T) {
	tr := NewTracker()
	advance(tr, FrameWrap)
	assert.Equal(t, 0, tr.Frame())
}

func TestCapacityDropIsSilent(t *testing.T) {
	tr := NewTracker()

	// Fill every slot with well-separated positions.
	n := 0
	for y := 0; n < Capacity; y++ {
		for x := 0; x < 15 && n < Capacity; x++ {
			tr.RecordAndCheck(100+x*120, 100+y*120, coin.OneCent, true)
			n++
		}
	}
	require.Equal(t, Capacity, tr.Active())

	// One more, far from everything: dropped without error.
	tr.RecordAndCheck(5000, 5000, coin.OneCent, true)
	assert.Equal(t, Capacity, tr.Active())
	assert.Equal(t, coin.Unknown, tr.LookupClass(5000, 5000))
}

func TestLookupClass(t *testing.T) {
	tr := NewTracker()
	tr.RecordAndCheck(100, 100, coin.TwoCent, false)
	tr.RecordAndCheck(160, 100, coin.OneEuro, false)

	assert.Equal(t, coin.TwoCent, tr.LookupClass(110, 100), "nearest entry wins")
	assert.Equal(t, coin.OneEuro, tr.LookupClass(150, 100))
	assert.Equal(t, coin.Unknown, tr.LookupClass(400, 400), "beyond the lookup radius")
}

func TestLookupKeepsIdentityAcrossSightings(t *testing.T) {
	tr := NewTracker()
	tr.RecordAndCheck(100, 100, coin.TwoCent, true)
	tr.RecordAndCheck(300, 100, coin.OneEuro, true)

	first, ok := tr.Lookup(105, 100)
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, coin.TwoCent, first.Class)

	// A re-sighting of the same coin refreshes the entry but keeps
	// its identifier.
	tr.AdvanceFrame()
	tr.RecordAndCheck(102, 101, coin.TwoCent, true)
	again, ok := tr.Lookup(102, 101)
	require.True(t, ok)
	assert.Equal(t, first.ID, again.ID)

	_, ok = tr.Lookup(400, 400)
	assert.False(t, ok, "beyond the lookup radius")
}

func TestDetectionsSnapshot(t *testing.T) {
	tr := NewTracker()
	assert.Empty(t, tr.Detections())

	tr.RecordAndCheck(100, 100, coin.TwoCent, true)
	tr.RecordAndCheck(300, 100, coin.OneEuro, true)

	dets := tr.Detections()
	require.Len(t, dets, 2)
	assert.NotEqual(t, dets[0].ID, dets[1].ID, "each coin gets its own identifier")
	for _, d := range dets {
		assert.NotEqual(t, uuid.Nil, d.ID)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	tr.RecordAndCheck(100, 100, coin.OneCent, true)
	advance(tr, 10)

	tr.Reset()
	assert.Equal(t, 0, tr.Frame())
	assert.Equal(t, 0, tr.Active())
	assert.Equal(t, coin.Unknown, tr.LookupClass(100, 100))
}

func TestMemoryWindowExpiry(t *testing.T) {
	tr := NewTracker()
	var counters Counters

	record(tr, &counters, 200, 200, coin.TenCent)
	require.Equal(t, 1, counters.Get(coin.TenCent))

	// Past the 60-frame window the old entry no longer matches; the
	// detection is treated as a new coin.
	advance(tr, 80)
	record(tr, &counters, 200, 200, coin.TenCent)
	assert.Equal(t, 2, counters.Get(coin.TenCent))
}
