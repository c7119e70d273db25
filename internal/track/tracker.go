package track

import (
	"github.com/google/uuid"

	"github.com/flaww1/VC-TP/internal/coin"
)

const (
	// Capacity bounds the detection table. When full, new detections
	// are dropped rather than evicting older ones.
	Capacity = 150

	// FrameWrap is the exclusive upper bound of the frame clock; the
	// counter wraps back to 0 after FrameWrap-1.
	FrameWrap = 1000

	// lookupRadius bounds LookupClass queries.
	lookupRadius = 50

	// staleCorrectionRadius bounds CorrectStaleClass queries. It is
	// deliberately distinct from the euro conflict radius below.
	staleCorrectionRadius = 80
)

// Params tunes matching for one class group. Euro coins get a wider
// radius and a longer memory because the bimetallic ring segments less
// reliably, plus a correction radius within which they supersede
// earlier gold classifications.
type Params struct {
	MatchRadius      int
	Memory           int
	CorrectionRadius int
}

var (
	euroParams    = Params{MatchRadius: 75, Memory: 120, CorrectionRadius: 85}
	defaultParams = Params{MatchRadius: 50, Memory: 60}
)

// ParamsFor returns the matching parameters for a denomination class.
func ParamsFor(d coin.Denomination) Params {
	if d.Family() == coin.FamilyEuro {
		return euroParams
	}
	return defaultParams
}

// Detection is one tracked object. Position and timestamp refresh on
// every match; Counted latches the first time the object is counted.
type Detection struct {
	ID       uuid.UUID         `json:"id"`
	X        int               `json:"x"`
	Y        int               `json:"y"`
	Class    coin.Denomination `json:"class"`
	LastSeen int               `json:"lastSeen"`
	Counted  bool              `json:"counted"`

	active bool
}

// Tracker is a fixed-capacity table of Detections plus the wrapping
// frame clock. Not safe for concurrent use.
type Tracker struct {
	slots [Capacity]Detection
	frame int
}

// NewTracker returns an empty tracker at frame 0.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Frame returns the current frame index in [0, FrameWrap).
func (t *Tracker) Frame() int {
	return t.frame
}

// AdvanceFrame steps the frame clock, wrapping at FrameWrap.
func (t *Tracker) AdvanceFrame() {
	t.frame = (t.frame + 1) % FrameWrap
}

// Reset clears the table and the frame clock.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Active returns the number of live entries, for diagnostics.
func (t *Tracker) Active() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].active {
			n++
		}
	}
	return n
}

func distSq(ax, ay, bx, by int) int {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

// recent reports whether an entry stamped at seen is inside the memory
// window at the current frame. The second clause tolerates the frame
// clock wrapping: an entry stamped just before the wrap must not look
// like it came from the future and be rejected.
func (t *Tracker) recent(seen, memory int) bool {
	return t.frame-seen < memory || seen > t.frame
}

// RecordAndCheck registers a detection at (x, y) with the given class
// and reports whether the object was already counted. A false return
// means the caller should increment the class's denomination counter;
// the tracker itself never touches counters (except through
// CorrectStaleClass).
//
// Matching refreshes the entry's position and timestamp. For euro
// classes, any gold-class entry within the correction radius is deleted
// first so the detection cannot match its own misclassified
// predecessor, and a matched gold entry inside the match radius is
// upgraded to the euro class in place.
//
// When no entry matches and the table is full the detection is dropped
// silently; bounded capacity degrades counting accuracy, it is not an
// error.
func (t *Tracker) RecordAndCheck(x, y int, class coin.Denomination, markCounted bool) bool {
	p := ParamsFor(class)
	isEuro := class.Family() == coin.FamilyEuro

	if isEuro {
		t.dropGoldNear(x, y, p.CorrectionRadius)
	}

	matched := -1
	free := -1
	for i := range t.slots {
		s := &t.slots[i]
		if !s.active {
			if free == -1 {
				free = i
			}
			continue
		}
		if distSq(s.X, s.Y, x, y) > p.MatchRadius*p.MatchRadius {
			continue
		}
		if t.recent(s.LastSeen, p.Memory) {
			matched = i
			if isEuro && s.Class.Family() == coin.FamilyGold {
				s.Class = class
			}
			break
		}
	}

	if matched >= 0 {
		s := &t.slots[matched]
		s.X, s.Y = x, y
		s.LastSeen = t.frame
		if markCounted && !s.Counted {
			s.Counted = true
			return false
		}
		return s.Counted
	}

	if free >= 0 {
		t.slots[free] = Detection{
			ID:       uuid.New(),
			X:        x,
			Y:        y,
			Class:    class,
			LastSeen: t.frame,
			Counted:  markCounted,
			active:   true,
		}
	}
	return false
}

// dropGoldNear deletes the first gold-class entry within radius of
// (x, y). Counter reconciliation is CorrectStaleClass's job.
func (t *Tracker) dropGoldNear(x, y, radius int) {
	for i := range t.slots {
		s := &t.slots[i]
		if !s.active || s.Class.Family() != coin.FamilyGold {
			continue
		}
		if distSq(s.X, s.Y, x, y) <= radius*radius {
			t.slots[i] = Detection{}
			return
		}
	}
}

// CorrectStaleClass undoes a gold classification superseded by a euro
// detection at (x, y): the first gold-class entry within the
// correction radius has its denomination counter decremented (if
// positive) and its entry deleted. Together with the subsequent euro
// RecordAndCheck this nets to exactly one counted unit for the coin.
func (t *Tracker) CorrectStaleClass(x, y int, counters *Counters) {
	for i := range t.slots {
		s := &t.slots[i]
		if !s.active || s.Class.Family() != coin.FamilyGold {
			continue
		}
		if distSq(s.X, s.Y, x, y) <= staleCorrectionRadius*staleCorrectionRadius {
			if s.Counted && counters != nil {
				counters.Dec(s.Class)
			}
			t.slots[i] = Detection{}
			return
		}
	}
}

// Lookup returns a copy of the nearest entry within the lookup radius
// of (x, y). Read-only; timestamps are not refreshed.
func (t *Tracker) Lookup(x, y int) (Detection, bool) {
	best := -1
	bestDistSq := lookupRadius*lookupRadius + 1
	for i := range t.slots {
		s := &t.slots[i]
		if !s.active {
			continue
		}
		if d := distSq(s.X, s.Y, x, y); d < bestDistSq {
			bestDistSq = d
			best = i
		}
	}
	if best < 0 {
		return Detection{}, false
	}
	return t.slots[best], true
}

// LookupClass returns the class of the nearest entry within the lookup
// radius of (x, y), or Unknown.
func (t *Tracker) LookupClass(x, y int) coin.Denomination {
	d, ok := t.Lookup(x, y)
	if !ok {
		return coin.Unknown
	}
	return d.Class
}

// Detections returns copies of the live entries, for diagnostics and
// overlay drawing.
func (t *Tracker) Detections() []Detection {
	out := make([]Detection, 0, len(t.slots))
	for i := range t.slots {
		if t.slots[i].active {
			out = append(out, t.slots[i])
		}
	}
	return out
}
