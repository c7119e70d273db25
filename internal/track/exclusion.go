package track

// MaxZones bounds the per-frame exclusion list. Adds beyond the bound
// are dropped.
const MaxZones = 50

// exclusionProximity is the squared radius within which a stored zone
// covers a query point.
const exclusionProximity = 30 * 30

type zone struct {
	x, y int
	used bool
}

// ExclusionList is the frame-scoped set of already-claimed positions.
// It keeps one classifier pass from reprocessing an object another
// pass handled in the same frame. Callers must Clear it at every frame
// boundary; its contents are meaningless across frames.
type ExclusionList struct {
	zones [MaxZones]zone
}

// Add stores a position in the first free slot. No-op when full.
func (l *ExclusionList) Add(x, y int) {
	for i := range l.zones {
		if !l.zones[i].used {
			l.zones[i] = zone{x: x, y: y, used: true}
			return
		}
	}
}

// RemoveNear clears every stored zone within the proximity radius of
// (x, y).
func (l *ExclusionList) RemoveNear(x, y int) {
	for i := range l.zones {
		if !l.zones[i].used {
			continue
		}
		if distSq(l.zones[i].x, l.zones[i].y, x, y) <= exclusionProximity {
			l.zones[i] = zone{}
		}
	}
}

// IsExcluded reports whether any stored zone lies within the proximity
// radius of (x, y).
func (l *ExclusionList) IsExcluded(x, y int) bool {
	for i := range l.zones {
		if !l.zones[i].used {
			continue
		}
		if distSq(l.zones[i].x, l.zones[i].y, x, y) <= exclusionProximity {
			return true
		}
	}
	return false
}

// Clear empties the list for the next frame.
func (l *ExclusionList) Clear() {
	*l = ExclusionList{}
}
