package coin

import (
	"math"

	"github.com/flaww1/VC-TP/internal/blob"
)

// ClassLookup answers "what was last seen at this location". The
// temporal tracker satisfies it; the classifier uses it to carry an
// earlier classification over to partially visible objects near the
// frame edge.
type ClassLookup interface {
	LookupClass(x, y int) Denomination
}

// Tuning defaults, in pixels and frame counts at the nominal 640x480
// capture geometry.
const (
	DefaultBaseTolerance   = 0.08
	DefaultToleranceMargin = 50
	DefaultFrameWidth      = 640
	DefaultFrameHeight     = 480

	// MinValidArea rejects fragments too small to be a coin at the
	// nominal camera distance.
	MinValidArea = 6000

	// MaxValidArea rejects merged or runaway regions in the euro pass.
	MaxValidArea = 100000
)

// familyParams tunes one classification pass. Fallback near the edge
// kicks in inside edgeMargin pixels of the frame border.
type familyParams struct {
	minCircularity float64
	edgeMargin     int
}

var familyTuning = [...]familyParams{
	FamilyCopper: {minCircularity: 0.70, edgeMargin: 80},
	FamilyGold:   {minCircularity: 0.75, edgeMargin: 90},
	FamilyEuro:   {minCircularity: 0.75, edgeMargin: 0},
}

// Euro-specific thresholds. A complete euro coin presents a diameter in
// a narrow band; anything else must be large in both bbox dimensions to
// qualify as a partial coin at the frame edge.
const (
	euroCompleteMinDiameter = 175.0
	euroCompleteMaxDiameter = 210.0
	euroTwoEuroMinDiameter  = 185.0
	euroPartialCircularity  = 0.65
	euroPartialMinSide      = 130
	euroPartialMinArea      = 14000
)

// Config carries the classifier's frame geometry and size tolerance.
// The frame dimensions feed only the edge-proximity logic; they must
// match the rasters the regions came from.
type Config struct {
	BaseTolerance   float64
	ToleranceMargin int
	FrameWidth      int
	FrameHeight     int

	// Scale multiplies every reference diameter, normally produced by
	// Calibration. 0 means uncalibrated (1.0).
	Scale float64

	// Lookup, when set, resolves edge-fallback classifications from
	// prior observations. Optional.
	Lookup ClassLookup
}

// DefaultConfig returns the nominal 640x480 tuning.
func DefaultConfig() Config {
	return Config{
		BaseTolerance:   DefaultBaseTolerance,
		ToleranceMargin: DefaultToleranceMargin,
		FrameWidth:      DefaultFrameWidth,
		FrameHeight:     DefaultFrameHeight,
		Scale:           1.0,
	}
}

// WithFrameSize returns a copy of the config with the frame geometry
// replaced.
func (c Config) WithFrameSize(w, h int) Config {
	c.FrameWidth = w
	c.FrameHeight = h
	return c
}

// Diameter returns the circular-equivalent diameter of a region with
// the given pixel area, 2*sqrt(area/pi). 0 for non-positive area.
func Diameter(area int) float64 {
	if area <= 0 {
		return 0
	}
	return 2 * math.Sqrt(float64(area)/math.Pi)
}

// Circularity returns 4*pi*area/perimeter^2 clamped to 1.0, which a
// perfect disk attains. 0 if the perimeter is 0.
func Circularity(area, perimeter int) float64 {
	if perimeter <= 0 || area <= 0 {
		return 0
	}
	c := 4 * math.Pi * float64(area) / float64(perimeter*perimeter)
	if c > 1 {
		return 1
	}
	return c
}

// Result reports one classification with its diagnostic measurements.
type Result struct {
	Denomination Denomination `json:"denomination"`
	Diameter     float64      `json:"diameter"`
	Circularity  float64      `json:"circularity"`

	// NearEdge marks classifications produced by the edge fallback
	// path rather than an exact size match.
	NearEdge bool `json:"nearEdge,omitempty"`

	// Partial marks a euro coin recognized from a large partial region
	// rather than a complete disk.
	Partial bool `json:"partial,omitempty"`
}

// Classifier matches region geometry against denomination diameters.
type Classifier struct {
	cfg Config
}

// NewClassifier returns a classifier for the given config. Zero-value
// tolerance, margin and frame fields fall back to the defaults.
func NewClassifier(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.BaseTolerance <= 0 {
		cfg.BaseTolerance = def.BaseTolerance
	}
	if cfg.ToleranceMargin <= 0 {
		cfg.ToleranceMargin = def.ToleranceMargin
	}
	if cfg.FrameWidth <= 0 {
		cfg.FrameWidth = def.FrameWidth
	}
	if cfg.FrameHeight <= 0 {
		cfg.FrameHeight = def.FrameHeight
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1.0
	}
	return &Classifier{cfg: cfg}
}

// Tolerance returns the size tolerance for an object centered at
// (x, y). The base tolerance widens linearly up to 1.5x as the centroid
// approaches a frame edge, compensating for perspective distortion of
// partially captured coins.
func (c *Classifier) Tolerance(x, y int) float64 {
	tol := c.cfg.BaseTolerance
	margin := float64(c.cfg.ToleranceMargin)

	minDist := math.Min(
		math.Min(float64(x), float64(c.cfg.FrameWidth-x)),
		math.Min(float64(y), float64(c.cfg.FrameHeight-y)),
	)
	if minDist < margin {
		tol *= 1.0 + 0.5*(1.0-minDist/margin)
	}
	return tol
}

// nearEdge reports whether (x, y) lies within margin pixels of any
// frame border.
func (c *Classifier) nearEdge(x, y, margin int) bool {
	return x < margin || y < margin ||
		x > c.cfg.FrameWidth-margin || y > c.cfg.FrameHeight-margin
}

func (c *Classifier) expected(d Denomination) float64 {
	return d.ReferenceDiameter() * c.cfg.Scale
}

// Classify attempts to recognize a region as a member of the given
// family. It returns the classification and true on success, or a zero
// Result and false when the region fails the family's area,
// circularity or size criteria.
//
// Copper and gold matching compares the circular-equivalent diameter
// against each member denomination's window, widened near the frame
// edge by the adaptive tolerance. When no window matches but the
// object lies within the family's edge margin, a previously tracked
// classification at that location wins; failing that, the member with
// the nearest diameter ratio is taken as a best guess.
//
// The euro family is matched on absolute diameter instead: a complete
// disk in the 1/2 euro band, or a large, reasonably circular partial
// region which is reported as a 2 euro coin.
func (c *Classifier) Classify(r blob.Region, f Family) (Result, bool) {
	if f == FamilyEuro {
		return c.classifyEuro(r)
	}
	if f != FamilyCopper && f != FamilyGold {
		return Result{}, false
	}
	if r.Area < MinValidArea {
		return Result{}, false
	}

	p := familyTuning[f]
	res := Result{
		Diameter:    Diameter(r.Area),
		Circularity: Circularity(r.Area, r.Perimeter),
	}
	if res.Circularity < p.minCircularity {
		return Result{}, false
	}

	if c.nearEdge(r.CX, r.CY, p.edgeMargin) {
		res.NearEdge = true
		res.Denomination = c.edgeFallback(r, f, res.Diameter)
		return res, true
	}

	tol := c.Tolerance(r.CX, r.CY)
	for _, d := range f.Denominations() {
		ref := c.expected(d)
		if res.Diameter >= ref*(1-tol) && res.Diameter <= ref*(1+tol) {
			res.Denomination = d
			return res, true
		}
	}
	return Result{}, false
}

// edgeFallback resolves a near-edge object with no exact size match:
// reuse the tracked classification at that location when it belongs to
// this family, otherwise pick the member denomination whose diameter
// ratio is nearest to 1.
func (c *Classifier) edgeFallback(r blob.Region, f Family, diameter float64) Denomination {
	if c.cfg.Lookup != nil {
		if prev := c.cfg.Lookup.LookupClass(r.CX, r.CY); prev.Family() == f {
			return prev
		}
	}

	best := Unknown
	bestDiff := math.MaxFloat64
	for _, d := range f.Denominations() {
		diff := math.Abs(diameter/c.expected(d) - 1.0)
		if diff < bestDiff {
			bestDiff = diff
			best = d
		}
	}
	return best
}

func (c *Classifier) classifyEuro(r blob.Region) (Result, bool) {
	if r.Area < MinValidArea || r.Area > MaxValidArea {
		return Result{}, false
	}
	res := Result{
		Diameter:    Diameter(r.Area),
		Circularity: Circularity(r.Area, r.Perimeter),
	}

	if res.Diameter >= euroCompleteMinDiameter*c.cfg.Scale &&
		res.Diameter <= euroCompleteMaxDiameter*c.cfg.Scale &&
		res.Circularity > familyTuning[FamilyEuro].minCircularity {
		if res.Diameter >= euroTwoEuroMinDiameter*c.cfg.Scale {
			res.Denomination = TwoEuro
		} else {
			res.Denomination = OneEuro
		}
		return res, true
	}

	// Partial coin at the frame edge: large in both dimensions, still
	// roughly circular. Only the 2 euro coin is big enough to leave a
	// region of this size when clipped.
	if res.Circularity > euroPartialCircularity &&
		r.W >= euroPartialMinSide && r.H >= euroPartialMinSide &&
		r.Area >= euroPartialMinArea {
		res.Denomination = TwoEuro
		res.Partial = true
		return res, true
	}
	return Result{}, false
}
