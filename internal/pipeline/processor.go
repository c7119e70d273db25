package pipeline

import (
	"image"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/flaww1/VC-TP/internal/blob"
	"github.com/flaww1/VC-TP/internal/coin"
	"github.com/flaww1/VC-TP/internal/raster"
	"github.com/flaww1/VC-TP/internal/segment"
	"github.com/flaww1/VC-TP/internal/track"
)

// Candidate gates applied to regions of the general mask before any
// classification pass. The area window brackets one coin at the
// nominal camera distance; wider regions are merged clusters.
const (
	DefaultMinCandidateArea  = 9000
	DefaultMaxCandidateArea  = 30000
	DefaultMaxCandidateWidth = 220

	// DefaultAssocRadius associates a family-mask region with a
	// general-mask candidate by centroid distance.
	DefaultAssocRadius = 30

	DefaultSummaryInterval = 30

	// DefaultGrayLevel thresholds the general mask; the per-mask
	// element sizes clean it and the family masks.
	DefaultGrayLevel        = 150
	DefaultGeneralOpenSize  = 3
	DefaultGeneralCloseSize = 5
	DefaultGoldOpenSize     = 7
	DefaultFamilyOpenSize   = 3
)

// Config tunes one Processor. Zero fields take the defaults above;
// Classifier geometry defaults to coin.DefaultConfig.
type Config struct {
	Classifier coin.Config

	MinCandidateArea  int
	MaxCandidateArea  int
	MaxCandidateWidth int
	AssocRadius       int

	GrayLevel    uint8
	BlurRadius   float64
	GoldOpenSize int

	// SummaryInterval is the frame period of the tally log line,
	// 0 for the default, negative to disable.
	SummaryInterval int

	Logger *log.Logger
}

func (c *Config) applyDefaults() {
	if c.MinCandidateArea <= 0 {
		c.MinCandidateArea = DefaultMinCandidateArea
	}
	if c.MaxCandidateArea <= 0 {
		c.MaxCandidateArea = DefaultMaxCandidateArea
	}
	if c.MaxCandidateWidth <= 0 {
		c.MaxCandidateWidth = DefaultMaxCandidateWidth
	}
	if c.AssocRadius <= 0 {
		c.AssocRadius = DefaultAssocRadius
	}
	if c.GrayLevel == 0 {
		c.GrayLevel = DefaultGrayLevel
	}
	if c.GoldOpenSize <= 0 {
		c.GoldOpenSize = DefaultGoldOpenSize
	}
	if c.SummaryInterval == 0 {
		c.SummaryInterval = DefaultSummaryInterval
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// Masks bundles the per-frame binary inputs: the general foreground
// mask plus one mask per denomination family. All four must share one
// shape.
type Masks struct {
	General *raster.Raster
	Copper  *raster.Raster
	Gold    *raster.Raster
	Euro    *raster.Raster
}

// Detection is one classified coin in a frame report. TrackID is the
// identity assigned by the tracker, stable across re-sightings of the
// same coin.
type Detection struct {
	TrackID uuid.UUID   `json:"track_id"`
	Result  coin.Result `json:"result"`
	Region  blob.Region `json:"region"`
}

// FrameReport summarizes one processed frame. Detections carries every
// coin classified in the frame; New is the subset counted for the
// first time.
type FrameReport struct {
	Frame      int         `json:"frame"`
	Candidates int         `json:"candidates"`
	Detections []Detection `json:"detections,omitempty"`
	New        []Detection `json:"new,omitempty"`
	Total      int         `json:"total"`
	Value      float64     `json:"value"`
}

// Processor owns the engine state for one video stream.
type Processor struct {
	cfg        Config
	classifier *coin.Classifier
	tracker    *track.Tracker
	exclusion  track.ExclusionList
	counters   track.Counters
	stats      *Stats
}

// New builds a Processor. The classifier's edge fallback is wired to
// the processor's own tracker.
func New(cfg Config) *Processor {
	cfg.applyDefaults()
	p := &Processor{
		cfg:     cfg,
		tracker: track.NewTracker(),
		stats:   NewStats(),
	}
	ccfg := cfg.Classifier
	ccfg.Lookup = p.tracker
	p.classifier = coin.NewClassifier(ccfg)
	return p
}

// Tracker exposes the temporal tracker, mainly for lookups by drawing
// code.
func (p *Processor) Tracker() *track.Tracker { return p.tracker }

// Counters returns a snapshot of the running tally.
func (p *Processor) Counters() track.Counters { return p.counters }

// Stats returns the accumulated per-denomination statistics.
func (p *Processor) Stats() *Stats { return p.stats }

// ProcessFrame segments a color frame into the general and per-family
// masks and processes them. The frame must match the classifier's
// configured geometry.
func (p *Processor) ProcessFrame(img image.Image) (*FrameReport, error) {
	if img == nil {
		return nil, errors.New("pipeline: nil frame")
	}

	general, err := segment.GrayMask(img, p.cfg.GrayLevel, p.cfg.BlurRadius)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: general mask")
	}
	general, err = segment.Open(general, DefaultGeneralOpenSize)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: general mask")
	}
	general, err = segment.Close(general, DefaultGeneralCloseSize)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: general mask")
	}

	masks := Masks{General: general}
	for _, fm := range []struct {
		family coin.Family
		dst    **raster.Raster
		open   int
	}{
		{coin.FamilyCopper, &masks.Copper, DefaultFamilyOpenSize},
		{coin.FamilyGold, &masks.Gold, p.cfg.GoldOpenSize},
		{coin.FamilyEuro, &masks.Euro, DefaultFamilyOpenSize},
	} {
		m, err := segment.FamilyMask(img, fm.family)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: %s mask", fm.family)
		}
		if m, err = segment.Open(m, fm.open); err != nil {
			return nil, errors.Wrapf(err, "pipeline: %s mask", fm.family)
		}
		*fm.dst = m
	}
	return p.ProcessMasks(masks)
}

// ProcessMasks counts coins in one frame given pre-segmented masks.
// Candidates come from the general mask; each is resolved by the
// family classifiers in priority order (euro, then gold, then copper),
// the first success claiming the candidate and adding an exclusion
// zone so later passes skip it. Counter increments are driven by the
// tracker's already-counted answers. The frame clock advances at the
// end of the call.
func (p *Processor) ProcessMasks(m Masks) (*FrameReport, error) {
	if !m.General.SameShape(m.Copper) || !m.General.SameShape(m.Gold) || !m.General.SameShape(m.Euro) {
		return nil, errors.WithStack(raster.ErrShapeMismatch)
	}
	regions, err := p.extract(m.General, "general")
	if err != nil {
		return nil, err
	}
	copper, err := p.extract(m.Copper, "copper")
	if err != nil {
		return nil, err
	}
	gold, err := p.extract(m.Gold, "gold")
	if err != nil {
		return nil, err
	}
	euro, err := p.extract(m.Euro, "euro")
	if err != nil {
		return nil, err
	}

	p.exclusion.Clear()
	report := &FrameReport{Frame: p.tracker.Frame()}

	for _, cand := range regions {
		if cand.Area < p.cfg.MinCandidateArea ||
			cand.Area >= p.cfg.MaxCandidateArea ||
			cand.W > p.cfg.MaxCandidateWidth {
			continue
		}
		if p.exclusion.IsExcluded(cand.CX, cand.CY) {
			continue
		}
		report.Candidates++

		if p.claimEuro(euro, report) {
			continue
		}
		if p.claimAssociated(gold, cand, coin.FamilyGold, report) {
			continue
		}
		p.claimAssociated(copper, cand, coin.FamilyCopper, report)
	}

	report.Total = p.counters.Total()
	report.Value = p.counters.Value()

	if p.cfg.SummaryInterval > 0 && p.tracker.Frame()%p.cfg.SummaryInterval == 0 {
		p.logSummary()
	}
	p.tracker.AdvanceFrame()
	return report, nil
}

func (p *Processor) extract(r *raster.Raster, name string) ([]blob.Region, error) {
	labels, count, err := blob.Label(r)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline: %s regions", name)
	}
	regions, err := blob.ExtractFeatures(labels, count)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline: %s regions", name)
	}
	return regions, nil
}

// claimEuro picks the best euro region in the frame: the most circular
// complete disk, or failing that the largest qualifying partial
// region. Euro coins supersede earlier gold classifications at the
// same location, so the stale-class correction runs before the
// tracker records the detection.
func (p *Processor) claimEuro(euro []blob.Region, report *FrameReport) bool {
	bestIdx := -1
	var bestRes coin.Result
	for i, r := range euro {
		if p.exclusion.IsExcluded(r.CX, r.CY) {
			continue
		}
		res, ok := p.classifier.Classify(r, coin.FamilyEuro)
		if !ok {
			continue
		}
		if bestIdx == -1 || better(res, bestRes, r, euro[bestIdx]) {
			bestIdx = i
			bestRes = res
		}
	}
	if bestIdx == -1 {
		return false
	}

	r := euro[bestIdx]
	p.tracker.CorrectStaleClass(r.CX, r.CY, &p.counters)
	p.count(r, bestRes, report)
	p.exclusion.Add(r.CX, r.CY)
	return true
}

// better orders euro candidates: complete disks beat partials, then
// circularity for completes, area for partials.
func better(a, prev coin.Result, ar, prevr blob.Region) bool {
	if a.Partial != prev.Partial {
		return !a.Partial
	}
	if a.Partial {
		return ar.Area > prevr.Area
	}
	return a.Circularity > prev.Circularity
}

// claimAssociated resolves a general-mask candidate through a family
// mask: the family region must sit within the association radius of
// the candidate's centroid. Copper exclusion zones are shifted down by
// a twentieth of the diameter; the copper mask bites into the coin's
// shadowed lower rim and skews the centroid upward.
func (p *Processor) claimAssociated(family []blob.Region, cand blob.Region, f coin.Family, report *FrameReport) bool {
	radiusSq := p.cfg.AssocRadius * p.cfg.AssocRadius
	for _, r := range family {
		dx, dy := r.CX-cand.CX, r.CY-cand.CY
		if dx*dx+dy*dy > radiusSq {
			continue
		}
		res, ok := p.classifier.Classify(r, f)
		if !ok {
			continue
		}

		ex, ey := r.CX, r.CY
		if f == coin.FamilyCopper {
			ey += int(res.Diameter * 0.05)
		}
		p.count(r, res, report)
		p.exclusion.Add(ex, ey)
		return true
	}
	return false
}

// count routes one classification through the tracker and applies the
// at-most-once counter increment. Every classification lands in
// report.Detections; only first sightings land in report.New.
func (p *Processor) count(r blob.Region, res coin.Result, report *FrameReport) {
	already := p.tracker.RecordAndCheck(r.CX, r.CY, res.Denomination, true)

	det := Detection{Result: res, Region: r}
	if tracked, ok := p.tracker.Lookup(r.CX, r.CY); ok {
		det.TrackID = tracked.ID
	}
	report.Detections = append(report.Detections, det)
	if already {
		return
	}
	p.counters.Inc(res.Denomination)
	p.stats.Record(res.Denomination, res, r)
	report.New = append(report.New, det)
	p.cfg.Logger.Printf("coin %s: %s | %.2f EUR | diameter %.1f | area %d | circularity %.2f",
		det.TrackID, res.Denomination, res.Denomination.Value(), res.Diameter, r.Area, res.Circularity)
}

func (p *Processor) logSummary() {
	c := p.counters
	p.cfg.Logger.Printf("tally frame %d: 1c=%d 2c=%d 5c=%d 10c=%d 20c=%d 50c=%d 1eur=%d 2eur=%d | %d coins | %.2f EUR",
		p.tracker.Frame(),
		c.Get(coin.OneCent), c.Get(coin.TwoCent), c.Get(coin.FiveCent),
		c.Get(coin.TenCent), c.Get(coin.TwentyCent), c.Get(coin.FiftyCent),
		c.Get(coin.OneEuro), c.Get(coin.TwoEuro),
		c.Total(), c.Value())
}
