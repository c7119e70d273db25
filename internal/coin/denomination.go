package coin

// Denomination identifies one euro coin denomination. The zero value
// means "not a recognized coin".
type Denomination int

const (
	Unknown Denomination = iota
	OneCent
	TwoCent
	FiveCent
	TenCent
	TwentyCent
	FiftyCent
	OneEuro
	TwoEuro

	// NumDenominations is the count of real denominations, Unknown excluded.
	NumDenominations = int(TwoEuro)
)

// referenceDiameters holds the expected pixel diameter of each
// denomination at the nominal camera distance, indexed by Denomination.
var referenceDiameters = [NumDenominations + 1]float64{
	OneCent:    122,
	TwoCent:    135,
	FiveCent:   152,
	TenCent:    143,
	TwentyCent: 160,
	FiftyCent:  174,
	OneEuro:    185,
	TwoEuro:    195,
}

// monetary value in euros, indexed by Denomination
var values = [NumDenominations + 1]float64{
	OneCent:    0.01,
	TwoCent:    0.02,
	FiveCent:   0.05,
	TenCent:    0.10,
	TwentyCent: 0.20,
	FiftyCent:  0.50,
	OneEuro:    1.00,
	TwoEuro:    2.00,
}

var names = [NumDenominations + 1]string{
	Unknown:    "unknown",
	OneCent:    "1c",
	TwoCent:    "2c",
	FiveCent:   "5c",
	TenCent:    "10c",
	TwentyCent: "20c",
	FiftyCent:  "50c",
	OneEuro:    "1eur",
	TwoEuro:    "2eur",
}

func (d Denomination) String() string {
	if d < Unknown || int(d) > NumDenominations {
		return "invalid"
	}
	return names[d]
}

// Value returns the denomination's monetary value in euros, 0 for Unknown.
func (d Denomination) Value() float64 {
	if d <= Unknown || int(d) > NumDenominations {
		return 0
	}
	return values[d]
}

// ReferenceDiameter returns the uncalibrated expected pixel diameter,
// 0 for Unknown.
func (d Denomination) ReferenceDiameter() float64 {
	if d <= Unknown || int(d) > NumDenominations {
		return 0
	}
	return referenceDiameters[d]
}

// Family groups denominations by material appearance. Each family is
// segmented by its own color mask and classified in its own pass.
type Family int

const (
	FamilyNone Family = iota

	// FamilyCopper covers 1c, 2c and 5c.
	FamilyCopper

	// FamilyGold covers 10c, 20c and 50c.
	FamilyGold

	// FamilyEuro covers the bimetallic 1 and 2 euro coins.
	FamilyEuro
)

func (f Family) String() string {
	switch f {
	case FamilyCopper:
		return "copper"
	case FamilyGold:
		return "gold"
	case FamilyEuro:
		return "euro"
	default:
		return "none"
	}
}

// Denominations returns the family's member denominations in ascending
// diameter order.
func (f Family) Denominations() []Denomination {
	switch f {
	case FamilyCopper:
		return []Denomination{OneCent, TwoCent, FiveCent}
	case FamilyGold:
		return []Denomination{TenCent, TwentyCent, FiftyCent}
	case FamilyEuro:
		return []Denomination{OneEuro, TwoEuro}
	default:
		return nil
	}
}

// Family returns the family a denomination belongs to.
func (d Denomination) Family() Family {
	switch d {
	case OneCent, TwoCent, FiveCent:
		return FamilyCopper
	case TenCent, TwentyCent, FiftyCent:
		return FamilyGold
	case OneEuro, TwoEuro:
		return FamilyEuro
	default:
		return FamilyNone
	}
}
