package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SlabBracket is one row of a progressive rate table.
// LowerBound is inclusive, UpperBound exclusive; a nil UpperBound is unbounded.
type SlabBracket struct {
	LowerBound decimal.Decimal  `json:"min"`
	UpperBound *decimal.Decimal `json:"max"`
	Rate       decimal.Decimal  `json:"rate"` // percent
}

// Unbounded reports whether this is the top bracket
func (b SlabBracket) Unbounded() bool {
	return b.UpperBound == nil
}

// Contains reports whether amount falls in [LowerBound, UpperBound)
func (b SlabBracket) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.LowerBound) {
		return false
	}
	return b.Unbounded() || amount.LessThan(*b.UpperBound)
}

// RegimeSlabTable is a validated, immutable bracket set for one regime and assessment year.
// The only way to obtain a usable table is NewRegimeSlabTable.
type RegimeSlabTable struct {
	regime         Regime
	assessmentYear string
	brackets       []SlabBracket
	cessRate       decimal.Decimal
	valid          bool
}

// NewRegimeSlabTable validates the brackets and returns a read-only table.
// Brackets must start at zero, be contiguous and ascending, and end with exactly one
// unbounded bracket. Rates and the cess rate are percentages in [0, 100].
func NewRegimeSlabTable(regime Regime, assessmentYear string, brackets []SlabBracket, cessRate decimal.Decimal) (*RegimeSlabTable, error) {
	fail := func(format string, args ...any) (*RegimeSlabTable, error) {
		return nil, &ConfigError{Regime: regime, AssessmentYear: assessmentYear, Reason: fmt.Sprintf(format, args...)}
	}

	if regime != RegimeOld && regime != RegimeNew {
		return fail("unknown regime %q", regime)
	}
	if assessmentYear == "" {
		return fail("assessment year is required")
	}
	if cessRate.IsNegative() || cessRate.GreaterThan(hundred) {
		return fail("cess rate %s must be between 0 and 100", cessRate)
	}
	if len(brackets) == 0 {
		return fail("no brackets defined")
	}
	if !brackets[0].LowerBound.IsZero() {
		return fail("first bracket must start at 0, starts at %s", brackets[0].LowerBound)
	}

	copied := make([]SlabBracket, len(brackets))
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(hundred) {
			return fail("bracket %d rate %s must be between 0 and 100", i, b.Rate)
		}
		if b.Unbounded() {
			if i != len(brackets)-1 {
				return fail("bracket %d is unbounded but is not the top bracket", i)
			}
		} else if !b.UpperBound.GreaterThan(b.LowerBound) {
			return fail("bracket %d upper bound %s must exceed lower bound %s", i, *b.UpperBound, b.LowerBound)
		}
		if i > 0 {
			prev := brackets[i-1]
			if prev.Unbounded() {
				return fail("bracket %d follows the unbounded bracket", i)
			}
			switch {
			case b.LowerBound.GreaterThan(*prev.UpperBound):
				return fail("gap between %s and %s", *prev.UpperBound, b.LowerBound)
			case b.LowerBound.LessThan(*prev.UpperBound):
				return fail("bracket %d overlaps previous bracket (%s < %s)", i, b.LowerBound, *prev.UpperBound)
			}
		}

		copied[i] = SlabBracket{LowerBound: b.LowerBound, Rate: b.Rate}
		if b.UpperBound != nil {
			upper := *b.UpperBound
			copied[i].UpperBound = &upper
		}
	}
	if !copied[len(copied)-1].Unbounded() {
		return fail("missing unbounded top bracket")
	}

	return &RegimeSlabTable{
		regime:         regime,
		assessmentYear: assessmentYear,
		brackets:       copied,
		cessRate:       cessRate,
		valid:          true,
	}, nil
}

func (t *RegimeSlabTable) Regime() Regime            { return t.regime }
func (t *RegimeSlabTable) AssessmentYear() string    { return t.assessmentYear }
func (t *RegimeSlabTable) CessRate() decimal.Decimal { return t.cessRate }

// Valid reports whether the table was built by NewRegimeSlabTable
func (t *RegimeSlabTable) Valid() bool {
	return t != nil && t.valid
}

// Brackets returns a copy of the brackets in ascending order
func (t *RegimeSlabTable) Brackets() []SlabBracket {
	out := make([]SlabBracket, len(t.brackets))
	copy(out, t.brackets)
	return out
}

// TopRate is the rate of the unbounded bracket
func (t *RegimeSlabTable) TopRate() decimal.Decimal {
	return t.brackets[len(t.brackets)-1].Rate
}

// MarginalRate is the rate applied to the next unit above taxable income
func (t *RegimeSlabTable) MarginalRate(taxable decimal.Decimal) decimal.Decimal {
	for _, b := range t.brackets {
		if b.Contains(taxable) {
			return b.Rate
		}
	}
	return t.TopRate()
}
