package api

import (
	"time"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxRequest is the body shared by the calculation endpoints
type TaxRequest struct {
	FinancialData  map[string]any `json:"financial_data"`
	AssessmentYear string         `json:"assessment_year"`
	Regime         string         `json:"regime,omitempty"`
}

// CalculationResponse is a full comparison with a per-request identifier
type CalculationResponse struct {
	CalculationID string `json:"calculation_id"`
	*domain.ComparisonResult
}

// BreakdownResponse is a single-regime result with a per-request identifier
type BreakdownResponse struct {
	CalculationID string `json:"calculation_id"`
	*domain.TaxBreakdown
}

// RegimeSummary is the short form of a TaxBreakdown used by compare-regimes
type RegimeSummary struct {
	GrossIncome     decimal.Decimal `json:"gross_income"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	TaxLiability    decimal.Decimal `json:"tax_liability"`
	EffectiveRate   decimal.Decimal `json:"effective_rate"`
}

// ComparisonResponse summarises the two regimes side by side
type ComparisonResponse struct {
	AssessmentYear string                   `json:"assessment_year"`
	OldRegimeTax   decimal.Decimal          `json:"old_regime_tax"`
	NewRegimeTax   decimal.Decimal          `json:"new_regime_tax"`
	Difference     decimal.Decimal          `json:"difference"`
	Recommended    domain.Regime            `json:"recommended"`
	Reason         string                   `json:"reason"`
	Breakdown      map[string]RegimeSummary `json:"breakdown"`
}

// SlabRow is one bracket in a slab listing; Max is null for the top bracket
type SlabRow struct {
	Min  decimal.Decimal  `json:"min"`
	Max  *decimal.Decimal `json:"max"`
	Rate decimal.Decimal  `json:"rate"`
}

// SlabsResponse lists a regime's brackets
type SlabsResponse struct {
	Regime         domain.Regime   `json:"regime"`
	AssessmentYear string          `json:"assessment_year"`
	CessRate       decimal.Decimal `json:"cess_rate"`
	Slabs          []SlabRow       `json:"slabs"`
}

// SuggestionsResponse wraps tax-saving suggestions
type SuggestionsResponse struct {
	Regime                domain.Regime                `json:"regime"`
	AssessmentYear        string                       `json:"assessment_year"`
	TotalSavingsPotential decimal.Decimal              `json:"total_savings_potential"`
	Suggestions           []domain.TaxSavingSuggestion `json:"suggestions"`
}

// HealthResponse reports service availability
type HealthResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Services  map[string]bool `json:"services"`
	Features  []string        `json:"features"`
	Years     []string        `json:"assessment_years"`
	Timestamp string          `json:"timestamp"`
}

func summarize(b *domain.TaxBreakdown) RegimeSummary {
	return RegimeSummary{
		GrossIncome:     b.GrossIncome,
		TotalDeductions: b.TotalDeductionsApplied,
		TaxableIncome:   b.TaxableIncome,
		TaxLiability:    b.TotalTax,
		EffectiveRate:   b.EffectiveTaxRate,
	}
}

func toComparisonResponse(c *domain.ComparisonResult) ComparisonResponse {
	return ComparisonResponse{
		AssessmentYear: c.AssessmentYear,
		OldRegimeTax:   c.OldRegime.TotalTax,
		NewRegimeTax:   c.NewRegime.TotalTax,
		Difference:     c.SavingsAmount,
		Recommended:    c.RecommendedRegime,
		Reason:         c.Reason,
		Breakdown: map[string]RegimeSummary{
			string(domain.RegimeOld): summarize(c.OldRegime),
			string(domain.RegimeNew): summarize(c.NewRegime),
		},
	}
}

func toSlabsResponse(table *domain.RegimeSlabTable) SlabsResponse {
	return SlabsResponse{
		Regime:         table.Regime(),
		AssessmentYear: table.AssessmentYear(),
		CessRate:       table.CessRate(),
		Slabs: lo.Map(table.Brackets(), func(b domain.SlabBracket, _ int) SlabRow {
			return SlabRow{Min: b.LowerBound, Max: b.UpperBound, Rate: b.Rate}
		}),
	}
}

func toSuggestionsResponse(regime domain.Regime, year string, suggestions []domain.TaxSavingSuggestion) SuggestionsResponse {
	return SuggestionsResponse{
		Regime:         regime,
		AssessmentYear: year,
		TotalSavingsPotential: lo.Reduce(suggestions, func(sum decimal.Decimal, s domain.TaxSavingSuggestion, _ int) decimal.Decimal {
			return sum.Add(s.PotentialSavings)
		}, decimal.Zero),
		Suggestions: suggestions,
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
