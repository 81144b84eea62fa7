package domain

import (
	"github.com/shopspring/decimal"
)

// SlabDetail is the tax charged within one bracket
type SlabDetail struct {
	MinAmount     decimal.Decimal  `json:"min_amount"`
	MaxAmount     *decimal.Decimal `json:"max_amount"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	TaxAmount     decimal.Decimal  `json:"tax_amount"`
}

// DeductionDetail shows a claimed deduction next to the amount actually allowed
type DeductionDetail struct {
	Section Section         `json:"section"`
	Claimed decimal.Decimal `json:"claimed"`
	Allowed decimal.Decimal `json:"allowed"`
}

// TaxBreakdown is the result of computing one regime for one input.
// RefundOrPayable is positive when more tax is due and negative for a refund.
type TaxBreakdown struct {
	Regime                 Regime            `json:"regime"`
	AssessmentYear         string            `json:"assessment_year"`
	GrossIncome            decimal.Decimal   `json:"gross_income"`
	TotalDeductionsApplied decimal.Decimal   `json:"total_deductions"`
	TaxableIncome          decimal.Decimal   `json:"taxable_income"`
	TaxBeforeCess          decimal.Decimal   `json:"tax_before_cess"`
	Cess                   decimal.Decimal   `json:"cess"`
	TotalTax               decimal.Decimal   `json:"total_tax"`
	EffectiveTaxRate       decimal.Decimal   `json:"effective_tax_rate"`
	TDSDeducted            decimal.Decimal   `json:"tds_deducted"`
	AdvanceTax             decimal.Decimal   `json:"advance_tax"`
	RefundOrPayable        decimal.Decimal   `json:"refund_or_payable"`
	Deductions             []DeductionDetail `json:"deductions"`
	TaxSlabs               []SlabDetail      `json:"tax_slabs"`
}

// IsRefund reports whether prepaid tax exceeds the liability
func (b *TaxBreakdown) IsRefund() bool {
	return b.RefundOrPayable.IsNegative()
}

// ComparisonResult pairs both regimes with a recommendation
type ComparisonResult struct {
	AssessmentYear    string          `json:"assessment_year"`
	OldRegime         *TaxBreakdown   `json:"old_regime"`
	NewRegime         *TaxBreakdown   `json:"new_regime"`
	RecommendedRegime Regime          `json:"recommended_regime"`
	SavingsAmount     decimal.Decimal `json:"savings_amount"`
	Reason            string          `json:"reason"`
}

// Recommended returns the breakdown of the recommended regime
func (c *ComparisonResult) Recommended() *TaxBreakdown {
	if c.RecommendedRegime == RegimeNew {
		return c.NewRegime
	}
	return c.OldRegime
}

// TaxSavingSuggestion is an actionable hint with its estimated tax effect
type TaxSavingSuggestion struct {
	Category                 string          `json:"category"`
	Section                  Section         `json:"section,omitempty"`
	Description              string          `json:"description"`
	Headroom                 decimal.Decimal `json:"headroom"`
	PotentialSavings         decimal.Decimal `json:"potential_savings"`
	ImplementationDifficulty string          `json:"implementation_difficulty"`
	Priority                 int             `json:"priority"`
	Details                  string          `json:"details"`
}
