package calculation

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION RULES:
//
// 1. Slab tax is accumulated unrounded across brackets and rounded once,
//    half-up to whole units, to give tax before cess.
// 2. Cess = round(tax before cess * cess rate / 100); total = tax before cess + cess.
// 3. Effective rate = total / gross * 100 to two places, 0 for zero gross income.
// 4. The new regime allows only the standard deduction.

var hundred = decimal.NewFromInt(100)

// ProgressiveTax walks the ascending brackets and taxes the portion of taxable income
// falling in each one. It returns the unrounded tax and one SlabDetail per bracket that
// received income.
func ProgressiveTax(taxable decimal.Decimal, brackets []domain.SlabBracket) (decimal.Decimal, []domain.SlabDetail) {
	total := decimal.Zero
	details := make([]domain.SlabDetail, 0, len(brackets))
	if !taxable.IsPositive() {
		return total, details
	}

	for _, b := range brackets {
		if taxable.LessThanOrEqual(b.LowerBound) {
			break
		}
		top := taxable
		if !b.Unbounded() {
			top = decimal.Min(taxable, *b.UpperBound)
		}
		inBracket := top.Sub(b.LowerBound)
		tax := inBracket.Mul(b.Rate).Div(hundred)
		total = total.Add(tax)

		detail := domain.SlabDetail{
			MinAmount:     b.LowerBound,
			Rate:          b.Rate,
			TaxableAmount: inBracket,
			TaxAmount:     tax,
		}
		if b.UpperBound != nil {
			upper := *b.UpperBound
			detail.MaxAmount = &upper
		}
		details = append(details, detail)
	}
	return total, details
}

// Cess applies the cess rate (percent) to the rounded tax before cess
func Cess(taxBeforeCess, cessRate decimal.Decimal) decimal.Decimal {
	return taxBeforeCess.Mul(cessRate).Div(hundred).Round(0)
}

// TaxOnTaxableIncome is the total liability, cess included, for a taxable amount
// under a table. It skips deductions and input validation.
func TaxOnTaxableIncome(taxable decimal.Decimal, table *domain.RegimeSlabTable) decimal.Decimal {
	raw, _ := ProgressiveTax(taxable, table.Brackets())
	beforeCess := raw.Round(0)
	return beforeCess.Add(Cess(beforeCess, table.CessRate()))
}

// EffectiveRate is total / gross as a percentage to two places
func EffectiveRate(totalTax, grossIncome decimal.Decimal) decimal.Decimal {
	if !grossIncome.IsPositive() {
		return decimal.Zero
	}
	return totalTax.Div(grossIncome).Mul(hundred).Round(2)
}
