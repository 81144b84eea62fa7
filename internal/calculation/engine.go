package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionLimits supplies statutory caps. *domain.SlabRegistry implements it.
type DeductionLimits interface {
	DeductionLimit(section domain.Section) (limit decimal.Decimal, capped bool)
}

// Engine computes a TaxBreakdown for one regime. It holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	Limits DeductionLimits
	Logger Logger
}

// NewEngine creates a calculation engine using the given deduction caps
func NewEngine(limits DeductionLimits) *Engine {
	return &Engine{
		Limits: limits,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger, falling back to NopLogger for nil
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Compute runs one regime against one input. Input is validated before any arithmetic;
// a table that was not built by NewRegimeSlabTable, or that belongs to another regime,
// is refused.
func (e *Engine) Compute(input domain.FinancialInput, regime domain.Regime, table *domain.RegimeSlabTable) (*domain.TaxBreakdown, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := domain.ParseRegime(string(regime)); err != nil {
		return nil, err
	}
	if !table.Valid() {
		return nil, &domain.ConfigError{Regime: regime, Reason: "slab table has not been validated"}
	}
	if table.Regime() != regime {
		return nil, &domain.ConfigError{
			Regime:         regime,
			AssessmentYear: table.AssessmentYear(),
			Reason:         fmt.Sprintf("slab table is for the %s regime", table.Regime()),
		}
	}

	gross := input.GrossIncome()
	deductions, totalDeductions := e.applyDeductions(input, regime)
	taxable := decimal.Max(decimal.Zero, gross.Sub(totalDeductions))

	raw, slabs := ProgressiveTax(taxable, table.Brackets())
	taxBeforeCess := raw.Round(0)
	cess := Cess(taxBeforeCess, table.CessRate())
	totalTax := taxBeforeCess.Add(cess)

	breakdown := &domain.TaxBreakdown{
		Regime:                 regime,
		AssessmentYear:         table.AssessmentYear(),
		GrossIncome:            gross,
		TotalDeductionsApplied: totalDeductions,
		TaxableIncome:          taxable,
		TaxBeforeCess:          taxBeforeCess,
		Cess:                   cess,
		TotalTax:               totalTax,
		EffectiveTaxRate:       EffectiveRate(totalTax, gross),
		TDSDeducted:            input.TDSDeducted,
		AdvanceTax:             input.AdvanceTax,
		RefundOrPayable:        totalTax.Sub(input.TaxesPaid()),
		Deductions:             deductions,
		TaxSlabs:               slabs,
	}

	e.Logger.Debugf("%s regime %s: gross=%s deductions=%s taxable=%s total=%s",
		regime, table.AssessmentYear(), gross, totalDeductions, taxable, totalTax)
	return breakdown, nil
}

// applyDeductions caps each allowed section. The standard deduction applies in both
// regimes; itemized sections only in the old regime.
func (e *Engine) applyDeductions(input domain.FinancialInput, regime domain.Regime) ([]domain.DeductionDetail, decimal.Decimal) {
	sections := []domain.Section{domain.SectionStandardDeduction}
	if regime == domain.RegimeOld {
		sections = append(sections, domain.OldRegimeSections...)
	}

	details := make([]domain.DeductionDetail, 0, len(sections))
	total := decimal.Zero
	for _, section := range sections {
		claimed := input.Claimed(section)
		allowed := e.capped(section, claimed)
		if claimed.IsZero() {
			continue
		}
		if allowed.LessThan(claimed) {
			e.Logger.Debugf("%s claim %s capped at %s", section, claimed, allowed)
		}
		details = append(details, domain.DeductionDetail{Section: section, Claimed: claimed, Allowed: allowed})
		total = total.Add(allowed)
	}
	return details, total
}

func (e *Engine) capped(section domain.Section, claimed decimal.Decimal) decimal.Decimal {
	if e.Limits == nil {
		return claimed
	}
	if limit, ok := e.Limits.DeductionLimit(section); ok {
		return decimal.Min(claimed, limit)
	}
	return claimed
}

// AllowedDeduction is the capped amount of a claim under the engine's limits
func (e *Engine) AllowedDeduction(section domain.Section, claimed decimal.Decimal) decimal.Decimal {
	return e.capped(section, claimed)
}
