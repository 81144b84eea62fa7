package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

// SlabSource looks up validated slab tables. *domain.SlabRegistry implements it.
type SlabSource interface {
	SlabTable(regime domain.Regime, assessmentYear string) (*domain.RegimeSlabTable, error)
}

// Comparator runs the engine for both regimes and recommends the cheaper one
type Comparator struct {
	Slabs      SlabSource
	CalcEngine *calculation.Engine
}

// NewComparator creates a comparator backed by a registry for both tables and caps
func NewComparator(registry *domain.SlabRegistry) *Comparator {
	return &Comparator{
		Slabs:      registry,
		CalcEngine: calculation.NewEngine(registry),
	}
}

// ComputeBreakdown computes one regime for an assessment year
func (c *Comparator) ComputeBreakdown(input domain.FinancialInput, regime domain.Regime, assessmentYear string) (*domain.TaxBreakdown, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	table, err := c.Slabs.SlabTable(regime, assessmentYear)
	if err != nil {
		return nil, err
	}
	return c.CalcEngine.Compute(input, regime, table)
}

// Compare computes both regimes and recommends one. Old wins ties.
func (c *Comparator) Compare(input domain.FinancialInput, assessmentYear string) (*domain.ComparisonResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	oldTable, err := c.Slabs.SlabTable(domain.RegimeOld, assessmentYear)
	if err != nil {
		return nil, err
	}
	newTable, err := c.Slabs.SlabTable(domain.RegimeNew, assessmentYear)
	if err != nil {
		return nil, err
	}

	oldBreakdown, err := c.CalcEngine.Compute(input, domain.RegimeOld, oldTable)
	if err != nil {
		return nil, fmt.Errorf("old regime: %w", err)
	}
	newBreakdown, err := c.CalcEngine.Compute(input, domain.RegimeNew, newTable)
	if err != nil {
		return nil, fmt.Errorf("new regime: %w", err)
	}

	result := Recommend(oldBreakdown, newBreakdown)
	result.AssessmentYear = assessmentYear
	c.CalcEngine.Logger.Infof("assessment year %s: old=%s new=%s recommended=%s",
		assessmentYear, oldBreakdown.TotalTax, newBreakdown.TotalTax, result.RecommendedRegime)
	return result, nil
}

// Suggestions returns tax-saving hints for one regime in an assessment year
func (c *Comparator) Suggestions(input domain.FinancialInput, regime domain.Regime, assessmentYear string) ([]domain.TaxSavingSuggestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	table, err := c.Slabs.SlabTable(regime, assessmentYear)
	if err != nil {
		return nil, err
	}
	return c.CalcEngine.Suggestions(input, regime, table)
}

// Recommend pairs two breakdowns, picking the lower total tax with ties going to old
func Recommend(oldBreakdown, newBreakdown *domain.TaxBreakdown) *domain.ComparisonResult {
	diff := oldBreakdown.TotalTax.Sub(newBreakdown.TotalTax)
	savings := diff.Abs()

	result := &domain.ComparisonResult{
		AssessmentYear:    oldBreakdown.AssessmentYear,
		OldRegime:         oldBreakdown,
		NewRegime:         newBreakdown,
		RecommendedRegime: domain.RegimeOld,
		SavingsAmount:     savings,
	}

	switch {
	case diff.IsNegative():
		result.Reason = fmt.Sprintf("Old regime saves %s due to available deductions", domain.FormatRupees(savings))
	case diff.IsPositive():
		result.RecommendedRegime = domain.RegimeNew
		result.Reason = fmt.Sprintf("New regime saves %s due to lower tax rates", domain.FormatRupees(savings))
	default:
		result.Reason = "Both regimes result in similar tax liability"
	}
	return result
}
