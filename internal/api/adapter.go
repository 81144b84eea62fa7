package api

import (
	"strings"

	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Adapter turns loosely typed request payloads into validated inputs and runs the
// comparator. It is the only place web input meets the calculation core.
type Adapter struct {
	Comparator        *compare.Comparator
	Registry          *domain.SlabRegistry
	StandardDeduction decimal.Decimal
	DefaultYear       string
}

// NewAdapter creates an adapter over a loaded registry
func NewAdapter(registry *domain.SlabRegistry, defaultYear string) *Adapter {
	return &Adapter{
		Comparator:        compare.NewComparator(registry),
		Registry:          registry,
		StandardDeduction: registry.StandardDeduction(),
		DefaultYear:       defaultYear,
	}
}

// ParseInput builds a FinancialInput from a partial payload. Absent fields are zero
// except standard_deduction, which defaults to the configured limit.
func (a *Adapter) ParseInput(raw map[string]any) (domain.FinancialInput, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	return domain.ParseFinancialFields(raw, a.StandardDeduction)
}

// Year returns the requested assessment year or the default
func (a *Adapter) Year(assessmentYear string) string {
	if y := strings.TrimSpace(assessmentYear); y != "" {
		return y
	}
	return a.DefaultYear
}

// ComputeTaxBreakdown computes one regime for a partial payload
func (a *Adapter) ComputeTaxBreakdown(raw map[string]any, regime, assessmentYear string) (*domain.TaxBreakdown, error) {
	input, err := a.ParseInput(raw)
	if err != nil {
		return nil, err
	}
	r, err := domain.ParseRegime(regime)
	if err != nil {
		return nil, err
	}
	return a.Comparator.ComputeBreakdown(input, r, a.Year(assessmentYear))
}

// CompareRegimes computes both regimes for a partial payload and recommends one
func (a *Adapter) CompareRegimes(raw map[string]any, assessmentYear string) (*domain.ComparisonResult, error) {
	input, err := a.ParseInput(raw)
	if err != nil {
		return nil, err
	}
	return a.Comparator.Compare(input, a.Year(assessmentYear))
}

// Suggestions returns tax-saving hints for a partial payload
func (a *Adapter) Suggestions(raw map[string]any, regime, assessmentYear string) ([]domain.TaxSavingSuggestion, error) {
	input, err := a.ParseInput(raw)
	if err != nil {
		return nil, err
	}
	r, err := domain.ParseRegime(regime)
	if err != nil {
		return nil, err
	}
	return a.Comparator.Suggestions(input, r, a.Year(assessmentYear))
}

// SlabTable looks up a table by regime name
func (a *Adapter) SlabTable(regime, assessmentYear string) (*domain.RegimeSlabTable, error) {
	r, err := domain.ParseRegime(regime)
	if err != nil {
		return nil, err
	}
	return a.Registry.SlabTable(r, a.Year(assessmentYear))
}
