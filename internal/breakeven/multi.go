package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
)

// MultiYearResult holds break-even results for several assessment years
type MultiYearResult struct {
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// DeductionBreakEvenYears runs DeductionBreakEven for each assessment year in order.
// Any failing year fails the whole run.
func (s *Solver) DeductionBreakEvenYears(ctx context.Context, input domain.FinancialInput, years []string) (*MultiYearResult, error) {
	if len(years) == 0 {
		return nil, &BreakEvenError{
			Operation: "break_even_years",
			Message:   "at least one assessment year is required",
		}
	}

	out := &MultiYearResult{Results: make([]Result, 0, len(years))}
	for _, year := range years {
		result, err := s.DeductionBreakEven(ctx, Request{Input: input, AssessmentYear: year})
		if err != nil {
			return nil, fmt.Errorf("assessment year %s: %w", year, err)
		}
		out.Results = append(out.Results, *result)
		out.Recommendations = append(out.Recommendations, Recommendation(result))
	}
	return out, nil
}

// Recommendation phrases a result as one line of advice
func Recommendation(r *Result) string {
	if !r.Success && r.Mode != "" {
		return fmt.Sprintf("AY %s: break-even search gave up (%s)", r.AssessmentYear, r.ConvergenceInfo)
	}
	switch r.Mode {
	case ModeExtraDeduction:
		return fmt.Sprintf("AY %s: the new regime is cheaper unless old-regime deductions rise by %s",
			r.AssessmentYear, domain.FormatRupees(r.Amount))
	case ModeDeductionMargin:
		if r.Amount.Equal(r.OldDeductions) {
			return fmt.Sprintf("AY %s: the old regime stays cheaper even with no deductions", r.AssessmentYear)
		}
		return fmt.Sprintf("AY %s: the old regime stays cheaper while deductions fall by no more than %s",
			r.AssessmentYear, domain.FormatRupees(r.Amount))
	}
	return fmt.Sprintf("AY %s: no break-even found", r.AssessmentYear)
}
