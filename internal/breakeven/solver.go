package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the old-regime deduction level at which both regimes cost the same
type Solver struct {
	Comparator *compare.Comparator
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(comparator *compare.Comparator, options SolverOptions) *Solver {
	return &Solver{
		Comparator: comparator,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(comparator *compare.Comparator) *Solver {
	return NewSolver(comparator, DefaultSolverOptions())
}

// DeductionBreakEven compares both regimes and then binary-searches the total old-regime
// deduction at which the old regime's tax meets the new regime's. Old-regime tax is
// non-increasing in deductions, so the search is well defined.
func (s *Solver) DeductionBreakEven(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = decimal.NewFromInt(1)
	}

	comparison, err := s.Comparator.Compare(req.Input, req.AssessmentYear)
	if err != nil {
		return nil, &BreakEvenError{Operation: "break_even", Message: "failed to compare regimes", Cause: err}
	}
	oldTable, err := s.Comparator.Slabs.SlabTable(domain.RegimeOld, req.AssessmentYear)
	if err != nil {
		return nil, &BreakEvenError{Operation: "break_even", Message: "failed to load old regime slabs", Cause: err}
	}

	gross := comparison.OldRegime.GrossIncome
	applied := comparison.OldRegime.TotalDeductionsApplied
	target := comparison.NewRegime.TotalTax
	oldTaxWith := func(deductions decimal.Decimal) decimal.Decimal {
		taxable := decimal.Max(decimal.Zero, gross.Sub(deductions))
		return calculation.TaxOnTaxableIncome(taxable, oldTable)
	}

	result := &Result{
		AssessmentYear: req.AssessmentYear,
		OldRegimeTax:   comparison.OldRegime.TotalTax,
		NewRegimeTax:   target,
		OldDeductions:  applied,
	}

	var width decimal.Decimal
	if comparison.OldRegime.TotalTax.GreaterThan(target) {
		// smallest extra X in (0, gross] with oldTaxWith(applied+X) <= target
		result.Mode = ModeExtraDeduction
		extra, bracket, iterations, err := s.search(ctx, decimal.Zero, gross, req, func(x decimal.Decimal) bool {
			return oldTaxWith(applied.Add(x)).LessThanOrEqual(target)
		}, true)
		if err != nil {
			return nil, err
		}
		result.Amount = extra
		result.OldTaxAtBreakEven = oldTaxWith(applied.Add(extra))
		width = bracket
		result.Iterations = iterations
	} else {
		// largest X in [0, applied] with oldTaxWith(applied-X) <= target
		result.Mode = ModeDeductionMargin
		if oldTaxWith(decimal.Zero).LessThanOrEqual(target) {
			result.Amount = applied
			result.OldTaxAtBreakEven = oldTaxWith(decimal.Zero)
			result.Success = true
			result.ConvergenceInfo = "Old regime stays cheaper even without deductions"
			return result, nil
		}
		margin, bracket, iterations, err := s.search(ctx, decimal.Zero, applied, req, func(x decimal.Decimal) bool {
			return oldTaxWith(applied.Sub(x)).LessThanOrEqual(target)
		}, false)
		if err != nil {
			return nil, err
		}
		result.Amount = margin
		result.OldTaxAtBreakEven = oldTaxWith(applied.Sub(margin))
		width = bracket
		result.Iterations = iterations
	}

	if width.GreaterThan(req.Tolerance) {
		result.Success = false
		result.ConvergenceInfo = fmt.Sprintf("Did not converge after %d iterations; answer is within %s",
			result.Iterations, domain.FormatRupees(width))
		return result, nil
	}
	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Converged within %s after %d iterations",
		domain.FormatRupees(req.Tolerance), result.Iterations)
	return result, nil
}

// search bisects [lo, hi] on whole units. When wantMin is true, ok(lo) is false and
// ok(hi) true, and the smallest passing value is returned; otherwise ok(lo) is true and
// ok(hi) false, and the largest passing value is returned. The width of the final
// bracket is returned alongside; it exceeds the tolerance only when MaxIterations ran out.
func (s *Solver) search(ctx context.Context, lo, hi decimal.Decimal, req Request, ok func(decimal.Decimal) bool, wantMin bool) (decimal.Decimal, decimal.Decimal, int, error) {
	lo = lo.Floor()
	hi = hi.Ceil()
	iterations := 0
	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return decimal.Zero, decimal.Zero, iterations, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two).Floor()
		if ok(mid) == wantMin {
			hi = mid
		} else {
			lo = mid
		}
	}
	width := hi.Sub(lo)
	if wantMin {
		return hi, width, iterations, nil
	}
	return lo, width, iterations, nil
}
