package breakeven

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Mode says which question a break-even result answers
type Mode string

const (
	// ModeExtraDeduction: the old regime costs more; Amount is the extra old-regime
	// deduction needed before it costs no more than the new regime.
	ModeExtraDeduction Mode = "extra_deduction_needed"

	// ModeDeductionMargin: the old regime already wins; Amount is how much of the
	// applied old-regime deductions could be lost while it still wins.
	ModeDeductionMargin Mode = "deduction_margin"
)

// Request defines the parameters for a break-even run
type Request struct {
	Input          domain.FinancialInput
	AssessmentYear string
	MaxIterations  int             // Maximum solver iterations
	Tolerance      decimal.Decimal // Convergence tolerance for binary search
}

// Result contains the outcome of a break-even run
type Result struct {
	AssessmentYear    string          `json:"assessment_year"`
	Mode              Mode            `json:"mode"`
	Amount            decimal.Decimal `json:"amount"`
	OldRegimeTax      decimal.Decimal `json:"old_regime_tax"`
	NewRegimeTax      decimal.Decimal `json:"new_regime_tax"`
	OldTaxAtBreakEven decimal.Decimal `json:"old_tax_at_break_even"`
	OldDeductions     decimal.Decimal `json:"old_deductions"`
	Success           bool            `json:"success"`
	Iterations        int             `json:"iterations"`
	ConvergenceInfo   string          `json:"convergence_info,omitempty"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // one rupee
		MaxIterations: 64,
	}
}

// Validate checks the request before solving
func (r *Request) Validate() error {
	if r.AssessmentYear == "" {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "assessment year is required",
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	if r.MaxIterations < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max iterations cannot be negative",
		}
	}
	return r.Input.Validate()
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
