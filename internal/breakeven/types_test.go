package breakeven

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if !opts.Tolerance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected tolerance 1, got %s", opts.Tolerance.String())
	}
	if opts.MaxIterations != 64 {
		t.Errorf("Expected 64 max iterations, got %d", opts.MaxIterations)
	}
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{AssessmentYear: "2024-25"}, false},
		{"missing year", Request{}, true},
		{"negative tolerance", Request{AssessmentYear: "2024-25", Tolerance: decimal.NewFromInt(-1)}, true},
		{"negative iterations", Request{AssessmentYear: "2024-25", MaxIterations: -1}, true},
		{"negative input", Request{AssessmentYear: "2024-25", Input: domain.FinancialInput{HRA: decimal.NewFromInt(-1)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBreakEvenError_Error(t *testing.T) {
	err := &BreakEvenError{Operation: "test_op", Message: "test message"}
	if err.Error() != "test_op: test message" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}

	cause := &domain.ConfigError{Reason: "no slab table registered"}
	wrapped := &BreakEvenError{Operation: "break_even", Message: "failed", Cause: cause}
	if wrapped.Error() != "break_even: failed: configuration error: no slab table registered" {
		t.Errorf("Unexpected error message: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, domain.ErrConfiguration) {
		t.Error("Expected wrapped cause to match ErrConfiguration")
	}
}
