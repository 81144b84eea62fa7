package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInputParser() *InputParser {
	return NewInputParser(decimal.NewFromInt(50000), "2024-25")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	tf, err := newTestInputParser().LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, tf)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: [unclosed"), 0644))

	tf, err := newTestInputParser().LoadFromFile(path)

	assert.Error(t, err)
	assert.Nil(t, tf)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxpayer.yaml")
	content := `
assessment_year: "2023-24"
financial_data:
  basic_salary: 600000
  hra: 240000
  special_allowance: 80000
  other_allowances: 120000
  section_80c: 150000
  section_80d: 25000
  section_24: 200000
  tds_deducted: 45000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tf, err := newTestInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "2023-24", tf.AssessmentYear)
	assert.True(t, tf.Input.GrossIncome().Equal(decimal.NewFromInt(1040000)))
	assert.True(t, tf.Input.TDSDeducted.Equal(decimal.NewFromInt(45000)))
	assert.True(t, tf.Input.StandardDeduction.Equal(decimal.NewFromInt(50000)), "standard deduction falls back to the configured limit")
}

func TestInputParser_Parse(t *testing.T) {
	t.Run("defaults assessment year", func(t *testing.T) {
		tf, err := newTestInputParser().Parse([]byte("financial_data: { basic_salary: 1000 }"))
		require.NoError(t, err)
		assert.Equal(t, "2024-25", tf.AssessmentYear)
	})

	t.Run("explicit zero standard deduction is kept", func(t *testing.T) {
		tf, err := newTestInputParser().Parse([]byte("financial_data: { basic_salary: 1000, standard_deduction: 0 }"))
		require.NoError(t, err)
		assert.True(t, tf.Input.StandardDeduction.IsZero())
	})

	t.Run("numeric strings and fractions", func(t *testing.T) {
		tf, err := newTestInputParser().Parse([]byte(`financial_data: { basic_salary: "1,00,000", hra: 2500.50 }`))
		require.NoError(t, err)
		assert.True(t, tf.Input.BasicSalary.Equal(decimal.NewFromInt(100000)))
		assert.True(t, tf.Input.HRA.Equal(decimal.RequireFromString("2500.5")))
	})

	t.Run("missing financial data", func(t *testing.T) {
		_, err := newTestInputParser().Parse([]byte(`assessment_year: "2024-25"`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("missing assessment year without default", func(t *testing.T) {
		_, err := NewInputParser(decimal.Zero, "").Parse([]byte("financial_data: { basic_salary: 1 }"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assessment_year")
	})
}

func TestInputParser_ParseRejectsBadFields(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"negative salary", "financial_data: { basic_salary: -5 }", "basic_salary"},
		{"negative deduction", "financial_data: { basic_salary: 5, section_80d: -1 }", "section_80d"},
		{"non numeric", "financial_data: { hra: lots }", "hra"},
		{"unknown field", "financial_data: { salary: 100 }", "salary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestInputParser().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "input validation failed")

			var inErr *domain.InputError
			require.True(t, errors.As(err, &inErr))
			assert.Equal(t, tt.field, inErr.Field)
		})
	}
}
