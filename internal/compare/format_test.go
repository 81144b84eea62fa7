package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenResult(t *testing.T) *domain.ComparisonResult {
	t.Helper()
	result, err := defaultComparator(t).Compare(goldenInput(), "2024-25")
	require.NoError(t, err)
	return result
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	out := formatter.Format(goldenResult(t))

	require.NotEmpty(t, out)
	assert.Contains(t, out, "INCOME TAX REGIME COMPARISON")
	assert.Contains(t, out, "Assessment Year: 2024-25")
	assert.Contains(t, out, "₹36,920")
	assert.Contains(t, out, "₹60,840")
	assert.Contains(t, out, "3.55%")
	assert.Contains(t, out, "RECOMMENDATION")
	assert.Contains(t, out, "Old regime (saves ₹23,920)")
}

func TestTableFormatter_FormatBreakdown(t *testing.T) {
	formatter := &TableFormatter{}
	result := goldenResult(t)

	out := formatter.FormatBreakdown(result.OldRegime)
	assert.Contains(t, out, "OLD REGIME TAX COMPUTATION (AY 2024-25)")
	assert.Contains(t, out, "SLABS")
	assert.Contains(t, out, "₹500,000 - ₹1,000,000")
	assert.Contains(t, out, "Refund Due")
	assert.Contains(t, out, "₹8,080")

	out = formatter.FormatBreakdown(result.NewRegime)
	assert.Contains(t, out, "Payable")
	assert.NotContains(t, out, "section_80c", "new regime lists only the standard deduction")
}

func TestTableFormatter_FormatBreakdown_CappedDeduction(t *testing.T) {
	input := goldenInput()
	input.Section80C = d(400000)
	b, err := defaultComparator(t).ComputeBreakdown(input, domain.RegimeOld, "2024-25")
	require.NoError(t, err)

	out := (&TableFormatter{}).FormatBreakdown(b)
	assert.Contains(t, out, "less section_80c (capped)")
}

func TestTableFormatter_FormatSlabs(t *testing.T) {
	reg := defaultComparator(t).Slabs
	table, err := reg.SlabTable(domain.RegimeNew, "2024-25")
	require.NoError(t, err)

	out := (&TableFormatter{}).FormatSlabs(table)
	assert.Contains(t, out, "NEW REGIME SLABS (AY 2024-25), cess 4%")
	assert.Contains(t, out, "Above ₹1,500,000")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestTableFormatter_FormatSuggestions(t *testing.T) {
	formatter := &TableFormatter{}

	assert.Contains(t, formatter.FormatSuggestions(nil), "No further tax-saving opportunities")

	out := formatter.FormatSuggestions([]domain.TaxSavingSuggestion{{
		Category:                 "Section 80C Investment",
		Description:              "Invest ₹10,000 more",
		PotentialSavings:         decimal.NewFromInt(3120),
		ImplementationDifficulty: "Easy",
		Priority:                 1,
		Details:                  "PPF",
	}})
	assert.Contains(t, out, "1. Section 80C Investment [Easy]")
	assert.Contains(t, out, "Potential savings: ₹3,120")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(goldenResult(t))
	assert.Equal(t, "AY 2024-25 | Old: ₹36,920 | New: ₹60,840 | Recommended: old (saves ₹23,920)", out)
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	out, err := formatter.Format(goldenResult(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Regime", records[0][0])
	assert.Equal(t, []string{"old", "yes", "1040000.00", "425000.00", "615000.00", "35500.00", "1420.00", "36920.00", "3.55", "45000.00", "0.00", "-8080.00"}, records[1])
	assert.Equal(t, "new", records[2][0])
	assert.Equal(t, "no", records[2][1])
}

func TestCSVFormatter_FormatBreakdown(t *testing.T) {
	out, err := (&CSVFormatter{}).FormatBreakdown(goldenResult(t).NewRegime)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "60840.00", records[1][7])
}

func TestJSONFormatter_Format(t *testing.T) {
	result := goldenResult(t)

	out, err := (&JSONFormatter{}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, out, `"recommended_regime":"old"`)
	assert.Contains(t, out, `"old_regime"`)
	assert.Contains(t, out, `"new_regime"`)
	assert.Contains(t, out, `"savings_amount"`)
	assert.Contains(t, out, `"tax_slabs"`)

	pretty, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"assessment_year\": \"2024-25\"")
}
