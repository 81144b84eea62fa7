package compare

import (
	"errors"
	"sync"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func defaultComparator(t *testing.T) *Comparator {
	t.Helper()
	reg, err := config.NewRegulatoryParser().LoadDefault()
	require.NoError(t, err)
	return NewComparator(reg)
}

func goldenInput() domain.FinancialInput {
	return domain.FinancialInput{
		BasicSalary:       d(600000),
		HRA:               d(240000),
		SpecialAllowance:  d(80000),
		OtherAllowances:   d(120000),
		Section80C:        d(150000),
		Section80D:        d(25000),
		Section24:         d(200000),
		TDSDeducted:       d(45000),
		StandardDeduction: d(50000),
	}
}

func TestComparator_Compare_Golden(t *testing.T) {
	result, err := defaultComparator(t).Compare(goldenInput(), "2024-25")
	require.NoError(t, err)

	assert.Equal(t, "2024-25", result.AssessmentYear)
	assert.True(t, result.OldRegime.TotalTax.Equal(d(36920)), "old total %s", result.OldRegime.TotalTax)
	assert.True(t, result.NewRegime.TotalTax.Equal(d(60840)), "new total %s", result.NewRegime.TotalTax)
	assert.Equal(t, domain.RegimeOld, result.RecommendedRegime)
	assert.True(t, result.SavingsAmount.Equal(d(23920)))
	assert.Equal(t, "Old regime saves ₹23,920 due to available deductions", result.Reason)
	assert.Same(t, result.OldRegime, result.Recommended())
}

func TestComparator_Compare_NewRegimeWins(t *testing.T) {
	input := domain.FinancialInput{BasicSalary: d(1500000), StandardDeduction: d(50000)}

	result, err := defaultComparator(t).Compare(input, "2024-25")
	require.NoError(t, err)

	assert.True(t, result.OldRegime.TotalTax.Equal(d(257400)))
	assert.True(t, result.NewRegime.TotalTax.Equal(d(145600)))
	assert.Equal(t, domain.RegimeNew, result.RecommendedRegime)
	assert.True(t, result.SavingsAmount.Equal(d(111800)))
	assert.Contains(t, result.Reason, "New regime saves")
	assert.Same(t, result.NewRegime, result.Recommended())
}

func TestComparator_Compare_ZeroIncomeTiesToOld(t *testing.T) {
	result, err := defaultComparator(t).Compare(domain.FinancialInput{}, "2024-25")
	require.NoError(t, err)

	assert.True(t, result.OldRegime.TotalTax.IsZero())
	assert.True(t, result.NewRegime.TotalTax.IsZero())
	assert.True(t, result.OldRegime.EffectiveTaxRate.IsZero())
	assert.Equal(t, domain.RegimeOld, result.RecommendedRegime)
	assert.True(t, result.SavingsAmount.IsZero())
	assert.Equal(t, "Both regimes result in similar tax liability", result.Reason)
}

func TestComparator_Compare_UnknownYear(t *testing.T) {
	_, err := defaultComparator(t).Compare(goldenInput(), "1999-00")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Contains(t, err.Error(), "1999-00")
}

func TestComparator_Compare_MissingRegimeTable(t *testing.T) {
	reg := domain.NewSlabRegistry()
	upper := d(100)
	table, err := domain.NewRegimeSlabTable(domain.RegimeOld, "2030-31", []domain.SlabBracket{
		{LowerBound: d(0), UpperBound: &upper, Rate: d(0)},
		{LowerBound: d(100), Rate: d(10)},
	}, d(4))
	require.NoError(t, err)
	require.NoError(t, reg.Register(table))

	_, err = NewComparator(reg).Compare(goldenInput(), "2030-31")
	require.Error(t, err)

	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, domain.RegimeNew, cfgErr.Regime)
}

func TestComparator_Compare_InvalidInput(t *testing.T) {
	input := goldenInput()
	input.HRA = d(-10)

	// input errors are reported even for a year with no tables
	_, err := defaultComparator(t).Compare(input, "1999-00")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestComparator_ComputeBreakdown(t *testing.T) {
	c := defaultComparator(t)

	b, err := c.ComputeBreakdown(goldenInput(), domain.RegimeNew, "2023-24")
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, b.Regime)
	assert.Equal(t, "2023-24", b.AssessmentYear)
	assert.True(t, b.TotalTax.Equal(d(60840)))

	_, err = c.ComputeBreakdown(goldenInput(), domain.RegimeNew, "2099-00")
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestComparator_Suggestions(t *testing.T) {
	suggestions, err := defaultComparator(t).Suggestions(goldenInput(), domain.RegimeOld, "2024-25")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, domain.Section80CCD1B, suggestions[0].Section)
}

func TestComparator_ConcurrentUse(t *testing.T) {
	c := defaultComparator(t)
	want, err := c.Compare(goldenInput(), "2024-25")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*domain.ComparisonResult, 32)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Compare(goldenInput(), "2024-25")
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, results[i].SavingsAmount.Equal(want.SavingsAmount))
		assert.Equal(t, want.RecommendedRegime, results[i].RecommendedRegime)
	}
}

func TestRecommend_SavingsIsAbsoluteDifference(t *testing.T) {
	old := &domain.TaxBreakdown{Regime: domain.RegimeOld, TotalTax: d(100)}
	newer := &domain.TaxBreakdown{Regime: domain.RegimeNew, TotalTax: d(40)}

	result := Recommend(old, newer)
	assert.Equal(t, domain.RegimeNew, result.RecommendedRegime)
	assert.True(t, result.SavingsAmount.Equal(d(60)))

	result = Recommend(newer, old)
	assert.Equal(t, domain.RegimeOld, result.RecommendedRegime)
	assert.True(t, result.SavingsAmount.Equal(d(60)))
}
