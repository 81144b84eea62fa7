package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlabRegistry(t *testing.T) {
	reg := NewSlabRegistry()
	old, err := NewRegimeSlabTable(RegimeOld, "2024-25", validBrackets(), amt(4))
	require.NoError(t, err)
	older, err := NewRegimeSlabTable(RegimeOld, "2023-24", validBrackets(), amt(4))
	require.NoError(t, err)

	require.NoError(t, reg.Register(old))
	require.NoError(t, reg.Register(older))

	got, err := reg.SlabTable(RegimeOld, "2024-25")
	require.NoError(t, err)
	assert.Same(t, old, got)
	assert.Equal(t, []string{"2023-24", "2024-25"}, reg.AssessmentYears())

	t.Run("no fallback to another regime", func(t *testing.T) {
		_, err := reg.SlabTable(RegimeNew, "2024-25")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, RegimeNew, cfgErr.Regime)
		assert.Equal(t, "2024-25", cfgErr.AssessmentYear)
	})

	t.Run("no fallback to another year", func(t *testing.T) {
		_, err := reg.SlabTable(RegimeOld, "2099-00")
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("duplicate registration", func(t *testing.T) {
		err := reg.Register(old)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("unvalidated table", func(t *testing.T) {
		err := reg.Register(&RegimeSlabTable{})
		assert.True(t, errors.Is(err, ErrConfiguration))
	})
}

func TestSlabRegistry_DeductionLimits(t *testing.T) {
	reg := NewSlabRegistry()
	assert.True(t, reg.StandardDeduction().IsZero())

	require.NoError(t, reg.SetDeductionLimit(Section80C, amt(150000)))
	require.NoError(t, reg.SetDeductionLimit(SectionStandardDeduction, amt(50000)))

	limit, capped := reg.DeductionLimit(Section80C)
	assert.True(t, capped)
	assert.True(t, limit.Equal(amt(150000)))

	_, capped = reg.DeductionLimit(Section80E)
	assert.False(t, capped, "unconfigured sections are unbounded")

	assert.True(t, reg.StandardDeduction().Equal(amt(50000)))

	err := reg.SetDeductionLimit(Section80D, amt(-5))
	assert.True(t, errors.Is(err, ErrConfiguration))
}
