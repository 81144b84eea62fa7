package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Suggestions_OldRegimeHeadroom(t *testing.T) {
	engine := NewEngine(testLimits(t))
	input := domain.FinancialInput{BasicSalary: d(1200000)}

	suggestions, err := engine.Suggestions(input, domain.RegimeOld, oldTable(t))
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	assert.Equal(t, domain.Section80C, suggestions[0].Section)
	assertDecimal(t, 150000, suggestions[0].Headroom, "80C headroom")
	assertDecimal(t, 46800, suggestions[0].PotentialSavings, "80C savings")
	assert.Contains(t, suggestions[0].Description, "₹150,000")

	assert.Equal(t, domain.Section80D, suggestions[1].Section)
	assertDecimal(t, 7800, suggestions[1].PotentialSavings, "80D savings")

	assert.Equal(t, domain.Section80CCD1B, suggestions[2].Section)
	assertDecimal(t, 15600, suggestions[2].PotentialSavings, "NPS savings")

	for i, s := range suggestions {
		assert.Equal(t, i+1, s.Priority)
	}
}

func TestEngine_Suggestions_SkipsExhaustedSections(t *testing.T) {
	engine := NewEngine(testLimits(t))

	suggestions, err := engine.Suggestions(goldenInput(), domain.RegimeOld, oldTable(t))
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Equal(t, domain.Section80CCD1B, suggestions[0].Section)
	assertDecimal(t, 50000, suggestions[0].Headroom, "NPS headroom")
	assertDecimal(t, 10400, suggestions[0].PotentialSavings, "NPS savings")
}

func TestEngine_Suggestions_NewRegime(t *testing.T) {
	engine := NewEngine(testLimits(t))

	suggestions, err := engine.Suggestions(goldenInput(), domain.RegimeNew, newTable(t))
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Regime Comparison", suggestions[0].Category)
	assert.True(t, suggestions[0].PotentialSavings.IsZero())
}

func TestEngine_Suggestions_PropagatesErrors(t *testing.T) {
	engine := NewEngine(testLimits(t))
	input := domain.FinancialInput{BasicSalary: d(-1)}

	_, err := engine.Suggestions(input, domain.RegimeOld, oldTable(t))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
