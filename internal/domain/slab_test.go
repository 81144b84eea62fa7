package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func upper(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func validBrackets() []SlabBracket {
	return []SlabBracket{
		{LowerBound: amt(0), UpperBound: upper(250000), Rate: amt(0)},
		{LowerBound: amt(250000), UpperBound: upper(500000), Rate: amt(5)},
		{LowerBound: amt(500000), Rate: amt(20)},
	}
}

func TestNewRegimeSlabTable_Valid(t *testing.T) {
	table, err := NewRegimeSlabTable(RegimeOld, "2024-25", validBrackets(), amt(4))
	require.NoError(t, err)

	assert.True(t, table.Valid())
	assert.Equal(t, RegimeOld, table.Regime())
	assert.Equal(t, "2024-25", table.AssessmentYear())
	assert.True(t, table.CessRate().Equal(amt(4)))
	assert.True(t, table.TopRate().Equal(amt(20)))
	assert.Len(t, table.Brackets(), 3)
}

func TestNewRegimeSlabTable_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		regime   Regime
		year     string
		brackets []SlabBracket
		cess     decimal.Decimal
		contains string
	}{
		{"unknown regime", Regime("flat"), "2024-25", validBrackets(), amt(4), "unknown regime"},
		{"missing year", RegimeOld, "", validBrackets(), amt(4), "assessment year is required"},
		{"cess above 100", RegimeOld, "2024-25", validBrackets(), amt(101), "cess rate"},
		{"negative cess", RegimeOld, "2024-25", validBrackets(), amt(-1), "cess rate"},
		{"no brackets", RegimeOld, "2024-25", nil, amt(4), "no brackets"},
		{
			"first bracket above zero", RegimeOld, "2024-25",
			[]SlabBracket{{LowerBound: amt(10), Rate: amt(5)}}, amt(4), "must start at 0",
		},
		{
			"gap", RegimeOld, "2024-25",
			[]SlabBracket{
				{LowerBound: amt(0), UpperBound: upper(100), Rate: amt(0)},
				{LowerBound: amt(200), Rate: amt(5)},
			}, amt(4), "gap",
		},
		{
			"overlap", RegimeOld, "2024-25",
			[]SlabBracket{
				{LowerBound: amt(0), UpperBound: upper(100), Rate: amt(0)},
				{LowerBound: amt(50), Rate: amt(5)},
			}, amt(4), "overlaps",
		},
		{
			"empty bracket", RegimeOld, "2024-25",
			[]SlabBracket{
				{LowerBound: amt(0), UpperBound: upper(0), Rate: amt(0)},
				{LowerBound: amt(0), Rate: amt(5)},
			}, amt(4), "must exceed lower bound",
		},
		{
			"missing unbounded bracket", RegimeOld, "2024-25",
			[]SlabBracket{{LowerBound: amt(0), UpperBound: upper(100), Rate: amt(0)}}, amt(4), "missing unbounded top bracket",
		},
		{
			"unbounded bracket not last", RegimeOld, "2024-25",
			[]SlabBracket{
				{LowerBound: amt(0), Rate: amt(0)},
				{LowerBound: amt(100), Rate: amt(5)},
			}, amt(4), "is not the top bracket",
		},
		{
			"rate above 100", RegimeOld, "2024-25",
			[]SlabBracket{{LowerBound: amt(0), Rate: amt(150)}}, amt(4), "rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewRegimeSlabTable(tt.regime, tt.year, tt.brackets, tt.cess)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRegimeSlabTable_IsolatedFromCaller(t *testing.T) {
	brackets := validBrackets()
	table, err := NewRegimeSlabTable(RegimeOld, "2024-25", brackets, amt(4))
	require.NoError(t, err)

	*brackets[0].UpperBound = amt(1)
	brackets[1].Rate = amt(99)
	assert.True(t, table.Brackets()[0].UpperBound.Equal(amt(250000)))
	assert.True(t, table.Brackets()[1].Rate.Equal(amt(5)))

	out := table.Brackets()
	out[2].Rate = amt(99)
	assert.True(t, table.TopRate().Equal(amt(20)))
}

func TestRegimeSlabTable_Valid(t *testing.T) {
	var nilTable *RegimeSlabTable
	assert.False(t, nilTable.Valid())
	assert.False(t, (&RegimeSlabTable{}).Valid())
}

func TestRegimeSlabTable_MarginalRate(t *testing.T) {
	table, err := NewRegimeSlabTable(RegimeOld, "2024-25", validBrackets(), amt(4))
	require.NoError(t, err)

	assert.True(t, table.MarginalRate(amt(0)).Equal(amt(0)))
	assert.True(t, table.MarginalRate(amt(250000)).Equal(amt(5)), "lower bound is inclusive")
	assert.True(t, table.MarginalRate(amt(499999)).Equal(amt(5)))
	assert.True(t, table.MarginalRate(amt(10000000)).Equal(amt(20)))
}

func TestSlabBracket_Contains(t *testing.T) {
	b := SlabBracket{LowerBound: amt(100), UpperBound: upper(200), Rate: amt(5)}
	assert.False(t, b.Contains(amt(99)))
	assert.True(t, b.Contains(amt(100)))
	assert.False(t, b.Contains(amt(200)), "upper bound is exclusive")

	top := SlabBracket{LowerBound: amt(200), Rate: amt(30)}
	assert.True(t, top.Unbounded())
	assert.True(t, top.Contains(amt(1_000_000_000)))
}
