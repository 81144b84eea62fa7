package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type slabKey struct {
	regime Regime
	year   string
}

// SlabRegistry holds the slab tables and deduction caps for every configured
// (regime, assessment year) pair. It is populated once by the loader and only read
// afterwards, so concurrent lookups need no locking.
type SlabRegistry struct {
	tables map[slabKey]*RegimeSlabTable
	limits map[Section]decimal.Decimal
}

// NewSlabRegistry creates an empty registry
func NewSlabRegistry() *SlabRegistry {
	return &SlabRegistry{
		tables: make(map[slabKey]*RegimeSlabTable),
		limits: make(map[Section]decimal.Decimal),
	}
}

// Register adds a validated table. Registering the same pair twice is an error.
func (r *SlabRegistry) Register(table *RegimeSlabTable) error {
	if !table.Valid() {
		return &ConfigError{Reason: "cannot register an unvalidated slab table"}
	}
	key := slabKey{table.Regime(), table.AssessmentYear()}
	if _, exists := r.tables[key]; exists {
		return &ConfigError{Regime: key.regime, AssessmentYear: key.year, Reason: "slab table registered twice"}
	}
	r.tables[key] = table
	return nil
}

// SetDeductionLimit caps a deduction section
func (r *SlabRegistry) SetDeductionLimit(section Section, limit decimal.Decimal) error {
	if limit.IsNegative() {
		return &ConfigError{Reason: fmt.Sprintf("deduction limit for %s must not be negative", section)}
	}
	r.limits[section] = limit
	return nil
}

// SlabTable returns the table for a regime and assessment year. There is no fallback
// to another year or regime.
func (r *SlabRegistry) SlabTable(regime Regime, assessmentYear string) (*RegimeSlabTable, error) {
	table, ok := r.tables[slabKey{regime, assessmentYear}]
	if !ok {
		return nil, &ConfigError{Regime: regime, AssessmentYear: assessmentYear, Reason: "no slab table registered"}
	}
	return table, nil
}

// DeductionLimit returns the cap for a section; capped is false when the section is unbounded
func (r *SlabRegistry) DeductionLimit(section Section) (limit decimal.Decimal, capped bool) {
	limit, capped = r.limits[section]
	return limit, capped
}

// AssessmentYears lists every year with at least one table, ascending
func (r *SlabRegistry) AssessmentYears() []string {
	seen := make(map[string]bool)
	years := make([]string, 0)
	for k := range r.tables {
		if !seen[k.year] {
			seen[k.year] = true
			years = append(years, k.year)
		}
	}
	sort.Strings(years)
	return years
}

// StandardDeduction is the configured standard deduction cap, used as the default
// when an input omits it
func (r *SlabRegistry) StandardDeduction() decimal.Decimal {
	limit, ok := r.limits[SectionStandardDeduction]
	if !ok {
		return decimal.Zero
	}
	return limit
}
