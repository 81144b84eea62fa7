package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

type suggestionRule struct {
	section    domain.Section
	category   string
	action     string
	difficulty string
	priority   int
	details    string
}

var oldRegimeSuggestionRules = []suggestionRule{
	{
		section:    domain.Section80C,
		category:   "Section 80C Investment",
		action:     "Invest %s more in 80C instruments (PPF, ELSS, NSC, etc.)",
		difficulty: "Easy",
		priority:   1,
		details:    "Popular options: PPF (15-year lock-in), ELSS (3-year lock-in), NSC (5-year)",
	},
	{
		section:    domain.Section80D,
		category:   "Health Insurance (80D)",
		action:     "Increase health insurance premium by %s",
		difficulty: "Easy",
		priority:   2,
		details:    "Consider family floater plans or top-up insurance for better coverage",
	},
	{
		section:    domain.Section80CCD1B,
		category:   "NPS Investment (80CCD1B)",
		action:     "Additional NPS contribution of %s",
		difficulty: "Medium",
		priority:   3,
		details:    "Long-term retirement planning with tax benefits. Lock-in till 60 years.",
	},
}

// Suggestions lists ways to lower tax under the given regime. For the old regime each
// capped section with unused headroom is priced exactly: the saving is the drop in total
// tax when that section alone is filled to its cap.
func (e *Engine) Suggestions(input domain.FinancialInput, regime domain.Regime, table *domain.RegimeSlabTable) ([]domain.TaxSavingSuggestion, error) {
	current, err := e.Compute(input, regime, table)
	if err != nil {
		return nil, err
	}

	if regime == domain.RegimeNew {
		return []domain.TaxSavingSuggestion{{
			Category:                 "Regime Comparison",
			Description:              "Compare with old regime if you have significant deductions",
			Headroom:                 decimal.Zero,
			PotentialSavings:         decimal.Zero,
			ImplementationDifficulty: "Easy",
			Priority:                 1,
			Details:                  "New regime has lower rates but limited deductions. Compare annually.",
		}}, nil
	}

	suggestions := make([]domain.TaxSavingSuggestion, 0, len(oldRegimeSuggestionRules))
	for _, rule := range oldRegimeSuggestionRules {
		if e.Limits == nil {
			break
		}
		limit, capped := e.Limits.DeductionLimit(rule.section)
		if !capped {
			continue
		}
		claimed := input.Claimed(rule.section)
		if claimed.GreaterThanOrEqual(limit) {
			continue
		}
		headroom := limit.Sub(claimed)

		filled, err := e.Compute(input.WithClaim(rule.section, limit), regime, table)
		if err != nil {
			return nil, fmt.Errorf("pricing %s headroom: %w", rule.section, err)
		}

		suggestions = append(suggestions, domain.TaxSavingSuggestion{
			Category:                 rule.category,
			Section:                  rule.section,
			Description:              fmt.Sprintf(rule.action, domain.FormatRupees(headroom)),
			Headroom:                 headroom,
			PotentialSavings:         current.TotalTax.Sub(filled.TotalTax),
			ImplementationDifficulty: rule.difficulty,
			Priority:                 rule.priority,
			Details:                  rule.details,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority < suggestions[j].Priority
	})
	return suggestions, nil
}
