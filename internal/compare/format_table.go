package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a side-by-side table of both regimes
func (tf *TableFormatter) Format(result *domain.ComparisonResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("INCOME TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 64) + "\n")
	sb.WriteString(fmt.Sprintf("Assessment Year: %s\n", result.AssessmentYear))
	sb.WriteString("\n")

	labelWidth := 24
	numWidth := 18

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", numWidth, "Old Regime", numWidth, "New Regime"))
	sb.WriteString(strings.Repeat("-", 64) + "\n")

	rows := []struct {
		label    string
		old, new decimal.Decimal
	}{
		{"Gross Income", result.OldRegime.GrossIncome, result.NewRegime.GrossIncome},
		{"Deductions", result.OldRegime.TotalDeductionsApplied, result.NewRegime.TotalDeductionsApplied},
		{"Taxable Income", result.OldRegime.TaxableIncome, result.NewRegime.TaxableIncome},
		{"Tax Before Cess", result.OldRegime.TaxBeforeCess, result.NewRegime.TaxBeforeCess},
		{"Cess", result.OldRegime.Cess, result.NewRegime.Cess},
		{"Total Tax", result.OldRegime.TotalTax, result.NewRegime.TotalTax},
		{"Refund (-) / Payable", result.OldRegime.RefundOrPayable, result.NewRegime.RefundOrPayable},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
			labelWidth, r.label,
			numWidth, domain.FormatRupees(r.old),
			numWidth, domain.FormatRupees(r.new)))
	}
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Effective Rate",
		numWidth, result.OldRegime.EffectiveTaxRate.StringFixed(2)+"%",
		numWidth, result.NewRegime.EffectiveTaxRate.StringFixed(2)+"%"))

	sb.WriteString(strings.Repeat("=", 64) + "\n")

	// Recommendation
	sb.WriteString("\nRECOMMENDATION\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	sb.WriteString(fmt.Sprintf("• %s regime (saves %s)\n", tf.regimeTitle(result.RecommendedRegime), domain.FormatRupees(result.SavingsAmount)))
	if result.Reason != "" {
		sb.WriteString(fmt.Sprintf("• %s\n", result.Reason))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatBreakdown renders a single regime with its slab walk
func (tf *TableFormatter) FormatBreakdown(b *domain.TaxBreakdown) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s REGIME TAX COMPUTATION (AY %s)\n", strings.ToUpper(string(b.Regime)), b.AssessmentYear))
	sb.WriteString(strings.Repeat("=", 64) + "\n")

	line := func(label string, v decimal.Decimal) {
		sb.WriteString(fmt.Sprintf("%-28s %20s\n", label, domain.FormatRupees(v)))
	}
	line("Gross Income", b.GrossIncome)
	for _, ded := range b.Deductions {
		label := "  less " + string(ded.Section)
		if !ded.Allowed.Equal(ded.Claimed) {
			label += " (capped)"
		}
		line(label, ded.Allowed)
	}
	line("Taxable Income", b.TaxableIncome)

	if len(b.TaxSlabs) > 0 {
		sb.WriteString("\nSLABS\n")
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		for _, s := range b.TaxSlabs {
			sb.WriteString(fmt.Sprintf("%-28s %6s%% %13s\n",
				tf.slabRange(s), s.Rate.String(), domain.FormatRupees(s.TaxAmount)))
		}
		sb.WriteString(strings.Repeat("-", 64) + "\n")
	}

	line("Tax Before Cess", b.TaxBeforeCess)
	line("Cess", b.Cess)
	line("Total Tax", b.TotalTax)
	line("TDS + Advance Tax", b.TDSDeducted.Add(b.AdvanceTax))
	if b.IsRefund() {
		line("Refund Due", b.RefundOrPayable.Abs())
	} else {
		line("Payable", b.RefundOrPayable)
	}
	sb.WriteString(fmt.Sprintf("%-28s %20s\n", "Effective Rate", b.EffectiveTaxRate.StringFixed(2)+"%"))

	return sb.String()
}

// FormatSlabs lists the brackets of a table
func (tf *TableFormatter) FormatSlabs(table *domain.RegimeSlabTable) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s REGIME SLABS (AY %s), cess %s%%\n",
		strings.ToUpper(string(table.Regime())), table.AssessmentYear(), table.CessRate()))
	sb.WriteString(strings.Repeat("-", 44) + "\n")
	for _, b := range table.Brackets() {
		detail := domain.SlabDetail{MinAmount: b.LowerBound, MaxAmount: b.UpperBound}
		sb.WriteString(fmt.Sprintf("%-32s %8s%%\n", tf.slabRange(detail), b.Rate))
	}
	return sb.String()
}

// FormatSuggestions lists tax-saving suggestions in priority order
func (tf *TableFormatter) FormatSuggestions(suggestions []domain.TaxSavingSuggestion) string {
	if len(suggestions) == 0 {
		return "No further tax-saving opportunities found.\n"
	}
	var sb strings.Builder
	sb.WriteString("TAX SAVING SUGGESTIONS\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", s.Priority, s.Category, s.ImplementationDifficulty))
		sb.WriteString(fmt.Sprintf("   %s\n", s.Description))
		if s.PotentialSavings.IsPositive() {
			sb.WriteString(fmt.Sprintf("   Potential savings: %s\n", domain.FormatRupees(s.PotentialSavings)))
		}
		sb.WriteString(fmt.Sprintf("   %s\n", s.Details))
	}
	return sb.String()
}

func (tf *TableFormatter) slabRange(s domain.SlabDetail) string {
	if s.MaxAmount == nil {
		return "Above " + domain.FormatRupees(s.MinAmount)
	}
	return domain.FormatRupees(s.MinAmount) + " - " + domain.FormatRupees(*s.MaxAmount)
}

func (tf *TableFormatter) regimeTitle(r domain.Regime) string {
	if r == domain.RegimeNew {
		return "New"
	}
	return "Old"
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(result *domain.ComparisonResult) string {
	return fmt.Sprintf("AY %s | Old: %s | New: %s | Recommended: %s (saves %s)",
		result.AssessmentYear,
		domain.FormatRupees(result.OldRegime.TotalTax),
		domain.FormatRupees(result.NewRegime.TotalTax),
		result.RecommendedRegime,
		domain.FormatRupees(result.SavingsAmount))
}
