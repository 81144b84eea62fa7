package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

var csvHeader = []string{
	"Regime",
	"Recommended",
	"Gross Income",
	"Total Deductions",
	"Taxable Income",
	"Tax Before Cess",
	"Cess",
	"Total Tax",
	"Effective Rate",
	"TDS Deducted",
	"Advance Tax",
	"Refund Or Payable",
}

// Format generates one CSV row per regime
func (cf *CSVFormatter) Format(result *domain.ComparisonResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(csvHeader); err != nil {
		return "", err
	}
	for _, b := range []*domain.TaxBreakdown{result.OldRegime, result.NewRegime} {
		if err := writer.Write(cf.formatRow(b, b.Regime == result.RecommendedRegime)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// FormatBreakdown generates CSV for a single regime
func (cf *CSVFormatter) FormatBreakdown(b *domain.TaxBreakdown) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(csvHeader); err != nil {
		return "", err
	}
	if err := writer.Write(cf.formatRow(b, false)); err != nil {
		return "", err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a breakdown as a CSV row
func (cf *CSVFormatter) formatRow(b *domain.TaxBreakdown, recommended bool) []string {
	flag := "no"
	if recommended {
		flag = "yes"
	}
	return []string{
		string(b.Regime),
		flag,
		b.GrossIncome.StringFixed(2),
		b.TotalDeductionsApplied.StringFixed(2),
		b.TaxableIncome.StringFixed(2),
		b.TaxBeforeCess.StringFixed(2),
		b.Cess.StringFixed(2),
		b.TotalTax.StringFixed(2),
		b.EffectiveTaxRate.StringFixed(2),
		b.TDSDeducted.StringFixed(2),
		b.AdvanceTax.StringFixed(2),
		b.RefundOrPayable.StringFixed(2),
	}
}
