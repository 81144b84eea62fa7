package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 64) + "\n")

	sb.WriteString(fmt.Sprintf("Assessment Year:     %s\n", result.AssessmentYear))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("CURRENT POSITION\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	sb.WriteString(fmt.Sprintf("Old Regime Tax:      %s\n", domain.FormatRupees(result.OldRegimeTax)))
	sb.WriteString(fmt.Sprintf("New Regime Tax:      %s\n", domain.FormatRupees(result.NewRegimeTax)))
	sb.WriteString(fmt.Sprintf("Old Deductions:      %s\n", domain.FormatRupees(result.OldDeductions)))
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	switch result.Mode {
	case ModeExtraDeduction:
		sb.WriteString(fmt.Sprintf("Extra Deduction Needed: %s\n", domain.FormatRupees(result.Amount)))
	case ModeDeductionMargin:
		sb.WriteString(fmt.Sprintf("Deduction Margin:       %s\n", domain.FormatRupees(result.Amount)))
	}
	sb.WriteString(fmt.Sprintf("Old Tax At Break-Even:  %s\n", domain.FormatRupees(result.OldTaxAtBreakEven)))
	sb.WriteString(fmt.Sprintf("• %s\n", Recommendation(result)))

	return sb.String()
}

// FormatMultiYear formats results across assessment years
func (tf *TableFormatter) FormatMultiYear(result *MultiYearResult) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION BREAK-EVEN BY ASSESSMENT YEAR\n")
	sb.WriteString(strings.Repeat("=", 64) + "\n")
	sb.WriteString(fmt.Sprintf("%-10s %-24s %14s %12s\n", "Year", "Mode", "Amount", "Iterations"))
	sb.WriteString(strings.Repeat("-", 64) + "\n")
	for _, r := range result.Results {
		sb.WriteString(fmt.Sprintf("%-10s %-24s %14s %12d\n",
			r.AssessmentYear, r.Mode, domain.FormatRupees(r.Amount), r.Iterations))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a Result or MultiYearResult
func (jf *JSONFormatter) Format(result any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}
