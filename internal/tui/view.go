package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	// Render the current scene
	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.renderForm()
	case SceneResults:
		content = m.renderResults()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	// Wrap content with app styling and status bar
	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// Title (2) + status (1) + padding (1)
	contentHeight := m.height - 4

	contentContainer := lipgloss.NewStyle().
		Height(max(0, contentHeight)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("TAXGO - Income Tax Regime Calculator")
	breadcrumb := SubtitleStyle.Render(
		fmt.Sprintf("AY %s / %s", m.opts.AssessmentYear, m.currentScene.String()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	bindings := []struct{ key, desc string }{
		{keys.Next.Help().Key, keys.Next.Help().Desc},
		{keys.Calculate.Help().Key, keys.Calculate.Help().Desc},
		{keys.Back.Help().Key, keys.Back.Help().Desc},
		{keys.Help.Help().Key, keys.Help.Help().Desc},
		{keys.Quit.Help().Key, keys.Quit.Help().Desc},
	}
	shortcuts := make([]string, len(bindings))
	for i, b := range bindings {
		shortcuts[i] = formatShortcut(b.key, b.desc)
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

// renderForm renders the income and deduction inputs
func (m Model) renderForm() string {
	var sb strings.Builder
	for i, f := range formFields {
		label := ParameterLabelStyle.Render(f.label)
		if i == m.focus {
			label = FocusedLabelStyle.Render(f.label)
		}
		sb.WriteString(label + m.inputs[i].View())
		if m.inputs[i].Err != nil {
			sb.WriteString("  " + lipgloss.NewStyle().Foreground(ColorDanger).Render("not a number"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + SubtitleStyle.Render(fmt.Sprintf(
		"Standard deduction %s is applied automatically",
		domain.FormatRupees(m.opts.StandardDeduction))))
	return ActiveBorderStyle.Render(sb.String())
}

// renderResults renders the regime comparison and break-even
func (m Model) renderResults() string {
	if m.result == nil {
		return BorderStyle.Render("No calculation yet. Press esc and then enter on the form.")
	}

	oldBox := m.renderRegime(m.result.OldRegime, m.result.RecommendedRegime == domain.RegimeOld)
	newBox := m.renderRegime(m.result.NewRegime, m.result.RecommendedRegime == domain.RegimeNew)
	regimes := lipgloss.JoinHorizontal(lipgloss.Top, oldBox, " ", newBox)

	summary := MetricPositiveStyle.Render(m.result.Reason)
	if m.breakEven != nil {
		summary += "\n" + SubtitleStyle.Render(breakeven.Recommendation(m.breakEven))
	}

	return lipgloss.JoinVertical(lipgloss.Left, regimes, "", summary)
}

func (m Model) renderRegime(b *domain.TaxBreakdown, recommended bool) string {
	title := "Old Regime"
	if b.Regime == domain.RegimeNew {
		title = "New Regime"
	}
	if recommended {
		title += " ✓"
	}

	settlement := "Tax Payable"
	if b.IsRefund() {
		settlement = "Refund Due"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Gross Income", domain.FormatRupees(b.GrossIncome)},
		{"Deductions", domain.FormatRupees(b.TotalDeductionsApplied)},
		{"Taxable Income", domain.FormatRupees(b.TaxableIncome)},
		{"Tax Before Cess", domain.FormatRupees(b.TaxBeforeCess)},
		{"Cess", domain.FormatRupees(b.Cess)},
		{"Total Tax", domain.FormatRupees(b.TotalTax)},
		{"Effective Rate", b.EffectiveTaxRate.StringFixed(2) + "%"},
		{settlement, domain.FormatRupees(b.RefundOrPayable.Abs())},
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(title) + "\n\n")
	for _, r := range rows {
		sb.WriteString(MetricLabelStyle.Render(r.label) + MetricValueStyle.Render(r.value) + "\n")
	}

	style := BorderStyle
	if recommended {
		style = ActiveBorderStyle
	}
	return style.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
TAXGO - Income Tax Regime Calculator

KEYBOARD SHORTCUTS:
  tab / ↓      Next field
  shift+tab/↑  Previous field
  enter        Compare old and new regimes
  ctrl+r       Clear the form
  ?            Show this help
  ESC          Go back to the form
  q/Ctrl+C     Quit

AMOUNTS:
  Whole rupees, grouping commas allowed (1,50,000).
  Deduction caps are applied for you.
`
	return BorderStyle.Render(helpText)
}
