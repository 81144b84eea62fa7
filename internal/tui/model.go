package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

// formFields are the inputs offered on the form, in tab order
var formFields = []struct {
	name  string
	label string
}{
	{"basic_salary", "Basic salary"},
	{"hra", "HRA"},
	{"special_allowance", "Special allowance"},
	{"other_allowances", "Other allowances"},
	{"bonus", "Bonus"},
	{"interest_income", "Interest income"},
	{"other_income", "Other income"},
	{"section_80c", "Section 80C"},
	{"section_80d", "Section 80D"},
	{"section_24", "Home loan interest (24)"},
	{"section_80ccd1b", "NPS 80CCD(1B)"},
	{"professional_tax", "Professional tax"},
	{"tds_deducted", "TDS deducted"},
	{"advance_tax", "Advance tax"},
}

// Options configure a Model
type Options struct {
	AssessmentYear    string
	StandardDeduction decimal.Decimal
	InputPath         string // optional taxpayer file used to pre-fill the form
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	comparator *compare.Comparator
	solver     *breakeven.Solver
	opts       Options

	// Form state
	inputs []textinput.Model
	focus  int

	// Latest results
	result    *domain.ComparisonResult
	breakEven *breakeven.Result

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(comparator *compare.Comparator, opts Options) Model {
	inputs := make([]textinput.Model, len(formFields))
	for i := range formFields {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 15
		ti.Width = 18
		ti.Validate = validateAmount
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		currentScene: SceneForm,
		comparator:   comparator,
		solver:       breakeven.NewDefaultSolver(comparator),
		opts:         opts,
		inputs:       inputs,
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.opts.InputPath != "" {
		return tea.Batch(textinput.Blink, loadInputCmd(m.opts.InputPath, m.opts))
	}
	return textinput.Blink
}

// validateAmount accepts digits with optional grouping commas and one decimal point
func validateAmount(s string) error {
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == ',':
		case r == '.':
			dots++
			if dots > 1 {
				return &domain.InputError{Field: "amount", Value: s, Reason: "has more than one decimal point"}
			}
		default:
			return &domain.InputError{Field: "amount", Value: s, Reason: "must be numeric"}
		}
	}
	return nil
}

// InputLoadedMsg pre-fills the form from a taxpayer file
type InputLoadedMsg struct {
	AssessmentYear string
	Input          domain.FinancialInput
}

// loadInputCmd returns a command that loads a taxpayer file
func loadInputCmd(path string, opts Options) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser(opts.StandardDeduction, opts.AssessmentYear)
		tf, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{AssessmentYear: tf.AssessmentYear, Input: tf.Input}
	}
}

// formValues collects the non-empty form entries keyed by field name
func (m Model) formValues() map[string]any {
	raw := make(map[string]any, len(formFields))
	for i, f := range formFields {
		if v := strings.TrimSpace(m.inputs[i].Value()); v != "" {
			raw[f.name] = v
		}
	}
	return raw
}

// fill copies an input into the form fields, leaving zero amounts blank
func (m *Model) fill(input domain.FinancialInput) {
	values := map[string]decimal.Decimal{
		"basic_salary":      input.BasicSalary,
		"hra":               input.HRA,
		"special_allowance": input.SpecialAllowance,
		"other_allowances":  input.OtherAllowances,
		"bonus":             input.Bonus,
		"interest_income":   input.InterestIncome,
		"other_income":      input.OtherIncome,
		"section_80c":       input.Section80C,
		"section_80d":       input.Section80D,
		"section_24":        input.Section24,
		"section_80ccd1b":   input.Section80CCD1B,
		"professional_tax":  input.ProfessionalTax,
		"tds_deducted":      input.TDSDeducted,
		"advance_tax":       input.AdvanceTax,
	}
	for i, f := range formFields {
		v := values[f.name]
		if v.IsZero() {
			m.inputs[i].SetValue("")
			continue
		}
		m.inputs[i].SetValue(v.String())
	}
}

// calculateCmd returns a command that compares both regimes and solves the
// deduction break-even for the current form
func calculateCmd(comparator *compare.Comparator, solver *breakeven.Solver, raw map[string]any, opts Options) tea.Cmd {
	return func() tea.Msg {
		input, err := domain.ParseFinancialFields(raw, opts.StandardDeduction)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}

		result, err := comparator.Compare(input, opts.AssessmentYear)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}

		be, err := solver.DeductionBreakEven(context.Background(), breakeven.Request{
			Input:          input,
			AssessmentYear: opts.AssessmentYear,
		})
		if err != nil {
			return CalculationCompleteMsg{Result: result, Err: err}
		}
		return CalculationCompleteMsg{Result: result, BreakEven: be}
	}
}
