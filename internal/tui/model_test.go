package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg, err := config.NewRegulatoryParser().LoadDefault()
	require.NoError(t, err)
	return NewModel(compare.NewComparator(reg), Options{
		AssessmentYear:    "2024-25",
		StandardDeduction: reg.StandardDeduction(),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func fieldIndex(t *testing.T, name string) int {
	t.Helper()
	for i, f := range formFields {
		if f.name == name {
			return i
		}
	}
	t.Fatalf("no form field %s", name)
	return -1
}

func fillGolden(t *testing.T, m Model) {
	values := map[string]string{
		"basic_salary":      "600000",
		"hra":               "240000",
		"special_allowance": "80000",
		"other_allowances":  "1,20,000",
		"section_80c":       "150000",
		"section_80d":       "25000",
		"section_24":        "200000",
		"tds_deducted":      "45000",
	}
	for name, v := range values {
		m.inputs[fieldIndex(t, name)].SetValue(v)
	}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, SceneForm, m.currentScene)
	assert.Len(t, m.inputs, len(formFields))
	assert.True(t, m.inputs[0].Focused())
	assert.NotNil(t, m.Init())
}

func TestModel_Typing(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1,50,000")})
	assert.Equal(t, map[string]any{"basic_salary": "1,50,000"}, m.formValues())
}

func TestModel_FocusWraps(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(formFields)-1, m.focus)
}

func TestModel_Calculate(t *testing.T) {
	m := newTestModel(t)
	fillGolden(t, m)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Comparing regimes...")

	msg, ok := cmd().(CalculationCompleteMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.True(t, msg.Result.OldRegime.TotalTax.Equal(decimal.NewFromInt(36920)))
	assert.True(t, msg.Result.NewRegime.TotalTax.Equal(decimal.NewFromInt(60840)))
	assert.Equal(t, domain.RegimeOld, msg.Result.RecommendedRegime)
	require.NotNil(t, msg.BreakEven)
	assert.True(t, msg.BreakEven.Amount.Equal(decimal.NewFromInt(115002)))

	m, _ = update(t, m, msg)
	assert.False(t, m.loading)
	assert.Equal(t, SceneResults, m.currentScene)

	view := m.View()
	assert.Contains(t, view, "Old Regime ✓")
	assert.Contains(t, view, "Old regime saves ₹23,920 due to available deductions")
	assert.Contains(t, view, "₹36,920")
	assert.Contains(t, view, "Refund Due")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneForm, m.currentScene)
}

func TestModel_CalculationError(t *testing.T) {
	m := newTestModel(t)

	msg := calculateCmd(m.comparator, m.solver, map[string]any{"basic_salary": "abc"}, m.opts)()
	done, ok := msg.(CalculationCompleteMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.Err, domain.ErrInvalidInput)

	m, _ = update(t, m, done)
	assert.Contains(t, m.View(), "Error:")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, m.err)
	assert.Equal(t, SceneForm, m.currentScene)
}

func TestModel_UnknownYear(t *testing.T) {
	m := newTestModel(t)
	m.opts.AssessmentYear = "2099-00"

	msg := calculateCmd(m.comparator, m.solver, map[string]any{"basic_salary": "500000"}, m.opts)()
	done, ok := msg.(CalculationCompleteMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.Err, domain.ErrConfiguration)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Reset(t *testing.T) {
	m := newTestModel(t)
	fillGolden(t, m)
	m.focus = 3

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Empty(t, m.formValues())
	assert.Equal(t, 0, m.focus)
}

func TestModel_InputLoaded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxpayer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assessment_year: "2023-24"
financial_data:
  basic_salary: 600000
  section_80c: 150000
`), 0o600))

	m := newTestModel(t)
	msg := loadInputCmd(path, m.opts)()
	loaded, ok := msg.(InputLoadedMsg)
	require.True(t, ok)

	m, _ = update(t, m, loaded)
	assert.Equal(t, "2023-24", m.opts.AssessmentYear)
	assert.Equal(t, "600000", m.inputs[fieldIndex(t, "basic_salary")].Value())
	assert.Equal(t, "150000", m.inputs[fieldIndex(t, "section_80c")].Value())
	assert.Empty(t, m.inputs[fieldIndex(t, "hra")].Value())

	_, isErr := loadInputCmd(filepath.Join(dir, "missing.yaml"), m.opts)().(ErrorMsg)
	assert.True(t, isErr)
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, validateAmount(""))
	assert.NoError(t, validateAmount("1,50,000.50"))
	assert.Error(t, validateAmount("1.2.3"))
	assert.Error(t, validateAmount("12a"))
}
