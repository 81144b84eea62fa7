package tui

import (
	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Income & Deductions"
	case SceneResults:
		return "Regime Comparison"
	case SceneHelp:
		return "Help"
	}
	return "Unknown"
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg carries the comparison and break-even for the form input
type CalculationCompleteMsg struct {
	Result    *domain.ComparisonResult
	BreakEven *breakeven.Result
	Err       error
}
