package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a rejected financial input. The request fails; nothing else is affected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration marks a missing or malformed slab table. This is a deployment defect.
	ErrConfiguration = errors.New("configuration error")
)

// InputError describes which input field was rejected and why
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %s (got %s)", e.Field, e.Reason, e.Value)
}

// Is lets errors.Is match ErrInvalidInput
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError describes a slab table problem for a regime and assessment year
type ConfigError struct {
	Regime         Regime
	AssessmentYear string
	Reason         string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Regime != "" && e.AssessmentYear != "":
		return fmt.Sprintf("configuration error: %s regime, assessment year %s: %s", e.Regime, e.AssessmentYear, e.Reason)
	case e.AssessmentYear != "":
		return fmt.Sprintf("configuration error: assessment year %s: %s", e.AssessmentYear, e.Reason)
	case e.Regime != "":
		return fmt.Sprintf("configuration error: %s regime: %s", e.Regime, e.Reason)
	}
	return "configuration error: " + e.Reason
}

// Is lets errors.Is match ErrConfiguration
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}
