package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains all statutory data that applies uniformly to every taxpayer.
// It is loaded from regulatory.yaml and turned into a SlabRegistry at start-up.
type RegulatoryConfig struct {
	Metadata        RegulatoryMetadata             `yaml:"metadata" json:"metadata"`
	DeductionLimits map[string]decimal.Decimal     `yaml:"deduction_limits" json:"deduction_limits"`
	AssessmentYears map[string]AssessmentYearRules `yaml:"assessment_years" json:"assessment_years"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	Country     string `yaml:"country" json:"country"`
	Currency    string `yaml:"currency" json:"currency"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// AssessmentYearRules holds the cess rate and the per-regime brackets of one year
type AssessmentYearRules struct {
	CessRate decimal.Decimal        `yaml:"cess_rate" json:"cess_rate"` // percent
	Regimes  map[string]RegimeRules `yaml:"regimes" json:"regimes"`
}

// RegimeRules contains the bracket rows of one regime
type RegimeRules struct {
	Brackets []BracketRule `yaml:"brackets" json:"brackets"`
}

// BracketRule is the YAML form of a SlabBracket; a null max marks the top bracket
type BracketRule struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}
