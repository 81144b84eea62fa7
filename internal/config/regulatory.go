package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var defaultRegulatoryYAML []byte

// RegulatoryParser turns regulatory YAML into a validated SlabRegistry
type RegulatoryParser struct{}

// NewRegulatoryParser creates a new regulatory parser
func NewRegulatoryParser() *RegulatoryParser {
	return &RegulatoryParser{}
}

// LoadDefault builds the registry from the embedded regulatory data
func (rp *RegulatoryParser) LoadDefault() (*domain.SlabRegistry, error) {
	reg, err := rp.Parse(defaultRegulatoryYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded regulatory data: %w", err)
	}
	return reg, nil
}

// LoadFromFile builds the registry from a regulatory YAML file. An empty filename
// selects the embedded data.
func (rp *RegulatoryParser) LoadFromFile(filename string) (*domain.SlabRegistry, error) {
	if filename == "" {
		return rp.LoadDefault()
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	reg, err := rp.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return reg, nil
}

// Parse decodes regulatory YAML and validates every slab table. Any malformed table
// fails the whole load.
func (rp *RegulatoryParser) Parse(data []byte) (*domain.SlabRegistry, error) {
	var cfg domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return rp.Build(&cfg)
}

// Build converts a decoded RegulatoryConfig into a registry
func (rp *RegulatoryParser) Build(cfg *domain.RegulatoryConfig) (*domain.SlabRegistry, error) {
	if len(cfg.AssessmentYears) == 0 {
		return nil, &domain.ConfigError{Reason: "no assessment years configured"}
	}

	reg := domain.NewSlabRegistry()
	if err := rp.applyDeductionLimits(reg, cfg.DeductionLimits); err != nil {
		return nil, err
	}

	years := make([]string, 0, len(cfg.AssessmentYears))
	for year := range cfg.AssessmentYears {
		years = append(years, year)
	}
	sort.Strings(years)

	for _, year := range years {
		rules := cfg.AssessmentYears[year]
		for _, regime := range domain.Regimes {
			if _, ok := rules.Regimes[string(regime)]; !ok {
				return nil, &domain.ConfigError{Regime: regime, AssessmentYear: year, Reason: "regime missing from assessment year"}
			}
		}
		for name, regimeRules := range rules.Regimes {
			regime, err := domain.ParseRegime(name)
			if err != nil {
				return nil, &domain.ConfigError{AssessmentYear: year, Reason: fmt.Sprintf("unknown regime %q", name)}
			}
			brackets := make([]domain.SlabBracket, len(regimeRules.Brackets))
			for i, b := range regimeRules.Brackets {
				brackets[i] = domain.SlabBracket{LowerBound: b.Min, UpperBound: b.Max, Rate: b.Rate}
			}
			table, err := domain.NewRegimeSlabTable(regime, year, brackets, rules.CessRate)
			if err != nil {
				return nil, err
			}
			if err := reg.Register(table); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

func (rp *RegulatoryParser) applyDeductionLimits(reg *domain.SlabRegistry, limits map[string]decimal.Decimal) error {
	known := map[domain.Section]bool{domain.SectionStandardDeduction: true}
	for _, s := range domain.OldRegimeSections {
		known[s] = true
	}
	for name, limit := range limits {
		section := domain.Section(name)
		if !known[section] {
			return &domain.ConfigError{Reason: fmt.Sprintf("deduction limit for unknown section %q", name)}
		}
		if err := reg.SetDeductionLimit(section, limit); err != nil {
			return err
		}
	}
	return nil
}
