package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// TaxpayerFile is a financial-input document as read from disk
type TaxpayerFile struct {
	AssessmentYear string
	Input          domain.FinancialInput
}

type rawTaxpayerFile struct {
	AssessmentYear string         `yaml:"assessment_year"`
	FinancialData  map[string]any `yaml:"financial_data"`
}

// InputParser handles parsing of financial input files
type InputParser struct {
	standardDeduction decimal.Decimal
	defaultYear       string
}

// NewInputParser creates an input parser. standardDeduction is used when a file omits
// the field; defaultYear when it omits assessment_year.
func NewInputParser(standardDeduction decimal.Decimal, defaultYear string) *InputParser {
	return &InputParser{standardDeduction: standardDeduction, defaultYear: defaultYear}
}

// LoadFromFile loads a financial input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*TaxpayerFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	tf, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return tf, nil
}

// Parse decodes a financial input document. The financial_data block is decoded
// loosely and then validated field by field, so the error names the bad field.
func (ip *InputParser) Parse(data []byte) (*TaxpayerFile, error) {
	var raw rawTaxpayerFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw.FinancialData == nil {
		return nil, &domain.InputError{Field: "financial_data", Reason: "is required"}
	}

	input, err := domain.ParseFinancialFields(raw.FinancialData, ip.standardDeduction)
	if err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	year := strings.TrimSpace(raw.AssessmentYear)
	if year == "" {
		year = ip.defaultYear
	}
	if year == "" {
		return nil, &domain.InputError{Field: "assessment_year", Reason: "is required"}
	}
	return &TaxpayerFile{AssessmentYear: year, Input: input}, nil
}
