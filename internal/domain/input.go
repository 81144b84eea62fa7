package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Regime identifies one of the two statutory tax-computation schemes
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// Regimes lists the supported regimes in comparison order
var Regimes = []Regime{RegimeOld, RegimeNew}

// ParseRegime converts user input into a Regime
func ParseRegime(s string) (Regime, error) {
	switch Regime(strings.ToLower(strings.TrimSpace(s))) {
	case RegimeOld:
		return RegimeOld, nil
	case RegimeNew:
		return RegimeNew, nil
	}
	return "", &InputError{Field: "regime", Value: s, Reason: "must be 'old' or 'new'"}
}

// Section identifies a deduction head with an optional statutory cap
type Section string

const (
	SectionStandardDeduction Section = "standard_deduction"
	Section80C               Section = "section_80c"
	Section80D               Section = "section_80d"
	Section24                Section = "section_24"
	Section80G               Section = "section_80g"
	Section80CCD1B           Section = "section_80ccd1b"
	Section80E               Section = "section_80e"
	Section80TTA             Section = "section_80tta"
	SectionProfessionalTax   Section = "professional_tax"
)

// OldRegimeSections are the itemized deductions only the old regime honours, in claim order
var OldRegimeSections = []Section{
	Section80C,
	Section80D,
	Section24,
	Section80G,
	Section80CCD1B,
	Section80E,
	Section80TTA,
	SectionProfessionalTax,
}

// FinancialInput is one taxpayer's income, deduction and prepaid-tax figures.
// All amounts share one currency unit and must be non-negative.
type FinancialInput struct {
	// Salary components
	BasicSalary      decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	HRA              decimal.Decimal `yaml:"hra" json:"hra"`
	SpecialAllowance decimal.Decimal `yaml:"special_allowance" json:"special_allowance"`
	OtherAllowances  decimal.Decimal `yaml:"other_allowances" json:"other_allowances"`
	Bonus            decimal.Decimal `yaml:"bonus" json:"bonus"`

	// Other income
	InterestIncome decimal.Decimal `yaml:"interest_income" json:"interest_income"`
	RentalIncome   decimal.Decimal `yaml:"rental_income" json:"rental_income"`
	CapitalGains   decimal.Decimal `yaml:"capital_gains" json:"capital_gains"`
	OtherIncome    decimal.Decimal `yaml:"other_income" json:"other_income"`

	// Deductions
	Section80C        decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80D        decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	Section24         decimal.Decimal `yaml:"section_24" json:"section_24"`
	Section80G        decimal.Decimal `yaml:"section_80g" json:"section_80g"`
	Section80CCD1B    decimal.Decimal `yaml:"section_80ccd1b" json:"section_80ccd1b"`
	Section80E        decimal.Decimal `yaml:"section_80e" json:"section_80e"`
	Section80TTA      decimal.Decimal `yaml:"section_80tta" json:"section_80tta"`
	ProfessionalTax   decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`

	// Tax already paid
	TDSDeducted decimal.Decimal `yaml:"tds_deducted" json:"tds_deducted"`
	AdvanceTax  decimal.Decimal `yaml:"advance_tax" json:"advance_tax"`
}

type fieldKind int

const (
	kindIncome fieldKind = iota
	kindDeduction
	kindPayment
)

type inputField struct {
	name string
	kind fieldKind
	ptr  func(*FinancialInput) *decimal.Decimal
}

// inputFields is the single field table used for validation, parsing and summation
var inputFields = []inputField{
	{"basic_salary", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.BasicSalary }},
	{"hra", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.HRA }},
	{"special_allowance", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.SpecialAllowance }},
	{"other_allowances", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.OtherAllowances }},
	{"bonus", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.Bonus }},
	{"interest_income", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.InterestIncome }},
	{"rental_income", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.RentalIncome }},
	{"capital_gains", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.CapitalGains }},
	{"other_income", kindIncome, func(f *FinancialInput) *decimal.Decimal { return &f.OtherIncome }},
	{string(Section80C), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.Section80C }},
	{string(Section80D), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.Section80D }},
	{string(Section24), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.Section24 }},
	{string(Section80G), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.Section80G }},
	{string(Section80CCD1B), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.Section80CCD1B }},
	{string(Section80E), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.Section80E }},
	{string(Section80TTA), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.Section80TTA }},
	{string(SectionProfessionalTax), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.ProfessionalTax }},
	{string(SectionStandardDeduction), kindDeduction, func(f *FinancialInput) *decimal.Decimal { return &f.StandardDeduction }},
	{"tds_deducted", kindPayment, func(f *FinancialInput) *decimal.Decimal { return &f.TDSDeducted }},
	{"advance_tax", kindPayment, func(f *FinancialInput) *decimal.Decimal { return &f.AdvanceTax }},
}

// FieldNames returns every accepted input field name in declaration order
func FieldNames() []string {
	names := make([]string, len(inputFields))
	for i, f := range inputFields {
		names[i] = f.name
	}
	return names
}

// MaxAmount is the largest amount any input field accepts (₹10^15)
var MaxAmount = decimal.New(1, 15)

// maxAmountScale bounds the decimal exponent of an input amount in either direction.
// decimal.Decimal expands the exponent into a big.Int on arithmetic and formatting.
const maxAmountScale = 18

// Validate rejects any negative or out-of-range amount, naming the first offending field
func (in FinancialInput) Validate() error {
	for _, f := range inputFields {
		v := *f.ptr(&in)
		switch exp := v.Exponent(); {
		case exp < -maxAmountScale:
			return &InputError{Field: f.name, Reason: "has too many decimal places"}
		case exp > maxAmountScale, v.Abs().GreaterThan(MaxAmount):
			return &InputError{Field: f.name, Reason: "exceeds maximum amount"}
		}
		if v.IsNegative() {
			return &InputError{Field: f.name, Value: v.String(), Reason: "must not be negative"}
		}
	}
	return nil
}

// GrossIncome sums every income component
func (in FinancialInput) GrossIncome() decimal.Decimal {
	total := decimal.Zero
	for _, f := range inputFields {
		if f.kind == kindIncome {
			total = total.Add(*f.ptr(&in))
		}
	}
	return total
}

// TaxesPaid is TDS plus advance tax
func (in FinancialInput) TaxesPaid() decimal.Decimal {
	return in.TDSDeducted.Add(in.AdvanceTax)
}

// Claimed returns the amount entered for a deduction section
func (in FinancialInput) Claimed(section Section) decimal.Decimal {
	for _, f := range inputFields {
		if f.kind == kindDeduction && f.name == string(section) {
			return *f.ptr(&in)
		}
	}
	return decimal.Zero
}

// WithClaim returns a copy of the input with one deduction section replaced
func (in FinancialInput) WithClaim(section Section, amount decimal.Decimal) FinancialInput {
	out := in
	for _, f := range inputFields {
		if f.kind == kindDeduction && f.name == string(section) {
			*f.ptr(&out) = amount
		}
	}
	return out
}

// ParseFinancialFields builds a FinancialInput from a loosely typed field map such as a
// decoded JSON body or a document-extraction result. Absent or null fields are zero,
// except standard_deduction which falls back to standardDefault. Numbers may arrive as
// JSON numbers, YAML scalars or numeric strings; anything else is rejected by field name.
func ParseFinancialFields(raw map[string]any, standardDefault decimal.Decimal) (FinancialInput, error) {
	known := make(map[string]bool, len(inputFields))
	for _, f := range inputFields {
		known[f.name] = true
	}
	unknown := make([]string, 0)
	for k := range raw {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return FinancialInput{}, &InputError{Field: unknown[0], Reason: "is not a recognised field"}
	}

	var in FinancialInput
	in.StandardDeduction = standardDefault
	for _, f := range inputFields {
		v, ok := raw[f.name]
		if !ok || v == nil {
			continue
		}
		amount, err := toDecimal(v)
		if err != nil {
			return FinancialInput{}, &InputError{Field: f.name, Value: fmt.Sprint(v), Reason: "must be numeric"}
		}
		*f.ptr(&in) = amount
	}

	if err := in.Validate(); err != nil {
		return FinancialInput{}, err
	}
	return in, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint64:
		return decimal.NewFromString(strconv.FormatUint(n, 10))
	case string:
		return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(n), ",", ""))
	}
	return decimal.Zero, fmt.Errorf("unsupported type %T", v)
}
