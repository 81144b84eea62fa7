package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything rendered into an HTML report
type Report struct {
	Comparison  *domain.ComparisonResult
	Suggestions []domain.TaxSavingSuggestion
	BreakEven   string // one-line break-even advice, optional
	GeneratedAt time.Time
}

// HTMLFormatter produces a standalone HTML report of a regime comparison
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": domain.FormatRupees,
	"pct":  func(d decimal.Decimal) string { return d.StringFixed(2) + "%" },
	"recommended": func(c *domain.ComparisonResult, b *domain.TaxBreakdown) bool {
		return c.RecommendedRegime == b.Regime
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report Report) ([]byte, error) {
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}
	data := struct {
		Report
		Regimes []*domain.TaxBreakdown
	}{report, []*domain.TaxBreakdown{report.Comparison.OldRegime, report.Comparison.NewRegime}}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
