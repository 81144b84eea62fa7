package document

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amount matches a figure with Indian or western digit grouping
const amount = `(\d[\d,]*(?:\.\d+)?)`

// gap skips the text between a label and its figure without crossing another number
const gap = `\D{0,60}?`

type fieldPattern struct {
	field    string
	patterns []*regexp.Regexp
}

func labelled(labels ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(labels))
	for i, label := range labels {
		out[i] = regexp.MustCompile(label + gap + amount)
	}
	return out
}

// fieldPatterns are tried in order; the first pattern that yields a number wins
var fieldPatterns = []fieldPattern{
	{"basic_salary", labelled(
		`salary as per provisions contained in section 17\(1\)`,
		`basic salary`,
	)},
	{"hra", labelled(
		`house rent allowance(?: under section 10\(13a\))?`,
		`\bhra\b`,
	)},
	{"professional_tax", labelled(
		`tax on employment(?: under section 16\(iii\))?`,
		`professional tax`,
	)},
	{"section_80c", labelled(
		`(?:section|sec\.?|u/s)\s*80c\b`,
	)},
	{"tds_deducted", labelled(
		`tax deducted at source`,
		`total tax deducted`,
		`\btds\b`,
	)},
}

var (
	noiseLine  = regexp.MustCompile(`^[\d\s\W]+$`)
	whitespace = regexp.MustCompile(`\s+`)
)

// CleanText drops lines holding only numbers or punctuation, such as page numbers,
// and folds the rest into one lower-case line. A figure alone on its own line is
// dropped with them, so only labels that carry their figure on the same line extract.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || noiseLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.ToLower(strings.TrimSpace(whitespace.ReplaceAllString(strings.Join(kept, " "), " ")))
}

// ExtractFields finds the figures for every known label in cleaned text
func ExtractFields(text string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, fp := range fieldPatterns {
		for _, re := range fp.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			v, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
			if err != nil {
				continue
			}
			out[fp.field] = v
			break
		}
	}
	return out
}
