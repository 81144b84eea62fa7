package assistant

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxMessageLength bounds a single question
const MaxMessageLength = 1000

// Assistant answers free-form tax questions
type Assistant interface {
	Answer(ctx context.Context, q Query) (*Reply, error)
}

// Query is one question with optional taxpayer context
type Query struct {
	Message   string        `json:"message"`
	Context   *QueryContext `json:"context,omitempty"`
	UserID    string        `json:"user_id,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
}

// QueryContext carries figures from an earlier calculation
type QueryContext struct {
	TotalIncome       decimal.Decimal `json:"total_income"`
	Section80C        decimal.Decimal `json:"section_80c"`
	RecommendedRegime domain.Regime   `json:"recommended_regime,omitempty"`
	SavingsAmount     decimal.Decimal `json:"savings_amount"`
}

// Reply is an answer with its sources and suggested next questions
type Reply struct {
	Response          string   `json:"response"`
	Confidence        float64  `json:"confidence"`
	Sources           []string `json:"sources"`
	FollowUpQuestions []string `json:"follow_up_questions"`
	ResponseTime      float64  `json:"response_time"`
}

// Validate checks the message length
func (q Query) Validate() error {
	msg := strings.TrimSpace(q.Message)
	if msg == "" {
		return &domain.InputError{Field: "message", Reason: "is required"}
	}
	if utf8.RuneCountInString(msg) > MaxMessageLength {
		return &domain.InputError{Field: "message", Reason: "must be at most 1000 characters"}
	}
	return nil
}

// KnowledgeBase answers from a fixed list of topics by keyword match
type KnowledgeBase struct {
	Topics   []Topic
	Fallback Topic
}

// NewKnowledgeBase creates a knowledge base with the built-in topics
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		Topics:   defaultTopics(),
		Fallback: fallbackTopic,
	}
}

// Answer returns the first topic whose keyword appears in the question
func (kb *KnowledgeBase) Answer(ctx context.Context, q Query) (*Reply, error) {
	start := time.Now()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topic := kb.Match(q.Message)
	reply := &Reply{
		Response:   topic.Response,
		Confidence: topic.Confidence,
		Sources:    append([]string(nil), topic.Sources...),
	}
	if q.Context != nil && q.Context.RecommendedRegime != "" {
		reply.Response += "\n\nYour last calculation recommended the " + string(q.Context.RecommendedRegime) +
			" regime with potential savings of " + domain.FormatRupees(q.Context.SavingsAmount) + "."
	}
	reply.FollowUpQuestions = FollowUps(q, reply.Response)
	reply.ResponseTime = time.Since(start).Seconds()
	return reply, nil
}

// Match finds the topic for a question, or the fallback topic
func (kb *KnowledgeBase) Match(message string) Topic {
	lower := strings.ToLower(message)
	for _, t := range kb.Topics {
		for _, kw := range t.Keywords {
			if strings.Contains(lower, kw) {
				return t
			}
		}
	}
	return kb.Fallback
}

var (
	highIncome = decimal.NewFromInt(1000000)
	lowIncome  = decimal.NewFromInt(500000)
)

// FollowUps suggests up to three next questions based on the question, the answer
// and the taxpayer's income
func FollowUps(q Query, response string) []string {
	query := strings.ToLower(q.Message)
	answer := strings.ToLower(response)
	mentions := func(s string) bool {
		return strings.Contains(query, s) || strings.Contains(answer, s)
	}

	var out []string
	switch {
	case mentions("80c"):
		out = append(out,
			"What are the best 80C investment options for my income level?",
			"How does 80C work with the new tax regime?",
			"Can I claim 80C for home loan principal repayment?")
	case mentions("regime"):
		out = append(out,
			"How do I calculate which regime saves more tax?",
			"Can I switch between tax regimes every year?",
			"What factors should I consider when choosing a regime?")
	case mentions("hra"):
		out = append(out,
			"What if I don't have rent receipts for HRA claim?",
			"How does HRA work with home loan tax benefits?",
			"Can I claim HRA if I live in my own property?")
	case strings.Contains(query, "document") || strings.Contains(answer, "filing"):
		out = append(out,
			"What happens if I file ITR after the deadline?",
			"How do I file ITR if I changed jobs during the year?",
			"What is the difference between ITR-1 and ITR-2?")
	case strings.Contains(query, "investment") || strings.Contains(answer, "saving"):
		out = append(out,
			"What are the tax implications of ELSS investments?",
			"Should I invest in PPF or NPS for tax saving?",
			"How much should I invest in tax-saving instruments?")
	}

	if q.Context != nil {
		switch {
		case q.Context.TotalIncome.GreaterThan(highIncome):
			out = append(out, "What additional tax planning strategies work for high-income individuals?")
		case q.Context.TotalIncome.IsPositive() && q.Context.TotalIncome.LessThan(lowIncome):
			out = append(out, "Are there any special tax benefits for lower income groups?")
		}
	}

	if len(out) == 0 {
		out = []string{
			"How can I optimize my tax savings this year?",
			"What is the ITR filing deadline for this year?",
			"Should I consult a tax advisor for my situation?",
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
