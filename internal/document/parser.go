package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultMaxSize is the largest accepted upload
const DefaultMaxSize = 10 << 20

var (
	// ErrEmptyDocument is returned for a zero-length upload
	ErrEmptyDocument = errors.New("document is empty")
	// ErrTooLarge is returned when an upload exceeds the size limit
	ErrTooLarge = errors.New("document exceeds size limit")
	// ErrUnsupportedType is returned when the sniffed content type is not allowed
	ErrUnsupportedType = errors.New("unsupported document type")
)

// AllowedTypes are the content types accepted for upload
var AllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
	"text/plain",
}

// Parser extracts financial figures from an uploaded document
type Parser interface {
	Parse(ctx context.Context, filename string, content []byte) (*ParseResult, error)
}

// ParseResult is the outcome of parsing one document. ExtractedData only holds the
// fields that were found, so it can be fed to the calculator as a partial record.
type ParseResult struct {
	DocumentID      string                     `json:"document_id"`
	Success         bool                       `json:"success"`
	Filename        string                     `json:"filename"`
	ContentType     string                     `json:"content_type"`
	FileSize        int                        `json:"file_size"`
	ExtractedData   map[string]decimal.Decimal `json:"extracted_data"`
	ConfidenceScore float64                    `json:"confidence_score"`
	ExtractedText   string                     `json:"extracted_text,omitempty"`
	ProcessingTime  float64                    `json:"processing_time"`
	Warnings        []string                   `json:"warnings"`
	Suggestions     []string                   `json:"suggestions"`
}

// Fields returns the extracted data in the loosely typed form accepted by
// domain.ParseFinancialFields
func (r *ParseResult) Fields() map[string]any {
	out := make(map[string]any, len(r.ExtractedData))
	for k, v := range r.ExtractedData {
		out[k] = v
	}
	return out
}

// RuleBasedParser sniffs the content type and extracts figures from text documents
// with regular expressions
type RuleBasedParser struct {
	MaxSize int64
	Logger  logrus.FieldLogger
}

// NewRuleBasedParser creates a parser with the default size limit and a silent logger
func NewRuleBasedParser() *RuleBasedParser {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &RuleBasedParser{
		MaxSize: DefaultMaxSize,
		Logger:  logger,
	}
}

// DetectContentType returns the sniffed content type when it is on the allow-list
func DetectContentType(content []byte) (string, error) {
	mtype := mimetype.Detect(content)
	for _, allowed := range AllowedTypes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
}

// Parse validates and parses one upload. Validation failures are returned as errors;
// a document that was accepted but yielded nothing is reported through the result.
func (p *RuleBasedParser) Parse(ctx context.Context, filename string, content []byte) (*ParseResult, error) {
	start := time.Now()

	if len(content) == 0 {
		return nil, ErrEmptyDocument
	}
	if p.MaxSize > 0 && int64(len(content)) > p.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(content), p.MaxSize)
	}
	contentType, err := DetectContentType(content)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ParseResult{
		DocumentID:    uuid.New().String(),
		Filename:      filename,
		ContentType:   contentType,
		FileSize:      len(content),
		ExtractedData: map[string]decimal.Decimal{},
		Warnings:      []string{},
		Suggestions:   []string{},
	}
	log := p.Logger.WithFields(logrus.Fields{
		"document_id":  result.DocumentID,
		"filename":     filename,
		"content_type": contentType,
	})

	if contentType != "text/plain" {
		log.Warn("no text extractor for content type")
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Error parsing document: text extraction is not available for %s", contentType))
		result.Suggestions = append(result.Suggestions, "Please try uploading a clearer document.")
		result.ProcessingTime = time.Since(start).Seconds()
		return result, nil
	}

	text := CleanText(string(content))
	result.ExtractedData = ExtractFields(text)
	result.ExtractedText = truncate(text, 500)
	result.ConfidenceScore = confidence(result.ExtractedData)
	result.Warnings = warnings(result.ExtractedData)
	result.Suggestions = suggestions(result.ExtractedData)
	result.Success = true
	result.ProcessingTime = time.Since(start).Seconds()

	log.WithField("fields", len(result.ExtractedData)).Info("document parsed")
	return result, nil
}

func confidence(data map[string]decimal.Decimal) float64 {
	if len(data) == 0 {
		return 0.1
	}
	return 0.6
}

func warnings(data map[string]decimal.Decimal) []string {
	out := []string{}
	if len(data) == 0 {
		out = append(out, "Could not extract any financial data. Document may be unreadable or empty.")
	}
	return out
}

func suggestions(data map[string]decimal.Decimal) []string {
	out := []string{}
	if data["section_80c"].LessThan(decimal.NewFromInt(150000)) {
		out = append(out, "You may have more room for tax-saving investments under Section 80C.")
	}
	return append(out, "Please double-check all extracted amounts for accuracy.")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
