package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/rgehrsitz/taxgo/internal/document"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var inputErr *domain.InputError
	if errors.As(err, &inputErr) {
		BadRequest(w, inputErr.Error(), map[string]string{inputErr.Field: inputErr.Reason})
		return
	}

	var configErr *domain.ConfigError
	if errors.As(err, &configErr) {
		details := map[string]string{}
		if configErr.Regime != "" {
			details["regime"] = string(configErr.Regime)
		}
		if configErr.AssessmentYear != "" {
			details["assessment_year"] = configErr.AssessmentYear
		}
		ConfigurationError(w, configErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, domain.ErrConfiguration):
		ConfigurationError(w, err.Error(), nil)

	// Document errors
	case errors.Is(err, document.ErrTooLarge):
		PayloadTooLarge(w, err.Error())
	case errors.Is(err, document.ErrEmptyDocument):
		BadRequest(w, "No file provided", nil)
	case errors.Is(err, document.ErrUnsupportedType):
		UnsupportedMediaType(w, err.Error())

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		ServiceUnavailable(w, "Request cancelled before completion")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
