package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rgehrsitz/taxgo/internal/api/response"
	"github.com/rgehrsitz/taxgo/internal/assistant"
	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/document"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/sirupsen/logrus"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

type TaxHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
	CalculateTax(w http.ResponseWriter, r *http.Request)
	CalculateRegime(w http.ResponseWriter, r *http.Request)
	CompareRegimes(w http.ResponseWriter, r *http.Request)
	TaxSlabs(w http.ResponseWriter, r *http.Request)
	Suggestions(w http.ResponseWriter, r *http.Request)
	BreakEven(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Chatbot(w http.ResponseWriter, r *http.Request)
}

type taxHandlerImpl struct {
	adapter        *Adapter
	solver         *breakeven.Solver
	parser         document.Parser
	assistant      assistant.Assistant
	maxUploadBytes int64
	logger         logrus.FieldLogger
}

// HandlerDeps are the collaborators behind the HTTP handlers
type HandlerDeps struct {
	Adapter        *Adapter
	Parser         document.Parser
	Assistant      assistant.Assistant
	MaxUploadBytes int64
	Logger         logrus.FieldLogger
}

func NewTaxHandler(deps HandlerDeps) TaxHandler {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = document.DefaultMaxSize
	}
	if deps.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		deps.Logger = l
	}
	return &taxHandlerImpl{
		adapter:        deps.Adapter,
		solver:         breakeven.NewDefaultSolver(deps.Adapter.Comparator),
		parser:         deps.Parser,
		assistant:      deps.Assistant,
		maxUploadBytes: deps.MaxUploadBytes,
		logger:         deps.Logger,
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (h *taxHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, HealthResponse{
		Status:  "healthy",
		Version: Version,
		Services: map[string]bool{
			"tax_calculator":  h.adapter != nil,
			"document_parser": h.parser != nil,
			"chatbot":         h.assistant != nil,
		},
		Features: []string{
			"Tax calculation for both regimes",
			"Regime comparison and recommendation",
			"Tax-saving suggestions",
			"Deduction break-even analysis",
			"Document parsing",
			"Tax assistant",
		},
		Years:     h.adapter.Registry.AssessmentYears(),
		Timestamp: timestamp(),
	})
}

func (h *taxHandlerImpl) CalculateTax(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.adapter.CompareRegimes(req.FinancialData, req.AssessmentYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := uuid.New().String()
	h.logger.WithFields(logrus.Fields{
		"calculation_id":     id,
		"assessment_year":    result.AssessmentYear,
		"recommended_regime": result.RecommendedRegime,
	}).Info("tax calculated")
	response.OK(w, CalculationResponse{CalculationID: id, ComparisonResult: result})
}

func (h *taxHandlerImpl) CalculateRegime(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.adapter.ComputeTaxBreakdown(req.FinancialData, chi.URLParam(r, "regime"), req.AssessmentYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, BreakdownResponse{CalculationID: uuid.New().String(), TaxBreakdown: result})
}

func (h *taxHandlerImpl) CompareRegimes(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.adapter.CompareRegimes(req.FinancialData, req.AssessmentYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, toComparisonResponse(result))
}

func (h *taxHandlerImpl) TaxSlabs(w http.ResponseWriter, r *http.Request) {
	table, err := h.adapter.SlabTable(chi.URLParam(r, "regime"), r.URL.Query().Get("assessment_year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, toSlabsResponse(table))
}

// Suggestions accepts either a JSON body (POST) or the income and regime query
// parameters (GET), where income is treated as basic salary
func (h *taxHandlerImpl) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if r.Method == http.MethodPost {
		if err := decodeJSON(r, &req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	} else {
		q := r.URL.Query()
		req.Regime = q.Get("regime")
		req.AssessmentYear = q.Get("assessment_year")
		if income := q.Get("income"); income != "" {
			req.FinancialData = map[string]any{"basic_salary": income}
		}
	}
	if strings.TrimSpace(req.Regime) == "" {
		req.Regime = string(domain.RegimeOld)
	}

	suggestions, err := h.adapter.Suggestions(req.FinancialData, req.Regime, req.AssessmentYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	regime, _ := domain.ParseRegime(req.Regime)
	response.OK(w, toSuggestionsResponse(regime, h.adapter.Year(req.AssessmentYear), suggestions))
}

func (h *taxHandlerImpl) BreakEven(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	input, err := h.adapter.ParseInput(req.FinancialData)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.solver.DeductionBreakEven(r.Context(), breakeven.Request{
		Input:          input,
		AssessmentYear: h.adapter.Year(req.AssessmentYear),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *taxHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if h.parser == nil {
		response.ServiceUnavailable(w, "Document parsing is not available")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "File exceeds the upload limit")
			return
		}
		response.BadRequest(w, "No file provided", nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		response.BadRequest(w, "Failed to read file", nil)
		return
	}
	if int64(len(content)) > h.maxUploadBytes {
		response.HandleError(w, document.ErrTooLarge)
		return
	}

	h.logger.WithField("filename", header.Filename).Info("processing upload")
	result, err := h.parser.Parse(r.Context(), header.Filename, content)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *taxHandlerImpl) Chatbot(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		response.ServiceUnavailable(w, "The assistant is not available")
		return
	}

	var q assistant.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	reply, err := h.assistant.Answer(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, reply)
}
