package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/pennywise/internal/api/middleware"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/extract"
	"github.com/dvloznov/pennywise/internal/jobs"
	"github.com/rs/zerolog"
)

// Extractor is the slice of the orchestrator the handlers need.
type Extractor interface {
	Extract(ctx context.Context, message string, referenceDate civil.Date, baseCurrency string) (*domain.ExtractionResult, error)
}

// ExtractHandler handles synchronous and asynchronous extraction endpoints.
type ExtractHandler struct {
	extractor    Extractor
	publisher    jobs.Publisher
	baseCurrency string
	log          zerolog.Logger
}

// NewExtractHandler creates a new extraction handler. baseCurrency is the
// default applied when a request does not name one.
func NewExtractHandler(extractor Extractor, publisher jobs.Publisher, baseCurrency string, log zerolog.Logger) *ExtractHandler {
	return &ExtractHandler{
		extractor:    extractor,
		publisher:    publisher,
		baseCurrency: baseCurrency,
		log:          log,
	}
}

type extractRequest struct {
	Message       string `json:"message"`
	ReferenceDate string `json:"reference_date,omitempty"`
	BaseCurrency  string `json:"base_currency,omitempty"`
}

// parse validates the request body and applies defaults: today's date and
// the server's base currency.
func (h *ExtractHandler) parse(r *http.Request) (message string, ref civil.Date, currency string, err error) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", civil.Date{}, "", errors.New("invalid request body")
	}
	if req.Message == "" {
		return "", civil.Date{}, "", errors.New("message is required")
	}

	ref = civil.DateOf(time.Now())
	if req.ReferenceDate != "" {
		parsed, perr := civil.ParseDate(req.ReferenceDate)
		if perr != nil {
			return "", civil.Date{}, "", errors.New("reference_date must be YYYY-MM-DD")
		}
		ref = parsed
	}

	currency = h.baseCurrency
	if req.BaseCurrency != "" {
		currency = req.BaseCurrency
	}

	return req.Message, ref, currency, nil
}

// Extract handles POST /api/extract.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	message, ref, currency, err := h.parse(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.extractor.Extract(r.Context(), message, ref, currency)
	if err != nil {
		var unparsable *extract.UnparsableOutputError
		switch {
		case errors.Is(err, extract.ErrCompletionUnavailable):
			h.log.Error().Err(err).Msg("Completion capability unavailable")
			middleware.WriteError(w, http.StatusServiceUnavailable, "Completion capability unavailable")
		case errors.As(err, &unparsable):
			h.log.Error().Err(err).Str("raw_output", unparsable.Raw).Msg("Unparsable completion output")
			middleware.WriteError(w, http.StatusBadGateway, "Completion output could not be parsed")
		default:
			h.log.Error().Err(err).Msg("Extraction failed")
			middleware.WriteError(w, http.StatusInternalServerError, "Extraction failed")
		}
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// ExtractAsync handles POST /api/extract/async.
func (h *ExtractHandler) ExtractAsync(w http.ResponseWriter, r *http.Request) {
	message, ref, currency, err := h.parse(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := &jobs.ExtractionJob{
		Message:       message,
		ReferenceDate: ref,
		BaseCurrency:  currency,
	}
	if err := h.publisher.PublishExtraction(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue extraction job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue job")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// JobsHandler handles job status endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{id}.
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := jobs.JobFilter{
		Status: jobs.JobStatus(r.URL.Query().Get("status")),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}

	list, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  list,
		"count": len(list),
	})
}
