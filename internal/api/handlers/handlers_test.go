package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/extract"
	"github.com/dvloznov/pennywise/internal/jobs"
	"github.com/dvloznov/pennywise/internal/jobs/inmemory"
	"github.com/dvloznov/pennywise/internal/logger"
)

// mockExtractor is a mock implementation of Extractor for testing.
type mockExtractor struct {
	ExtractFunc func(ctx context.Context, message string, ref civil.Date, currency string) (*domain.ExtractionResult, error)
}

func (m *mockExtractor) Extract(ctx context.Context, message string, ref civil.Date, currency string) (*domain.ExtractionResult, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, message, ref, currency)
	}
	return &domain.ExtractionResult{
		Status:        domain.StatusComplete,
		MissingFields: []string{},
		InvalidFields: []string{},
	}, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/extract", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestExtractEndpoint(t *testing.T) {
	var gotRef civil.Date
	var gotCurrency string

	mock := &mockExtractor{
		ExtractFunc: func(ctx context.Context, message string, ref civil.Date, currency string) (*domain.ExtractionResult, error) {
			gotRef = ref
			gotCurrency = currency
			return &domain.ExtractionResult{
				Status:        domain.StatusComplete,
				MissingFields: []string{},
				InvalidFields: []string{},
			}, nil
		},
	}
	h := NewExtractHandler(mock, nil, "USD", logger.New())

	w := postJSON(t, h.Extract, map[string]string{
		"message":        "Spent 25.99 at Walmart yesterday",
		"reference_date": "2024-03-20",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}
	if gotRef.String() != "2024-03-20" {
		t.Errorf("reference date = %s, want 2024-03-20", gotRef)
	}
	if gotCurrency != "USD" {
		t.Errorf("currency = %q, want server default USD", gotCurrency)
	}

	var result domain.ExtractionResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Status != domain.StatusComplete {
		t.Errorf("status = %s, want complete", result.Status)
	}
}

func TestExtractEndpointValidation(t *testing.T) {
	h := NewExtractHandler(&mockExtractor{}, nil, "USD", logger.New())

	w := postJSON(t, h.Extract, map[string]string{"message": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty message: status = %d, want 400", w.Code)
	}

	w = postJSON(t, h.Extract, map[string]string{
		"message":        "x",
		"reference_date": "March 20th",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad reference date: status = %d, want 400", w.Code)
	}
}

func TestExtractEndpointCompletionUnavailable(t *testing.T) {
	mock := &mockExtractor{
		ExtractFunc: func(ctx context.Context, message string, ref civil.Date, currency string) (*domain.ExtractionResult, error) {
			return nil, extract.ErrCompletionUnavailable
		},
	}
	h := NewExtractHandler(mock, nil, "USD", logger.New())

	w := postJSON(t, h.Extract, map[string]string{"message": "Spent 10"})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestExtractEndpointUnparsableOutput(t *testing.T) {
	mock := &mockExtractor{
		ExtractFunc: func(ctx context.Context, message string, ref civil.Date, currency string) (*domain.ExtractionResult, error) {
			return nil, &extract.UnparsableOutputError{Raw: "garbage"}
		},
	}
	h := NewExtractHandler(mock, nil, "USD", logger.New())

	w := postJSON(t, h.Extract, map[string]string{"message": "Spent 10"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestExtractAsyncAndJobStatus(t *testing.T) {
	store := inmemory.NewStore()
	queue := inmemory.NewQueue(10, store)
	defer queue.Close()

	h := NewExtractHandler(&mockExtractor{}, queue, "USD", logger.New())

	w := postJSON(t, h.ExtractAsync, map[string]string{"message": "Spent 10 on coffee"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["job_id"] == "" {
		t.Fatal("expected job_id in response")
	}

	jh := NewJobsHandler(store, logger.New())
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+resp["job_id"], nil)
	jw := httptest.NewRecorder()
	jh.GetJob(jw, req, resp["job_id"])

	if jw.Code != http.StatusOK {
		t.Fatalf("GetJob status = %d, want 200", jw.Code)
	}
	var job jobs.ExtractionJob
	if err := json.NewDecoder(jw.Body).Decode(&job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.Message != "Spent 10 on coffee" {
		t.Errorf("job message = %q", job.Message)
	}
}

func TestGetJobNotFound(t *testing.T) {
	jh := NewJobsHandler(inmemory.NewStore(), logger.New())
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil)
	w := httptest.NewRecorder()
	jh.GetJob(w, req, "missing")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
