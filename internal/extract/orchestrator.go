// Package extract coordinates one extraction attempt per input message:
// build the request from the schema and the message, invoke the completion
// capability, parse its output, and route the result through normalization
// and validation. The orchestrator interprets no field semantics itself.
package extract

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/logger"
	"github.com/dvloznov/pennywise/internal/normalize"
	"github.com/dvloznov/pennywise/internal/rates"
	"github.com/dvloznov/pennywise/internal/validate"
)

const (
	defaultMaxRetries = 2
	defaultBackoff    = 500 * time.Millisecond
)

// Orchestrator runs the extraction pipeline. It holds no per-invocation
// state, so a single instance is safe for concurrent use.
type Orchestrator struct {
	completer  Completer
	fx         rates.Provider
	maxRetries int
	backoff    time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRates supplies the currency conversion provider used by the normalizer.
func WithRates(p rates.Provider) Option {
	return func(o *Orchestrator) { o.fx = p }
}

// WithMaxRetries overrides the number of retries after a failed completion call.
func WithMaxRetries(n int) Option {
	return func(o *Orchestrator) { o.maxRetries = n }
}

// WithBackoff overrides the initial retry backoff; each retry doubles it.
func WithBackoff(d time.Duration) Option {
	return func(o *Orchestrator) { o.backoff = d }
}

// New creates an Orchestrator around the given completion capability.
func New(completer Completer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		completer:  completer,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Extract runs one full extraction for a message. referenceDate anchors
// relative-date resolution and baseCurrency anchors currency normalization.
// The caller always receives either a result (possibly incomplete) or a
// capability-level error, never a crash on malformed input text.
func (o *Orchestrator) Extract(ctx context.Context, message string, referenceDate civil.Date, baseCurrency string) (*domain.ExtractionResult, error) {
	log := logger.FromContext(ctx)
	prompt := buildPrompt(message)

	raw, err := o.completeWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	fields, err := decodeCompletion(raw)
	if err != nil {
		// Model output may be malformed; retry once with the same request.
		log.Warn().Err(err).Msg("Completion output unparsable, re-asking once")

		raw, cerr := o.completeWithRetry(ctx, prompt)
		if cerr != nil {
			return nil, cerr
		}
		fields, err = decodeCompletion(raw)
		if err != nil {
			return nil, &UnparsableOutputError{Raw: raw, Err: err}
		}
	}

	rec := normalize.FromRaw(fields, referenceDate, baseCurrency, o.fx)
	report := validate.Classify(rec)

	result := buildResult(rec, report)
	if result.Status == domain.StatusIncomplete {
		log.Info().
			Strs("missing_fields", result.MissingFields).
			Strs("invalid_fields", result.InvalidFields).
			Msg("Extraction produced incomplete record")
	}
	return result, nil
}

// completeWithRetry invokes the completion capability, retrying transport
// failures with exponential backoff. Cancellation takes effect while
// awaiting the capability or sleeping between attempts.
func (o *Orchestrator) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			wait := o.backoff << (attempt - 1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %w", ErrCompletionUnavailable, ctx.Err())
			}
		}

		out, err := o.completer.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt+1).Msg("Completion call failed")

		if ctx.Err() != nil {
			break
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %w", ErrCompletionUnavailable, o.maxRetries+1, lastErr)
}

// buildResult assembles the final artifact returned to the caller: the
// record with nulls preserved for unresolved optional fields, the status,
// and the field lists when incomplete.
func buildResult(rec normalize.Record, report validate.Report) *domain.ExtractionResult {
	record := domain.TransactionRecord{
		Category: rec.Category,
		Merchant: rec.Merchant,
	}
	if rec.Amount != nil {
		record.Amount = *rec.Amount
	}
	if rec.Type != nil {
		record.TransactionType = *rec.Type
	}
	if rec.PaymentMethod != nil {
		record.PaymentMethod = *rec.PaymentMethod
	}
	if rec.Date != nil {
		record.Date = *rec.Date
	}
	if rec.Description != nil {
		record.Description = *rec.Description
	}

	return &domain.ExtractionResult{
		Record:        record,
		Status:        report.Status,
		MissingFields: report.MissingFields,
		InvalidFields: report.InvalidFields,
	}
}
