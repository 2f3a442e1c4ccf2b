// Package validate decides record acceptability. It classifies required
// fields as missing or invalid and never fabricates values.
package validate

import (
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/normalize"
	"github.com/dvloznov/pennywise/internal/schema"
)

// Report is the validator's verdict on one normalized record.
type Report struct {
	Status        domain.ExtractionStatus
	MissingFields []string
	InvalidFields []string
}

// Classify inspects each required field of the normalized record. A nil
// value with no invalid marker is missing; an invalid marker wins over
// missing. Any required-field problem makes the record incomplete.
func Classify(rec normalize.Record) Report {
	report := Report{
		Status:        domain.StatusComplete,
		MissingFields: []string{},
		InvalidFields: []string{},
	}

	for _, field := range schema.Required() {
		if _, invalid := rec.Invalid[field]; invalid {
			report.InvalidFields = append(report.InvalidFields, field)
			continue
		}
		if fieldIsNull(rec, field) {
			report.MissingFields = append(report.MissingFields, field)
		}
	}

	if len(report.MissingFields) > 0 || len(report.InvalidFields) > 0 {
		report.Status = domain.StatusIncomplete
	}
	return report
}

func fieldIsNull(rec normalize.Record, field string) bool {
	switch field {
	case schema.FieldAmount:
		return rec.Amount == nil
	case schema.FieldTransactionType:
		return rec.Type == nil
	case schema.FieldPaymentMethod:
		return rec.PaymentMethod == nil
	case schema.FieldDate:
		return rec.Date == nil
	case schema.FieldDescription:
		return rec.Description == nil
	case schema.FieldCategory:
		return rec.Category == nil
	case schema.FieldMerchant:
		return rec.Merchant == nil
	}
	return true
}
