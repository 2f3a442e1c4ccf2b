// Package normalize canonicalizes raw extracted field values into their
// schema-conformant forms. Everything here is deterministic and side-effect
// free; no external calls are made.
package normalize

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/rates"
	"github.com/dvloznov/pennywise/internal/schema"
	"github.com/shopspring/decimal"
)

// Record is the normalizer's output: one pointer per schema field where nil
// means "stated unknown", plus an Invalid map holding the raw value of every
// field that was present but malformed. A field is never in both states.
type Record struct {
	Amount        *decimal.Decimal
	Type          *domain.TransactionType
	PaymentMethod *string
	Date          *civil.Date
	Description   *string
	Category      *string
	Merchant      *string

	Invalid map[string]string
}

// FromRaw normalizes the parsed field map of one extraction attempt.
// referenceDate anchors relative-date resolution and baseCurrency anchors
// currency conversion through fx. Field-level failures are recorded in
// Record.Invalid and never abort the whole record.
func FromRaw(raw map[string]interface{}, referenceDate civil.Date, baseCurrency string, fx rates.Provider) Record {
	rec := Record{Invalid: make(map[string]string)}

	// Type first: the amount sign rule depends on it.
	if s, ok := stringValue(raw, schema.FieldTransactionType); ok {
		typ, invalid := normalizeType(s)
		rec.Type = typ
		if invalid {
			rec.markInvalid(schema.FieldTransactionType, raw)
		}
	} else {
		rec.markInvalid(schema.FieldTransactionType, raw)
	}

	if amountPresent(raw) {
		amount, invalid := normalizeAmount(raw[schema.FieldAmount], rec.Type, baseCurrency, fx)
		rec.Amount = amount
		if invalid {
			rec.markInvalid(schema.FieldAmount, raw)
		}
	}

	if s, ok := stringValue(raw, schema.FieldDate); ok {
		date, invalid := normalizeDate(s, referenceDate)
		rec.Date = date
		if invalid {
			rec.markInvalid(schema.FieldDate, raw)
		}
	} else {
		rec.markInvalid(schema.FieldDate, raw)
	}

	if s, ok := stringValue(raw, schema.FieldPaymentMethod); ok {
		rec.PaymentMethod = normalizeMethod(s)
	} else {
		rec.markInvalid(schema.FieldPaymentMethod, raw)
	}

	if s, ok := stringValue(raw, schema.FieldDescription); ok {
		rec.Description = normalizeDescription(s)
	} else {
		rec.markInvalid(schema.FieldDescription, raw)
	}

	if s, ok := stringValue(raw, schema.FieldCategory); ok {
		rec.Category = normalizeCategory(s)
	} else {
		rec.markInvalid(schema.FieldCategory, raw)
	}

	if s, ok := stringValue(raw, schema.FieldMerchant); ok {
		if strings.TrimSpace(s) != "" {
			rec.Merchant = normalizeMerchant(s)
		}
	} else {
		rec.markInvalid(schema.FieldMerchant, raw)
	}

	return rec
}

// markInvalid records the offending raw value for diagnostics.
func (r *Record) markInvalid(field string, raw map[string]interface{}) {
	r.Invalid[field] = fmt.Sprintf("%v", raw[field])
}

// stringValue fetches a field expected to be a string. Absent and null
// values report ok with an empty string; a value of the wrong type does not.
func stringValue(raw map[string]interface{}, key string) (string, bool) {
	v, present := raw[key]
	if !present || v == nil {
		return "", true
	}
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	return s, true
}

func amountPresent(raw map[string]interface{}) bool {
	v, present := raw[schema.FieldAmount]
	return present && v != nil
}
