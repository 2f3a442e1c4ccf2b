package validate

import (
	"reflect"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/normalize"
	"github.com/shopspring/decimal"
)

func completeRecord() normalize.Record {
	amount := decimal.RequireFromString("25.99")
	typ := domain.TypeDebit
	method := "card"
	date := civil.Date{Year: 2024, Month: 3, Day: 19}
	desc := "Grocery purchase at Walmart"

	return normalize.Record{
		Amount:        &amount,
		Type:          &typ,
		PaymentMethod: &method,
		Date:          &date,
		Description:   &desc,
		Invalid:       map[string]string{},
	}
}

func TestClassifyComplete(t *testing.T) {
	report := Classify(completeRecord())

	if report.Status != domain.StatusComplete {
		t.Errorf("status = %s, want complete", report.Status)
	}
	if len(report.MissingFields) != 0 || len(report.InvalidFields) != 0 {
		t.Errorf("unexpected field problems: missing=%v invalid=%v",
			report.MissingFields, report.InvalidFields)
	}
}

func TestClassifyMissingRequired(t *testing.T) {
	rec := completeRecord()
	rec.Amount = nil

	report := Classify(rec)
	if report.Status != domain.StatusIncomplete {
		t.Errorf("status = %s, want incomplete", report.Status)
	}
	if !reflect.DeepEqual(report.MissingFields, []string{"amount"}) {
		t.Errorf("missingFields = %v, want [amount]", report.MissingFields)
	}
}

func TestClassifyInvalidRequired(t *testing.T) {
	rec := completeRecord()
	rec.Date = nil
	rec.Invalid["date"] = "the other day"

	report := Classify(rec)
	if report.Status != domain.StatusIncomplete {
		t.Errorf("status = %s, want incomplete", report.Status)
	}
	if !reflect.DeepEqual(report.InvalidFields, []string{"date"}) {
		t.Errorf("invalidFields = %v, want [date]", report.InvalidFields)
	}
	if len(report.MissingFields) != 0 {
		t.Errorf("invalid field also reported missing: %v", report.MissingFields)
	}
}

// Optional fields never affect the status.
func TestClassifyIgnoresOptionalFields(t *testing.T) {
	rec := completeRecord()
	rec.Category = nil
	rec.Merchant = nil

	report := Classify(rec)
	if report.Status != domain.StatusComplete {
		t.Errorf("status = %s, want complete with nil optionals", report.Status)
	}
}
