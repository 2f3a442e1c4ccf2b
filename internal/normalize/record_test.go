package normalize

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromRaw(t *testing.T) {
	raw := map[string]interface{}{
		"amount":          "$25.99",
		"transactionType": "debit",
		"paymentMethod":   "debit card",
		"date":            "yesterday",
		"description":     "Grocery purchase at Walmart",
		"category":        "Food",
		"merchant":        "Walmart",
	}

	rec := FromRaw(raw, refDate, "USD", nil)

	if len(rec.Invalid) != 0 {
		t.Fatalf("unexpected invalid fields: %v", rec.Invalid)
	}
	if rec.Amount == nil || !rec.Amount.Equal(decimal.RequireFromString("25.99")) {
		t.Errorf("amount = %v, want 25.99", rec.Amount)
	}
	if rec.Date == nil || rec.Date.String() != "2024-03-19" {
		t.Errorf("date = %v, want 2024-03-19", rec.Date)
	}
	if rec.PaymentMethod == nil || *rec.PaymentMethod != "card" {
		t.Errorf("paymentMethod = %v, want card", rec.PaymentMethod)
	}
	if rec.Category == nil || *rec.Category != "food" {
		t.Errorf("category = %v, want food", rec.Category)
	}
	if rec.Merchant == nil || *rec.Merchant != "Walmart" {
		t.Errorf("merchant = %v, want Walmart", rec.Merchant)
	}
}

func TestFromRawNullsAndInvalids(t *testing.T) {
	raw := map[string]interface{}{
		"amount":          nil,
		"transactionType": "debit",
		"paymentMethod":   nil,
		"date":            "the other day",
		"description":     "Had lunch with a friend",
	}

	rec := FromRaw(raw, refDate, "USD", nil)

	if rec.Amount != nil {
		t.Errorf("amount = %v, want nil (stated unknown)", rec.Amount)
	}
	if _, flagged := rec.Invalid["amount"]; flagged {
		t.Error("null amount must not be marked invalid")
	}
	if _, flagged := rec.Invalid["date"]; !flagged {
		t.Error("unparseable date must be marked invalid")
	}
	if rec.Date != nil {
		t.Errorf("date = %v, want nil alongside invalid marker", rec.Date)
	}
}

func TestFromRawWrongTypes(t *testing.T) {
	raw := map[string]interface{}{
		"amount":          true,
		"transactionType": 7.0,
		"paymentMethod":   "cash",
		"date":            "today",
		"description":     "x",
	}

	rec := FromRaw(raw, refDate, "USD", nil)
	if _, flagged := rec.Invalid["amount"]; !flagged {
		t.Error("boolean amount must be marked invalid")
	}
	if _, flagged := rec.Invalid["transactionType"]; !flagged {
		t.Error("numeric transactionType must be marked invalid")
	}
}

// Re-running the normalizer on its own output must be a no-op.
func TestFromRawIdempotent(t *testing.T) {
	raw := map[string]interface{}{
		"amount":          "500 USD",
		"transactionType": "credit",
		"paymentMethod":   "Bank transfer",
		"date":            "today",
		"description":     "Rent payment from John",
		"category":        "Housing",
		"merchant":        "from John",
	}

	first := FromRaw(raw, refDate, "USD", nil)
	if len(first.Invalid) != 0 {
		t.Fatalf("fixture should normalize cleanly, got invalid: %v", first.Invalid)
	}

	again := FromRaw(map[string]interface{}{
		"amount":          first.Amount.String(),
		"transactionType": string(*first.Type),
		"paymentMethod":   *first.PaymentMethod,
		"date":            first.Date.String(),
		"description":     *first.Description,
		"category":        *first.Category,
		"merchant":        *first.Merchant,
	}, refDate, "USD", nil)

	if !reflect.DeepEqual(first, again) {
		t.Errorf("normalization is not idempotent:\nfirst:  %+v\nsecond: %+v", first, again)
	}
}
