package normalize

import (
	"strings"

	"github.com/dvloznov/pennywise/internal/domain"
)

// methodSynonyms maps controlled-vocabulary payment methods to the phrases
// that should collapse into them. Matching is case-insensitive substring
// matching; order matters only for readability.
var methodSynonyms = []struct {
	canonical string
	synonyms  []string
}{
	{domain.MethodBankTransfer, []string{"bank transfer", "wire", "ach", "direct deposit", "direct debit", "transfer"}},
	{domain.MethodCard, []string{"credit card", "debit card", "card", "visa", "mastercard", "american express", "amex"}},
	{domain.MethodCheck, []string{"check", "cheque"}},
	{domain.MethodCash, []string{"cash"}},
	{domain.MethodOther, []string{"other"}},
}

// normalizeType maps a raw transaction type onto the credit/debit enum.
// Anything else is present-but-malformed.
func normalizeType(raw string) (*domain.TransactionType, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil, false
	}
	switch s {
	case "credit":
		t := domain.TypeCredit
		return &t, false
	case "debit":
		t := domain.TypeDebit
		return &t, false
	}
	return nil, true
}

// normalizeMethod maps free-form payment method text onto the controlled
// vocabulary. Unmatched values pass through unchanged so stricter callers
// can flag them downstream.
func normalizeMethod(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	lower := strings.ToLower(s)
	for _, entry := range methodSynonyms {
		for _, syn := range entry.synonyms {
			if strings.Contains(lower, syn) {
				v := entry.canonical
				return &v
			}
		}
	}
	return &s
}

var merchantPrefixes = []string{"from ", "at ", "to ", "with "}
var honorifics = []string{"mr. ", "mr ", "mrs. ", "mrs ", "ms. ", "ms ", "dr. ", "dr "}

// normalizeMerchant trims extraneous words the model tends to carry over
// from the message ("from John" -> "John"), honorifics, and possessives.
func normalizeMerchant(raw string) *string {
	s := strings.TrimSpace(raw)

	lower := strings.ToLower(s)
	for _, p := range merchantPrefixes {
		if strings.HasPrefix(lower, p) {
			s = strings.TrimSpace(s[len(p):])
			lower = strings.ToLower(s)
			break
		}
	}
	for _, h := range honorifics {
		if strings.HasPrefix(lower, h) {
			s = strings.TrimSpace(s[len(h):])
			break
		}
	}
	for _, suffix := range []string{"'s", "’s"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	if s == "" {
		return nil
	}
	return &s
}

// normalizeCategory applies whitespace and casing normalization only; the
// taxonomy is advisory, not enforced.
func normalizeCategory(raw string) *string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	return &s
}

func normalizeDescription(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}
