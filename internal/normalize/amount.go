package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dvloznov/pennywise/internal/domain"
	"github.com/dvloznov/pennywise/internal/rates"
	"github.com/shopspring/decimal"
)

// Currency symbols the model tends to echo from message text.
var currencySymbols = map[string]string{
	"$": "USD",
	"£": "GBP",
	"€": "EUR",
	"₦": "NGN",
}

var isoCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// decimal comma, e.g. "25,99"
var decimalCommaRe = regexp.MustCompile(`,\d{1,2}$`)

// parseAmount parses a raw amount value into a decimal plus the currency
// mentioned alongside it, if any. The sign is preserved; sign/type agreement
// is resolved by the caller.
func parseAmount(raw interface{}) (decimal.Decimal, string, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), "", nil
	case int:
		return decimal.NewFromInt(int64(v)), "", nil
	case string:
		return parseAmountString(v)
	default:
		return decimal.Decimal{}, "", fmt.Errorf("amount has type %T, want number or string", raw)
	}
}

func parseAmountString(s string) (decimal.Decimal, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, "", fmt.Errorf("empty amount")
	}

	currency := ""

	// Trailing or leading ISO code, e.g. "25.99 USD" or "USD 25.99".
	fields := strings.Fields(s)
	if len(fields) == 2 {
		if isoCodeRe.MatchString(fields[1]) {
			currency = strings.ToUpper(fields[1])
			s = fields[0]
		} else if isoCodeRe.MatchString(fields[0]) {
			currency = strings.ToUpper(fields[0])
			s = fields[1]
		}
	}

	// Currency symbols, wherever the model put them.
	for sym, code := range currencySymbols {
		if strings.Contains(s, sym) {
			s = strings.ReplaceAll(s, sym, "")
			if currency == "" {
				currency = code
			}
		}
	}
	s = strings.TrimSpace(s)

	// Separators: "1,234.56" uses commas for thousands, "25,99" for decimals.
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case decimalCommaRe.MatchString(s):
		s = strings.Replace(s, ",", ".", 1)
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("unparseable amount %q: %w", s, err)
	}
	return d, currency, nil
}

// normalizeAmount canonicalizes a raw amount into a positive decimal in the
// base currency, rounded to the minor unit. The boolean result reports an
// invalid value: a parse failure, a zero amount, a sign that disagrees with
// the transaction type, or a foreign currency with no conversion rate.
func normalizeAmount(raw interface{}, typ *domain.TransactionType, baseCurrency string, fx rates.Provider) (*decimal.Decimal, bool) {
	if raw == nil {
		return nil, false
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, false
	}

	d, currency, err := parseAmount(raw)
	if err != nil {
		return nil, true
	}

	// A negative raw value is the magnitude of a debit; the sign is never
	// allowed to redundantly encode the type.
	if d.IsNegative() {
		if typ == nil || *typ != domain.TypeDebit {
			return nil, true
		}
		d = d.Abs()
	}
	if d.IsZero() {
		return nil, true
	}

	if currency != "" && baseCurrency != "" && !strings.EqualFold(currency, baseCurrency) {
		if fx == nil {
			return nil, true
		}
		rate, ok := fx.Rate(currency, baseCurrency)
		if !ok {
			return nil, true
		}
		d = d.Mul(rate)
	}

	d = d.Round(2)
	return &d, false
}
