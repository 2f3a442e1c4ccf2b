// Package schema defines the canonical transaction record shape used to
// build extraction requests and to validate their output. The field list is
// static configuration, frozen at process start.
package schema

import (
	"fmt"
	"strings"
)

// FieldType describes the wire type expected for a field in model output.
type FieldType string

const (
	TypeNumber FieldType = "number"
	TypeString FieldType = "string"
	TypeEnum   FieldType = "enum"
	TypeDate   FieldType = "date"
)

// Field describes one field of the transaction record.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Enum        []string // allowed values when Type == TypeEnum
	Description string
}

// Field names, in canonical order.
const (
	FieldAmount          = "amount"
	FieldTransactionType = "transactionType"
	FieldPaymentMethod   = "paymentMethod"
	FieldDate            = "date"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldMerchant        = "merchant"
)

var fields = []Field{
	{
		Name:        FieldAmount,
		Type:        TypeNumber,
		Required:    true,
		Description: "transaction amount as a positive decimal; keep any currency symbol or code that appears in the text",
	},
	{
		Name:        FieldTransactionType,
		Type:        TypeEnum,
		Required:    true,
		Enum:        []string{"credit", "debit"},
		Description: "credit for money received, debit for money spent",
	},
	{
		Name:        FieldPaymentMethod,
		Type:        TypeString,
		Required:    true,
		Description: "how the payment was made, e.g. cash, card, bank transfer, check",
	},
	{
		Name:        FieldDate,
		Type:        TypeDate,
		Required:    true,
		Description: "transaction date; copy the date expression from the text, relative terms like \"yesterday\" included",
	},
	{
		Name:        FieldDescription,
		Type:        TypeString,
		Required:    true,
		Description: "short human-readable summary of the transaction",
	},
	{
		Name:        FieldCategory,
		Type:        TypeString,
		Required:    false,
		Description: "best-effort spending category, e.g. food, housing, transport, entertainment, utilities",
	},
	{
		Name:        FieldMerchant,
		Type:        TypeString,
		Required:    false,
		Description: "merchant or counterparty proper name",
	},
}

// Fields returns a copy of the canonical field list.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Required returns the names of all required fields, in canonical order.
func Required() []string {
	var out []string
	for _, f := range fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Render produces a schema description suitable for embedding in an
// extraction request.
func Render() string {
	var b strings.Builder
	b.WriteString("Each response object must have exactly these fields:\n")
	for _, f := range fields {
		typ := string(f.Type)
		if f.Type == TypeEnum {
			typ = "one of " + quoteAll(f.Enum)
		}
		req := "required"
		if !f.Required {
			req = "optional, null if unknown"
		}
		fmt.Fprintf(&b, "- %q: %s (%s): %s\n", f.Name, typ, req, f.Description)
	}
	return b.String()
}

func quoteAll(vals []string) string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
