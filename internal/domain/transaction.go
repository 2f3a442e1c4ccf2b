package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// Controlled vocabulary for payment methods. Values outside this set are
// passed through by the normalizer rather than forced into it.
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodBankTransfer = "bank transfer"
	MethodCheck        = "check"
	MethodOther        = "other"
)

// TransactionRecord is the canonical record produced by one extraction.
// Amount is always expressed in the caller's base currency. Optional fields
// are pointers so an unresolved value serializes as null.
type TransactionRecord struct {
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	PaymentMethod   string          `json:"paymentMethod"`
	Date            civil.Date      `json:"date"`
	Description     string          `json:"description"`
	Category        *string         `json:"category"`
	Merchant        *string         `json:"merchant"`
}

// ExtractionStatus is the terminal status of one extraction.
type ExtractionStatus string

const (
	StatusComplete   ExtractionStatus = "complete"
	StatusIncomplete ExtractionStatus = "incomplete"
)

// ExtractionResult is the only artifact returned to the caller: the record,
// its status, and the lists of required fields that were missing or invalid.
// A record with problems is reported as incomplete, never silently dropped.
type ExtractionResult struct {
	Record        TransactionRecord `json:"record"`
	Status        ExtractionStatus  `json:"status"`
	MissingFields []string          `json:"missingFields"`
	InvalidFields []string          `json:"invalidFields"`
}
