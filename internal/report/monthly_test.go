package report

import (
	"bytes"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/pennywise/internal/domain"
)

func strPtr(s string) *string { return &s }

func testRecords() []domain.TransactionRecord {
	return []domain.TransactionRecord{
		{
			Amount:          decimal.NewFromFloat(25.99),
			TransactionType: domain.TypeDebit,
			PaymentMethod:   domain.MethodCard,
			Date:            civil.Date{Year: 2024, Month: 3, Day: 19},
			Description:     "groceries at Walmart",
			Category:        strPtr("groceries"),
			Merchant:        strPtr("Walmart"),
		},
		{
			Amount:          decimal.NewFromInt(500),
			TransactionType: domain.TypeCredit,
			PaymentMethod:   domain.MethodBankTransfer,
			Date:            civil.Date{Year: 2024, Month: 3, Day: 1},
			Description:     "salary",
			Category:        strPtr("income"),
			Merchant:        strPtr("Acme Corp"),
		},
		{
			Amount:          decimal.NewFromFloat(12.50),
			TransactionType: domain.TypeDebit,
			PaymentMethod:   domain.MethodCash,
			Date:            civil.Date{Year: 2024, Month: 3, Day: 5},
			Description:     "lunch",
			Category:        strPtr("dining"),
		},
		{
			// Different month, must be excluded.
			Amount:          decimal.NewFromInt(99),
			TransactionType: domain.TypeDebit,
			PaymentMethod:   domain.MethodCard,
			Date:            civil.Date{Year: 2024, Month: 2, Day: 28},
			Description:     "february purchase",
			Category:        strPtr("shopping"),
			Merchant:        strPtr("Amazon"),
		},
	}
}

func TestBuildSummary(t *testing.T) {
	summary, err := BuildSummary(testRecords(), "2024-03")
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}

	if summary.TotalTransactions != 3 {
		t.Errorf("total transactions = %d, want 3", summary.TotalTransactions)
	}
	if !summary.TotalIncome.Equal(decimal.NewFromInt(500)) {
		t.Errorf("total income = %s, want 500", summary.TotalIncome)
	}
	wantExpenses := decimal.NewFromFloat(38.49)
	if !summary.TotalExpenses.Equal(wantExpenses) {
		t.Errorf("total expenses = %s, want %s", summary.TotalExpenses, wantExpenses)
	}
	wantNet := decimal.NewFromFloat(461.51)
	if !summary.NetIncome.Equal(wantNet) {
		t.Errorf("net income = %s, want %s", summary.NetIncome, wantNet)
	}
}

func TestBuildSummaryRankings(t *testing.T) {
	summary, err := BuildSummary(testRecords(), "2024-03")
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}

	if len(summary.TopCategories) != 2 {
		t.Fatalf("top categories = %d, want 2", len(summary.TopCategories))
	}
	if summary.TopCategories[0].Name != "groceries" {
		t.Errorf("top category = %q, want groceries", summary.TopCategories[0].Name)
	}

	// Missing merchant falls back to the Unknown bucket.
	if len(summary.TopMerchants) != 2 {
		t.Fatalf("top merchants = %d, want 2", len(summary.TopMerchants))
	}
	if summary.TopMerchants[0].Name != "Walmart" {
		t.Errorf("top merchant = %q, want Walmart", summary.TopMerchants[0].Name)
	}
	if summary.TopMerchants[1].Name != unknownLabel {
		t.Errorf("second merchant = %q, want %s", summary.TopMerchants[1].Name, unknownLabel)
	}
}

func TestBuildSummarySortsTransactionsByDate(t *testing.T) {
	summary, err := BuildSummary(testRecords(), "2024-03")
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}

	for i := 1; i < len(summary.Transactions); i++ {
		prev, cur := summary.Transactions[i-1].Date, summary.Transactions[i].Date
		if cur.Before(prev) {
			t.Errorf("transactions out of order: %s before %s", cur, prev)
		}
	}
}

func TestBuildSummaryKeepsTopTen(t *testing.T) {
	var records []domain.TransactionRecord
	for i := 0; i < 15; i++ {
		records = append(records, domain.TransactionRecord{
			Amount:          decimal.NewFromInt(int64(i + 1)),
			TransactionType: domain.TypeDebit,
			PaymentMethod:   domain.MethodCard,
			Date:            civil.Date{Year: 2024, Month: 3, Day: 10},
			Description:     "purchase",
			Category:        strPtr(string(rune('a' + i))),
		})
	}

	summary, err := BuildSummary(records, "2024-03")
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if len(summary.TopCategories) != 10 {
		t.Fatalf("top categories = %d, want 10", len(summary.TopCategories))
	}
	// Highest spend first.
	if !summary.TopCategories[0].Amount.Equal(decimal.NewFromInt(15)) {
		t.Errorf("top amount = %s, want 15", summary.TopCategories[0].Amount)
	}
}

func TestBuildSummaryRejectsBadMonth(t *testing.T) {
	if _, err := BuildSummary(nil, "March 2024"); err == nil {
		t.Fatal("expected error for invalid month")
	}
}

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC), "2024-08"},
		{time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), "2023-12"},
	}
	for _, tt := range tests {
		if got := PreviousMonth(tt.now); got != tt.want {
			t.Errorf("PreviousMonth(%s) = %s, want %s", tt.now.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestWritePDF(t *testing.T) {
	summary, err := BuildSummary(testRecords(), "2024-03")
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePDF(summary, "USD", &buf); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}
