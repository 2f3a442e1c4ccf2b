// Package report aggregates extracted transactions into monthly summaries
// and renders them as PDF documents.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/pennywise/internal/domain"
)

// unknownLabel stands in for transactions whose category or merchant
// could not be extracted.
const unknownLabel = "Unknown"

// Entry is a single line in a top-categories or top-merchants ranking.
type Entry struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary holds the aggregated figures for one calendar month.
type Summary struct {
	Month             string                     `json:"month"`
	TotalTransactions int                        `json:"total_transactions"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpenses     decimal.Decimal            `json:"total_expenses"`
	NetIncome         decimal.Decimal            `json:"net_income"`
	TopCategories     []Entry                    `json:"top_categories"`
	TopMerchants      []Entry                    `json:"top_merchants"`
	Transactions      []domain.TransactionRecord `json:"transactions"`
}

// PreviousMonth returns the month before now in "2006-01" form.
func PreviousMonth(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, 0, -1).Format("2006-01")
}

// BuildSummary aggregates the records that fall inside the given month
// ("2006-01"). Credits count toward income; everything else is treated
// as an expense and attributed to its category and merchant. Rankings
// keep the ten largest entries.
func BuildSummary(records []domain.TransactionRecord, month string) (*Summary, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	summary := &Summary{
		Month:         month,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	categories := make(map[string]decimal.Decimal)
	merchants := make(map[string]decimal.Decimal)

	for _, rec := range records {
		if fmt.Sprintf("%04d-%02d", rec.Date.Year, rec.Date.Month) != month {
			continue
		}
		summary.Transactions = append(summary.Transactions, rec)

		if rec.TransactionType == domain.TypeCredit {
			summary.TotalIncome = summary.TotalIncome.Add(rec.Amount)
			continue
		}

		spent := rec.Amount.Abs()
		summary.TotalExpenses = summary.TotalExpenses.Add(spent)

		category := unknownLabel
		if rec.Category != nil {
			category = *rec.Category
		}
		categories[category] = categories[category].Add(spent)

		merchant := unknownLabel
		if rec.Merchant != nil {
			merchant = *rec.Merchant
		}
		merchants[merchant] = merchants[merchant].Add(spent)
	}

	summary.TotalTransactions = len(summary.Transactions)
	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.TopCategories = rank(categories)
	summary.TopMerchants = rank(merchants)

	sort.Slice(summary.Transactions, func(i, j int) bool {
		return summary.Transactions[i].Date.Before(summary.Transactions[j].Date)
	})

	return summary, nil
}

// rank sorts the totals in descending order and keeps the top ten.
// Ties break alphabetically so the output is stable.
func rank(totals map[string]decimal.Decimal) []Entry {
	entries := make([]Entry, 0, len(totals))
	for name, amount := range totals {
		entries = append(entries, Entry{Name: name, Amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Amount.Equal(entries[j].Amount) {
			return entries[i].Amount.GreaterThan(entries[j].Amount)
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	return entries
}
