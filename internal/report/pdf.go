package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// WritePDF renders the summary as an A4 PDF and writes it to w.
// Amounts are labelled with the given ISO currency code.
func WritePDF(s *Summary, currency string, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	monthDisplay := s.Month
	if t, err := time.Parse("2006-01", s.Month); err == nil {
		monthDisplay = t.Format("January 2006")
	}

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 0, 128)
	pdf.CellFormat(0, 12, "Monthly Transaction Report", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, monthDisplay, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeHeading(pdf, "Financial Summary")
	writeTable(pdf, []string{"Metric", "Amount"}, [][]string{
		{"Total Income", money(s.TotalIncome, currency)},
		{"Total Expenses", money(s.TotalExpenses, currency)},
		{"Net Income", money(s.NetIncome, currency)},
		{"Total Transactions", fmt.Sprintf("%d", s.TotalTransactions)},
	}, []float64{60, 60})

	if len(s.TopCategories) > 0 {
		writeHeading(pdf, "Spending by Category")
		writeTable(pdf, []string{"Category", "Amount"}, entryRows(s.TopCategories, currency), []float64{80, 40})
	}

	if len(s.TopMerchants) > 0 {
		writeHeading(pdf, "Spending by Merchant")
		writeTable(pdf, []string{"Merchant", "Amount"}, entryRows(s.TopMerchants, currency), []float64{80, 40})
	}

	writeHeading(pdf, "Transaction Details")
	rows := make([][]string, 0, len(s.Transactions))
	for _, rec := range s.Transactions {
		merchant := unknownLabel
		if rec.Merchant != nil {
			merchant = truncate(*rec.Merchant, 20)
		}
		category := unknownLabel
		if rec.Category != nil {
			category = truncate(*rec.Category, 15)
		}
		rows = append(rows, []string{
			rec.Date.String(),
			merchant,
			category,
			money(rec.Amount, currency),
			string(rec.TransactionType),
			truncate(rec.PaymentMethod, 14),
		})
	}
	writeTable(pdf, []string{"Date", "Merchant", "Category", "Amount", "Type", "Payment"}, rows,
		[]float64{25, 45, 32, 30, 20, 30})

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Report generated on: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")

	return pdf.Output(w)
}

func writeHeading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 128)
	pdf.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
}

func writeTable(pdf *gofpdf.Fpdf, headers []string, rows [][]string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0, 0, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if headers[i] == "Amount" {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func entryRows(entries []Entry, currency string) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{truncate(e.Name, 30), money(e.Amount, currency)})
	}
	return rows
}

func money(d decimal.Decimal, currency string) string {
	return currency + " " + d.Abs().StringFixed(2)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
