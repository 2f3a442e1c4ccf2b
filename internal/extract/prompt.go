package extract

import (
	"strings"

	"github.com/dvloznov/pennywise/internal/schema"
)

// Few-shot examples anchoring the output conventions: amount format, date
// expressions copied verbatim (resolution happens deterministically later),
// and null for anything the message does not state.
var fewShotExamples = []struct {
	message string
	output  string
}{
	{
		message: "Spent 25.99 at Walmart on groceries yesterday using my debit card",
		output: `{"amount": 25.99, "transactionType": "debit", "paymentMethod": "debit card", ` +
			`"date": "yesterday", "description": "Grocery purchase at Walmart", "category": "food", "merchant": "Walmart"}`,
	},
	{
		message: "Received $500 bank transfer from John for rent",
		output: `{"amount": "$500", "transactionType": "credit", "paymentMethod": "bank transfer", ` +
			`"date": "today", "description": "Rent payment from John", "category": "housing", "merchant": "John"}`,
	},
	{
		message: "Had lunch with a friend",
		output: `{"amount": null, "transactionType": "debit", "paymentMethod": null, ` +
			`"date": "today", "description": "Lunch with a friend", "category": "food", "merchant": null}`,
	},
}

// buildPrompt assembles one extraction request: rendered schema,
// instructions, few-shot examples, and the message itself.
func buildPrompt(message string) string {
	var b strings.Builder

	b.WriteString("You are a financial transaction parser for free-text messages " +
		"(emails, SMS, chat).\n\n" +
		"Task:\n" +
		"- Extract the single transaction described in the message below.\n" +
		"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
		"- Output exactly one JSON object.\n\n")

	b.WriteString(schema.Render())
	b.WriteString("\n")

	b.WriteString("Rules:\n" +
		"- Use null for any value the message does not state. Never invent values.\n" +
		"- Keep the amount positive; the transactionType carries the direction.\n" +
		"- Copy date expressions as written, including relative terms like \"yesterday\".\n" +
		"- If the message gives no date, use \"today\".\n" +
		"- Return ONLY valid raw JSON.\n" +
		"- Do NOT wrap the response in code fences.\n" +
		"- Do NOT use ```json or any Markdown.\n" +
		"- Output must begin with \"{\" and end with \"}\".\n\n")

	b.WriteString("Examples:\n")
	for _, ex := range fewShotExamples {
		b.WriteString("Message: " + ex.message + "\n")
		b.WriteString("Output: " + ex.output + "\n\n")
	}

	b.WriteString("Message: " + message + "\n")
	b.WriteString("Output:")

	return b.String()
}
