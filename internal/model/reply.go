package model

import "github.com/shopspring/decimal"

// ReplyKind tags the union of reply shapes the dispatcher can produce.
type ReplyKind string

const (
	// ReplyText is a plain-text reply.
	ReplyText ReplyKind = "text"
	// ReplyReport carries structured summary data plus an intro message.
	ReplyReport ReplyKind = "report"
	// ReplyConfirmation asks the user to confirm a pending action.
	ReplyConfirmation ReplyKind = "confirmation"
)

// CategoryTotal is one line of a report: a category and its summed amount.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ReportSummary aggregates a period's income and expenses for a report reply.
type ReportSummary struct {
	ByExpenseCategory []CategoryTotal
	ByIncomeCategory  []CategoryTotal
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	Net               decimal.Decimal
}

// Reply is what the chat transport sends back to the user. Exactly one of
// the kind-specific fields is populated according to Kind.
type Reply struct {
	Summary *ReportSummary
	Kind    ReplyKind
	Content string
	Prompt  string
	Options []string
}

// TextReply builds a plain-text reply.
func TextReply(content string) Reply {
	return Reply{Kind: ReplyText, Content: content}
}

// ConfirmationReply builds a confirmation prompt with the given options.
func ConfirmationReply(prompt string, options ...string) Reply {
	return Reply{Kind: ReplyConfirmation, Prompt: prompt, Options: options}
}

// ReportReply builds a report reply with an intro message.
func ReportReply(intro string, summary *ReportSummary) Reply {
	return Reply{Kind: ReplyReport, Content: intro, Summary: summary}
}
