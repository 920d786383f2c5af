package domain

import "time"

const (
	// NoDescription labels report lines submitted without a description
	NoDescription = "No description"

	// UnknownPayer labels report lines submitted without a payer name
	UnknownPayer = "Unknown payer"
)

// CreateExpenseRequest represents a shared expense to be categorized.
// Amount is taken as printed on the bill, e.g. "1,250.50".
type CreateExpenseRequest struct {
	GroupID     string `json:"group_id" binding:"required"`
	PayerID     string `json:"payer_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// Expense is a categorized expense record. It is returned to the caller, not stored.
type Expense struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	PayerID     string    `json:"payer_id"`
	Amount      string    `json:"amount"` // normalized to two decimals
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseLine is one expense fed into a report
type ExpenseLine struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PayerName   string `json:"payer_name"`
}

// ExpenseReportRequest carries the expenses to summarize
type ExpenseReportRequest struct {
	Expenses []ExpenseLine `json:"expenses" binding:"required"`
}

// CategoryTotal groups report lines under one category
type CategoryTotal struct {
	Category string        `json:"category"`
	Total    string        `json:"total"`
	Count    int           `json:"count"`
	Expenses []ExpenseLine `json:"expenses"`
}

// ExpenseReport summarizes expenses per category in first-seen order
type ExpenseReport struct {
	Categories []CategoryTotal `json:"categories"`
	GrandTotal string          `json:"grand_total"`
	Count      int             `json:"count"`
	Skipped    int             `json:"skipped"` // lines whose amount did not parse
}
