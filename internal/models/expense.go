package models

import "time"

// ExpenseCategory classifies a one-off shared expense.
type ExpenseCategory string

const (
	CategoryGroceries ExpenseCategory = "groceries"
	CategoryUtilities ExpenseCategory = "utilities"
	CategoryHousehold ExpenseCategory = "household"
	CategoryDining    ExpenseCategory = "dining"
	CategoryTransport ExpenseCategory = "transport"
	CategoryOther     ExpenseCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryUtilities, CategoryHousehold,
		CategoryDining, CategoryTransport, CategoryOther:
		return true
	}
	return false
}

// Label returns the human-readable name for the category. The switch is
// exhaustive over the declared constants; unknown values only arise from
// hand-edited storage and map to the raw string.
func (c ExpenseCategory) Label() string {
	switch c {
	case CategoryGroceries:
		return "Groceries"
	case CategoryUtilities:
		return "Utilities"
	case CategoryHousehold:
		return "Household"
	case CategoryDining:
		return "Dining out"
	case CategoryTransport:
		return "Transport"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// Expense represents a one-off cost paid by one member and split equally
// among its participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// FlatID is the household this expense belongs to.
	FlatID string

	// Description is a short human-readable note (e.g. "Weekly shop").
	Description string

	// Amount is the full expense amount paid by PaidBy.
	Amount float64

	// PaidBy is the member ID of whoever fronted the money.
	PaidBy string

	// Participants are the member IDs sharing this expense. Each owes
	// Amount / len(Participants); the payer's own share is never charged.
	Participants []string

	// Date is when the expense was incurred.
	Date time.Time

	// Category classifies the expense for display and trends.
	Category ExpenseCategory
}
