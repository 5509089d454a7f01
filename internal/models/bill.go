package models

import "time"

// SplitType selects how a bill's unpaid remainder is divided among the
// active members of a flat.
type SplitType string

const (
	// SplitEqual divides the remainder evenly across active members.
	SplitEqual SplitType = "EQUAL"

	// SplitWeighted divides the remainder proportionally to member weights.
	SplitWeighted SplitType = "WEIGHTED"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	return t == SplitEqual || t == SplitWeighted
}

// Bill represents a recurring monthly obligation such as rent or internet.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// FlatID is the household this bill belongs to.
	FlatID string

	// Name is the display name of the bill (e.g. "Rent", "Electricity").
	Name string

	// Amount is the full amount due each cycle.
	Amount float64

	// DueDay is the day of month the bill is due, in [1,31]. Months
	// shorter than DueDay clamp to their last day.
	DueDay int

	// SplitType selects equal or weighted division of the unpaid remainder.
	SplitType SplitType

	// IsActive reports whether the bill is still being charged. Inactive
	// bills contribute nothing to balances or reliability.
	IsActive bool

	// CreatedAt is when the bill was registered.
	CreatedAt time.Time
}

// BillPayment represents one payment made against a bill. Several payments
// may apply to the same bill; the bill's remainder is its amount minus the
// sum of matching payments, floored at zero.
type BillPayment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// FlatID is the household this payment belongs to.
	FlatID string

	// BillID is the bill this payment applies to.
	BillID string

	// PaidBy is the member ID of whoever made the payment.
	PaidBy string

	// Amount is the payment amount; may be less than the bill amount.
	Amount float64

	// PaidAt is when the payment was made. Punctuality is judged against
	// the bill's due day in this month.
	PaidAt time.Time
}
