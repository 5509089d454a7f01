package models

import "time"

// Settlement represents a direct peer-to-peer payment between members to
// clear debts. It is not tied to any bill or expense.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// FlatID is the household this settlement belongs to.
	FlatID string

	// FromMemberID is the member who paid (debtor settling up).
	FromMemberID string

	// ToMemberID is the member who received payment (creditor being paid).
	ToMemberID string

	// Amount is the payment amount.
	Amount float64

	// SettledAt is when the settlement was recorded.
	SettledAt time.Time

	// Note is an optional description for the settlement.
	Note string
}
