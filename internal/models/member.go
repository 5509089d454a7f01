package models

import "time"

// DefaultWeight is the split weight assigned to a member when none is given.
const DefaultWeight = 1.0

// Member represents one flatmate.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// FlatID is the household this member belongs to.
	FlatID string

	// Name is the display name of the member.
	Name string

	// Weight is the member's share weight for weighted bill splits.
	// Must be positive; defaults to DefaultWeight.
	Weight float64

	// IsActive reports whether the member currently lives in the flat.
	// Inactive members are excluded from all split computations but may
	// still appear in historical expenses and payments.
	IsActive bool

	// JoinedAt is when the member was added to the flat.
	JoinedAt time.Time
}
