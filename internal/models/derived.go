package models

import "time"

// MemberBalance is the net position of one member, recomputed from the raw
// entity lists on every call. Across a flat the net balances sum to ~zero:
// every owed unit is receivable by exactly one counterparty.
type MemberBalance struct {
	MemberID   string
	Owes       float64 // total this member owes others
	Receives   float64 // total others owe this member
	NetBalance float64 // Receives - Owes; positive = owed money
}

// SimplifiedDebt is one settling payment in a minimal payment plan.
// Applying every entry as a settlement drives all net balances to ~zero.
type SimplifiedDebt struct {
	FromMemberID string
	ToMemberID   string
	Amount       float64 // always > 0
}

// ReliabilityStatus is the categorical band for a reliability score.
type ReliabilityStatus string

const (
	StatusExcellent ReliabilityStatus = "EXCELLENT" // score >= 90
	StatusGood      ReliabilityStatus = "GOOD"      // score >= 75
	StatusFair      ReliabilityStatus = "FAIR"      // score >= 60
	StatusPoor      ReliabilityStatus = "POOR"
)

// PaymentStatus classifies one timeline record's punctuality.
type PaymentStatus string

const (
	PaymentOnTime PaymentStatus = "ON_TIME"
	PaymentLate   PaymentStatus = "LATE"
	PaymentMissed PaymentStatus = "MISSED"
)

// PaymentKind identifies which entity produced a timeline record.
type PaymentKind string

const (
	KindExpense     PaymentKind = "EXPENSE"
	KindBillPayment PaymentKind = "BILL_PAYMENT"
	KindSettlement  PaymentKind = "SETTLEMENT"
	KindMissedShare PaymentKind = "MISSED_SHARE"
)

// PaymentRecord is one entry in a member's derived payment timeline.
type PaymentRecord struct {
	Kind      PaymentKind
	Status    PaymentStatus
	RefID     string // ID of the expense, bill or settlement behind the record
	Amount    float64
	Date      time.Time
	DelayDays int // days past due, zero for on-time and undated records
}

// MonthlyBehavior counts punctual versus problematic records in one
// calendar month, keyed YYYY-MM. Missed shares count into Late.
type MonthlyBehavior struct {
	Month  string
	OnTime int
	Late   int
}

// MemberReliabilityScore is the derived 0-100 payment-reliability view for
// one member. Computed, consumed, discarded; never stored.
type MemberReliabilityScore struct {
	MemberID            string
	Score               int
	Status              ReliabilityStatus
	Health              string // secondary label, e.g. "always on time"
	OnTimePayments      int
	LatePayments        int
	MissedPayments      int
	AverageDelayDays    float64 // mean delay over late bill payments only
	LongestOnTimeStreak int
	PaymentHistory      []PaymentRecord
	MonthlyBehavior     []MonthlyBehavior
	Issues              []string
}
