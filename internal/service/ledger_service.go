// Package service orchestrates storage and the calculator. It owns the
// business-rule validation that the calculator deliberately does not do:
// the calculator absorbs anomalous input, the service rejects it at the
// door.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/calculator"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/metrics"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage"
)

// ErrInvalidInput marks validation failures; handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

// LedgerService exposes entity CRUD plus the three derived ledger views.
// The derived views are recomputed from the raw entity lists on every call;
// there is no caching, which is the consistency mechanism at household
// scale.
type LedgerService struct {
	store storage.Store
	now   func() time.Time
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store, now: time.Now}
}

// AddMember validates and persists a new member. A zero weight takes the
// default; negative weights are rejected.
func (s *LedgerService) AddMember(ctx context.Context, member *models.Member) error {
	if member.FlatID == "" {
		return fmt.Errorf("%w: flat id is required", ErrInvalidInput)
	}
	if member.Name == "" {
		return fmt.Errorf("%w: member name is required", ErrInvalidInput)
	}
	if member.Weight < 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	return s.store.CreateMember(ctx, member)
}

// Members lists all members of a flat.
func (s *LedgerService) Members(ctx context.Context, flatID string) ([]models.Member, error) {
	return s.store.ListMembers(ctx, flatID)
}

// UpdateMember validates and applies member changes.
func (s *LedgerService) UpdateMember(ctx context.Context, member *models.Member) error {
	if member.Name == "" {
		return fmt.Errorf("%w: member name is required", ErrInvalidInput)
	}
	if member.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	return s.store.UpdateMember(ctx, member)
}

// AddExpense validates and persists a new shared expense.
func (s *LedgerService) AddExpense(ctx context.Context, expense *models.Expense) error {
	if expense.FlatID == "" {
		return fmt.Errorf("%w: flat id is required", ErrInvalidInput)
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if expense.PaidBy == "" {
		return fmt.Errorf("%w: payer is required", ErrInvalidInput)
	}
	if len(expense.Participants) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if expense.Category == "" {
		expense.Category = models.CategoryOther
	}
	if !expense.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, expense.Category)
	}
	return s.store.CreateExpense(ctx, expense)
}

// Expenses lists all expenses of a flat.
func (s *LedgerService) Expenses(ctx context.Context, flatID string) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx, flatID)
}

// DeleteExpense removes an expense.
func (s *LedgerService) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.store.DeleteExpense(ctx, expenseID)
}

// AddBill validates and persists a new recurring bill. An empty split type
// defaults to EQUAL.
func (s *LedgerService) AddBill(ctx context.Context, bill *models.Bill) error {
	if bill.FlatID == "" {
		return fmt.Errorf("%w: flat id is required", ErrInvalidInput)
	}
	if bill.Name == "" {
		return fmt.Errorf("%w: bill name is required", ErrInvalidInput)
	}
	if bill.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if bill.DueDay < 1 || bill.DueDay > 31 {
		return fmt.Errorf("%w: due day must be between 1 and 31", ErrInvalidInput)
	}
	if bill.SplitType == "" {
		bill.SplitType = models.SplitEqual
	}
	if !bill.SplitType.Valid() {
		return fmt.Errorf("%w: unknown split type %q", ErrInvalidInput, bill.SplitType)
	}
	return s.store.CreateBill(ctx, bill)
}

// Bills lists all bills of a flat.
func (s *LedgerService) Bills(ctx context.Context, flatID string) ([]models.Bill, error) {
	return s.store.ListBills(ctx, flatID)
}

// UpdateBill validates and applies bill changes.
func (s *LedgerService) UpdateBill(ctx context.Context, bill *models.Bill) error {
	if bill.Name == "" {
		return fmt.Errorf("%w: bill name is required", ErrInvalidInput)
	}
	if bill.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if bill.DueDay < 1 || bill.DueDay > 31 {
		return fmt.Errorf("%w: due day must be between 1 and 31", ErrInvalidInput)
	}
	if !bill.SplitType.Valid() {
		return fmt.Errorf("%w: unknown split type %q", ErrInvalidInput, bill.SplitType)
	}
	return s.store.UpdateBill(ctx, bill)
}

// RecordBillPayment validates that the bill exists in the payment's flat
// and persists the payment.
func (s *LedgerService) RecordBillPayment(ctx context.Context, payment *models.BillPayment) error {
	if payment.FlatID == "" {
		return fmt.Errorf("%w: flat id is required", ErrInvalidInput)
	}
	if payment.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if payment.PaidBy == "" {
		return fmt.Errorf("%w: payer is required", ErrInvalidInput)
	}

	bills, err := s.store.ListBills(ctx, payment.FlatID)
	if err != nil {
		return err
	}
	found := false
	for _, b := range bills {
		if b.ID == payment.BillID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("bill %s: %w", payment.BillID, storage.ErrNotFound)
	}
	return s.store.CreateBillPayment(ctx, payment)
}

// BillPayments lists all bill payments of a flat.
func (s *LedgerService) BillPayments(ctx context.Context, flatID string) ([]models.BillPayment, error) {
	return s.store.ListBillPayments(ctx, flatID)
}

// RecordSettlement validates and persists a peer-to-peer settlement.
func (s *LedgerService) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.FlatID == "" {
		return fmt.Errorf("%w: flat id is required", ErrInvalidInput)
	}
	if settlement.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if settlement.FromMemberID == "" || settlement.ToMemberID == "" {
		return fmt.Errorf("%w: both members are required", ErrInvalidInput)
	}
	if settlement.FromMemberID == settlement.ToMemberID {
		return fmt.Errorf("%w: cannot settle with yourself", ErrInvalidInput)
	}
	return s.store.CreateSettlement(ctx, settlement)
}

// Settlements lists all settlements of a flat.
func (s *LedgerService) Settlements(ctx context.Context, flatID string) ([]models.Settlement, error) {
	return s.store.ListSettlements(ctx, flatID)
}

// DeleteSettlement removes a settlement.
func (s *LedgerService) DeleteSettlement(ctx context.Context, settlementID string) error {
	return s.store.DeleteSettlement(ctx, settlementID)
}

// Balances recomputes the net balance of every member of a flat.
func (s *LedgerService) Balances(ctx context.Context, flatID string) ([]models.MemberBalance, error) {
	members, expenses, bills, payments, settlements, err := s.loadEntities(ctx, flatID)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(metrics.ComputeDuration.WithLabelValues("balances"))
	defer timer.ObserveDuration()
	return calculator.CalculateMemberBalances(members, expenses, bills, payments, settlements), nil
}

// SimplifiedDebts recomputes balances and collapses them into a minimal
// settlement plan.
func (s *LedgerService) SimplifiedDebts(ctx context.Context, flatID string) ([]models.SimplifiedDebt, error) {
	balances, err := s.Balances(ctx, flatID)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(metrics.ComputeDuration.WithLabelValues("debts"))
	defer timer.ObserveDuration()
	return calculator.SimplifyDebts(balances), nil
}

// ReliabilityScores recomputes the payment-reliability view for every
// member of a flat.
func (s *LedgerService) ReliabilityScores(ctx context.Context, flatID string) ([]models.MemberReliabilityScore, error) {
	members, expenses, bills, payments, settlements, err := s.loadEntities(ctx, flatID)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(metrics.ComputeDuration.WithLabelValues("reliability"))
	defer timer.ObserveDuration()
	return calculator.CalculateReliabilityScores(members, expenses, payments, settlements, bills, s.now()), nil
}

// UpcomingBill pairs an active bill with its next due date and unpaid
// remainder for dashboard display.
type UpcomingBill struct {
	Bill      models.Bill
	NextDue   time.Time
	Remaining float64
}

// UpcomingBills returns every active bill of a flat with its next due date,
// soonest first.
func (s *LedgerService) UpcomingBills(ctx context.Context, flatID string) ([]UpcomingBill, error) {
	bills, err := s.store.ListBills(ctx, flatID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListBillPayments(ctx, flatID)
	if err != nil {
		return nil, err
	}

	paidByBill := make(map[string]float64, len(payments))
	for _, p := range payments {
		paidByBill[p.BillID] += p.Amount
	}

	now := s.now()
	var upcoming []UpcomingBill
	for _, b := range bills {
		if !b.IsActive {
			continue
		}
		remaining := b.Amount - paidByBill[b.ID]
		if remaining < 0 {
			remaining = 0
		}
		upcoming = append(upcoming, UpcomingBill{
			Bill:      b,
			NextDue:   calculator.NextDueDate(b.DueDay, now),
			Remaining: remaining,
		})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextDue.Before(upcoming[j].NextDue)
	})
	return upcoming, nil
}

func (s *LedgerService) loadEntities(ctx context.Context, flatID string) (
	[]models.Member, []models.Expense, []models.Bill, []models.BillPayment, []models.Settlement, error,
) {
	members, err := s.store.ListMembers(ctx, flatID)
	if err != nil {
		slog.Error("failed to load members", "flat_id", flatID, "error", err)
		return nil, nil, nil, nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, flatID)
	if err != nil {
		slog.Error("failed to load expenses", "flat_id", flatID, "error", err)
		return nil, nil, nil, nil, nil, err
	}
	bills, err := s.store.ListBills(ctx, flatID)
	if err != nil {
		slog.Error("failed to load bills", "flat_id", flatID, "error", err)
		return nil, nil, nil, nil, nil, err
	}
	payments, err := s.store.ListBillPayments(ctx, flatID)
	if err != nil {
		slog.Error("failed to load bill payments", "flat_id", flatID, "error", err)
		return nil, nil, nil, nil, nil, err
	}
	settlements, err := s.store.ListSettlements(ctx, flatID)
	if err != nil {
		slog.Error("failed to load settlements", "flat_id", flatID, "error", err)
		return nil, nil, nil, nil, nil, err
	}
	return members, expenses, bills, payments, settlements, nil
}
