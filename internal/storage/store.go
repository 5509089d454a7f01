// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every List method returns entities scoped to a single flat, which is the
// contract the calculator package relies on: it never filters by flat
// itself and never validates referential integrity.
type Store interface {
	// CreateMember persists a new member, populating ID if unset.
	CreateMember(ctx context.Context, member *models.Member) error

	// ListMembers retrieves all members of a flat, active and inactive.
	ListMembers(ctx context.Context, flatID string) ([]models.Member, error)

	// UpdateMember updates a member's name, weight and active flag.
	UpdateMember(ctx context.Context, member *models.Member) error

	// CreateExpense persists a new expense and its participant list.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses retrieves all expenses of a flat.
	ListExpenses(ctx context.Context, flatID string) ([]models.Expense, error)

	// DeleteExpense removes an expense and its participant rows.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateBill persists a new recurring bill.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// ListBills retrieves all bills of a flat, active and inactive.
	ListBills(ctx context.Context, flatID string) ([]models.Bill, error)

	// UpdateBill updates a bill's name, amount, due day, split type and
	// active flag.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// CreateBillPayment persists a payment against a bill.
	CreateBillPayment(ctx context.Context, payment *models.BillPayment) error

	// ListBillPayments retrieves all bill payments of a flat.
	ListBillPayments(ctx context.Context, flatID string) ([]models.BillPayment, error)

	// CreateSettlement persists a peer-to-peer settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements retrieves all settlements of a flat.
	ListSettlements(ctx context.Context, flatID string) ([]models.Settlement, error)

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
