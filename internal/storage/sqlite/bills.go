package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage"
)

// CreateBill persists a new recurring bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (id, flat_id, name, amount, due_day, split_type, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.FlatID, bill.Name, bill.Amount, bill.DueDay,
		string(bill.SplitType), boolToInt(bill.IsActive), bill.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// ListBills retrieves all bills of a flat, active and inactive.
func (s *SQLiteStore) ListBills(ctx context.Context, flatID string) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flat_id, name, amount, due_day, split_type, is_active, created_at
		 FROM bills WHERE flat_id = ? ORDER BY created_at, id`,
		flatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var (
			b         models.Bill
			splitType string
			isActive  int
			createdAt int64
		)
		if err := rows.Scan(&b.ID, &b.FlatID, &b.Name, &b.Amount, &b.DueDay, &splitType, &isActive, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		b.SplitType = models.SplitType(splitType)
		b.IsActive = isActive != 0
		b.CreatedAt = time.Unix(createdAt, 0).UTC()
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// UpdateBill updates a bill's mutable fields.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET name = ?, amount = ?, due_day = ?, split_type = ?, is_active = ? WHERE id = ?`,
		bill.Name, bill.Amount, bill.DueDay, string(bill.SplitType),
		boolToInt(bill.IsActive), bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrNotFound)
	}
	return nil
}

// CreateBillPayment persists a payment against a bill.
func (s *SQLiteStore) CreateBillPayment(ctx context.Context, payment *models.BillPayment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bill_payments (id, flat_id, bill_id, paid_by, amount, paid_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.FlatID, payment.BillID, payment.PaidBy,
		payment.Amount, payment.PaidAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill payment: %w", err)
	}
	return nil
}

// ListBillPayments retrieves all bill payments of a flat.
func (s *SQLiteStore) ListBillPayments(ctx context.Context, flatID string) ([]models.BillPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flat_id, bill_id, paid_by, amount, paid_at
		 FROM bill_payments WHERE flat_id = ? ORDER BY paid_at, id`,
		flatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	defer rows.Close()

	var payments []models.BillPayment
	for rows.Next() {
		var (
			p      models.BillPayment
			paidAt int64
		)
		if err := rows.Scan(&p.ID, &p.FlatID, &p.BillID, &p.PaidBy, &p.Amount, &paidAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill payment: %w", err)
		}
		p.PaidAt = time.Unix(paidAt, 0).UTC()
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill payments: %w", err)
	}
	return payments, nil
}
