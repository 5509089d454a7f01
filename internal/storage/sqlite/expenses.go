package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage"
)

// CreateExpense persists a new expense and its participant list in one
// transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, flat_id, description, amount, paid_by, date, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.FlatID, expense.Description, expense.Amount,
		expense.PaidBy, expense.Date.Unix(), string(expense.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, memberID := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, member_id) VALUES (?, ?)",
			expense.ID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses retrieves all expenses of a flat with their participants.
func (s *SQLiteStore) ListExpenses(ctx context.Context, flatID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flat_id, description, amount, paid_by, date, category
		 FROM expenses WHERE flat_id = ? ORDER BY date, id`,
		flatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e        models.Expense
			date     int64
			category string
		)
		if err := rows.Scan(&e.ID, &e.FlatID, &e.Description, &e.Amount, &e.PaidBy, &date, &category); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = time.Unix(date, 0).UTC()
		e.Category = models.ExpenseCategory(category)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		participants, err := s.expenseParticipants(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Participants = participants
	}
	return expenses, nil
}

func (s *SQLiteStore) expenseParticipants(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM expense_participants WHERE expense_id = ? ORDER BY member_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		participants = append(participants, memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}
	return participants, nil
}

// DeleteExpense removes an expense; participant rows cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}
