package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.SettledAt.IsZero() {
		settlement.SettledAt = time.Now()
	}

	var note interface{}
	if settlement.Note != "" {
		note = settlement.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, flat_id, from_member_id, to_member_id, amount, settled_at, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.FlatID, settlement.FromMemberID, settlement.ToMemberID,
		settlement.Amount, settlement.SettledAt.Unix(), note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// ListSettlements retrieves all settlements of a flat.
func (s *SQLiteStore) ListSettlements(ctx context.Context, flatID string) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flat_id, from_member_id, to_member_id, amount, settled_at, note
		 FROM settlements WHERE flat_id = ? ORDER BY settled_at, id`,
		flatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var (
			st        models.Settlement
			settledAt int64
			note      sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.FlatID, &st.FromMemberID, &st.ToMemberID, &st.Amount, &settledAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		st.SettledAt = time.Unix(settledAt, 0).UTC()
		if note.Valid {
			st.Note = note.String
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return nil
}
