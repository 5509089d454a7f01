package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage"
)

// CreateMember persists a new member to the database.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.Weight == 0 {
		member.Weight = models.DefaultWeight
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, flat_id, name, weight, is_active, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.FlatID, member.Name, member.Weight,
		boolToInt(member.IsActive), member.JoinedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// ListMembers retrieves all members of a flat, active and inactive, in
// insertion order.
func (s *SQLiteStore) ListMembers(ctx context.Context, flatID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flat_id, name, weight, is_active, joined_at
		 FROM members WHERE flat_id = ? ORDER BY joined_at, id`,
		flatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var (
			m        models.Member
			isActive int
			joinedAt int64
		)
		if err := rows.Scan(&m.ID, &m.FlatID, &m.Name, &m.Weight, &isActive, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.IsActive = isActive != 0
		m.JoinedAt = time.Unix(joinedAt, 0).UTC()
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMember updates a member's name, weight and active flag.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.Member) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE members SET name = ?, weight = ?, is_active = ? WHERE id = ?`,
		member.Name, member.Weight, boolToInt(member.IsActive), member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("member %s: %w", member.ID, storage.ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
