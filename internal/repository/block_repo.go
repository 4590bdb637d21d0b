package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matchwise/backend/internal/domain"
)

// BlockRepository implements domain.BlockRegistry over PostgreSQL. Entries
// are stored directionally; the unique index on the normalized pair rejects
// a second entry in either direction, matching the workflow's duplicate
// check.
type BlockRepository struct {
	db *pgxpool.Pool
}

// NewBlockRepository creates a new block registry.
func NewBlockRepository(db *pgxpool.Pool) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create inserts a block entry. A unique violation maps to ErrDuplicateBlock.
func (r *BlockRepository) Create(ctx context.Context, blockedBy, blocked uuid.UUID) (*domain.BlockListEntry, error) {
	query := `
		INSERT INTO block_list (blocked_by_user_id, blocked_user_id)
		VALUES ($1, $2)
		RETURNING id, blocked_by_user_id, blocked_user_id, created_at
	`

	var entry domain.BlockListEntry
	err := r.db.QueryRow(ctx, query, blockedBy, blocked).Scan(
		&entry.ID,
		&entry.BlockedByUserID,
		&entry.BlockedUserID,
		&entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateBlock
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// IsBlocked reports whether a block entry exists between a and b in either
// direction.
func (r *BlockRepository) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM block_list
			WHERE (blocked_by_user_id = $1 AND blocked_user_id = $2)
			   OR (blocked_by_user_id = $2 AND blocked_user_id = $1)
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, a, b).Scan(&exists)
	return exists, err
}

// BlockedWith returns the counterpart IDs of every block entry involving
// userID on either side.
func (r *BlockRepository) BlockedWith(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT CASE WHEN blocked_by_user_id = $1 THEN blocked_user_id ELSE blocked_by_user_id END
		FROM block_list
		WHERE blocked_by_user_id = $1 OR blocked_user_id = $1
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
