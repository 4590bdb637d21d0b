package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matchwise/backend/internal/domain"
)

const connectionColumns = `id, from_user_id, to_user_id, status, created_at, updated_at`

// ConnectionRepository implements domain.ConnectionLedger over PostgreSQL.
// The connection_requests table carries a unique index on the normalized
// user pair, so pair uniqueness holds even when two sends race past the
// service pre-check.
type ConnectionRepository struct {
	db *pgxpool.Pool
}

// NewConnectionRepository creates a new connection ledger.
func NewConnectionRepository(db *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create inserts a new edge. A unique violation on the pair index maps to
// ErrDuplicateRequest.
func (r *ConnectionRepository) Create(ctx context.Context, from, to uuid.UUID, status domain.ConnectionStatus) (*domain.ConnectionRequest, error) {
	query := `
		INSERT INTO connection_requests (from_user_id, to_user_id, status)
		VALUES ($1, $2, $3)
		RETURNING ` + connectionColumns

	row := r.db.QueryRow(ctx, query, from, to, string(status))
	req, err := scanConnection(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateRequest
		}
		return nil, err
	}
	return req, nil
}

// GetByID retrieves an edge by ID.
func (r *ConnectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ConnectionRequest, error) {
	query := `SELECT ` + connectionColumns + ` FROM connection_requests WHERE id = $1`
	return scanConnection(r.db.QueryRow(ctx, query, id))
}

// FindBetween returns the edge between a and b in either direction.
func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*domain.ConnectionRequest, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM connection_requests
		WHERE (from_user_id = $1 AND to_user_id = $2)
		   OR (from_user_id = $2 AND to_user_id = $1)
	`
	return scanConnection(r.db.QueryRow(ctx, query, a, b))
}

// FindByStatus returns the user's edges with the given status, restricted to
// the requested direction.
func (r *ConnectionRepository) FindByStatus(ctx context.Context, userID uuid.UUID, status domain.ConnectionStatus, dir domain.Direction) ([]*domain.ConnectionRequest, error) {
	var where string
	switch dir {
	case domain.DirectionOutgoing:
		where = `from_user_id = $1`
	case domain.DirectionIncoming:
		where = `to_user_id = $1`
	default:
		where = `(from_user_id = $1 OR to_user_id = $1)`
	}

	query := `SELECT ` + connectionColumns + ` FROM connection_requests WHERE ` + where + ` AND status = $2 ORDER BY updated_at DESC`
	rows, err := r.db.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.ConnectionRequest
	for rows.Next() {
		req, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateStatus persists a status transition and returns the mutated record.
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConnectionStatus) (*domain.ConnectionRequest, error) {
	query := `
		UPDATE connection_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + connectionColumns

	return scanConnection(r.db.QueryRow(ctx, query, id, string(status)))
}

// CounterpartIDs returns the IDs of users sharing an edge with userID in
// either direction, restricted to the given statuses.
func (r *ConnectionRepository) CounterpartIDs(ctx context.Context, userID uuid.UUID, statuses ...domain.ConnectionStatus) ([]uuid.UUID, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	query := `
		SELECT CASE WHEN from_user_id = $1 THEN to_user_id ELSE from_user_id END
		FROM connection_requests
		WHERE (from_user_id = $1 OR to_user_id = $1) AND status = ANY($2)
	`
	rows, err := r.db.Query(ctx, query, userID, names)
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

func scanConnection(row pgx.Row) (*domain.ConnectionRequest, error) {
	var req domain.ConnectionRequest
	var status string
	err := row.Scan(
		&req.ID,
		&req.FromUserID,
		&req.ToUserID,
		&status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	req.Status = domain.ConnectionStatus(status)
	return &req, nil
}
