package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConnectionStatus is the lifecycle state of a connection request.
//
// interested and ignored are the two creation-time states. interested may
// transition to accepted or rejected, by the recipient only. accepted,
// rejected and ignored are terminal.
type ConnectionStatus string

const (
	StatusInterested ConnectionStatus = "interested"
	StatusIgnored    ConnectionStatus = "ignored"
	StatusAccepted   ConnectionStatus = "accepted"
	StatusRejected   ConnectionStatus = "rejected"
)

// Valid reports whether s is a known connection status.
func (s ConnectionStatus) Valid() bool {
	switch s {
	case StatusInterested, StatusIgnored, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ConnectionRequest is a directed edge between two distinct users. At most
// one edge may exist per unordered user pair; the store enforces this with a
// unique index on the normalized pair.
type ConnectionRequest struct {
	ID         uuid.UUID        `json:"id"`
	FromUserID uuid.UUID        `json:"from_user_id"`
	ToUserID   uuid.UUID        `json:"to_user_id"`
	Status     ConnectionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Counterpart is filled in for API responses that resolve the other
	// user of the edge.
	Counterpart *Profile `json:"user,omitempty"`
}

// Direction selects which side of an edge a user must be on in ledger
// queries.
type Direction int

const (
	DirectionOutgoing Direction = iota // from_user_id = user
	DirectionIncoming                  // to_user_id = user
	DirectionEither
)

// ConnectionLedger is the storage facade for connection requests. No
// business rules live here; invariant enforcement is in ConnectionService,
// except for pair uniqueness which the store guarantees (Create returns
// ErrDuplicateRequest on a constraint violation).
type ConnectionLedger interface {
	Create(ctx context.Context, from, to uuid.UUID, status ConnectionStatus) (*ConnectionRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ConnectionRequest, error)
	// FindBetween returns the edge between a and b in either direction, or
	// ErrRequestNotFound.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*ConnectionRequest, error)
	FindByStatus(ctx context.Context, userID uuid.UUID, status ConnectionStatus, dir Direction) ([]*ConnectionRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ConnectionStatus) (*ConnectionRequest, error)
	// CounterpartIDs returns the IDs of users sharing an edge with userID,
	// in either direction, restricted to the given statuses.
	CounterpartIDs(ctx context.Context, userID uuid.UUID, statuses ...ConnectionStatus) ([]uuid.UUID, error)
}
