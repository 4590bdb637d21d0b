package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BlockListEntry records that one user blocked another. The entry is stored
// directionally, but every existence check considers both directions.
type BlockListEntry struct {
	ID              uuid.UUID `json:"id"`
	BlockedByUserID uuid.UUID `json:"blocked_by_user_id"`
	BlockedUserID   uuid.UUID `json:"blocked_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// BlockRegistry is the storage facade for block entries. Create returns
// ErrDuplicateBlock when an entry already exists between the pair in either
// direction (store-enforced on the normalized pair).
type BlockRegistry interface {
	Create(ctx context.Context, blockedBy, blocked uuid.UUID) (*BlockListEntry, error)
	// IsBlocked reports whether a block entry exists between a and b in
	// either direction.
	IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error)
	// BlockedWith returns the counterpart IDs of every block entry that
	// involves userID on either side.
	BlockedWith(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
