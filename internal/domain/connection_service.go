package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ConnectionService validates and applies state transitions on connection
// requests. All invariants of the request workflow live here; the ledger and
// registry underneath are pure storage.
type ConnectionService struct {
	users  UserRepository
	ledger ConnectionLedger
	blocks BlockRegistry
}

// NewConnectionService creates a new connection service.
func NewConnectionService(users UserRepository, ledger ConnectionLedger, blocks BlockRegistry) *ConnectionService {
	return &ConnectionService{
		users:  users,
		ledger: ledger,
		blocks: blocks,
	}
}

// checkSendPreconditions runs the shared checks for creating an edge toward
// another user: target exists, not self, no existing edge between the pair
// in either direction (any status), no block between the pair.
func (s *ConnectionService) checkSendPreconditions(ctx context.Context, fromID, toID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, toID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	if fromID == toID {
		return ErrSelfReference
	}

	_, err = s.ledger.FindBetween(ctx, fromID, toID)
	if err == nil {
		return ErrDuplicateRequest
	}
	if !errors.Is(err, ErrRequestNotFound) {
		return err
	}

	blocked, err := s.blocks.IsBlocked(ctx, fromID, toID)
	if err != nil {
		return err
	}
	if blocked {
		return ErrBlockedRelationship
	}

	return nil
}

// SendInterest creates an interested edge from fromID to toID.
//
// The pre-checks leave a narrow race window between concurrent identical
// sends; the ledger's unique index on the normalized pair is authoritative
// and Create surfaces ErrDuplicateRequest when the race is lost.
func (s *ConnectionService) SendInterest(ctx context.Context, fromID, toID uuid.UUID) (*ConnectionRequest, error) {
	if err := s.checkSendPreconditions(ctx, fromID, toID); err != nil {
		return nil, err
	}
	return s.ledger.Create(ctx, fromID, toID, StatusInterested)
}

// SendIgnore creates an ignored edge from fromID to toID. Same preconditions
// as SendInterest; ignored is a terminal creation-time state.
func (s *ConnectionService) SendIgnore(ctx context.Context, fromID, toID uuid.UUID) (*ConnectionRequest, error) {
	if err := s.checkSendPreconditions(ctx, fromID, toID); err != nil {
		return nil, err
	}
	return s.ledger.Create(ctx, fromID, toID, StatusIgnored)
}

// review applies a recipient-only transition out of interested.
func (s *ConnectionService) review(ctx context.Context, requestID, actorID uuid.UUID, next ConnectionStatus) (*ConnectionRequest, error) {
	req, err := s.ledger.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// Only the recipient may review; anyone else sees the request as absent.
	if req.ToUserID != actorID {
		return nil, ErrRequestNotFound
	}

	if req.Status != StatusInterested {
		return nil, ErrInvalidState
	}

	return s.ledger.UpdateStatus(ctx, requestID, next)
}

// Accept transitions an interested request to accepted. Only the recipient
// may accept, and only from interested; this is the single transition into
// accepted.
func (s *ConnectionService) Accept(ctx context.Context, requestID, actorID uuid.UUID) (*ConnectionRequest, error) {
	return s.review(ctx, requestID, actorID, StatusAccepted)
}

// Reject transitions an interested request to rejected, recipient only.
func (s *ConnectionService) Reject(ctx context.Context, requestID, actorID uuid.UUID) (*ConnectionRequest, error) {
	return s.review(ctx, requestID, actorID, StatusRejected)
}

// Block records that fromID blocked toID. Blocking is independent of any
// connection edge between the pair; an accepted connection does not prevent
// a block.
func (s *ConnectionService) Block(ctx context.Context, fromID, toID uuid.UUID) (*BlockListEntry, error) {
	exists, err := s.users.Exists(ctx, toID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if fromID == toID {
		return nil, ErrSelfReference
	}

	blocked, err := s.blocks.IsBlocked(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrDuplicateBlock
	}

	return s.blocks.Create(ctx, fromID, toID)
}
