package domain

import (
	"context"

	"github.com/google/uuid"
)

// FeedService computes, for a given user, the set of other users eligible to
// appear in their discovery feed, and resolves a user's connections and
// pending requests to counterpart profiles. All operations are read-only.
type FeedService struct {
	users  UserRepository
	ledger ConnectionLedger
	blocks BlockRegistry
}

// NewFeedService creates a new feed service.
func NewFeedService(users UserRepository, ledger ConnectionLedger, blocks BlockRegistry) *FeedService {
	return &FeedService{
		users:  users,
		ledger: ledger,
		blocks: blocks,
	}
}

// ComputeFeed returns the public profiles of every user not excluded for the
// viewer. Excluded are: the viewer, users blocked in either direction, and
// users sharing an interested or accepted edge with the viewer in either
// direction. No ordering guarantee beyond store iteration order.
func (s *FeedService) ComputeFeed(ctx context.Context, viewerID uuid.UUID) ([]*Profile, error) {
	// Upstream auth should make this impossible, but a stale token can
	// reference a user that no longer resolves.
	exists, err := s.users.Exists(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	blockedWith, err := s.blocks.BlockedWith(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	connected, err := s.ledger.CounterpartIDs(ctx, viewerID, StatusInterested, StatusAccepted)
	if err != nil {
		return nil, err
	}

	exclude := make([]uuid.UUID, 0, len(blockedWith)+len(connected)+1)
	exclude = append(exclude, viewerID)
	seen := map[uuid.UUID]struct{}{viewerID: {}}
	for _, id := range blockedWith {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			exclude = append(exclude, id)
		}
	}
	for _, id := range connected {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			exclude = append(exclude, id)
		}
	}

	candidates, err := s.users.ListExcluding(ctx, exclude)
	if err != nil {
		return nil, err
	}

	profiles := make([]*Profile, 0, len(candidates))
	for _, u := range candidates {
		profiles = append(profiles, u.ToProfile())
	}
	return profiles, nil
}

// Connections returns the user's accepted edges, each resolved to the
// counterpart's public profile.
func (s *FeedService) Connections(ctx context.Context, userID uuid.UUID) ([]*ConnectionRequest, error) {
	edges, err := s.ledger.FindByStatus(ctx, userID, StatusAccepted, DirectionEither)
	if err != nil {
		return nil, err
	}
	return s.resolveCounterparts(ctx, userID, edges)
}

// PendingRequests returns interested edges where the user is the recipient,
// each resolved to the sender's public profile.
func (s *FeedService) PendingRequests(ctx context.Context, userID uuid.UUID) ([]*ConnectionRequest, error) {
	edges, err := s.ledger.FindByStatus(ctx, userID, StatusInterested, DirectionIncoming)
	if err != nil {
		return nil, err
	}
	return s.resolveCounterparts(ctx, userID, edges)
}

// resolveCounterparts attaches the other party's profile to each edge.
// Edges whose counterpart no longer resolves are skipped rather than failing
// the whole listing.
func (s *FeedService) resolveCounterparts(ctx context.Context, userID uuid.UUID, edges []*ConnectionRequest) ([]*ConnectionRequest, error) {
	out := make([]*ConnectionRequest, 0, len(edges))
	for _, e := range edges {
		otherID := e.FromUserID
		if otherID == userID {
			otherID = e.ToUserID
		}
		other, err := s.users.GetByID(ctx, otherID)
		if err != nil {
			continue
		}
		resolved := *e
		resolved.Counterpart = other.ToProfile()
		out = append(out, &resolved)
	}
	return out, nil
}
