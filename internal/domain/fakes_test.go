package domain_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matchwise/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

// In-memory stores backing the service tests. They mirror the SQL schema's
// guarantees: the ledger and registry enforce uniqueness on the normalized
// user pair at insert time, so tests exercise the constraint path and not
// only the service pre-checks.

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]*domain.User)}
}

func (m *memUsers) Create(_ context.Context, params domain.CreateUserParams) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == params.Email {
			return nil, domain.ErrUserAlreadyExists
		}
	}
	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Age:          params.Age,
		Gender:       params.Gender,
		PasswordHash: params.PasswordHash,
		Bio:          params.Bio,
		Interests:    params.Interests,
		Languages:    params.Languages,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) Update(_ context.Context, id uuid.UUID, params domain.UpdateProfileParams) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Age != nil {
		user.Age = *params.Age
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}
	if params.Interests != nil {
		user.Interests = params.Interests
	}
	if params.Languages != nil {
		user.Languages = params.Languages
	}
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (m *memUsers) ListExcluding(_ context.Context, exclude []uuid.UUID) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	excluded := make(map[uuid.UUID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	var out []*domain.User
	for _, u := range m.users {
		if _, skip := excluded[u.ID]; skip {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func pairKey(a, b uuid.UUID) string {
	x, y := a.String(), b.String()
	if strings.Compare(x, y) > 0 {
		x, y = y, x
	}
	return x + "|" + y
}

type memLedger struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*domain.ConnectionRequest
	byPair map[string]uuid.UUID
}

func newMemLedger() *memLedger {
	return &memLedger{
		byID:   make(map[uuid.UUID]*domain.ConnectionRequest),
		byPair: make(map[string]uuid.UUID),
	}
}

func (m *memLedger) Create(_ context.Context, from, to uuid.UUID, status domain.ConnectionStatus) (*domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(from, to)
	if _, exists := m.byPair[key]; exists {
		return nil, domain.ErrDuplicateRequest
	}
	now := time.Now()
	req := &domain.ConnectionRequest{
		ID:         uuid.New(),
		FromUserID: from,
		ToUserID:   to,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.byID[req.ID] = req
	m.byPair[key] = req.ID
	return copyRequest(req), nil
}

func (m *memLedger) GetByID(_ context.Context, id uuid.UUID) (*domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return copyRequest(req), nil
}

func (m *memLedger) FindBetween(_ context.Context, a, b uuid.UUID) (*domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byPair[pairKey(a, b)]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return copyRequest(m.byID[id]), nil
}

func (m *memLedger) FindByStatus(_ context.Context, userID uuid.UUID, status domain.ConnectionStatus, dir domain.Direction) ([]*domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ConnectionRequest
	for _, req := range m.byID {
		if req.Status != status {
			continue
		}
		var match bool
		switch dir {
		case domain.DirectionOutgoing:
			match = req.FromUserID == userID
		case domain.DirectionIncoming:
			match = req.ToUserID == userID
		default:
			match = req.FromUserID == userID || req.ToUserID == userID
		}
		if match {
			out = append(out, copyRequest(req))
		}
	}
	return out, nil
}

func (m *memLedger) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ConnectionStatus) (*domain.ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return copyRequest(req), nil
}

func (m *memLedger) CounterpartIDs(_ context.Context, userID uuid.UUID, statuses ...domain.ConnectionStatus) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[domain.ConnectionStatus]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}
	var ids []uuid.UUID
	for _, req := range m.byID {
		if _, ok := wanted[req.Status]; !ok {
			continue
		}
		switch userID {
		case req.FromUserID:
			ids = append(ids, req.ToUserID)
		case req.ToUserID:
			ids = append(ids, req.FromUserID)
		}
	}
	return ids, nil
}

func copyRequest(req *domain.ConnectionRequest) *domain.ConnectionRequest {
	copied := *req
	return &copied
}

type memBlocks struct {
	mu      sync.Mutex
	entries map[string]*domain.BlockListEntry
}

func newMemBlocks() *memBlocks {
	return &memBlocks{entries: make(map[string]*domain.BlockListEntry)}
}

func (m *memBlocks) Create(_ context.Context, blockedBy, blocked uuid.UUID) (*domain.BlockListEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(blockedBy, blocked)
	if _, exists := m.entries[key]; exists {
		return nil, domain.ErrDuplicateBlock
	}
	entry := &domain.BlockListEntry{
		ID:              uuid.New(),
		BlockedByUserID: blockedBy,
		BlockedUserID:   blocked,
		CreatedAt:       time.Now(),
	}
	m.entries[key] = entry
	copied := *entry
	return &copied, nil
}

func (m *memBlocks) IsBlocked(_ context.Context, a, b uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[pairKey(a, b)]
	return ok, nil
}

func (m *memBlocks) BlockedWith(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uuid.UUID
	for _, e := range m.entries {
		switch userID {
		case e.BlockedByUserID:
			ids = append(ids, e.BlockedUserID)
		case e.BlockedUserID:
			ids = append(ids, e.BlockedByUserID)
		}
	}
	return ids, nil
}

type memTokens struct {
	mu     sync.Mutex
	byHash map[string]*domain.RefreshToken
}

func newMemTokens() *memTokens {
	return &memTokens{byHash: make(map[string]*domain.RefreshToken)}
}

func (m *memTokens) CreateRefreshToken(_ context.Context, params domain.CreateRefreshTokenParams) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    params.UserID,
		TokenHash: params.TokenHash,
		ExpiresAt: params.ExpiresAt,
		CreatedAt: time.Now(),
	}
	m.byHash[token.TokenHash] = token
	copied := *token
	return &copied, nil
}

func (m *memTokens) GetRefreshTokenByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.byHash[hash]
	if !ok || token.Revoked || time.Now().After(token.ExpiresAt) {
		return nil, domain.ErrTokenRevoked
	}
	copied := *token
	return &copied, nil
}

func (m *memTokens) RevokeRefreshTokenByHash(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token, ok := m.byHash[hash]; ok {
		token.Revoked = true
	}
	return nil
}

func (m *memTokens) RevokeUserRefreshTokens(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, token := range m.byHash {
		if token.UserID == userID {
			token.Revoked = true
		}
	}
	return nil
}

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: make(map[string]struct{})}
}

func (m *memRevoker) Revoke(_ context.Context, tokenHash string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenHash] = struct{}{}
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, tokenHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenHash]
	return ok, nil
}

// fixture bundles the fakes and the services under test.
type fixture struct {
	users   *memUsers
	ledger  *memLedger
	blocks  *memBlocks
	conns   *domain.ConnectionService
	feed    *domain.FeedService
	profile *domain.ProfileService
}

func newFixture() *fixture {
	users := newMemUsers()
	ledger := newMemLedger()
	blocks := newMemBlocks()
	return &fixture{
		users:   users,
		ledger:  ledger,
		blocks:  blocks,
		conns:   domain.NewConnectionService(users, ledger, blocks),
		feed:    domain.NewFeedService(users, ledger, blocks),
		profile: domain.NewProfileService(users),
	}
}

func (f *fixture) addUser(t *testing.T, firstName string) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), domain.CreateUserParams{
		Email:        strings.ToLower(firstName) + "@test.com",
		FirstName:    firstName,
		LastName:     "Tester",
		Age:          25,
		Gender:       domain.GenderOther,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user
}

func profileIDs(profiles []*domain.Profile) []string {
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID.String())
	}
	sort.Strings(ids)
	return ids
}
