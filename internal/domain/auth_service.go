package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/matchwise/backend/internal/auth"
)

// AuthService handles signup, login, token refresh, logout and password
// changes. It consumes the identity store, the refresh token store and the
// access-token revocation list; resolved caller identity is always passed in
// explicitly by the HTTP layer.
type AuthService struct {
	users   UserRepository
	tokens  RefreshTokenStore
	revoker TokenRevoker
	jwt     *auth.JWTManager
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserRepository, tokens RefreshTokenStore, revoker TokenRevoker, jwt *auth.JWTManager) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
		jwt:     jwt,
	}
}

// SignupParams holds the fields accepted at account creation. Field-level
// validation happens at the HTTP boundary; the service owns the duplicate
// email check and credential hashing.
type SignupParams struct {
	Email     string
	FirstName string
	LastName  string
	Age       int
	Gender    Gender
	Password  string
	Bio       string
	Interests []string
	Languages []string
}

// AuthResult is returned by Signup, Login and Refresh.
type AuthResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Signup creates a new account and issues a token pair.
func (s *AuthService) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, CreateUserParams{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Age:          params.Age,
		Gender:       params.Gender,
		PasswordHash: passwordHash,
		Bio:          params.Bio,
		Interests:    params.Interests,
		Languages:    params.Languages,
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates with email and password. Lookup failure and password
// mismatch both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A token that does not resolve to a live stored hash is
// rejected with ErrTokenRevoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	hash := auth.HashToken(refreshToken)
	stored, err := s.tokens.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.RevokeRefreshTokenByHash(ctx, stored.TokenHash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token and denylists the access token for its
// remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if refreshToken != "" {
		if err := s.tokens.RevokeRefreshTokenByHash(ctx, auth.HashToken(refreshToken)); err != nil {
			return err
		}
	}

	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		// Expired or malformed tokens need no denylist entry.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, auth.HashToken(accessToken), ttl)
}

// ChangePassword verifies the current password, stores a new hash and
// revokes all outstanding refresh tokens for the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := auth.VerifyPassword(current, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.tokens.RevokeUserRefreshTokens(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *User) (*AuthResult, error) {
	pair, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	_, err = s.tokens.CreateRefreshToken(ctx, CreateRefreshTokenParams{
		UserID:    user.ID,
		TokenHash: auth.HashToken(pair.RefreshToken),
		ExpiresAt: pair.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
