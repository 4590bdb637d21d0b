package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gender values accepted at signup.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the accepted gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// MinAge is the minimum age accepted at signup.
const MinAge = 18

// User is the full identity record. PasswordHash never leaves the domain
// layer; serialization always goes through Profile or a handler-local view.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Age          int       `json:"age"`
	Gender       Gender    `json:"gender"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	Interests    []string  `json:"interests"`
	Languages    []string  `json:"languages"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the public projection of a User, the only shape other users
// ever see. It deliberately omits email and credentials.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	Bio       string    `json:"bio"`
	Interests []string  `json:"interests"`
	Languages []string  `json:"languages"`
}

// ToProfile projects a User to its public fields.
func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Gender:    u.Gender,
		Bio:       u.Bio,
		Interests: u.Interests,
		Languages: u.Languages,
	}
}

// CreateUserParams holds parameters for user creation.
type CreateUserParams struct {
	Email        string
	FirstName    string
	LastName     string
	Age          int
	Gender       Gender
	PasswordHash string
	Bio          string
	Interests    []string
	Languages    []string
}

// UpdateProfileParams holds the editable profile fields. Nil means "leave
// unchanged"; the allow-list itself is enforced by ProfileService.
type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	Age       *int
	Bio       *string
	Interests []string
	Languages []string
}

// UserRepository defines identity-store access.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// ListExcluding returns all users whose ID is not in exclude, in store
	// iteration order.
	ListExcluding(ctx context.Context, exclude []uuid.UUID) ([]*User, error)
}

// RefreshToken is a stored, hashed refresh credential.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// CreateRefreshTokenParams holds parameters for refresh token persistence.
type CreateRefreshTokenParams struct {
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
}

// RefreshTokenStore persists refresh tokens (hashed, never plaintext).
type RefreshTokenStore interface {
	CreateRefreshToken(ctx context.Context, params CreateRefreshTokenParams) (*RefreshToken, error)
	// GetRefreshTokenByHash returns a live (unrevoked, unexpired) token or
	// ErrTokenRevoked.
	GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error)
	RevokeRefreshTokenByHash(ctx context.Context, hash string) error
	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

// TokenRevoker is the denylist consulted for access tokens after logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}
