package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/matchwise/backend/pkg/validator"
)

// ProfileService handles viewing and editing a user's own profile.
type ProfileService struct {
	users UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(users UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// View returns the caller's own record.
func (s *ProfileService) View(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

// Edit applies the allow-listed profile fields. Free-text fields are
// stripped of HTML before persisting; field values are validated against the
// same bounds enforced at signup.
func (s *ProfileService) Edit(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*User, error) {
	if params.FirstName != nil {
		name := validator.SanitizeString(*params.FirstName, 200)
		if len(name) < 2 {
			return nil, ErrValidation
		}
		params.FirstName = &name
	}
	if params.LastName != nil {
		name := validator.SanitizeString(*params.LastName, 200)
		params.LastName = &name
	}
	if params.Email != nil {
		email := validator.SanitizeEmail(*params.Email)
		if !validator.ValidateEmail(email) {
			return nil, ErrValidation
		}
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUserAlreadyExists
		}
		params.Email = &email
	}
	if params.Age != nil && *params.Age < MinAge {
		return nil, ErrValidation
	}
	if params.Bio != nil {
		bio := validator.SanitizeText(*params.Bio, 500)
		params.Bio = &bio
	}
	for i, v := range params.Interests {
		params.Interests[i] = validator.SanitizeText(v, 100)
	}
	for i, v := range params.Languages {
		params.Languages[i] = validator.SanitizeText(v, 100)
	}

	return s.users.Update(ctx, userID, params)
}
