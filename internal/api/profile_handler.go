package api

import (
	"encoding/json"
	"net/http"

	"github.com/matchwise/backend/internal/domain"
	"github.com/matchwise/backend/internal/middleware"
	"github.com/matchwise/backend/pkg/response"
	"github.com/matchwise/backend/pkg/validator"
	"go.uber.org/zap"
)

// editAllowedFields is the closed set of keys accepted by PATCH
// /profile/edit. Any other key fails the whole request.
var editAllowedFields = map[string]struct{}{
	"first_name": {},
	"last_name":  {},
	"email":      {},
	"age":        {},
	"bio":        {},
	"interests":  {},
	"languages":  {},
}

// ProfileHandler handles the caller's own profile.
type ProfileHandler struct {
	profileService *domain.ProfileService
	authService    *domain.AuthService
	logger         *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService *domain.ProfileService, authService *domain.AuthService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
		logger:         logger,
	}
}

// View handles GET /profile/view.
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	user, err := h.profileService.View(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "profile fetched", user)
}

// EditRequest represents the profile edit body. Pointers distinguish "not
// sent" from zero values.
type EditRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Email     *string  `json:"email"`
	Age       *int     `json:"age"`
	Bio       *string  `json:"bio"`
	Interests []string `json:"interests"`
	Languages []string `json:"languages"`
}

// Edit handles PATCH /profile/edit. Only allow-listed fields may appear in
// the body.
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	for field := range raw {
		if _, allowed := editAllowedFields[field]; !allowed {
			response.BadRequest(w, "field not editable: "+field)
			return
		}
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	var req EditRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.profileService.Edit(r.Context(), userID, domain.UpdateProfileParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
		Bio:       req.Bio,
		Interests: req.Interests,
		Languages: req.Languages,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "profile updated successfully", user)
}

// ChangePasswordRequest represents the password change body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// ChangePassword handles PATCH /profile/password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}
	if errs := validator.ValidatePassword(req.NewPassword); errs.HasErrors() {
		response.BadRequest(w, errs.Error())
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "password updated successfully", nil)
}
