package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/matchwise/backend/internal/auth"
	"github.com/matchwise/backend/internal/domain"
	"github.com/matchwise/backend/pkg/response"
	"github.com/matchwise/backend/pkg/validator"
	"go.uber.org/zap"
)

var validate = govalidator.New()

// AuthHandler handles signup, login, refresh and logout.
type AuthHandler struct {
	authService *domain.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *domain.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// SignupRequest represents the signup request body.
type SignupRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	FirstName string   `json:"first_name" validate:"required,min=2,max=200"`
	LastName  string   `json:"last_name" validate:"required,max=200"`
	Age       int      `json:"age" validate:"required,gte=18"`
	Gender    string   `json:"gender" validate:"required,oneof=Male Female Other"`
	Password  string   `json:"password" validate:"required"`
	Bio       string   `json:"bio" validate:"max=500"`
	Interests []string `json:"interests"`
	Languages []string `json:"languages"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents the logout request body.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	req.Email = validator.SanitizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}
	if errs := validator.ValidatePassword(req.Password); errs.HasErrors() {
		response.BadRequest(w, errs.Error())
		return
	}

	result, err := h.authService.Signup(r.Context(), domain.SignupParams{
		Email:     req.Email,
		FirstName: validator.SanitizeString(req.FirstName, 200),
		LastName:  validator.SanitizeString(req.LastName, 200),
		Age:       req.Age,
		Gender:    domain.Gender(req.Gender),
		Password:  req.Password,
		Bio:       validator.SanitizeText(req.Bio, 500),
		Interests: sanitizeAll(req.Interests),
		Languages: sanitizeAll(req.Languages),
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.Created(w, "account created successfully", result)
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	req.Email = validator.SanitizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid email or password")
			return
		}
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "welcome "+result.User.FirstName, result)
}

// Refresh handles POST /refresh with token rotation.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		response.BadRequest(w, "refresh_token is required")
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) {
			response.Unauthorized(w, "invalid refresh token")
			return
		}
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "token refreshed", result)
}

// Logout handles POST /logout. The access token being revoked is the one the
// caller authenticated with.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	// Body is optional; a missing refresh token still revokes the access token.
	_ = json.NewDecoder(r.Body).Decode(&req)

	accessToken := bearerToken(r)
	if err := h.authService.Logout(r.Context(), accessToken, req.RefreshToken); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}

	response.OK(w, "logged out successfully", nil)
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

func sanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := validator.SanitizeText(v, 100); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// validationMessage flattens validator.v10 field errors into one line.
func validationMessage(err error) string {
	var fieldErrs govalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request"
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, strings.ToLower(fe.Field())+" failed on '"+fe.Tag()+"'")
	}
	return strings.Join(msgs, "; ")
}
