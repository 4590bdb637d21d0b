package api

import (
	"errors"
	"net/http"

	"github.com/matchwise/backend/internal/domain"
	"github.com/matchwise/backend/pkg/response"
	"go.uber.org/zap"
)

// respondError maps a domain error to its HTTP status. Anything outside the
// taxonomy is treated as an internal failure: logged with detail, returned
// without it.
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrSelfReference):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenRevoked):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, domain.ErrBlockedRelationship),
		errors.Is(err, domain.ErrUnauthorized):
		response.Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRequestNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrDuplicateRequest),
		errors.Is(err, domain.ErrDuplicateBlock),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrUserAlreadyExists):
		response.Conflict(w, err.Error())
	default:
		logger.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
		)
		response.InternalError(w, "internal server error")
	}
}
