package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/matchwise/backend/internal/domain"
	"github.com/matchwise/backend/internal/middleware"
	"github.com/matchwise/backend/pkg/response"
	"go.uber.org/zap"
)

// RequestHandler exposes the connection request workflow.
type RequestHandler struct {
	connService *domain.ConnectionService
	logger      *zap.Logger
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(connService *domain.ConnectionService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		connService: connService,
		logger:      logger,
	}
}

func callerAndParam(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, uuid.UUID, bool) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		response.BadRequest(w, "invalid "+param)
		return uuid.Nil, uuid.Nil, false
	}
	return callerID, id, true
}

// SendInterest handles POST /request/send/interested/{toUserId}.
func (h *RequestHandler) SendInterest(w http.ResponseWriter, r *http.Request) {
	callerID, toUserID, ok := callerAndParam(w, r, "toUserId")
	if !ok {
		return
	}

	req, err := h.connService.SendInterest(r.Context(), callerID, toUserID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "interest request sent", req)
}

// SendIgnore handles POST /request/send/ignored/{toUserId}.
func (h *RequestHandler) SendIgnore(w http.ResponseWriter, r *http.Request) {
	callerID, toUserID, ok := callerAndParam(w, r, "toUserId")
	if !ok {
		return
	}

	req, err := h.connService.SendIgnore(r.Context(), callerID, toUserID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "request ignored", req)
}

// Accept handles POST /request/review/accepted/{requestId}.
func (h *RequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	callerID, requestID, ok := callerAndParam(w, r, "requestId")
	if !ok {
		return
	}

	req, err := h.connService.Accept(r.Context(), requestID, callerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "request accepted", req)
}

// Reject handles POST /request/review/rejected/{requestId}.
func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	callerID, requestID, ok := callerAndParam(w, r, "requestId")
	if !ok {
		return
	}

	req, err := h.connService.Reject(r.Context(), requestID, callerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "request rejected", req)
}

// Block handles POST /request/block/{toUserId}.
func (h *RequestHandler) Block(w http.ResponseWriter, r *http.Request) {
	callerID, toUserID, ok := callerAndParam(w, r, "toUserId")
	if !ok {
		return
	}

	entry, err := h.connService.Block(r.Context(), callerID, toUserID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.Created(w, "user blocked successfully", entry)
}
