package api

import (
	"net/http"

	"github.com/matchwise/backend/internal/domain"
	"github.com/matchwise/backend/internal/middleware"
	"github.com/matchwise/backend/pkg/response"
	"go.uber.org/zap"
)

// UserHandler exposes discovery and relationship listings.
type UserHandler struct {
	feedService *domain.FeedService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(feedService *domain.FeedService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		feedService: feedService,
		logger:      logger,
	}
}

// FeedResponse is the body of GET /user/feed.
type FeedResponse struct {
	Users []*domain.Profile `json:"users"`
	Total int               `json:"total"`
}

// Feed handles GET /user/feed.
func (h *UserHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	profiles, err := h.feedService.ComputeFeed(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "user feed fetched", FeedResponse{
		Users: profiles,
		Total: len(profiles),
	})
}

// Connections handles GET /user/connections.
func (h *UserHandler) Connections(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	connections, err := h.feedService.Connections(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "user connections fetched", map[string]interface{}{
		"connections": connections,
	})
}

// Requests handles GET /user/requests.
func (h *UserHandler) Requests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	requests, err := h.feedService.PendingRequests(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response.OK(w, "user requests fetched", map[string]interface{}{
		"requests": requests,
	})
}
