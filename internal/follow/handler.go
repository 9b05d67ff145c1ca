package follow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tareqmn/microblog/internal/session"
	"github.com/tareqmn/microblog/internal/store"
	"github.com/tareqmn/microblog/pkg/response"
)

// Handler handles HTTP requests for follow operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new follow handler with the service injected.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for follow endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Follow)
	r.Get("/following", h.Following)
	r.Get("/followers", h.Followers)

	return r
}

// Follow handles POST /follow
// @Summary      Follow a user
// @Description  Add the given username to the current user's following set
// @Tags         follow
// @Accept       json
// @Produce      json
// @Param        request body FollowRequest true "Follow request"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /follow [post]
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	principal, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	var req FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	err := h.service.Follow(r.Context(), principal.Username, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyUsername), errors.Is(err, ErrSelfFollow):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrUnknownUser):
			response.NotFound(w, err.Error())
		case errors.Is(err, store.ErrUnavailable):
			response.ServiceUnavailable(w, "Store unavailable")
		default:
			response.InternalError(w, "Failed to follow")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Now following " + req.Username})
}

// Following handles GET /follow/following
// @Summary      List who the current user follows
// @Tags         follow
// @Produce      json
// @Success      200 {object} response.APIResponse{data=RelationsResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /follow/following [get]
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	h.relations(w, r, h.service.Following)
}

// Followers handles GET /follow/followers
// @Summary      List who follows the current user
// @Tags         follow
// @Produce      json
// @Success      200 {object} response.APIResponse{data=RelationsResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /follow/followers [get]
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	h.relations(w, r, h.service.Followers)
}

func (h *Handler) relations(w http.ResponseWriter, r *http.Request, list func(context.Context, string) ([]string, error)) {
	principal, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	usernames, err := list(r.Context(), principal.Username)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			response.ServiceUnavailable(w, "Store unavailable")
			return
		}
		response.InternalError(w, "Failed to list relations")
		return
	}

	response.JSON(w, http.StatusOK, &RelationsResponse{Usernames: usernames})
}
