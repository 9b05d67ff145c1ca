package timeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tareqmn/microblog/internal/post"
	"github.com/tareqmn/microblog/internal/session"
	"github.com/tareqmn/microblog/internal/store"
	"github.com/tareqmn/microblog/pkg/response"
)

// Handler handles HTTP requests for publishing and reading timelines.
type Handler struct {
	engine *Engine
	reader *Reader
}

// NewHandler creates a timeline handler with its dependencies injected.
func NewHandler(engine *Engine, reader *Reader) *Handler {
	return &Handler{engine: engine, reader: reader}
}

// PostRoutes returns the router for publishing.
func (h *Handler) PostRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Publish)

	return r
}

// Routes returns the router for timeline reads.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Read)

	return r
}

// Publish handles POST /posts
// @Summary      Publish a post
// @Description  Record the post and fan it out to all current followers
// @Tags         timeline
// @Accept       json
// @Produce      json
// @Param        request body PublishRequest true "Publish request"
// @Success      201 {object} response.APIResponse{data=PublishResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /posts [post]
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	principal, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	postID, err := h.engine.Publish(r.Context(), principal.Username, principal.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrEmptyMessage):
			response.BadRequest(w, err.Error())
		case errors.Is(err, store.ErrUnavailable):
			response.ServiceUnavailable(w, "Store unavailable")
		default:
			response.InternalError(w, "Failed to publish")
		}
		return
	}

	response.JSON(w, http.StatusCreated, &PublishResponse{PostID: postID})
}

// Read handles GET /timeline
// @Summary      Read the current user's timeline
// @Description  Most recent posts delivered to the current user, newest first
// @Tags         timeline
// @Produce      json
// @Param        limit query int false "Maximum entries" default(100)
// @Success      200 {object} response.APIResponse{data=TimelineResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /timeline [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	principal, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	posts, err := h.reader.Read(r.Context(), principal.Username, limit)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			response.ServiceUnavailable(w, "Store unavailable")
			return
		}
		response.InternalError(w, "Failed to read timeline")
		return
	}

	response.JSON(w, http.StatusOK, &TimelineResponse{Posts: posts})
}
