package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tareqmn/microblog/internal/session"
	"github.com/tareqmn/microblog/internal/store"
	"github.com/tareqmn/microblog/pkg/response"
)

// Handler handles HTTP requests for signup, login and user listing.
type Handler struct {
	service  *Service
	sessions *session.Service
}

// NewHandler creates a new user handler with its dependencies injected.
func NewHandler(service *Service, sessions *session.Service) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// AuthRoutes returns the unauthenticated signup/login router.
func (h *Handler) AuthRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)

	return r
}

// Routes returns the authenticated user router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Suggestions)

	return r
}

// Signup handles POST /auth/signup
// @Summary      Register a new user
// @Description  Create an account and start a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Signup request"
// @Success      201 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCredentials):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrUsernameTaken):
			response.Conflict(w, err.Error())
		case errors.Is(err, store.ErrUnavailable):
			response.ServiceUnavailable(w, "Store unavailable")
		default:
			response.InternalError(w, "Failed to sign up")
		}
		return
	}

	if !h.startSession(w, r, u) {
		return
	}
	response.JSON(w, http.StatusCreated, u.ToResponse())
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Authenticate and start a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCredentials):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrWrongPassword):
			response.Unauthorized(w, "Invalid username or password")
		case errors.Is(err, store.ErrUnavailable):
			response.ServiceUnavailable(w, "Store unavailable")
		default:
			response.InternalError(w, "Failed to log in")
		}
		return
	}

	if !h.startSession(w, r, u) {
		return
	}
	response.JSON(w, http.StatusOK, u.ToResponse())
}

// Suggestions handles GET /users
// @Summary      List follow suggestions
// @Description  Usernames the current user does not follow yet
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=SuggestionsResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /users [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	principal, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	usernames, err := h.service.Suggestions(r.Context(), principal.Username)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			response.ServiceUnavailable(w, "Store unavailable")
			return
		}
		response.InternalError(w, "Failed to list users")
		return
	}

	response.JSON(w, http.StatusOK, &SuggestionsResponse{Usernames: usernames})
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, u *User) bool {
	token, err := h.sessions.Create(r.Context(), u.ID, u.Username)
	if err != nil {
		response.ServiceUnavailable(w, "Failed to start session")
		return false
	}
	session.SetCookie(w, token, int(h.sessions.TTL().Seconds()))
	return true
}
