package handler

import (
	"net/http"
	"time"

	"github.com/AdamZoda/voiture/internal/auth"
	"github.com/AdamZoda/voiture/internal/model"
	"github.com/AdamZoda/voiture/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AuthHandler handles sign-in/sign-out, session lookup and the guarded
// admin user management endpoints.
type AuthHandler struct {
	service  service.AuthService
	tokenTTL time.Duration
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, tokenTTL time.Duration, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		tokenTTL: tokenTTL,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the shape of the current-session lookup. User is
// null for anonymous callers; the lookup itself never fails.
type SessionResponse struct {
	User *model.User `json:"user"`
}

// Login handles POST /api/auth/login requests. On success the session
// token is set as an HttpOnly cookie and the user is returned.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, token, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, SessionResponse{User: user})
}

// Logout handles POST /api/auth/logout requests by expiring the session
// cookie. The token itself is stateless; discarding it is the teardown.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, SessionResponse{User: nil})
}

// Session handles GET /api/auth/session requests. It always answers
// 200: an invalid or absent session resolves to a null user rather than
// an error, so a failed lookup can never wedge the client.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		token = cookie.Value
	}

	user := h.service.CurrentUser(r.Context(), token)

	writeJSON(w, http.StatusOK, SessionResponse{User: user})
}

// ListUsers handles GET /api/admin/users requests.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/admin/users requests (the sign-up flow).
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// DeleteUser handles DELETE /api/admin/users/{id} requests.
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actorID, _ := auth.UserIDFromContext(r.Context())

	if err := h.service.DeleteUser(r.Context(), actorID, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
