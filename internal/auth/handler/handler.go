package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Traasa/SistemDekor-sub004/internal/auth"
	"github.com/Traasa/SistemDekor-sub004/pkg/requestcontext"
)

// Handler wires authentication endpoints to the auth service.
type Handler struct {
	service *auth.Service
	logger  *slog.Logger
}

func New(service *auth.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

// RegisterProtected mounts endpoints that require an authenticated actor.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/logout", h.handleLogout)
	r.Get("/api/user", h.handleWhoAmI)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.ErrorContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeJSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	// The actor did not exist when the middleware chain ran; expose it now so
	// the activity interceptor records this login.
	requestcontext.SetActor(ctx, requestcontext.ActorContext{ID: user.ID, Name: user.Name})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{Token: token, ID: user.ID, Name: user.Name})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := h.service.ParseToken(token)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := h.service.Logout(ctx, claims); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeJSONError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "logged out"})
}

func (h *Handler) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestcontext.Actor(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"id": actor.ID, "name": actor.Name})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
