package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/FACorreiaa/statement-importer/internal/domain/user"
	"github.com/FACorreiaa/statement-importer/pkg/interceptors"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	repo   user.UserRepo
	logger *slog.Logger
}

// NewUserHandler constructs a new handler.
func NewUserHandler(repo user.UserRepo, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		repo:   repo,
		logger: logger,
	}
}

// Me handles GET /api/me with the public projection of the authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := interceptors.GetUserIDFromContext(r.Context())
	if !ok || userIDStr == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid user id"})
		return
	}

	u, err := h.repo.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		h.logger.Error("failed to load user", slog.String("user_id", userIDStr), slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, u.Public())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
