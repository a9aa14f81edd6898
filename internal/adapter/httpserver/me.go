package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/guillermoBallester/clerksync/internal/core/port"
)

type meResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	IsSubscribed bool   `json:"is_subscribed"`
	CreatedAt    string `json:"created_at"`
	Role         string `json:"role,omitempty"`
}

// handleMe returns the provisioned record of the signed-in user.
func (s *Server) handleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := port.SessionFromContext(r.Context())
		if session == nil {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}

		user, err := s.users.GetUserByID(r.Context(), session.UserID)
		if errors.Is(err, port.ErrUserNotFound) {
			http.Error(w, `{"error":"user not provisioned"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			s.logger.Error("failed to load user",
				slog.String("user_id", session.UserID),
				slog.String("error", err.Error()),
			)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(meResponse{
			ID:           user.ID,
			Email:        user.Email,
			IsSubscribed: user.IsSubscribed,
			CreatedAt:    user.CreatedAt.Format(time.RFC3339),
			Role:         session.Role,
		})
	}
}
