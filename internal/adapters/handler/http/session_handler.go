package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/vncsmyrnk/digimarket/internal/core/domain"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
	"github.com/vncsmyrnk/digimarket/internal/metrics"
)

type SessionHandler struct {
	authService ports.AuthService
}

func NewSessionHandler(authService ports.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	*domain.User
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login godoc
// @Summary      Logs a user in
// @Description  Exchanges an email and password for a bearer token.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      401
// @Router       /sessions [post]
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
		}
		writeError(w, r, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	respondJSON(w, http.StatusCreated, sessionResponse{
		User:      session.User,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout godoc
// @Summary      Logs the authenticated user out
// @Description  Revokes the bearer token used for this request.
// @Tags         sessions
// @Security     BearerAuth
// @Success      204
// @Failure      401
// @Router       /sessions [delete]
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrAuthenticationRequired)
		return
	}

	if err := h.authService.Logout(r.Context(), tokenFromContext(r.Context()), identity); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
