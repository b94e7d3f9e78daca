package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var validationCodes = map[int]string{
	domain.CodeInvalidEmail:    "INVALID_EMAIL",
	domain.CodeInvalidPassword: "INVALID_PASSWORD",
	domain.CodeRequiredField:   "REQUIRED_FIELD",
	domain.CodeInvalidID:       "INVALID_ID",
	domain.CodeInvalidValue:    "INVALID_VALUE",
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.InvalidValue("body", "Malformed JSON body")
	}
	return nil
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return parseUUID(chi.URLParam(r, "id"), "id")
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.ValidationError{Code: domain.CodeInvalidID, Field: field, Message: "Invalid ID format"}
	}
	return id, nil
}

// writeError maps a service error onto the HTTP error body. Internal
// details are logged, never serialized.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp, status := classify(err)

	event := log.Debug()
	switch {
	case status >= http.StatusInternalServerError:
		event = log.Error()
	case status == http.StatusUnauthorized && !isBareSentinel(err):
		event = log.Warn()
	}
	event.Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	respondJSON(w, status, resp)
}

func classify(err error) (errorResponse, int) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		name, ok := validationCodes[verr.Code]
		if !ok {
			name = "INVALID_VALUE"
		}
		return errorResponse{Code: verr.Code, Error: name, Message: verr.Message, Field: verr.Field}, http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailInUse):
		return errorResponse{Code: 1003, Error: "EMAIL_IN_USE", Message: "Email already registered", Field: "email"}, http.StatusConflict
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return errorResponse{Code: 2001, Error: "AUTHENTICATION_REQUIRED", Message: "Authentication required"}, http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorResponse{Code: 2002, Error: "INVALID_CREDENTIALS", Message: "Invalid credentials"}, http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return errorResponse{Code: 2003, Error: "UNAUTHORIZED", Message: "You are not authorized to perform this action"}, http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		return notFound("User not found"), http.StatusNotFound
	case errors.Is(err, domain.ErrProductNotFound):
		return notFound("Product not found"), http.StatusNotFound
	case errors.Is(err, domain.ErrOrderNotFound):
		return notFound("Order not found"), http.StatusNotFound
	default:
		return errorResponse{Code: 5001, Error: "SERVER_ERROR", Message: "Internal server error"}, http.StatusInternalServerError
	}
}

func notFound(msg string) errorResponse {
	return errorResponse{Code: 3001, Error: "RESOURCE_NOT_FOUND", Message: msg}
}

func isBareSentinel(err error) bool {
	return err == domain.ErrInvalidCredentials || err == domain.ErrAuthenticationRequired
}
