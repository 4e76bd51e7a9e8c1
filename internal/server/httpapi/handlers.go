// Package httpapi is the HTTP transport for the identity service. It
// delegates to the services layer and owns the mapping from domain errors to
// HTTP status codes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upttmbi/campus-auth/internal/common"
	"github.com/upttmbi/campus-auth/internal/logging"
	"github.com/upttmbi/campus-auth/internal/server/metrics"
	"github.com/upttmbi/campus-auth/internal/server/models"
	"github.com/upttmbi/campus-auth/internal/server/services"
)

// RegistrationService is the slice of the registration layer the handlers use.
type RegistrationService interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.User, error)
}

// AuthenticationService is the slice of the login layer the handlers use.
type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// Handler serves the auth endpoints.
type Handler struct {
	registration   RegistrationService
	authentication AuthenticationService
	metrics        *metrics.Metrics
	logger         logging.Logger
}

// NewHandler constructs a Handler.
func NewHandler(reg RegistrationService, authn AuthenticationService, m *metrics.Metrics, logger logging.Logger) *Handler {
	return &Handler{
		registration:   reg,
		authentication: authn,
		metrics:        m,
		logger:         logger.With("module", "httpapi"),
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.Registrations.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := validateRegister(req)
	if err != nil {
		h.metrics.Registrations.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.registration.Register(r.Context(), params)
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}

	h.metrics.Registrations.WithLabelValues("success").Inc()
	h.logger.Info(r.Context(), "user registered", "user_id", user.ID, "role", user.Role.String())
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "user created successfully",
	})
}

// writeRegisterError maps registration failures onto the HTTP contract:
// 409 for business conflicts, 500 (with no detail) for everything else.
func (h *Handler) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		h.metrics.Registrations.WithLabelValues("conflict").Inc()
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, common.ErrPreRegNotFound):
		h.metrics.Registrations.WithLabelValues("conflict").Inc()
		writeError(w, http.StatusConflict, "pre-registration not found")
	case errors.Is(err, common.ErrPreRegUsed):
		h.metrics.Registrations.WithLabelValues("conflict").Inc()
		writeError(w, http.StatusConflict, "pre-registration already used")
	default:
		h.metrics.Registrations.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.Logins.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, password, err := validateLogin(req)
	if err != nil {
		h.metrics.Logins.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authentication.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			h.metrics.Logins.WithLabelValues("unauthorized").Inc()
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.metrics.Logins.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.metrics.Logins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresIn:   result.ExpiresIn,
		User:        result.User,
	})
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

type loginResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	ExpiresIn   int64               `json:"expires_in"`
	User        services.PublicUser `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
