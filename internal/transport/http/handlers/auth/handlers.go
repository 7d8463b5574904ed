package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/platform/querier"
	"officetime/internal/transport/http/api"
	"officetime/internal/transport/http/middleware"
)

type Handler struct {
	DB       querier.Querier
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(db querier.Querier, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{DB: db, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Get("/auth/me", h.handleMe)
	r.With(middleware.RequireAuth).Post("/auth/change-password", h.handleChangePassword)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var id, tenantID, roleName, hash, employeeID string
	err := h.DB.QueryRow(r.Context(), `
    SELECT u.id, u.tenant_id, u.role, u.password_hash, COALESCE(e.id::text, '')
    FROM users u
    LEFT JOIN employees e ON e.user_id = u.id AND e.tenant_id = u.tenant_id
    WHERE u.email = $1
  `, strings.ToLower(strings.TrimSpace(payload.Email))).Scan(&id, &tenantID, &roleName, &hash, &employeeID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:     id,
		TenantID:   tenantID,
		EmployeeID: employeeID,
		RoleName:   roleName,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":         id,
			"tenantId":   tenantID,
			"employeeId": employeeID,
			"role":       roleName,
		},
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, map[string]string{
		"id":         user.UserID,
		"tenantId":   user.TenantID,
		"employeeId": user.EmployeeID,
		"role":       user.RoleName,
	}, middleware.GetRequestID(r.Context()))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.NewPassword) < 8 {
		api.Fail(w, http.StatusBadRequest, "weak_password", "new password must be at least 8 characters", middleware.GetRequestID(r.Context()))
		return
	}

	var hash string
	if err := h.DB.QueryRow(r.Context(), `
    SELECT password_hash FROM users WHERE tenant_id = $1 AND id = $2
  `, user.TenantID, user.UserID).Scan(&hash); err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to change password", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(hash, payload.CurrentPassword); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "current password is wrong", middleware.GetRequestID(r.Context()))
		return
	}

	newHash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to change password", middleware.GetRequestID(r.Context()))
		return
	}
	if _, err := h.DB.Exec(r.Context(), `
    UPDATE users SET password_hash = $1 WHERE tenant_id = $2 AND id = $3
  `, newHash, user.TenantID, user.UserID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to change password", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"changed": true}, middleware.GetRequestID(r.Context()))
}
