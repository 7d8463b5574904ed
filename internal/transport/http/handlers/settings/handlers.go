package settingshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/domain/settings"
	"officetime/internal/transport/http/api"
	"officetime/internal/transport/http/middleware"
	"officetime/internal/transport/http/shared"
)

type Handler struct {
	Service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings/employees/{employeeID}", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/", h.handleUpsert)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleAdmin)).Get("/changes", h.handleChangeLog)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if user.RoleName == auth.RoleEmployee && user.EmployeeID != employeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view these settings", middleware.GetRequestID(r.Context()))
		return
	}

	out, err := h.Service.Get(r.Context(), user.TenantID, employeeID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			api.Fail(w, http.StatusNotFound, "settings_not_found", "employee settings not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "settings_get_failed", "failed to load settings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	var payload settings.EmployeeSettings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.EmployeeID = employeeID

	v := shared.NewValidator()
	v.Positive("hoursPerWeek", payload.HoursPerWeek, "hours per week must be positive")
	v.Positive("daysPerWeek", payload.DaysPerWeek, "days per week must be positive")
	if payload.DaysPerWeek > 7 {
		v.Add("daysPerWeek", "days per week cannot exceed 7")
	}
	if payload.AnnualVacationDays < 0 {
		v.Add("annualVacationDays", "annual vacation days cannot be negative")
	}
	if payload.CarryOverDays < 0 {
		v.Add("carryOverDays", "carry-over days cannot be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Service.Upsert(r.Context(), user.TenantID, user.UserID, payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_save_failed", "failed to save settings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"employeeId": employeeID, "dailyMinutes": payload.DailyMinutes()}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChangeLog(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	page := shared.ParsePagination(r, 50, 200)

	entries, err := h.Service.ChangeLog(r.Context(), user.TenantID, employeeID, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "change_log_failed", "failed to load change log", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}
