package balancehandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/domain/balance"
	"officetime/internal/domain/employee"
	"officetime/internal/domain/settings"
	"officetime/internal/transport/http/api"
	"officetime/internal/transport/http/middleware"
	"officetime/internal/transport/http/shared"
)

type Handler struct {
	Service   *balance.Service
	Employees *employee.Store
}

func NewHandler(service *balance.Service, employees *employee.Store) *Handler {
	return &Handler{Service: service, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/balance", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/monthly", h.handleMonthly)
		r.With(middleware.RequireAuth).Get("/yearly", h.handleYearly)
		r.With(middleware.RequireAuth).Get("/projection", h.handleProjection)
		r.With(middleware.RequireAuth).Get("/vacation", h.handleVacation)
	})
}

func (h *Handler) scopedEmployeeID(r *http.Request, user auth.UserContext) (string, bool) {
	requested := r.URL.Query().Get("employeeId")
	if requested == "" || requested == user.EmployeeID {
		return user.EmployeeID, true
	}
	switch user.RoleName {
	case auth.RoleAdmin:
		return requested, true
	case auth.RoleManager:
		manages, err := h.Employees.IsManagerOf(r.Context(), user.TenantID, user.EmployeeID, requested)
		return requested, err == nil && manages
	default:
		return "", false
	}
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID, allowed := h.scopedEmployeeID(r, user)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this balance", middleware.GetRequestID(r.Context()))
		return
	}

	year, month := shared.ParseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), time.Now().UTC())
	totals, err := h.Service.MonthlyTotals(r.Context(), user.TenantID, employeeID, year, month)
	if err != nil {
		h.failBalance(w, r, err)
		return
	}
	api.Success(w, totals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleYearly(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID, allowed := h.scopedEmployeeID(r, user)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this balance", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	year := shared.ParseYear(r.URL.Query().Get("year"), now)
	result, err := h.Service.YearlyBalance(r.Context(), user.TenantID, employeeID, year, now)
	if err != nil {
		h.failBalance(w, r, err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID, allowed := h.scopedEmployeeID(r, user)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this balance", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	year, month := shared.ParseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), now)
	projection, err := h.Service.Projection(r.Context(), user.TenantID, employeeID, year, month, now)
	if err != nil {
		h.failBalance(w, r, err)
		return
	}
	// nil means the requested month is not the current one; the client gets
	// an explicit null instead of zeros it might mistake for data.
	api.Success(w, projection, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleVacation(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID, allowed := h.scopedEmployeeID(r, user)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this balance", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	year := shared.ParseYear(r.URL.Query().Get("year"), now)
	result, err := h.Service.VacationBalance(r.Context(), user.TenantID, employeeID, year, now)
	if err != nil {
		h.failBalance(w, r, err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failBalance(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, settings.ErrSettingsNotFound) {
		api.Fail(w, http.StatusNotFound, "settings_not_found", "employee settings must be configured first", middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, "balance_failed", "failed to compute balance", middleware.GetRequestID(r.Context()))
}
