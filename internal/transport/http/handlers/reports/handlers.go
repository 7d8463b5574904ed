package reportshandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/domain/employee"
	"officetime/internal/domain/reports"
	"officetime/internal/transport/http/api"
	"officetime/internal/transport/http/middleware"
	"officetime/internal/transport/http/shared"
)

type Handler struct {
	Service   *reports.Service
	Employees *employee.Store
}

func NewHandler(service *reports.Service, employees *employee.Store) *Handler {
	return &Handler{Service: service, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/balance/yearly.csv", h.handleYearlyCSV)
		r.With(middleware.RequireAuth).Get("/balance/yearly.pdf", h.handleYearlyPDF)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleAdmin)).Get("/team/monthly.csv", h.handleTeamMonthlyCSV)
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

func (h *Handler) handleYearlyCSV(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID, allowed := h.scopedEmployeeID(r, user)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to export this report", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	year := shared.ParseYear(r.URL.Query().Get("year"), now)

	data, err := h.Service.YearlyBalanceCSV(r.Context(), user.TenantID, employeeID, year, now)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"balance-%d.csv\"", year))
	_, _ = w.Write(data)
}

func (h *Handler) handleYearlyPDF(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID, allowed := h.scopedEmployeeID(r, user)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to export this report", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	year := shared.ParseYear(r.URL.Query().Get("year"), now)

	name := employeeID
	if record, err := h.Employees.Get(r.Context(), user.TenantID, employeeID); err == nil {
		name = record.FirstName + " " + record.LastName
	}

	filePath, err := h.Service.YearlyBalancePDF(r.Context(), user.TenantID, employeeID, name, year, now)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"balance-%d.pdf\"", year))
	http.ServeFile(w, r, filePath)
}

func (h *Handler) handleTeamMonthlyCSV(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	year, month := shared.ParseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), time.Now().UTC())
	data, err := h.Service.MonthlyOverviewCSV(r.Context(), user.TenantID, year, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"team-%d-%02d.csv\"", year, int(month)))
	_, _ = w.Write(data)
}
