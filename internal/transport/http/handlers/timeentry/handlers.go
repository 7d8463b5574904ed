package timeentryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/domain/employee"
	"officetime/internal/domain/timeentry"
	"officetime/internal/transport/http/api"
	"officetime/internal/transport/http/middleware"
	"officetime/internal/transport/http/shared"
)

type Handler struct {
	Service   *timeentry.Service
	Employees *employee.Store
}

func NewHandler(service *timeentry.Service, employees *employee.Store) *Handler {
	return &Handler{Service: service, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/entries", h.handleList)
		r.With(middleware.RequireAuth).Post("/entries", h.handleCreate)
		r.With(middleware.RequireAuth).Put("/entries/{entryID}", h.handleUpdate)
		r.With(middleware.RequireAuth).Delete("/entries/{entryID}", h.handleDelete)
		r.With(middleware.RequireAuth).Get("/corrections", h.handleListCorrections)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/corrections", h.handleCreateCorrection)
	})
}

// scopedEmployeeID resolves which employee the caller may act for. Employees
// are always pinned to themselves; managers may reach their reports, admins
// anyone.
func (h *Handler) scopedEmployeeID(r *http.Request, user auth.UserContext, requested string) (string, bool) {
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

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID, allowed := h.scopedEmployeeID(r, user, r.URL.Query().Get("employeeId"))
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view these entries", middleware.GetRequestID(r.Context()))
		return
	}

	from, err := shared.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid from date", middleware.GetRequestID(r.Context()))
		return
	}
	to, err := shared.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid to date", middleware.GetRequestID(r.Context()))
		return
	}
	now := time.Now().UTC()
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = from.AddDate(0, 1, -1)
	}

	entries, err := h.Service.List(r.Context(), user.TenantID, employeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "entry_list_failed", "failed to list time entries", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

type entryPayload struct {
	EmployeeID   string `json:"employeeId"`
	WorkDate     string `json:"workDate"`
	StartedAt    string `json:"startedAt"`
	EndedAt      string `json:"endedAt"`
	PauseMinutes int    `json:"pauseMinutes"`
	Note         string `json:"note"`
}

func (h *Handler) parseEntry(w http.ResponseWriter, r *http.Request, user auth.UserContext) (timeentry.EntryInput, bool) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return timeentry.EntryInput{}, false
	}

	employeeID, allowed := h.scopedEmployeeID(r, user, payload.EmployeeID)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to record for this employee", middleware.GetRequestID(r.Context()))
		return timeentry.EntryInput{}, false
	}

	v := shared.NewValidator()
	workDate, _ := v.Date("workDate", payload.WorkDate)
	if payload.PauseMinutes < 0 {
		v.Add("pauseMinutes", "pause minutes cannot be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return timeentry.EntryInput{}, false
	}

	input := timeentry.EntryInput{
		EmployeeID:   employeeID,
		WorkDate:     workDate,
		PauseMinutes: payload.PauseMinutes,
		Note:         payload.Note,
	}
	if payload.StartedAt != "" {
		startedAt, err := shared.ParseDate(payload.StartedAt)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid startedAt", middleware.GetRequestID(r.Context()))
			return timeentry.EntryInput{}, false
		}
		input.StartedAt = &startedAt
	}
	if payload.EndedAt != "" {
		endedAt, err := shared.ParseDate(payload.EndedAt)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid endedAt", middleware.GetRequestID(r.Context()))
			return timeentry.EntryInput{}, false
		}
		input.EndedAt = &endedAt
	}
	return input, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	input, ok := h.parseEntry(w, r, user)
	if !ok {
		return
	}

	id, err := h.Service.Create(r.Context(), user.TenantID, input)
	if err != nil {
		h.failEntry(w, r, err)
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	entryID := chi.URLParam(r, "entryID")

	input, ok := h.parseEntry(w, r, user)
	if !ok {
		return
	}

	if err := h.Service.Update(r.Context(), user.TenantID, entryID, input); err != nil {
		h.failEntry(w, r, err)
		return
	}
	api.Success(w, map[string]string{"id": entryID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	entryID := chi.URLParam(r, "entryID")

	employeeID, allowed := h.scopedEmployeeID(r, user, r.URL.Query().Get("employeeId"))
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to delete this entry", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Delete(r.Context(), user.TenantID, employeeID, entryID); err != nil {
		h.failEntry(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCorrections(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID, allowed := h.scopedEmployeeID(r, user, r.URL.Query().Get("employeeId"))
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view these corrections", middleware.GetRequestID(r.Context()))
		return
	}
	year := shared.ParseYear(r.URL.Query().Get("year"), time.Now().UTC())

	corrections, err := h.Service.ListCorrections(r.Context(), user.TenantID, employeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "correction_list_failed", "failed to list corrections", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, corrections, middleware.GetRequestID(r.Context()))
}

type correctionPayload struct {
	EmployeeID    string `json:"employeeId"`
	Minutes       int    `json:"minutes"`
	Reason        string `json:"reason"`
	EffectiveDate string `json:"effectiveDate"`
}

func (h *Handler) handleCreateCorrection(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload correctionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("reason", payload.Reason, "a reason is required for corrections")
	effectiveDate, _ := v.Date("effectiveDate", payload.EffectiveDate)
	if payload.Minutes == 0 {
		v.Add("minutes", "minutes must be non-zero")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateCorrection(r.Context(), user.TenantID, payload.EmployeeID, payload.Reason, user.UserID, payload.Minutes, effectiveDate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "correction_create_failed", "failed to create correction", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failEntry(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case timeentry.IsDailyLimitExceeded(err):
		api.Fail(w, http.StatusUnprocessableEntity, "daily_limit_exceeded", err.Error(), middleware.GetRequestID(r.Context()))
	case errors.Is(err, timeentry.ErrInvalidDateRange):
		api.Fail(w, http.StatusBadRequest, "invalid_date_range", "end must be after start", middleware.GetRequestID(r.Context()))
	case errors.Is(err, timeentry.ErrEntryNotFound):
		api.Fail(w, http.StatusNotFound, "entry_not_found", "time entry not found", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "entry_save_failed", "failed to save time entry", middleware.GetRequestID(r.Context()))
	}
}
