package leavehandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/domain/leave"
	"officetime/internal/domain/notifications"
	"officetime/internal/transport/http/api"
	"officetime/internal/transport/http/middleware"
	"officetime/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Notify  *notifications.Service
}

func NewHandler(service *leave.Service, notify *notifications.Service) *Handler {
	return &Handler{Service: service, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/requests", h.handleListRequests)
		r.With(middleware.RequireAuth).Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequireAuth).Get("/requests/{requestID}", h.handleGetRequest)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleAdmin)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleAdmin)).Post("/requests/{requestID}/reject", h.handleReject)
		r.With(middleware.RequireAuth).Post("/requests/{requestID}/cancel", h.handleCancel)
		r.With(middleware.RequireRole(auth.RoleManager, auth.RoleAdmin)).Post("/requests/{requestID}/confirm-cancel", h.handleConfirmCancel)
		r.With(middleware.RequireAuth).Get("/holidays", h.handleListHolidays)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/holidays", h.handleCreateHoliday)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/holidays/{holidayID}", h.handleDeleteHoliday)
	})
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	result, err := h.Service.ListRequests(r.Context(), user.TenantID, user.RoleName, user.EmployeeID, user.EmployeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"requests": result.Requests, "total": result.Total}, middleware.GetRequestID(r.Context()))
}

type createRequestPayload struct {
	EmployeeID     string `json:"employeeId"`
	Type           string `json:"type"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Reason         string `json:"reason"`
	MinutesCounted int    `json:"minutesCounted"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := user.EmployeeID
	if payload.EmployeeID != "" && payload.EmployeeID != user.EmployeeID {
		if user.RoleName == auth.RoleEmployee {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot request leave for other employees", middleware.GetRequestID(r.Context()))
			return
		}
		employeeID = payload.EmployeeID
	}

	v := shared.NewValidator()
	v.Required("type", payload.Type, "leave type is required")
	v.Enum("type", payload.Type, leave.LeaveTypes, "unknown leave type")
	startDate, startOK := v.Date("startDate", payload.StartDate)
	endDate, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", startDate, "endDate", endDate)
	}
	if payload.Type == leave.TypeMedical && !startDate.Equal(endDate) {
		v.Add("endDate", "medical appointments are single-day")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateRequest(r.Context(), user.TenantID, employeeID, payload.Type, payload.Reason, startDate, endDate, payload.MinutesCounted)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_create_failed", "failed to create leave request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	req, err := h.Service.GetRequest(r.Context(), user.TenantID, requestID)
	if err != nil {
		h.failRequest(w, r, err)
		return
	}
	if !h.canView(r, user, req) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve, notifications.TypeLeaveApproved, "Leave request approved")
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject, notifications.TypeLeaveRejected, "Leave request rejected")
}

func (h *Handler) handleConfirmCancel(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.ConfirmCancel, notifications.TypeLeaveCancelled, "Leave request cancelled")
}

type decideFunc func(ctx context.Context, tenantID, requestID, actorUserID string) (leave.Request, error)

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn decideFunc, notifyType, notifyTitle string) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	if user.RoleName == auth.RoleManager {
		req, err := h.Service.GetRequest(r.Context(), user.TenantID, requestID)
		if err != nil {
			h.failRequest(w, r, err)
			return
		}
		manages, err := h.Service.IsManagerOf(r.Context(), user.TenantID, user.EmployeeID, req.EmployeeID)
		if err != nil || !manages {
			api.Fail(w, http.StatusForbidden, "forbidden", "not the manager of this employee", middleware.GetRequestID(r.Context()))
			return
		}
	}

	req, err := fn(r.Context(), user.TenantID, requestID, user.UserID)
	if err != nil {
		h.failRequest(w, r, err)
		return
	}

	h.notifyOwner(r, user.TenantID, req, notifyType, notifyTitle)
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	req, err := h.Service.GetRequest(r.Context(), user.TenantID, requestID)
	if err != nil {
		h.failRequest(w, r, err)
		return
	}
	if user.RoleName == auth.RoleEmployee && req.EmployeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to cancel this request", middleware.GetRequestID(r.Context()))
		return
	}

	req, err = h.Service.Cancel(r.Context(), user.TenantID, requestID, user.UserID)
	if err != nil {
		h.failRequest(w, r, err)
		return
	}

	if req.Status == leave.StatusCancelRequested {
		h.notifyOwner(r, user.TenantID, req, notifications.TypeLeaveCancelRequest, "Leave cancellation requested")
	} else {
		h.notifyOwner(r, user.TenantID, req, notifications.TypeLeaveCancelled, "Leave request cancelled")
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListHolidays(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

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
	if from.IsZero() {
		from = time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = time.Date(time.Now().Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	holidays, err := h.Service.ListHolidays(r.Context(), user.TenantID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_list_failed", "failed to list holidays", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, holidays, middleware.GetRequestID(r.Context()))
}

type holidayPayload struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

func (h *Handler) handleCreateHoliday(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload holidayPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	date, _ := v.Date("date", payload.Date)
	v.Required("name", payload.Name, "holiday name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateHoliday(r.Context(), user.TenantID, date, payload.Name, payload.Region)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_create_failed", "failed to create holiday", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteHoliday(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	holidayID := chi.URLParam(r, "holidayID")

	if err := h.Service.DeleteHoliday(r.Context(), user.TenantID, holidayID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_delete_failed", "failed to delete holiday", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) canView(r *http.Request, user auth.UserContext, req leave.Request) bool {
	switch user.RoleName {
	case auth.RoleAdmin:
		return true
	case auth.RoleManager:
		if req.EmployeeID == user.EmployeeID {
			return true
		}
		manages, err := h.Service.IsManagerOf(r.Context(), user.TenantID, user.EmployeeID, req.EmployeeID)
		return err == nil && manages
	default:
		return req.EmployeeID == user.EmployeeID
	}
}

func (h *Handler) notifyOwner(r *http.Request, tenantID string, req leave.Request, notifyType, title string) {
	if h.Notify == nil {
		return
	}
	userID, err := h.Service.UserIDByEmployeeID(r.Context(), tenantID, req.EmployeeID)
	if err != nil || userID == "" {
		return
	}
	body := fmt.Sprintf("%s leave from %s to %s is now %s.",
		req.Type, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), req.Status)
	if err := h.Notify.Notify(r.Context(), tenantID, userID, notifyType, title, body); err != nil {
		slog.Warn("leave notification failed", "requestId", req.ID, "err", err)
	}
}

func (h *Handler) failRequest(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, leave.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "leave_not_found", "leave request not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, leave.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "status transition not allowed", middleware.GetRequestID(r.Context()))
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to act on this request", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_action_failed", "leave request action failed", middleware.GetRequestID(r.Context()))
	}
}
