package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kenocia/payroll-backend-go/internal/domain/schedule"
	"github.com/kenocia/payroll-backend-go/internal/handler/http/middleware"
	"github.com/kenocia/payroll-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	CreateSchedule(w http.ResponseWriter, r *http.Request)
	ListSchedules(w http.ResponseWriter, r *http.Request)
	Change(w http.ResponseWriter, r *http.Request)
	BulkChange(w http.ResponseWriter, r *http.Request)
	Timeline(w http.ResponseWriter, r *http.Request)
	AsOf(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// CreateSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.CreateSchedule(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Schedule created", result)
}

// ListSchedules implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListSchedules(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListSchedules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Change implements ScheduleHandler.
func (h *scheduleHandlerImpl) Change(w http.ResponseWriter, r *http.Request) {
	var req schedule.ChangeScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.ChangeSchedule(r.Context(), &req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Schedule changed", result)
}

// BulkChange implements ScheduleHandler.
func (h *scheduleHandlerImpl) BulkChange(w http.ResponseWriter, r *http.Request) {
	var req schedule.BulkChangeScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.BulkChange(r.Context(), &req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Bulk schedule change processed", result)
}

// Timeline implements ScheduleHandler.
func (h *scheduleHandlerImpl) Timeline(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.scheduleService.Timeline(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// AsOf implements ScheduleHandler.
func (h *scheduleHandlerImpl) AsOf(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	raw := r.URL.Query().Get("date")
	date := time.Now()
	if raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		date = parsed
	}

	result, err := h.scheduleService.ScheduleAsOf(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
