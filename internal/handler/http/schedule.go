package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/andeanwork/attendance-backend-go/internal/domain/schedule"
	"github.com/andeanwork/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	ResolveDay(w http.ResponseWriter, r *http.Request)
	SetWeek(w http.ResponseWriter, r *http.Request)
	CloseValidity(w http.ResponseWriter, r *http.Request)
	GetEffective(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	AddException(w http.ResponseWriter, r *http.Request)
	DeleteException(w http.ResponseWriter, r *http.Request)
	ListExceptions(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ResolveDay implements ScheduleHandler.
func (h *scheduleHandlerImpl) ResolveDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := r.URL.Query().Get("date")

	result, err := h.scheduleService.ResolveDay(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetWeek implements ScheduleHandler.
func (h *scheduleHandlerImpl) SetWeek(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req schedule.SetWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode week request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.scheduleService.SetWeek(r.Context(), employeeID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated", nil)
}

// CloseValidity implements ScheduleHandler.
func (h *scheduleHandlerImpl) CloseValidity(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req struct {
		EndDate string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode close validity request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.scheduleService.CloseValidity(r.Context(), employeeID, req.EndDate); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule validity closed", nil)
}

// GetEffective implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetEffective(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := r.URL.Query().Get("date")

	result, err := h.scheduleService.GetEffective(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements ScheduleHandler.
func (h *scheduleHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.scheduleService.History(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AddException implements ScheduleHandler.
func (h *scheduleHandlerImpl) AddException(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req schedule.AddExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode exception request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.AddException(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Exception created", result)
}

// DeleteException implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteException(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteException(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exception deleted", nil)
}

// ListExceptions implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListExceptions(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	query := r.URL.Query()

	result, err := h.scheduleService.ListExceptions(r.Context(), employeeID, query.Get("from"), query.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
