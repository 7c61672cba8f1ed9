package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/andeanwork/attendance-backend-go/internal/domain/workpoint"
	"github.com/andeanwork/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkPointHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	RemoveAssignment(w http.ResponseWriter, r *http.Request)
	SetAssignmentState(w http.ResponseWriter, r *http.Request)
	ActiveAssignments(w http.ResponseWriter, r *http.Request)
	ValidateGeo(w http.ResponseWriter, r *http.Request)
}

type workPointHandlerImpl struct {
	workPointService workpoint.WorkPointService
}

func NewWorkPointHandler(workPointService workpoint.WorkPointService) WorkPointHandler {
	return &workPointHandlerImpl{
		workPointService: workPointService,
	}
}

// Create implements WorkPointHandler.
func (h *workPointHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req workpoint.CreateWorkPointRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode work point request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workPointService.CreateWorkPoint(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work point created", result)
}

// Get implements WorkPointHandler.
func (h *workPointHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.workPointService.GetWorkPoint(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements WorkPointHandler.
func (h *workPointHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	siteID := r.URL.Query().Get("site_id")

	result, err := h.workPointService.ListWorkPoints(r.Context(), siteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements WorkPointHandler.
func (h *workPointHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req workpoint.UpdateWorkPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode work point update", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workPointService.UpdateWorkPoint(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work point updated", result)
}

// Delete implements WorkPointHandler.
func (h *workPointHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.workPointService.DeleteWorkPoint(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work point deleted", nil)
}

// Assign implements WorkPointHandler.
func (h *workPointHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req workpoint.AssignRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode assignment request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workPointService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assignment created", result)
}

// RemoveAssignment implements WorkPointHandler.
func (h *workPointHandlerImpl) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.workPointService.RemoveAssignment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment removed", nil)
}

// SetAssignmentState implements WorkPointHandler.
func (h *workPointHandlerImpl) SetAssignmentState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode assignment state request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.workPointService.SetAssignmentState(r.Context(), id, req.State); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment state updated", nil)
}

// ValidateGeo implements WorkPointHandler. Previews the geofence check
// a marking would record, without creating anything.
func (h *workPointHandlerImpl) ValidateGeo(w http.ResponseWriter, r *http.Request) {
	var req workpoint.ValidateGeoRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode geo validation request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workPointService.ValidateGeo(r.Context(), req.EmployeeID, req.Latitude, req.Longitude)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ActiveAssignments implements WorkPointHandler.
func (h *workPointHandlerImpl) ActiveAssignments(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.workPointService.ActiveAssignments(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
