package http

import (
	"net/http"

	"github.com/andeanwork/attendance-backend-go/internal/domain/employee"
	"github.com/andeanwork/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeHandler(employeeRepo employee.EmployeeRepository) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeRepo: employeeRepo,
	}
}

// employeeView hides credential columns from directory listings.
type employeeView struct {
	ID             string  `json:"id"`
	DocumentNumber string  `json:"document_number"`
	ScanCode       *string `json:"scan_code"`
	FullName       string  `json:"full_name"`
	PhotoURL       *string `json:"photo_url"`
	SiteName       *string `json:"site_name"`
	AreaName       *string `json:"area_name"`
	Role           *string `json:"role"`
	Active         bool    `json:"active"`
}

func toEmployeeView(e employee.Employee) employeeView {
	return employeeView{
		ID:             e.ID,
		DocumentNumber: e.DocumentNumber,
		ScanCode:       e.ScanCode,
		FullName:       e.FullName(),
		PhotoURL:       e.PhotoURL,
		SiteName:       e.SiteName,
		AreaName:       e.AreaName,
		Role:           e.Role,
		Active:         e.Active,
	}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	employees, err := h.employeeRepo.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	views := make([]employeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, toEmployeeView(e))
	}

	response.Success(w, views)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.employeeRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeView(emp))
}
