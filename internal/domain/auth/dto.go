package auth

import (
	"github.com/andeanwork/attendance-backend-go/internal/pkg/validator"
)

type Role string

const (
	RoleManagement Role = "Gerencia"
	RoleHR         Role = "RRHH"
	RoleEmployee   Role = "Empleado"
)

type LoginRequest struct {
	DocumentNumber string `json:"document_number"`
	Password       string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DocumentNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "document_number",
			Message: "document_number is required",
		})
	} else if !validator.IsValidDocumentNumber(r.DocumentNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "document_number",
			Message: "document_number must be a DNI or CE",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	EmployeeID  string `json:"employee_id"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
}
