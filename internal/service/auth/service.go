package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/andeanwork/attendance-backend-go/internal/domain/auth"
	"github.com/andeanwork/attendance-backend-go/internal/domain/employee"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// Login implements auth.AuthService. A missing employee and a wrong
// password produce the same error; the caller cannot probe which
// documents exist.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employeeRepo.GetByDocument(ctx, req.DocumentNumber)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}
	if !emp.Active {
		return auth.LoginResponse{}, employee.ErrEmployeeInactive
	}
	if emp.PasswordHash == nil || *emp.PasswordHash == "" {
		return auth.LoginResponse{}, auth.ErrNoPasswordSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	role := auth.RoleEmployee
	if emp.Role != nil && *emp.Role != "" {
		role = auth.Role(*emp.Role)
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.FullName(), emp.DocumentNumber, role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		EmployeeID:  emp.ID,
		FullName:    emp.FullName(),
		Role:        role,
	}, nil
}
