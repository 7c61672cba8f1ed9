package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/andeanwork/attendance-backend-go/internal/domain/auth"
	"github.com/andeanwork/attendance-backend-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) ResolveID(ctx context.Context, identifier string) (string, error) {
	return f.emp.ID, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetByDocument(ctx context.Context, documentNumber string) (employee.Employee, error) {
	if documentNumber != f.emp.DocumentNumber {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return []employee.Employee{f.emp}, nil
}

type fakeJWTService struct{}

func (f *fakeJWTService) GenerateAccessToken(employeeID string, fullName string, documentNumber string, role auth.Role) (string, int64, error) {
	return "token-" + employeeID, 1760000000, nil
}

func (f *fakeJWTService) JWTAuth() *jwtauth.JWTAuth { return nil }

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func testEmployee(t *testing.T) employee.Employee {
	role := string(auth.RoleHR)
	return employee.Employee{
		ID:             "emp-1",
		DocumentNumber: "45678901",
		FirstName:      "Rosa",
		Role:           &role,
		PasswordHash:   hashOf(t, "secreta123"),
		Active:         true,
	}
}

func TestLogin_Success(t *testing.T) {
	svc := NewAuthService(&fakeEmployeeRepo{emp: testEmployee(t)}, &fakeJWTService{})

	res, err := svc.Login(context.Background(), auth.LoginRequest{
		DocumentNumber: "45678901",
		Password:       "secreta123",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-emp-1", res.AccessToken)
	assert.Equal(t, "emp-1", res.EmployeeID)
	assert.Equal(t, auth.RoleHR, res.Role)
	assert.Equal(t, "Rosa", res.FullName)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(&fakeEmployeeRepo{emp: testEmployee(t)}, &fakeJWTService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		DocumentNumber: "45678901",
		Password:       "incorrecta",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownDocumentLooksLikeWrongPassword(t *testing.T) {
	svc := NewAuthService(&fakeEmployeeRepo{emp: testEmployee(t)}, &fakeJWTService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		DocumentNumber: "99999999",
		Password:       "secreta123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_NoPasswordConfigured(t *testing.T) {
	emp := testEmployee(t)
	emp.PasswordHash = nil
	svc := NewAuthService(&fakeEmployeeRepo{emp: emp}, &fakeJWTService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		DocumentNumber: "45678901",
		Password:       "secreta123",
	})
	assert.ErrorIs(t, err, auth.ErrNoPasswordSet)
}

func TestLogin_InactiveEmployee(t *testing.T) {
	emp := testEmployee(t)
	emp.Active = false
	svc := NewAuthService(&fakeEmployeeRepo{emp: emp}, &fakeJWTService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		DocumentNumber: "45678901",
		Password:       "secreta123",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestLogin_DefaultRoleIsEmployee(t *testing.T) {
	emp := testEmployee(t)
	emp.Role = nil
	svc := NewAuthService(&fakeEmployeeRepo{emp: emp}, &fakeJWTService{})

	res, err := svc.Login(context.Background(), auth.LoginRequest{
		DocumentNumber: "45678901",
		Password:       "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEmployee, res.Role)
}
