package employee

import "context"

// EmployeeRepository reads the employee directory. The directory itself
// is managed elsewhere; the attendance core only resolves and displays
// employees.
type EmployeeRepository interface {
	// ResolveID matches an internal id, a document number, or a
	// scannable code and returns the internal id.
	ResolveID(ctx context.Context, identifier string) (string, error)

	// GetByID returns the display profile for one employee.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByDocument looks up an employee by document number. Used by
	// credential login.
	GetByDocument(ctx context.Context, documentNumber string) (Employee, error)

	// List returns the directory, optionally restricted to active
	// employees.
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
}
