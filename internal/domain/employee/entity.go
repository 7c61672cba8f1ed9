package employee

import "time"

type Employee struct {
	ID              string
	DocumentNumber  string
	ScanCode        *string
	FirstName       string
	PaternalSurname *string
	MaternalSurname *string
	PhotoURL        *string
	SiteName        *string
	AreaName        *string
	Role            *string
	PasswordHash    *string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e Employee) FullName() string {
	name := e.FirstName
	if e.PaternalSurname != nil && *e.PaternalSurname != "" {
		name += " " + *e.PaternalSurname
	}
	if e.MaternalSurname != nil && *e.MaternalSurname != "" {
		name += " " + *e.MaternalSurname
	}
	return name
}
