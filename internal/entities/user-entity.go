package entities

import (
	"helpdesk-system/pkg/types"
)

// Role - грубая гранулярность прав доступа в системе.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleITPersonnel Role = "it_personnel"
	RoleEmployee    Role = "employee"
)

// Valid проверяет, что роль входит в известный набор.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleITPersonnel, RoleEmployee:
		return true
	}
	return false
}

// IsStaff - admin и it_personnel считаются ИТ-персоналом.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleITPersonnel
}

type User struct {
	ID    uint64 `json:"id" db:"id"`
	Fio   string `json:"fio" db:"fio"`
	Email string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	Role         Role    `json:"role" db:"role"`
	DepartmentID *uint64 `json:"department_id" db:"department_id"`

	types.BaseEntity
}
