package dto

type DepartmentPermissionsDTO struct {
	Tickets   bool `json:"tickets"`
	Equipment bool `json:"equipment"`
	Users     bool `json:"users"`
	Reports   bool `json:"reports"`
}

type CreateDepartmentDTO struct {
	Name        string                    `json:"name" validate:"required,min=2"`
	ManagerID   *uint64                   `json:"manager_id"`
	Permissions *DepartmentPermissionsDTO `json:"permissions"`
}

type UpdateDepartmentDTO struct {
	Name        *string                   `json:"name" validate:"omitempty,min=2"`
	ManagerID   *uint64                   `json:"manager_id"`
	Permissions *DepartmentPermissionsDTO `json:"permissions"`
}

// DepartmentStatsDTO - счётчики заявок по департаменту.
type DepartmentStatsDTO struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	OpenTickets   uint64 `json:"open_tickets"`
	ClosedTickets uint64 `json:"closed_tickets"`
}
