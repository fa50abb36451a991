package entities

import "helpdesk-system/pkg/types"

// DepartmentPermissions - капабилити-запись департамента. Хранится и отдается
// наружу, но в правилах авторизации не участвует.
type DepartmentPermissions struct {
	Tickets   bool `json:"tickets" db:"perm_tickets"`
	Equipment bool `json:"equipment" db:"perm_equipment"`
	Users     bool `json:"users" db:"perm_users"`
	Reports   bool `json:"reports" db:"perm_reports"`
}

type Department struct {
	ID          uint64                `json:"id" db:"id"`
	Name        string                `json:"name" db:"name"`
	ManagerID   *uint64               `json:"manager_id" db:"manager_id"`
	Permissions DepartmentPermissions `json:"permissions"`

	types.BaseEntity
}
