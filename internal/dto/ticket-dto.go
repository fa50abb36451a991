package dto

type CreateTicketDTO struct {
	Title              string  `json:"title" validate:"required,min=3"`
	Description        string  `json:"description"`
	Priority           *string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	DepartmentID       *uint64 `json:"department_id"`
	TargetDepartmentID *uint64 `json:"target_department_id"`
	EquipmentID        *uint64 `json:"equipment_id"`
	// CreatedBy принимается только ради проверки: создать заявку можно
	// исключительно от собственного имени.
	CreatedBy *uint64 `json:"created_by"`
}

type UpdateTicketDTO struct {
	Title              *string `json:"title" validate:"omitempty,min=3"`
	Description        *string `json:"description"`
	Status             *string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed escalated pending"`
	Priority           *string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	DepartmentID       *uint64 `json:"department_id"`
	TargetDepartmentID *uint64 `json:"target_department_id"`
	EquipmentID        *uint64 `json:"equipment_id"`
}

type AssignTicketDTO struct {
	UserID *uint64 `json:"user_id"`
}
