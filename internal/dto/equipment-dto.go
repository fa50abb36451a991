package dto

type CreateEquipmentDTO struct {
	Name         string  `json:"name" validate:"required,min=2"`
	SerialNumber string  `json:"serial_number" validate:"required"`
	Status       *string `json:"status" validate:"omitempty,oneof=available in_use broken under_maintenance retired"`
	DepartmentID *uint64 `json:"department_id"`
}

// UpdateEquipmentDTO намеренно не содержит assigned_to_id и status вместе:
// назначение идёт только через отдельную операцию assign, чтобы статус и
// исполнитель не разъезжались.
type UpdateEquipmentDTO struct {
	Name         *string `json:"name" validate:"omitempty,min=2"`
	SerialNumber *string `json:"serial_number"`
	Status       *string `json:"status" validate:"omitempty,oneof=available broken under_maintenance retired"`
	DepartmentID *uint64 `json:"department_id"`
}

type AssignEquipmentDTO struct {
	UserID *uint64 `json:"user_id"`
}
