package entities

import "helpdesk-system/pkg/types"

type EquipmentStatus string

const (
	EquipmentAvailable        EquipmentStatus = "available"
	EquipmentInUse            EquipmentStatus = "in_use"
	EquipmentBroken           EquipmentStatus = "broken"
	EquipmentUnderMaintenance EquipmentStatus = "under_maintenance"
	EquipmentRetired          EquipmentStatus = "retired"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentInUse, EquipmentBroken, EquipmentUnderMaintenance, EquipmentRetired:
		return true
	}
	return false
}

type Equipment struct {
	ID           uint64          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	SerialNumber string          `json:"serial_number" db:"serial_number"`
	Status       EquipmentStatus `json:"status" db:"status"`
	AssignedToID *uint64         `json:"assigned_to_id" db:"assigned_to_id"`
	DepartmentID *uint64         `json:"department_id" db:"department_id"`

	types.BaseEntity

	// Связанные данные (не колонки таблицы)
	AssignedTo *User       `json:"assigned_to,omitempty" db:"-"`
	Department *Department `json:"department,omitempty" db:"-"`
}
