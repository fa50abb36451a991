package entities

import "helpdesk-system/pkg/types"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
	TicketEscalated  TicketStatus = "escalated"
	TicketPending    TicketStatus = "pending"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed, TicketEscalated, TicketPending:
		return true
	}
	return false
}

// TicketPriority упорядочен: low < normal < high < urgent.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// EscalatePriority поднимает приоритет на одну ступень.
// На urgent функция насыщается и дальше не растет.
func EscalatePriority(p TicketPriority) TicketPriority {
	switch p {
	case PriorityLow:
		return PriorityNormal
	case PriorityNormal:
		return PriorityHigh
	case PriorityHigh:
		return PriorityUrgent
	default:
		return PriorityUrgent
	}
}

type Ticket struct {
	ID          uint64         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      TicketStatus   `json:"status" db:"status"`
	Priority    TicketPriority `json:"priority" db:"priority"`

	CreatedBy          uint64  `json:"created_by" db:"created_by"`
	AssignedTo         *uint64 `json:"assigned_to" db:"assigned_to"`
	DepartmentID       *uint64 `json:"department_id" db:"department_id"`
	TargetDepartmentID *uint64 `json:"target_department_id" db:"target_department_id"`
	EquipmentID        *uint64 `json:"equipment_id" db:"equipment_id"`

	types.BaseEntity

	// Связанные данные (не колонки таблицы)
	Creator  *User `json:"creator,omitempty" db:"-"`
	Assignee *User `json:"assignee,omitempty" db:"-"`
}
