package events

import (
	"helpdesk-system/internal/entities"
)

// Имена событий, на которые подписывается слушатель уведомлений.
const (
	TicketCreatedName       = "ticket.created"
	TicketStatusChangedName = "ticket.status_changed"
	TicketCommentAddedName  = "ticket.comment_added"
	EquipmentChangedName    = "equipment.changed"
	DepartmentChangedName   = "department.changed"
	UserChangedName         = "user.changed"
	ProfileUpdatedName      = "user.profile_updated"
)

// ChangeAction уточняет, что именно произошло с сущностью.
type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// TicketCreatedEvent возникает после успешного создания заявки.
type TicketCreatedEvent struct {
	Ticket entities.Ticket
	Actor  entities.User
}

func (e TicketCreatedEvent) Name() string { return TicketCreatedName }

// TicketStatusChangedEvent возникает при любом изменении статуса заявки,
// включая закрытие и эскалацию.
type TicketStatusChangedEvent struct {
	Ticket    entities.Ticket
	OldStatus entities.TicketStatus
	Actor     entities.User
}

func (e TicketStatusChangedEvent) Name() string { return TicketStatusChangedName }

// TicketCommentAddedEvent возникает после добавления комментария к заявке.
type TicketCommentAddedEvent struct {
	Ticket  entities.Ticket
	Comment entities.Comment
	Actor   entities.User
}

func (e TicketCommentAddedEvent) Name() string { return TicketCommentAddedName }

// EquipmentChangedEvent - создание/обновление/удаление оборудования.
type EquipmentChangedEvent struct {
	Equipment entities.Equipment
	Action    ChangeAction
	Actor     entities.User
}

func (e EquipmentChangedEvent) Name() string { return EquipmentChangedName }

// DepartmentChangedEvent - создание/обновление/удаление департамента.
type DepartmentChangedEvent struct {
	Department entities.Department
	Action     ChangeAction
	Actor      entities.User
}

func (e DepartmentChangedEvent) Name() string { return DepartmentChangedName }

// UserChangedEvent - создание/удаление учётной записи администратором.
type UserChangedEvent struct {
	User   entities.User
	Action ChangeAction
	Actor  entities.User
}

func (e UserChangedEvent) Name() string { return UserChangedName }

// ProfileUpdatedEvent - пользователь сам изменил профиль или пароль.
type ProfileUpdatedEvent struct {
	User entities.User
}

func (e ProfileUpdatedEvent) Name() string { return ProfileUpdatedName }
