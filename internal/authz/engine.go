package authz

import (
	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
)

// Именованные причины отказа. Каждое правило из таблицы сигналит собственной
// ошибкой, чтобы вызывающая сторона могла показать точное сообщение.
var (
	ErrAdminOnly        = apperrors.Forbidden("действие доступно только администратору")
	ErrStaffOnly        = apperrors.Forbidden("действие доступно только администратору или ИТ-специалисту")
	ErrSelfDelete       = apperrors.Forbidden("нельзя удалить собственную учётную запись")
	ErrEmployeeAssignee = apperrors.Forbidden("сотрудник не может быть назначен исполнителем заявки")
	ErrEmployeeEscalate = apperrors.Forbidden("сотрудник не может эскалировать заявку")
	ErrCloseNotAllowed  = apperrors.Forbidden("закрыть заявку может только администратор, автор или исполнитель")
	ErrDeleteNotAllowed = apperrors.Forbidden("удалить заявку может только администратор или автор")
	ErrCommentNotAuthor = apperrors.Forbidden("изменять комментарий может только автор или администратор")
	ErrForeignCreator   = apperrors.Forbidden("заявку можно создать только от собственного имени")
	ErrTicketNotVisible = apperrors.Forbidden("заявка недоступна для просмотра")
	ErrUpdateNotAllowed = apperrors.Forbidden("изменять заявку может только администратор, автор или исполнитель")
	ErrUnknownAction    = apperrors.Forbidden("неизвестное действие")
)

// Can - единая точка вычисления правил авторизации. Чистая функция от
// (актор, действие, целевая сущность), без I/O. target зависит от действия:
// *entities.User для users:*, *entities.Ticket для tickets:*, и т.д.
// Возвращает nil при разрешении и именованную Forbidden-ошибку при отказе.
func Can(actor *entities.User, action string, target interface{}) error {
	switch action {
	case DepartmentsCreate, DepartmentsUpdate, DepartmentsDelete,
		UsersCreate, UsersUpdate:
		if actor.Role != entities.RoleAdmin {
			return ErrAdminOnly
		}
		return nil

	case UsersDelete:
		if actor.Role != entities.RoleAdmin {
			return ErrAdminOnly
		}
		// Сознательный вырез: даже администратор не удаляет сам себя.
		if t, ok := target.(*entities.User); ok && t.ID == actor.ID {
			return ErrSelfDelete
		}
		return nil

	case EquipmentCreate, EquipmentUpdate, EquipmentDelete, EquipmentAssign:
		if !actor.Role.IsStaff() {
			return ErrStaffOnly
		}
		return nil

	case TicketsCreate:
		// Создавать заявки может любой аутентифицированный принципал,
		// но только от собственного имени.
		if creatorID, ok := target.(uint64); ok && creatorID != actor.ID {
			return ErrForeignCreator
		}
		return nil

	case TicketsAssign:
		if !actor.Role.IsStaff() {
			return ErrStaffOnly
		}
		if assignee, ok := target.(*entities.User); ok && assignee.Role == entities.RoleEmployee {
			return ErrEmployeeAssignee
		}
		return nil

	case TicketsClose:
		ticket, ok := target.(*entities.Ticket)
		if !ok {
			return ErrUnknownAction
		}
		if actor.Role == entities.RoleAdmin ||
			ticket.CreatedBy == actor.ID ||
			(ticket.AssignedTo != nil && *ticket.AssignedTo == actor.ID) {
			return nil
		}
		return ErrCloseNotAllowed

	case TicketsEscalate:
		if actor.Role == entities.RoleEmployee {
			return ErrEmployeeEscalate
		}
		return nil

	case TicketsUpdate:
		ticket, ok := target.(*entities.Ticket)
		if !ok {
			return ErrUnknownAction
		}
		if actor.Role == entities.RoleAdmin ||
			ticket.CreatedBy == actor.ID ||
			(ticket.AssignedTo != nil && *ticket.AssignedTo == actor.ID) {
			return nil
		}
		return ErrUpdateNotAllowed

	case TicketsDelete:
		ticket, ok := target.(*entities.Ticket)
		if !ok {
			return ErrUnknownAction
		}
		if actor.Role == entities.RoleAdmin || ticket.CreatedBy == actor.ID {
			return nil
		}
		return ErrDeleteNotAllowed

	case CommentsCreate:
		return nil

	case CommentsUpdate, CommentsDelete:
		comment, ok := target.(*entities.Comment)
		if !ok {
			return ErrUnknownAction
		}
		if actor.Role == entities.RoleAdmin || comment.AuthorID == actor.ID {
			return nil
		}
		return ErrCommentNotAuthor
	}

	return ErrUnknownAction
}

// CanViewTicket - правило видимости одной заявки: сотрудник видит только
// собственные, персонал видит всё.
func CanViewTicket(actor *entities.User, ticket *entities.Ticket) error {
	if actor.Role.IsStaff() || ticket.CreatedBy == actor.ID {
		return nil
	}
	return ErrTicketNotVisible
}

// SeesOnlyOwnTickets сообщает, нужно ли сужать списочные выборки заявок
// до созданных самим актором.
func SeesOnlyOwnTickets(actor *entities.User) bool {
	return actor.Role == entities.RoleEmployee
}
