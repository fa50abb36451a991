package notify

import (
	"fmt"

	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/pkg/eventbus"
)

// Message - одно вычисленное уведомление: получатель и содержимое будущей
// строки в таблице notifications.
type Message struct {
	UserID uint64
	Type   entities.NotificationType
	Title  string
	Text   string
}

// Route - чистая функция маршрутизации уведомлений: по событию и полному
// списку пользователей вычисляет упорядоченный набор получателей без
// дубликатов. Никакого скрытого состояния: результат полностью определяется
// аргументами.
func Route(event eventbus.Event, roster []entities.User) []Message {
	switch e := event.(type) {
	case events.TicketCreatedEvent:
		return routeTicketCreated(e, roster)
	case events.TicketStatusChangedEvent:
		return routeTicketStatusChanged(e, roster)
	case events.TicketCommentAddedEvent:
		return routeTicketCommentAdded(e, roster)
	case events.EquipmentChangedEvent:
		return routeEquipmentChanged(e, roster)
	case events.DepartmentChangedEvent:
		return routeDepartmentChanged(e, roster)
	case events.UserChangedEvent:
		return routeUserChanged(e, roster)
	case events.ProfileUpdatedEvent:
		return []Message{{
			UserID: e.User.ID,
			Type:   entities.NotificationSuccess,
			Title:  "Профиль обновлён",
			Text:   "Данные вашего профиля были успешно изменены.",
		}}
	}
	return nil
}

// routeTicketCreated - объединение трёх независимых условий: персонал,
// целевой департамент, департамент-источник. Пользователь, подошедший по
// нескольким условиям, попадает в результат один раз. Автор исключается.
func routeTicketCreated(e events.TicketCreatedEvent, roster []entities.User) []Message {
	ticket := e.Ticket
	seen := make(map[uint64]struct{}, len(roster))
	var out []Message

	for _, u := range roster {
		if u.ID == ticket.CreatedBy {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}

		matches := u.Role.IsStaff()
		if !matches && ticket.TargetDepartmentID != nil && u.DepartmentID != nil &&
			*u.DepartmentID == *ticket.TargetDepartmentID {
			matches = true
		}
		if !matches && ticket.DepartmentID != nil && u.DepartmentID != nil &&
			*u.DepartmentID == *ticket.DepartmentID {
			matches = true
		}
		if !matches {
			continue
		}

		seen[u.ID] = struct{}{}
		out = append(out, Message{
			UserID: u.ID,
			Type:   entities.NotificationInfo,
			Title:  "Новая заявка",
			Text:   fmt.Sprintf("Создана заявка №%d «%s».", ticket.ID, ticket.Title),
		})
	}
	return out
}

// routeTicketStatusChanged - получатели {автор, исполнитель} без фильтра по
// ролям. Автор действия из набора не исключается.
func routeTicketStatusChanged(e events.TicketStatusChangedEvent, roster []entities.User) []Message {
	ticket := e.Ticket

	msgType := entities.NotificationInfo
	switch ticket.Status {
	case entities.TicketClosed, entities.TicketResolved:
		msgType = entities.NotificationSuccess
	case entities.TicketEscalated:
		msgType = entities.NotificationWarning
	}

	text := fmt.Sprintf("Статус заявки №%d «%s» изменён: %s → %s.",
		ticket.ID, ticket.Title, e.OldStatus, ticket.Status)

	return collectParticipants(ticket, roster, nil, msgType, "Статус заявки изменён", text)
}

// routeTicketCommentAdded - получатели {автор, исполнитель} минус автор
// комментария.
func routeTicketCommentAdded(e events.TicketCommentAddedEvent, roster []entities.User) []Message {
	ticket := e.Ticket
	exclude := e.Comment.AuthorID
	text := fmt.Sprintf("Новый комментарий к заявке №%d «%s».", ticket.ID, ticket.Title)
	return collectParticipants(ticket, roster, &exclude, entities.NotificationInfo, "Новый комментарий", text)
}

// collectParticipants собирает автора и исполнителя заявки в порядке ростера,
// без дубликатов (для заявок, где автор сам исполнитель).
func collectParticipants(ticket entities.Ticket, roster []entities.User, exclude *uint64, msgType entities.NotificationType, title, text string) []Message {
	participant := func(id uint64) bool {
		if exclude != nil && id == *exclude {
			return false
		}
		if id == ticket.CreatedBy {
			return true
		}
		return ticket.AssignedTo != nil && *ticket.AssignedTo == id
	}

	seen := make(map[uint64]struct{}, 2)
	var out []Message
	for _, u := range roster {
		if !participant(u.ID) {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, Message{UserID: u.ID, Type: msgType, Title: title, Text: text})
	}
	return out
}

func routeEquipmentChanged(e events.EquipmentChangedEvent, roster []entities.User) []Message {
	msgType := entities.NotificationInfo
	if e.Action == events.ActionDeleted {
		msgType = entities.NotificationWarning
	}
	text := fmt.Sprintf("Оборудование «%s» (s/n %s): %s.", e.Equipment.Name, e.Equipment.SerialNumber, actionLabel(e.Action))

	var out []Message
	for _, u := range roster {
		if !u.Role.IsStaff() {
			continue
		}
		out = append(out, Message{UserID: u.ID, Type: msgType, Title: "Оборудование", Text: text})
	}
	return out
}

func routeDepartmentChanged(e events.DepartmentChangedEvent, roster []entities.User) []Message {
	msgType := entities.NotificationInfo
	if e.Action == events.ActionDeleted {
		msgType = entities.NotificationWarning
	}
	text := fmt.Sprintf("Департамент «%s»: %s.", e.Department.Name, actionLabel(e.Action))
	return adminsOnly(roster, msgType, "Департамент", text)
}

func routeUserChanged(e events.UserChangedEvent, roster []entities.User) []Message {
	msgType := entities.NotificationInfo
	if e.Action == events.ActionDeleted {
		msgType = entities.NotificationWarning
	}
	text := fmt.Sprintf("Учётная запись %s (%s): %s.", e.User.Fio, e.User.Email, actionLabel(e.Action))
	return adminsOnly(roster, msgType, "Пользователи", text)
}

func adminsOnly(roster []entities.User, msgType entities.NotificationType, title, text string) []Message {
	var out []Message
	for _, u := range roster {
		if u.Role != entities.RoleAdmin {
			continue
		}
		out = append(out, Message{UserID: u.ID, Type: msgType, Title: title, Text: text})
	}
	return out
}

func actionLabel(a events.ChangeAction) string {
	switch a {
	case events.ActionCreated:
		return "создано"
	case events.ActionUpdated:
		return "обновлено"
	case events.ActionDeleted:
		return "удалено"
	}
	return string(a)
}
