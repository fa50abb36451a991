package listeners

import (
	"context"

	"go.uber.org/zap"

	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/internal/notify"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/eventbus"
)

// NotificationListener превращает доменные события в записи уведомлений.
// Работает по принципу "fire-and-forget": любая ошибка здесь логируется и
// не влияет на операцию, породившую событие.
type NotificationListener struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationListener(notificationRepo repositories.NotificationRepositoryInterface, userRepo repositories.UserRepositoryInterface, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Register подписывает слушателя на все события, по которым рассылаются
// уведомления.
func (l *NotificationListener) Register(bus *eventbus.Bus) {
	names := []string{
		events.TicketCreatedName,
		events.TicketStatusChangedName,
		events.TicketCommentAddedName,
		events.EquipmentChangedName,
		events.DepartmentChangedName,
		events.UserChangedName,
		events.ProfileUpdatedName,
	}
	for _, name := range names {
		bus.Subscribe(name, l.Handle)
	}
}

func (l *NotificationListener) Handle(ctx context.Context, event eventbus.Event) error {
	roster, err := l.userRepo.GetAllUsers(ctx)
	if err != nil {
		l.logger.Error("Не удалось загрузить пользователей для рассылки уведомлений",
			zap.String("event", event.Name()), zap.Error(err))
		return err
	}

	for _, msg := range notify.Route(event, roster) {
		notification := entities.Notification{
			UserID:  msg.UserID,
			Type:    msg.Type,
			Title:   msg.Title,
			Message: msg.Text,
		}
		if _, err := l.notificationRepo.CreateNotification(ctx, notification); err != nil {
			l.logger.Error("Не удалось сохранить уведомление",
				zap.String("event", event.Name()),
				zap.Uint64("userId", msg.UserID),
				zap.Error(err))
		}
	}
	return nil
}
