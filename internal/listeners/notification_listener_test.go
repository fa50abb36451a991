package listeners

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/internal/repositories"
)

// Фейки переопределяют только то, что нужно слушателю; остальные методы
// интерфейса остаются за встроенным nil и в тестах не вызываются.

type fakeUserRepo struct {
	repositories.UserRepositoryInterface
	roster []entities.User
	err    error
}

func (f *fakeUserRepo) GetAllUsers(_ context.Context) ([]entities.User, error) {
	return f.roster, f.err
}

type fakeNotificationRepo struct {
	repositories.NotificationRepositoryInterface
	created []entities.Notification
	failFor map[uint64]bool
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n entities.Notification) (*entities.Notification, error) {
	if f.failFor[n.UserID] {
		return nil, fmt.Errorf("хранилище недоступно")
	}
	f.created = append(f.created, n)
	return &n, nil
}

func TestHandlePersistsRoutedNotifications(t *testing.T) {
	userRepo := &fakeUserRepo{roster: []entities.User{
		{ID: 1, Role: entities.RoleAdmin},
		{ID: 2, Role: entities.RoleITPersonnel},
		{ID: 5, Role: entities.RoleEmployee},
	}}
	notificationRepo := &fakeNotificationRepo{}
	l := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	ticket := entities.Ticket{ID: 100, Title: "Сломан принтер", CreatedBy: 5}
	err := l.Handle(context.Background(), events.TicketCreatedEvent{Ticket: ticket})
	require.NoError(t, err)

	require.Len(t, notificationRepo.created, 2)
	assert.Equal(t, uint64(1), notificationRepo.created[0].UserID)
	assert.Equal(t, uint64(2), notificationRepo.created[1].UserID)
	assert.Equal(t, entities.NotificationInfo, notificationRepo.created[0].Type)
}

func TestHandleContinuesAfterPersistFailure(t *testing.T) {
	userRepo := &fakeUserRepo{roster: []entities.User{
		{ID: 1, Role: entities.RoleAdmin},
		{ID: 2, Role: entities.RoleITPersonnel},
	}}
	notificationRepo := &fakeNotificationRepo{failFor: map[uint64]bool{1: true}}
	l := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	ticket := entities.Ticket{ID: 100, CreatedBy: 5}
	err := l.Handle(context.Background(), events.TicketCreatedEvent{Ticket: ticket})

	// Сбой по одному получателю не валит обработку события
	assert.NoError(t, err)
	require.Len(t, notificationRepo.created, 1)
	assert.Equal(t, uint64(2), notificationRepo.created[0].UserID)
}

func TestHandleFailsWhenRosterUnavailable(t *testing.T) {
	userRepo := &fakeUserRepo{err: fmt.Errorf("база недоступна")}
	notificationRepo := &fakeNotificationRepo{}
	l := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	err := l.Handle(context.Background(), events.TicketCreatedEvent{Ticket: entities.Ticket{ID: 100}})
	assert.Error(t, err)
	assert.Empty(t, notificationRepo.created)
}
