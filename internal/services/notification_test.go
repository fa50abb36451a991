package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
)

func TestMarkReadOwnershipCheck(t *testing.T) {
	repo := &fakeNotificationRepo{}
	_, err := repo.CreateNotification(ctxFor(5), entities.Notification{UserID: 5, Title: "Новая заявка"})
	require.NoError(t, err)
	svc := NewNotificationService(repo)

	// Чужое уведомление отметить нельзя
	err = svc.MarkRead(ctxFor(9), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	require.NoError(t, svc.MarkRead(ctxFor(5), 1))
	assert.True(t, repo.created[0].Read)
}

func TestGetMyNotificationsOnlyUnread(t *testing.T) {
	repo := &fakeNotificationRepo{}
	_, _ = repo.CreateNotification(ctxFor(5), entities.Notification{UserID: 5, Title: "Первое"})
	_, _ = repo.CreateNotification(ctxFor(5), entities.Notification{UserID: 5, Title: "Второе"})
	_, _ = repo.CreateNotification(ctxFor(5), entities.Notification{UserID: 9, Title: "Чужое"})
	svc := NewNotificationService(repo)

	require.NoError(t, svc.MarkRead(ctxFor(5), 1))

	all, err := svc.GetMyNotifications(ctxFor(5), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread, err := svc.GetMyNotifications(ctxFor(5), true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Второе", unread[0].Title)
}

func TestMarkAllRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	_, _ = repo.CreateNotification(ctxFor(5), entities.Notification{UserID: 5})
	_, _ = repo.CreateNotification(ctxFor(5), entities.Notification{UserID: 5})
	_, _ = repo.CreateNotification(ctxFor(5), entities.Notification{UserID: 9})
	svc := NewNotificationService(repo)

	require.NoError(t, svc.MarkAllRead(ctxFor(5)))

	unread, err := svc.GetMyNotifications(ctxFor(5), true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	other, err := svc.GetMyNotifications(ctxFor(9), true)
	require.NoError(t, err)
	assert.Len(t, other, 1, "чужие уведомления не тронуты")
}
