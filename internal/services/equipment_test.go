package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helpdesk-system/internal/authz"
	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/eventbus"
)

func newEquipmentService(userRepo *fakeUserRepo, equipmentRepo *fakeEquipmentRepo) *EquipmentService {
	return NewEquipmentService(equipmentRepo, userRepo, eventbus.New(zap.NewNop()), zap.NewNop())
}

func TestAssignEquipmentSetsInUse(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 1, Role: entities.RoleAdmin},
		entities.User{ID: 5, Role: entities.RoleEmployee},
	)

	// Назначение из любого исходного статуса приводит пару
	// (исполнитель, статус) к согласованному виду
	for _, initial := range []entities.EquipmentStatus{
		entities.EquipmentAvailable,
		entities.EquipmentBroken,
		entities.EquipmentUnderMaintenance,
		entities.EquipmentRetired,
		entities.EquipmentInUse,
	} {
		equipmentRepo := newFakeEquipmentRepo(entities.Equipment{ID: 7, SerialNumber: "SN-1", Status: initial})
		svc := newEquipmentService(userRepo, equipmentRepo)

		userID := uint64(5)
		updated, err := svc.AssignEquipment(ctxFor(1), 7, dto.AssignEquipmentDTO{UserID: &userID})
		require.NoError(t, err, string(initial))
		assert.Equal(t, entities.EquipmentInUse, updated.Status, string(initial))
		require.NotNil(t, updated.AssignedToID, string(initial))
		assert.Equal(t, uint64(5), *updated.AssignedToID, string(initial))
	}
}

func TestUnassignEquipmentSetsAvailable(t *testing.T) {
	userID := uint64(5)
	userRepo := newFakeUserRepo(entities.User{ID: 1, Role: entities.RoleAdmin})
	equipmentRepo := newFakeEquipmentRepo(entities.Equipment{ID: 7, Status: entities.EquipmentInUse, AssignedToID: &userID})
	svc := newEquipmentService(userRepo, equipmentRepo)

	updated, err := svc.AssignEquipment(ctxFor(1), 7, dto.AssignEquipmentDTO{UserID: nil})
	require.NoError(t, err)
	assert.Equal(t, entities.EquipmentAvailable, updated.Status)
	assert.Nil(t, updated.AssignedToID)
}

func TestAssignEquipmentRequiresStaff(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 5, Role: entities.RoleEmployee})
	equipmentRepo := newFakeEquipmentRepo(entities.Equipment{ID: 7, Status: entities.EquipmentAvailable})
	svc := newEquipmentService(userRepo, equipmentRepo)

	userID := uint64(5)
	_, err := svc.AssignEquipment(ctxFor(5), 7, dto.AssignEquipmentDTO{UserID: &userID})
	assert.ErrorIs(t, err, authz.ErrStaffOnly)
}

func TestAssignEquipmentToMissingUser(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 1, Role: entities.RoleAdmin})
	equipmentRepo := newFakeEquipmentRepo(entities.Equipment{ID: 7, Status: entities.EquipmentAvailable})
	svc := newEquipmentService(userRepo, equipmentRepo)

	missing := uint64(99)
	_, err := svc.AssignEquipment(ctxFor(1), 7, dto.AssignEquipmentDTO{UserID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Состояние оборудования не изменилось
	e, err := equipmentRepo.FindEquipment(ctxFor(1), 7)
	require.NoError(t, err)
	assert.Equal(t, entities.EquipmentAvailable, e.Status)
	assert.Nil(t, e.AssignedToID)
}

func TestDeleteEquipmentBlockedByTicketRefs(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 1, Role: entities.RoleAdmin})
	equipmentRepo := newFakeEquipmentRepo(entities.Equipment{ID: 7})
	equipmentRepo.tickets[7] = 3
	svc := newEquipmentService(userRepo, equipmentRepo)

	err := svc.DeleteEquipment(ctxFor(1), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	equipmentRepo.tickets[7] = 0
	assert.NoError(t, svc.DeleteEquipment(ctxFor(1), 7))
}
