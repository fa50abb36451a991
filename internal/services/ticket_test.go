package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helpdesk-system/internal/authz"
	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/eventbus"
)

func newTicketService(userRepo *fakeUserRepo, ticketRepo *fakeTicketRepo) *TicketService {
	return NewTicketService(ticketRepo, userRepo, eventbus.New(zap.NewNop()), zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestCreateTicketSelfAttribution(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 5, Role: entities.RoleEmployee})
	svc := newTicketService(userRepo, newFakeTicketRepo())

	created, err := svc.CreateTicket(ctxFor(5), dto.CreateTicketDTO{Title: "Сломан принтер"})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), created.CreatedBy)
	assert.Equal(t, entities.TicketOpen, created.Status)
	assert.Equal(t, entities.PriorityNormal, created.Priority, "приоритет по умолчанию - normal")
}

func TestCreateTicketForeignCreatorRejected(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 5, Role: entities.RoleEmployee})
	svc := newTicketService(userRepo, newFakeTicketRepo())

	foreign := uint64(7)
	_, err := svc.CreateTicket(ctxFor(5), dto.CreateTicketDTO{Title: "Сломан принтер", CreatedBy: &foreign})
	assert.ErrorIs(t, err, authz.ErrForeignCreator)
}

func TestCreateTicketInheritsCreatorDepartment(t *testing.T) {
	dep := uint64(10)
	userRepo := newFakeUserRepo(entities.User{ID: 5, Role: entities.RoleEmployee, DepartmentID: &dep})
	svc := newTicketService(userRepo, newFakeTicketRepo())

	created, err := svc.CreateTicket(ctxFor(5), dto.CreateTicketDTO{Title: "Сломан принтер"})
	require.NoError(t, err)
	require.NotNil(t, created.DepartmentID)
	assert.Equal(t, dep, *created.DepartmentID)
}

func TestGetTicketsScopesEmployeeToOwn(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 2, Role: entities.RoleITPersonnel},
		entities.User{ID: 5, Role: entities.RoleEmployee},
	)
	ticketRepo := newFakeTicketRepo(
		entities.Ticket{ID: 1, CreatedBy: 5},
		entities.Ticket{ID: 2, CreatedBy: 9},
	)
	svc := newTicketService(userRepo, ticketRepo)

	own, total, err := svc.GetTickets(ctxFor(5), testFilter())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, own, 1)
	assert.Equal(t, uint64(1), own[0].ID)

	all, total, err := svc.GetTickets(ctxFor(2), testFilter())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, all, 2)
}

func TestFindTicketVisibility(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 5, Role: entities.RoleEmployee},
		entities.User{ID: 9, Role: entities.RoleEmployee},
	)
	ticketRepo := newFakeTicketRepo(entities.Ticket{ID: 1, CreatedBy: 5})
	svc := newTicketService(userRepo, ticketRepo)

	_, err := svc.FindTicket(ctxFor(5), 1)
	assert.NoError(t, err)

	_, err = svc.FindTicket(ctxFor(9), 1)
	assert.ErrorIs(t, err, authz.ErrTicketNotVisible)
}

func TestAssignTicketRejectsEmployeeAssignee(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 1, Role: entities.RoleAdmin},
		entities.User{ID: 5, Role: entities.RoleEmployee},
	)
	ticketRepo := newFakeTicketRepo(entities.Ticket{ID: 1, CreatedBy: 5})
	svc := newTicketService(userRepo, ticketRepo)

	assignee := uint64(5)
	_, err := svc.AssignTicket(ctxFor(1), 1, dto.AssignTicketDTO{UserID: &assignee})
	assert.ErrorIs(t, err, authz.ErrEmployeeAssignee)
}

func TestAssignAndUnassignTicket(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 1, Role: entities.RoleAdmin},
		entities.User{ID: 2, Role: entities.RoleITPersonnel},
	)
	ticketRepo := newFakeTicketRepo(entities.Ticket{ID: 1, CreatedBy: 9})
	svc := newTicketService(userRepo, ticketRepo)

	assignee := uint64(2)
	updated, err := svc.AssignTicket(ctxFor(1), 1, dto.AssignTicketDTO{UserID: &assignee})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, uint64(2), *updated.AssignedTo)

	updated, err = svc.AssignTicket(ctxFor(1), 1, dto.AssignTicketDTO{UserID: nil})
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedTo)
}

func TestCloseTicketByParticipants(t *testing.T) {
	assignee := uint64(2)
	userRepo := newFakeUserRepo(
		entities.User{ID: 2, Role: entities.RoleITPersonnel},
		entities.User{ID: 5, Role: entities.RoleEmployee},
		entities.User{ID: 9, Role: entities.RoleITPersonnel},
	)
	ticketRepo := newFakeTicketRepo(entities.Ticket{ID: 1, Status: entities.TicketInProgress, CreatedBy: 5, AssignedTo: &assignee})
	svc := newTicketService(userRepo, ticketRepo)

	// Посторонний, пусть и из персонала, закрыть не может
	_, err := svc.CloseTicket(ctxFor(9), 1)
	assert.ErrorIs(t, err, authz.ErrCloseNotAllowed)

	closed, err := svc.CloseTicket(ctxFor(5), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.TicketClosed, closed.Status)
}

func TestEscalateTicket(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 2, Role: entities.RoleITPersonnel},
		entities.User{ID: 5, Role: entities.RoleEmployee},
	)
	ticketRepo := newFakeTicketRepo(entities.Ticket{ID: 1, Status: entities.TicketOpen, Priority: entities.PriorityLow, CreatedBy: 5})
	svc := newTicketService(userRepo, ticketRepo)

	_, err := svc.EscalateTicket(ctxFor(5), 1)
	assert.ErrorIs(t, err, authz.ErrEmployeeEscalate, "сотрудник не эскалирует даже свою заявку")

	escalated, err := svc.EscalateTicket(ctxFor(2), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.TicketEscalated, escalated.Status)
	assert.Equal(t, entities.PriorityNormal, escalated.Priority)

	// Повторная эскалация продолжает поднимать приоритет до потолка
	escalated, err = svc.EscalateTicket(ctxFor(2), 1)
	require.NoError(t, err)
	assert.Equal(t, entities.PriorityHigh, escalated.Priority)
}

func TestUpdateTicketCloseViaStatusRequiresCloseRule(t *testing.T) {
	assignee := uint64(2)
	userRepo := newFakeUserRepo(
		entities.User{ID: 1, Role: entities.RoleAdmin},
		entities.User{ID: 2, Role: entities.RoleITPersonnel},
	)
	ticketRepo := newFakeTicketRepo(entities.Ticket{ID: 1, Status: entities.TicketInProgress, CreatedBy: 9, AssignedTo: &assignee})
	svc := newTicketService(userRepo, ticketRepo)

	updated, err := svc.UpdateTicket(ctxFor(2), 1, dto.UpdateTicketDTO{Status: strPtr("closed")})
	require.NoError(t, err)
	assert.Equal(t, entities.TicketClosed, updated.Status)
}

func TestDeleteTicket(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 2, Role: entities.RoleITPersonnel},
		entities.User{ID: 5, Role: entities.RoleEmployee},
	)
	ticketRepo := newFakeTicketRepo(entities.Ticket{ID: 1, CreatedBy: 5})
	svc := newTicketService(userRepo, ticketRepo)

	assert.ErrorIs(t, svc.DeleteTicket(ctxFor(2), 1), authz.ErrDeleteNotAllowed)
	assert.NoError(t, svc.DeleteTicket(ctxFor(5), 1))
}
