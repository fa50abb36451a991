package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"helpdesk-system/internal/authz"
	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/eventbus"
)

func newUserService(userRepo *fakeUserRepo) *UserService {
	return NewUserService(userRepo, eventbus.New(zap.NewNop()), zap.NewNop())
}

func TestCreateUserHashesPassword(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 1, Role: entities.RoleAdmin})
	svc := newUserService(userRepo)

	created, err := svc.CreateUser(ctxFor(1), dto.CreateUserDTO{
		Fio:      "Петрова Анна Сергеевна",
		Email:    "petrova@helpdesk.local",
		Password: "secret12345",
		Role:     "employee",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret12345", created.Password, "пароль не хранится открытым текстом")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret12345")))
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 2, Role: entities.RoleITPersonnel})
	svc := newUserService(userRepo)

	_, err := svc.CreateUser(ctxFor(2), dto.CreateUserDTO{Fio: "Кто-то", Email: "x@y.z", Password: "secret12345", Role: "employee"})
	assert.ErrorIs(t, err, authz.ErrAdminOnly)
}

func TestDeleteUserSelfForbidden(t *testing.T) {
	userRepo := newFakeUserRepo(entities.User{ID: 1, Role: entities.RoleAdmin})
	svc := newUserService(userRepo)

	assert.ErrorIs(t, svc.DeleteUser(ctxFor(1), 1), authz.ErrSelfDelete)
}

func TestBulkDeleteUsersPartialFailure(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 1, Role: entities.RoleAdmin},
		entities.User{ID: 5, Role: entities.RoleEmployee},
		entities.User{ID: 6, Role: entities.RoleEmployee},
	)
	svc := newUserService(userRepo)

	// id 1 - сам актор (запрещено), id 5 и 6 - обычные, id 99 - не существует
	results, err := svc.BulkDeleteUsers(ctxFor(1), dto.BulkDeleteUsersDTO{IDs: []uint64{5, 1, 99, 6}})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.True(t, results[0].Deleted)
	assert.Empty(t, results[0].Error)

	assert.False(t, results[1].Deleted, "самоудаление отклонено")
	assert.NotEmpty(t, results[1].Error)

	assert.False(t, results[2].Deleted, "несуществующий id")
	assert.NotEmpty(t, results[2].Error)

	// Отказ по предыдущим id не прервал обработку
	assert.True(t, results[3].Deleted)

	assert.ElementsMatch(t, []uint64{5, 6}, userRepo.deleted)
}

func TestBulkDeleteUsersRequiresAdminPerItem(t *testing.T) {
	userRepo := newFakeUserRepo(
		entities.User{ID: 2, Role: entities.RoleITPersonnel},
		entities.User{ID: 5, Role: entities.RoleEmployee},
	)
	svc := newUserService(userRepo)

	results, err := svc.BulkDeleteUsers(ctxFor(2), dto.BulkDeleteUsersDTO{IDs: []uint64{5}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Deleted)
	assert.Empty(t, userRepo.deleted)
}
