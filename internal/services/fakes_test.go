package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/contextkeys"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

// ctxFor кладёт идентификатор актора в контекст так же, как это делает
// AuthMiddleware.
func ctxFor(userID uint64) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
}

func testFilter() types.Filter {
	return types.Filter{Limit: 10}
}

// --- fakeUserRepo ---

type fakeUserRepo struct {
	users     map[uint64]entities.User
	deleted   []uint64
	deleteErr map[uint64]error
}

func newFakeUserRepo(users ...entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint64]entities.User), deleteErr: make(map[uint64]error)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _ types.Filter) ([]entities.User, uint64, error) {
	all, _ := r.GetAllUsers(context.Background())
	return all, uint64(len(all)), nil
}

func (r *fakeUserRepo) GetAllUsers(_ context.Context) ([]entities.User, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) FindUser(_ context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user entities.User) (*entities.User, error) {
	user.ID = uint64(len(r.users) + 1)
	r.users[user.ID] = user
	return &user, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Fio != nil {
		u.Fio = *payload.Fio
	}
	if payload.Email != nil {
		u.Email = *payload.Email
	}
	if payload.Role != nil {
		u.Role = entities.Role(*payload.Role)
	}
	r.users[id] = u
	return &u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uint64, fio, email *string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if fio != nil {
		u.Fio = *fio
	}
	if email != nil {
		u.Email = *email
	}
	r.users[id] = u
	return &u, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uint64) error {
	if err, ok := r.deleteErr[id]; ok {
		return err
	}
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

var _ repositories.UserRepositoryInterface = (*fakeUserRepo)(nil)

// --- fakeTicketRepo ---

type fakeTicketRepo struct {
	tickets map[uint64]entities.Ticket
	nextID  uint64
}

func newFakeTicketRepo(tickets ...entities.Ticket) *fakeTicketRepo {
	r := &fakeTicketRepo{tickets: make(map[uint64]entities.Ticket), nextID: 100}
	for _, tk := range tickets {
		r.tickets[tk.ID] = tk
	}
	return r
}

func (r *fakeTicketRepo) GetTickets(_ context.Context, _ types.Filter, createdBy *uint64) ([]entities.Ticket, uint64, error) {
	var out []entities.Ticket
	for _, tk := range r.tickets {
		if createdBy != nil && tk.CreatedBy != *createdBy {
			continue
		}
		out = append(out, tk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, uint64(len(out)), nil
}

func (r *fakeTicketRepo) FindTicket(_ context.Context, id uint64) (*entities.Ticket, error) {
	tk, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &tk, nil
}

func (r *fakeTicketRepo) CreateTicket(_ context.Context, ticket entities.Ticket) (*entities.Ticket, error) {
	r.nextID++
	ticket.ID = r.nextID
	now := time.Now()
	ticket.CreatedAt = &now
	r.tickets[ticket.ID] = ticket
	return &ticket, nil
}

func (r *fakeTicketRepo) UpdateTicket(_ context.Context, id uint64, upd repositories.TicketUpdate) (*entities.Ticket, error) {
	tk, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if upd.Title != nil {
		tk.Title = *upd.Title
	}
	if upd.Description != nil {
		tk.Description = *upd.Description
	}
	if upd.Status != nil {
		tk.Status = *upd.Status
	}
	if upd.Priority != nil {
		tk.Priority = *upd.Priority
	}
	if upd.AssignedTo != nil {
		tk.AssignedTo = *upd.AssignedTo
	}
	if upd.DepartmentID != nil {
		tk.DepartmentID = upd.DepartmentID
	}
	if upd.TargetDepartmentID != nil {
		tk.TargetDepartmentID = upd.TargetDepartmentID
	}
	if upd.EquipmentID != nil {
		tk.EquipmentID = upd.EquipmentID
	}
	r.tickets[id] = tk
	return &tk, nil
}

func (r *fakeTicketRepo) DeleteTicket(_ context.Context, id uint64) error {
	if _, ok := r.tickets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

var _ repositories.TicketRepositoryInterface = (*fakeTicketRepo)(nil)

// --- fakeEquipmentRepo ---

type fakeEquipmentRepo struct {
	equipment map[uint64]entities.Equipment
	tickets   map[uint64]uint64 // id оборудования -> количество заявок
}

func newFakeEquipmentRepo(items ...entities.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{equipment: make(map[uint64]entities.Equipment), tickets: make(map[uint64]uint64)}
	for _, e := range items {
		r.equipment[e.ID] = e
	}
	return r
}

func (r *fakeEquipmentRepo) GetEquipments(_ context.Context, _ types.Filter) ([]entities.Equipment, uint64, error) {
	var out []entities.Equipment
	for _, e := range r.equipment {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, uint64(len(out)), nil
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(_ context.Context, equipment entities.Equipment) (*entities.Equipment, error) {
	equipment.ID = uint64(len(r.equipment) + 1)
	r.equipment[equipment.ID] = equipment
	return &equipment, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(_ context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Name != nil {
		e.Name = *payload.Name
	}
	if payload.Status != nil {
		e.Status = entities.EquipmentStatus(*payload.Status)
	}
	r.equipment[id] = e
	return &e, nil
}

func (r *fakeEquipmentRepo) UpdateAssignment(_ context.Context, id uint64, userID *uint64, status entities.EquipmentStatus) (*entities.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e.AssignedToID = userID
	e.Status = status
	r.equipment[id] = e
	return &e, nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(_ context.Context, id uint64) error {
	if _, ok := r.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipment, id)
	return nil
}

func (r *fakeEquipmentRepo) CountTicketsForEquipment(_ context.Context, id uint64) (uint64, error) {
	return r.tickets[id], nil
}

var _ repositories.EquipmentRepositoryInterface = (*fakeEquipmentRepo)(nil)

// --- fakeDepartmentRepo ---

type fakeDepartmentRepo struct {
	departments map[uint64]entities.Department
	users       map[uint64]uint64
	equipment   map[uint64]uint64
}

func newFakeDepartmentRepo(departments ...entities.Department) *fakeDepartmentRepo {
	r := &fakeDepartmentRepo{
		departments: make(map[uint64]entities.Department),
		users:       make(map[uint64]uint64),
		equipment:   make(map[uint64]uint64),
	}
	for _, d := range departments {
		r.departments[d.ID] = d
	}
	return r
}

func (r *fakeDepartmentRepo) GetDepartments(_ context.Context, _ types.Filter) ([]entities.Department, uint64, error) {
	var out []entities.Department
	for _, d := range r.departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, uint64(len(out)), nil
}

func (r *fakeDepartmentRepo) GetDepartmentStats(_ context.Context) ([]dto.DepartmentStatsDTO, error) {
	return nil, nil
}

func (r *fakeDepartmentRepo) FindDepartment(_ context.Context, id uint64) (*entities.Department, error) {
	d, ok := r.departments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDepartmentRepo) CreateDepartment(_ context.Context, department entities.Department) (*entities.Department, error) {
	department.ID = uint64(len(r.departments) + 1)
	r.departments[department.ID] = department
	return &department, nil
}

func (r *fakeDepartmentRepo) UpdateDepartment(_ context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*entities.Department, error) {
	d, ok := r.departments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Name != nil {
		d.Name = *payload.Name
	}
	r.departments[id] = d
	return &d, nil
}

func (r *fakeDepartmentRepo) DeleteDepartment(_ context.Context, id uint64) error {
	if _, ok := r.departments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.departments, id)
	return nil
}

func (r *fakeDepartmentRepo) CountDependents(_ context.Context, id uint64) (uint64, uint64, error) {
	return r.users[id], r.equipment[id], nil
}

var _ repositories.DepartmentRepositoryInterface = (*fakeDepartmentRepo)(nil)

// --- fakeNotificationRepo ---

type fakeNotificationRepo struct {
	created   []entities.Notification
	createErr error
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n entities.Notification) (*entities.Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	n.ID = uint64(len(r.created) + 1)
	r.created = append(r.created, n)
	return &n, nil
}

func (r *fakeNotificationRepo) GetNotificationsByUser(_ context.Context, userID uint64, onlyUnread bool) ([]entities.Notification, error) {
	var out []entities.Notification
	for _, n := range r.created {
		if n.UserID != userID {
			continue
		}
		if onlyUnread && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) FindNotification(_ context.Context, id uint64) (*entities.Notification, error) {
	for _, n := range r.created {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uint64) error {
	for i, n := range r.created {
		if n.ID == id {
			r.created[i].Read = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint64) error {
	for i, n := range r.created {
		if n.UserID == userID {
			r.created[i].Read = true
		}
	}
	return nil
}

var _ repositories.NotificationRepositoryInterface = (*fakeNotificationRepo)(nil)

// --- fakeCacheRepo ---

type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	r.values[key] = fmt.Sprintf("%v", value)
	return nil
}

func (r *fakeCacheRepo) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

func (r *fakeCacheRepo) Incr(_ context.Context, key string) (int64, error) {
	var n int64
	fmt.Sscanf(r.values[key], "%d", &n)
	n++
	r.values[key] = fmt.Sprintf("%d", n)
	return n, nil
}

func (r *fakeCacheRepo) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

var _ repositories.CacheRepositoryInterface = (*fakeCacheRepo)(nil)
