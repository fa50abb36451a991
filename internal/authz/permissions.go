package authz

// --- СПИСОК ВСЕХ ДЕЙСТВИЙ, ПРОХОДЯЩИХ ЧЕРЕЗ ПРАВИЛА ---

const (
	// Департаменты
	DepartmentsCreate = "departments:create"
	DepartmentsUpdate = "departments:update"
	DepartmentsDelete = "departments:delete"

	// Пользователи
	UsersCreate = "users:create"
	UsersUpdate = "users:update"
	UsersDelete = "users:delete"

	// Оборудование
	EquipmentCreate = "equipment:create"
	EquipmentUpdate = "equipment:update"
	EquipmentDelete = "equipment:delete"
	EquipmentAssign = "equipment:assign"

	// Заявки
	TicketsCreate   = "tickets:create"
	TicketsUpdate   = "tickets:update"
	TicketsAssign   = "tickets:assign"
	TicketsClose    = "tickets:close"
	TicketsEscalate = "tickets:escalate"
	TicketsDelete   = "tickets:delete"

	// Комментарии
	CommentsCreate = "comments:create"
	CommentsUpdate = "comments:update"
	CommentsDelete = "comments:delete"
)
