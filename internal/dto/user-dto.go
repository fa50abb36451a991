package dto

type CreateUserDTO struct {
	Fio          string  `json:"fio" validate:"required,min=3"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	Role         string  `json:"role" validate:"required,oneof=admin it_personnel employee"`
	DepartmentID *uint64 `json:"department_id"`
}

type UpdateUserDTO struct {
	Fio          *string `json:"fio" validate:"omitempty,min=3"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Role         *string `json:"role" validate:"omitempty,oneof=admin it_personnel employee"`
	DepartmentID *uint64 `json:"department_id"`
}

type BulkDeleteUsersDTO struct {
	IDs []uint64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// BulkDeleteResultDTO - результат по одному элементу пакетного удаления.
// Частичный отказ не откатывает уже удалённые записи.
type BulkDeleteResultDTO struct {
	ID      uint64 `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}
