package entities

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSuccess, NotificationError, NotificationWarning, NotificationInfo:
		return true
	}
	return false
}

// Notification создается только системой в ответ на события жизненного цикла
// сущностей, пользователи напрямую их не создают.
type Notification struct {
	ID        uint64           `json:"id" db:"id"`
	UserID    uint64           `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt *time.Time       `json:"created_at" db:"created_at"`
}
