package entities

import "helpdesk-system/pkg/types"

type Comment struct {
	ID       uint64 `json:"id" db:"id"`
	TicketID uint64 `json:"ticket_id" db:"ticket_id"`
	AuthorID uint64 `json:"author_id" db:"author_id"`
	Content  string `json:"content" db:"content"`

	types.BaseEntity

	Author *User `json:"author,omitempty" db:"-"`
}
