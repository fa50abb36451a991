package dto

import "time"

// TicketReportRowDTO - строка сводного отчёта по заявкам.
type TicketReportRowDTO struct {
	ID         uint64     `json:"id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	Creator    string     `json:"creator"`
	Assignee   string     `json:"assignee"`
	Department string     `json:"department"`
	CreatedAt  *time.Time `json:"created_at"`
}
