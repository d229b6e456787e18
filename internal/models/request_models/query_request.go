package request_models

import "time"

// PageQuery is bound from the query string of list endpoints.
type PageQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search" binding:"max=100"`
}

type TransactionQuery struct {
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	Type      string     `form:"type" binding:"omitempty,oneof=Payment Refund"`
	Status    string     `form:"status" binding:"omitempty,oneof=Pending Completed Failed"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
}
