package dto

import (
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
)

// ListRequest represents common list/pagination request parameters
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1,max=1000000"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	SortBy   string `form:"sort_by" binding:"max=50"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// Query converts the request into a normalized list query.
func (r ListRequest) Query() shared.ListQuery {
	return shared.ListQuery{
		Page:     r.Page,
		PageSize: r.PageSize,
		Search:   r.Search,
		SortBy:   r.SortBy,
		SortDesc: r.SortDir == "desc",
	}.Normalize()
}

// PeriodRequest bounds a list or report by document date.
type PeriodRequest struct {
	DateFrom time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   time.Time `form:"date_to" time_format:"2006-01-02"`
}

// Bounds returns the period with the upper bound moved to the end of its day.
func (r PeriodRequest) Bounds() (time.Time, time.Time) {
	return r.DateFrom, EndOfDay(r.DateTo)
}

// EndOfDay returns the last instant of t's day, or zero for zero t.
func EndOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// OrderListRequest holds the order list filters.
type OrderListRequest struct {
	ListRequest
	PeriodRequest
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	StateID    string `form:"state_id" binding:"omitempty,uuid"`
}

// DocumentListRequest holds the payment and invoice list filters.
type DocumentListRequest struct {
	ListRequest
	PeriodRequest
	CounterpartyID string `form:"counterparty_id" binding:"omitempty,uuid"`
}

// CounterpartyListRequest holds the counterparty lookup filters.
type CounterpartyListRequest struct {
	ListRequest
	Role string `form:"role" binding:"omitempty,oneof=customer supplier"`
}

// WriteRequest holds the query flags accepted by create and update routes.
type WriteRequest struct {
	// DryRun validates and returns the record that would be sent without sending it.
	DryRun bool `form:"dry_run"`
}

// OverviewRequest selects the dashboard period.
type OverviewRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// FileRequest names a record whose print form is requested.
type FileRequest struct {
	DataType string `uri:"data_type" binding:"required"`
	ID       string `uri:"id" binding:"required,uuid"`
}

// AttachmentRequest names an attached file.
type AttachmentRequest struct {
	FileID string `uri:"file_id" binding:"required,max=200"`
}

// FileQuery selects the print form.
type FileQuery struct {
	Form string `form:"form" binding:"max=100"`
}
