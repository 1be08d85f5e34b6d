package attendance

import (
	"context"
	"time"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// ListRecordsRequest is the request for listing attendance records.
type ListRecordsRequest struct {
	Caller staff.Caller `json:"caller"`
}

// ListRecordsResponse is the response for listing attendance records.
type ListRecordsResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

// CreateRecordRequest is the request for creating an attendance record.
type CreateRecordRequest struct {
	Caller       staff.Caller `json:"caller"`
	EmployeeName string       `json:"employeeName"`
	Date         time.Time    `json:"date"`
	CheckIn      string       `json:"checkIn"`
	CheckOut     string       `json:"checkOut"`
}

// UpdateRecordRequest is the request for updating an attendance record.
type UpdateRecordRequest struct {
	Caller       staff.Caller `json:"caller"`
	RecordID     string       `json:"record_id"`
	EmployeeName string       `json:"employeeName"`
	Date         time.Time    `json:"date"`
	CheckIn      string       `json:"checkIn"`
	CheckOut     string       `json:"checkOut"`
}

// DeleteRecordRequest is the request for deleting an attendance record.
type DeleteRecordRequest struct {
	Caller   staff.Caller `json:"caller"`
	RecordID string       `json:"record_id"`
}

// DeleteRecordResponse is the response for deleting an attendance record.
type DeleteRecordResponse struct {
	Deleted bool `json:"deleted"`
}

// LateCountRequest is the request for counting today's late arrivals.
type LateCountRequest struct{}

// LateCountResponse is the response for counting today's late arrivals.
type LateCountResponse struct {
	Late int `json:"late"`
}

// RecentRecordsRequest is the request for the newest records.
type RecentRecordsRequest struct {
	Limit int `json:"limit"`
}

// RecentRecordsResponse is the response for the newest records.
type RecentRecordsResponse struct {
	Records []Record `json:"records"`
}

// AttendancePort defines the interface other modules use to reach attendance.
type AttendancePort interface {
	ListRecords(ctx context.Context, caller staff.Caller) (*ListRecordsResponse, error)
	CreateRecord(ctx context.Context, req *CreateRecordRequest) (*Record, error)
	UpdateRecord(ctx context.Context, req *UpdateRecordRequest) (*Record, error)
	DeleteRecord(ctx context.Context, caller staff.Caller, recordID string) error
	CountLateToday(ctx context.Context) (int, error)
	RecentRecords(ctx context.Context, limit int) ([]Record, error)
}
