package rewards

import (
	"context"
	"time"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// ListRecordsRequest is the request for listing reward/fine records.
type ListRecordsRequest struct {
	Caller staff.Caller `json:"caller"`
}

// ListRecordsResponse is the response for listing reward/fine records.
type ListRecordsResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

// CreateRecordRequest is the request for creating a reward/fine record.
type CreateRecordRequest struct {
	Caller       staff.Caller `json:"caller"`
	EmployeeName string       `json:"employeeName"`
	Date         time.Time    `json:"date"`
	Type         string       `json:"type"`
	Amount       float64      `json:"amount"`
	Reason       string       `json:"reason,omitempty"`
}

// RewardTotalRequest is the request for the reward amount total.
type RewardTotalRequest struct{}

// RewardTotalResponse is the response for the reward amount total.
type RewardTotalResponse struct {
	Total float64 `json:"total"`
}

// RecentRecordsRequest is the request for the newest records.
type RecentRecordsRequest struct {
	Limit int `json:"limit"`
}

// RecentRecordsResponse is the response for the newest records.
type RecentRecordsResponse struct {
	Records []Record `json:"records"`
}

// RewardsPort defines the interface other modules use to reach rewards.
type RewardsPort interface {
	ListRecords(ctx context.Context, caller staff.Caller) (*ListRecordsResponse, error)
	CreateRecord(ctx context.Context, req *CreateRecordRequest) (*Record, error)
	RewardTotal(ctx context.Context) (float64, error)
	RecentRecords(ctx context.Context, limit int) ([]Record, error)
}
