package attendance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// attendanceAdapter wraps ServiceContainer for type-safe cross-module communication.
type attendanceAdapter struct {
	container mono.ServiceContainer
}

// NewAttendanceAdapter creates a new adapter for attendance services.
func NewAttendanceAdapter(container mono.ServiceContainer) AttendancePort {
	if container == nil {
		panic("attendance adapter requires non-nil ServiceContainer")
	}
	return &attendanceAdapter{container: container}
}

func (a *attendanceAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// ListRecords lists attendance records via the list-records service.
func (a *attendanceAdapter) ListRecords(ctx context.Context, caller staff.Caller) (*ListRecordsResponse, error) {
	req := ListRecordsRequest{Caller: caller}
	var resp ListRecordsResponse
	if err := a.call(ctx, "list-records", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateRecord creates a record via the create-record service.
func (a *attendanceAdapter) CreateRecord(ctx context.Context, req *CreateRecordRequest) (*Record, error) {
	var resp Record
	if err := a.call(ctx, "create-record", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateRecord updates a record via the update-record service.
func (a *attendanceAdapter) UpdateRecord(ctx context.Context, req *UpdateRecordRequest) (*Record, error) {
	var resp Record
	if err := a.call(ctx, "update-record", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteRecord removes a record via the delete-record service.
func (a *attendanceAdapter) DeleteRecord(ctx context.Context, caller staff.Caller, recordID string) error {
	req := DeleteRecordRequest{Caller: caller, RecordID: recordID}
	var resp DeleteRecordResponse
	if err := a.call(ctx, "delete-record", &req, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("record not deleted: %s", recordID)
	}
	return nil
}

// CountLateToday counts today's late arrivals via the late-count service.
func (a *attendanceAdapter) CountLateToday(ctx context.Context) (int, error) {
	req := LateCountRequest{}
	var resp LateCountResponse
	if err := a.call(ctx, "late-count", &req, &resp); err != nil {
		return 0, err
	}
	return resp.Late, nil
}

// RecentRecords fetches the newest records via the recent-records service.
func (a *attendanceAdapter) RecentRecords(ctx context.Context, limit int) ([]Record, error) {
	req := RecentRecordsRequest{Limit: limit}
	var resp RecentRecordsResponse
	if err := a.call(ctx, "recent-records", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}
