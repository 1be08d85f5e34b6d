package rewards

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// rewardsAdapter wraps ServiceContainer for type-safe cross-module communication.
type rewardsAdapter struct {
	container mono.ServiceContainer
}

// NewRewardsAdapter creates a new adapter for rewards services.
func NewRewardsAdapter(container mono.ServiceContainer) RewardsPort {
	if container == nil {
		panic("rewards adapter requires non-nil ServiceContainer")
	}
	return &rewardsAdapter{container: container}
}

func (a *rewardsAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// ListRecords lists reward/fine records via the list-records service.
func (a *rewardsAdapter) ListRecords(ctx context.Context, caller staff.Caller) (*ListRecordsResponse, error) {
	req := ListRecordsRequest{Caller: caller}
	var resp ListRecordsResponse
	if err := a.call(ctx, "list-records", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateRecord creates a record via the create-record service.
func (a *rewardsAdapter) CreateRecord(ctx context.Context, req *CreateRecordRequest) (*Record, error) {
	var resp Record
	if err := a.call(ctx, "create-record", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RewardTotal returns the summed reward amount via the reward-total service.
func (a *rewardsAdapter) RewardTotal(ctx context.Context) (float64, error) {
	req := RewardTotalRequest{}
	var resp RewardTotalResponse
	if err := a.call(ctx, "reward-total", &req, &resp); err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// RecentRecords fetches the newest records via the recent-records service.
func (a *rewardsAdapter) RecentRecords(ctx context.Context, limit int) ([]Record, error) {
	req := RecentRecordsRequest{Limit: limit}
	var resp RecentRecordsResponse
	if err := a.call(ctx, "recent-records", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}
