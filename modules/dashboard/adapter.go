package dashboard

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// DashboardPort is implemented by dashboardAdapter for other modules.
type dashboardAdapter struct {
	container mono.ServiceContainer
}

var _ DashboardPort = (*dashboardAdapter)(nil)

// NewDashboardAdapter creates a DashboardPort backed by the dashboard module's services.
func NewDashboardAdapter(container mono.ServiceContainer) DashboardPort {
	return &dashboardAdapter{container: container}
}

func (a *dashboardAdapter) Overview(ctx context.Context, caller staff.Caller) (*OverviewResponse, error) {
	var resp OverviewResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "overview", json.Marshal, json.Unmarshal, OverviewRequest{Caller: caller}, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}
