package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/olegnck404/mao-admin-panel/modules/attendance"
	"github.com/olegnck404/mao-admin-panel/modules/cache"
	"github.com/olegnck404/mao-admin-panel/modules/rewards"
	"github.com/olegnck404/mao-admin-panel/modules/task"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

// DashboardModule aggregates statistics across the other modules.
type DashboardModule struct {
	service        *Service
	userPort       user.UserPort
	taskPort       task.TaskPort
	attendancePort attendance.AttendancePort
	rewardsPort    rewards.RewardsPort
}

var _ mono.Module = (*DashboardModule)(nil)
var _ mono.ServiceProviderModule = (*DashboardModule)(nil)
var _ mono.DependentModule = (*DashboardModule)(nil)

// NewModule creates a new DashboardModule.
func NewModule() *DashboardModule {
	return &DashboardModule{}
}

// Name returns the module name.
func (m *DashboardModule) Name() string {
	return "dashboard"
}

// Dependencies returns the list of module dependencies.
func (m *DashboardModule) Dependencies() []string {
	return []string{"user", "task", "attendance", "rewards"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *DashboardModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "user":
		m.userPort = user.NewUserAdapter(container)
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "attendance":
		m.attendancePort = attendance.NewAttendanceAdapter(container)
	case "rewards":
		m.rewardsPort = rewards.NewRewardsAdapter(container)
	}
}

// SetCache attaches the optional Redis cache. Call after app start when
// a cache module is registered.
func (m *DashboardModule) SetCache(c *cache.Cache) {
	if m.service != nil && c != nil {
		m.service.SetCache(c)
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *DashboardModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "overview", json.Unmarshal, json.Marshal, m.overview,
	); err != nil {
		return fmt.Errorf("failed to register overview service: %w", err)
	}
	log.Printf("[dashboard] Registered services: overview")
	return nil
}

// Start wires the aggregation service.
func (m *DashboardModule) Start(_ context.Context) error {
	if m.userPort == nil || m.taskPort == nil || m.attendancePort == nil || m.rewardsPort == nil {
		return fmt.Errorf("dashboard dependencies not set")
	}
	m.service = NewService(m.userPort, m.taskPort, m.attendancePort, m.rewardsPort)
	log.Println("[dashboard] Module started (depends on: user, task, attendance, rewards)")
	return nil
}

// Stop shuts down the module.
func (m *DashboardModule) Stop(_ context.Context) error {
	log.Println("[dashboard] Module stopped")
	return nil
}

func (m *DashboardModule) overview(ctx context.Context, req OverviewRequest, _ *mono.Msg) (OverviewResponse, error) {
	resp, err := m.service.Overview(ctx, req.Caller)
	if err != nil {
		return OverviewResponse{}, err
	}
	return *resp, nil
}
