package dashboard

import (
	"context"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// Activity is one entry in the dashboard's recent-activity feed.
type Activity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Action string `json:"action"`
	Time   string `json:"time"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

// ProgressItem reports completion for one priority bucket.
type ProgressItem struct {
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
	Color    string `json:"color"`
}

// OverviewRequest is the request for the dashboard overview.
type OverviewRequest struct {
	Caller staff.Caller `json:"caller"`
}

// OverviewResponse is the aggregated dashboard payload.
type OverviewResponse struct {
	ActiveEmployees  int            `json:"activeEmployees"`
	PendingTasks     int            `json:"pendingTasks"`
	LateArrivals     int            `json:"lateArrivals"`
	TotalRewards     float64        `json:"totalRewards"`
	RecentActivities []Activity     `json:"recentActivities"`
	TaskProgress     []ProgressItem `json:"taskProgress"`
}

// DashboardPort defines the interface other modules use to reach the dashboard.
type DashboardPort interface {
	Overview(ctx context.Context, caller staff.Caller) (*OverviewResponse, error)
}
