package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
	"github.com/olegnck404/mao-admin-panel/modules/attendance"
	"github.com/olegnck404/mao-admin-panel/modules/cache"
	"github.com/olegnck404/mao-admin-panel/modules/rewards"
	"github.com/olegnck404/mao-admin-panel/modules/task"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

// Chart colors used by the admin dashboard frontend.
const (
	colorHigh    = "#FF3B30"
	colorMedium  = "#FF9500"
	colorLow     = "#28CD41"
	colorCheckIn = "#28CD41"
	colorReward  = "#0051FF"
	colorPenalty = "#FF3B30"
)

const (
	recentAttendanceLimit = 3
	recentRewardsLimit    = 2
	overviewCacheKey      = "overview"
)

// ErrNotAllowed is returned when the caller is not authenticated.
var ErrNotAllowed = errors.New("forbidden")

// Service aggregates statistics across the user, task, attendance and
// rewards modules into a single dashboard payload.
type Service struct {
	users      user.UserPort
	tasks      task.TaskPort
	attendance attendance.AttendancePort
	rewards    rewards.RewardsPort
	cache      *cache.Cache
}

// NewService creates a new dashboard service.
func NewService(users user.UserPort, tasks task.TaskPort, att attendance.AttendancePort, rew rewards.RewardsPort) *Service {
	return &Service{
		users:      users,
		tasks:      tasks,
		attendance: att,
		rewards:    rew,
	}
}

// SetCache attaches an optional Redis cache for the overview payload.
func (s *Service) SetCache(c *cache.Cache) {
	s.cache = c
}

// Overview builds the aggregated dashboard payload. The payload is the
// same for every privileged caller, so it is cached under a single key
// when a cache is attached. Cache failures fall through to a rebuild.
func (s *Service) Overview(ctx context.Context, caller staff.Caller) (*OverviewResponse, error) {
	if !caller.Resolved() {
		return nil, ErrNotAllowed
	}

	if s.cache != nil {
		var cached OverviewResponse
		found, err := s.cache.Get(ctx, overviewCacheKey, &cached)
		if err != nil {
			log.Printf("[dashboard] Warning: cache read failed: %v", err)
		}
		if found {
			return &cached, nil
		}
	}

	resp, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, overviewCacheKey, resp); err != nil {
			log.Printf("[dashboard] Warning: cache write failed: %v", err)
		}
	}
	return resp, nil
}

func (s *Service) build(ctx context.Context) (*OverviewResponse, error) {
	employees, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	pending, err := s.tasks.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending tasks: %w", err)
	}

	late, err := s.attendance.CountLateToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count late arrivals: %w", err)
	}

	totalRewards, err := s.rewards.RewardTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum rewards: %w", err)
	}

	progress, err := s.tasks.CountByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task progress: %w", err)
	}

	activities, err := s.recentActivities(ctx)
	if err != nil {
		return nil, err
	}

	return &OverviewResponse{
		ActiveEmployees:  employees,
		PendingTasks:     pending,
		LateArrivals:     late,
		TotalRewards:     totalRewards,
		RecentActivities: activities,
		TaskProgress: []ProgressItem{
			{Title: "High Priority Tasks", Progress: progress.High.Done, Total: progress.High.Total, Color: colorHigh},
			{Title: "Medium Priority Tasks", Progress: progress.Medium.Done, Total: progress.Medium.Total, Color: colorMedium},
			{Title: "Low Priority Tasks", Progress: progress.Low.Done, Total: progress.Low.Total, Color: colorLow},
		},
	}, nil
}

func (s *Service) recentActivities(ctx context.Context) ([]Activity, error) {
	attRecords, err := s.attendance.RecentRecords(ctx, recentAttendanceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent attendance: %w", err)
	}
	rewRecords, err := s.rewards.RecentRecords(ctx, recentRewardsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent rewards: %w", err)
	}

	activities := make([]Activity, 0, len(attRecords)+len(rewRecords))
	for _, a := range attRecords {
		activities = append(activities, Activity{
			ID:     "attendance-" + a.ID,
			Name:   a.EmployeeName,
			Action: "Marked attendance",
			Time:   a.Date.Format("15:04"),
			Avatar: initial(a.EmployeeName),
			Color:  colorCheckIn,
		})
	}
	for _, r := range rewRecords {
		action := "Received reward"
		color := colorReward
		if r.Type == rewards.TypePenalty {
			action = "Received penalty"
			color = colorPenalty
		}
		activities = append(activities, Activity{
			ID:     "reward-" + r.ID,
			Name:   r.EmployeeName,
			Action: action,
			Time:   r.Date.Format("15:04"),
			Avatar: initial(r.EmployeeName),
			Color:  color,
		})
	}
	return activities, nil
}

func initial(name string) string {
	if name == "" {
		return ""
	}
	return string([]rune(name)[0])
}
