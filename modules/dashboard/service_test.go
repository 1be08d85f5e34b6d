package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
	domain "github.com/olegnck404/mao-admin-panel/domain/task"
	"github.com/olegnck404/mao-admin-panel/modules/attendance"
	"github.com/olegnck404/mao-admin-panel/modules/rewards"
	"github.com/olegnck404/mao-admin-panel/modules/task"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

type stubUserPort struct {
	count int
}

func (s *stubUserPort) Login(context.Context, string, string) (*user.LoginResponse, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUserPort) ResolveCaller(context.Context, string) (staff.Caller, bool, error) {
	return staff.Caller{}, false, nil
}
func (s *stubUserPort) ListUsers(context.Context, staff.Caller) (*user.ListUsersResponse, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUserPort) GetUser(context.Context, staff.Caller, string) (*user.UserInfo, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUserPort) CreateUser(context.Context, *user.CreateUserRequest) (*user.UserInfo, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUserPort) DeleteUser(context.Context, staff.Caller, string) error {
	return errors.New("not implemented")
}
func (s *stubUserPort) UserExists(context.Context, string) (bool, error) { return false, nil }
func (s *stubUserPort) CountUsers(context.Context) (int, error)          { return s.count, nil }

type stubTaskPort struct {
	pending  int
	progress task.TaskProgressResponse
}

func (s *stubTaskPort) CreateTask(context.Context, *task.CreateTaskRequest) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskPort) ListTasks(context.Context, staff.Caller) (*task.ListTasksResponse, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskPort) GetTask(context.Context, staff.Caller, string) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskPort) UpdateTask(context.Context, *task.UpdateTaskRequest) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskPort) ToggleCompletion(context.Context, *task.ToggleCompletionRequest) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskPort) ToggleAll(context.Context, *task.ToggleAllRequest) (*domain.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskPort) DeleteTask(context.Context, staff.Caller, string) error {
	return errors.New("not implemented")
}
func (s *stubTaskPort) CountPending(context.Context) (int, error) { return s.pending, nil }
func (s *stubTaskPort) CountByPriority(context.Context) (*task.TaskProgressResponse, error) {
	return &s.progress, nil
}

type stubAttendancePort struct {
	late   int
	recent []attendance.Record
}

func (s *stubAttendancePort) ListRecords(context.Context, staff.Caller) (*attendance.ListRecordsResponse, error) {
	return nil, errors.New("not implemented")
}
func (s *stubAttendancePort) CreateRecord(context.Context, *attendance.CreateRecordRequest) (*attendance.Record, error) {
	return nil, errors.New("not implemented")
}
func (s *stubAttendancePort) UpdateRecord(context.Context, *attendance.UpdateRecordRequest) (*attendance.Record, error) {
	return nil, errors.New("not implemented")
}
func (s *stubAttendancePort) DeleteRecord(context.Context, staff.Caller, string) error {
	return errors.New("not implemented")
}
func (s *stubAttendancePort) CountLateToday(context.Context) (int, error) { return s.late, nil }
func (s *stubAttendancePort) RecentRecords(context.Context, int) ([]attendance.Record, error) {
	return s.recent, nil
}

type stubRewardsPort struct {
	total  float64
	recent []rewards.Record
}

func (s *stubRewardsPort) ListRecords(context.Context, staff.Caller) (*rewards.ListRecordsResponse, error) {
	return nil, errors.New("not implemented")
}
func (s *stubRewardsPort) CreateRecord(context.Context, *rewards.CreateRecordRequest) (*rewards.Record, error) {
	return nil, errors.New("not implemented")
}
func (s *stubRewardsPort) RewardTotal(context.Context) (float64, error) { return s.total, nil }
func (s *stubRewardsPort) RecentRecords(context.Context, int) ([]rewards.Record, error) {
	return s.recent, nil
}

func TestOverviewRequiresResolvedCaller(t *testing.T) {
	svc := NewService(&stubUserPort{}, &stubTaskPort{}, &stubAttendancePort{}, &stubRewardsPort{})

	_, err := svc.Overview(context.Background(), staff.Caller{})
	if !errors.Is(err, ErrNotAllowed) {
		t.Errorf("Overview(unresolved) error = %v, want ErrNotAllowed", err)
	}
}

func TestOverviewAggregation(t *testing.T) {
	morning := time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)
	svc := NewService(
		&stubUserPort{count: 12},
		&stubTaskPort{
			pending: 5,
			progress: task.TaskProgressResponse{
				High:   task.PriorityCount{Total: 4, Done: 1},
				Medium: task.PriorityCount{Total: 6, Done: 3},
				Low:    task.PriorityCount{Total: 2, Done: 2},
			},
		},
		&stubAttendancePort{
			late: 2,
			recent: []attendance.Record{
				{ID: "a1", EmployeeName: "alice", Date: morning},
			},
		},
		&stubRewardsPort{
			total: 1500,
			recent: []rewards.Record{
				{ID: "r1", EmployeeName: "bob", Type: rewards.TypeReward, Date: morning},
				{ID: "r2", EmployeeName: "carol", Type: rewards.TypePenalty, Date: morning},
			},
		},
	)

	caller := staff.Caller{ID: "a1", Name: "Admin", Role: staff.RoleAdmin}
	resp, err := svc.Overview(context.Background(), caller)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if resp.ActiveEmployees != 12 {
		t.Errorf("ActiveEmployees = %d, want 12", resp.ActiveEmployees)
	}
	if resp.PendingTasks != 5 {
		t.Errorf("PendingTasks = %d, want 5", resp.PendingTasks)
	}
	if resp.LateArrivals != 2 {
		t.Errorf("LateArrivals = %d, want 2", resp.LateArrivals)
	}
	if resp.TotalRewards != 1500 {
		t.Errorf("TotalRewards = %v, want 1500", resp.TotalRewards)
	}

	if len(resp.TaskProgress) != 3 {
		t.Fatalf("TaskProgress has %d items, want 3", len(resp.TaskProgress))
	}
	high := resp.TaskProgress[0]
	if high.Progress != 1 || high.Total != 4 || high.Color != colorHigh {
		t.Errorf("high bucket = %+v", high)
	}

	if len(resp.RecentActivities) != 3 {
		t.Fatalf("RecentActivities has %d items, want 3", len(resp.RecentActivities))
	}
	att := resp.RecentActivities[0]
	if att.Action != "Marked attendance" || att.Avatar != "a" || att.Time != "09:05" {
		t.Errorf("attendance activity = %+v", att)
	}
	penalty := resp.RecentActivities[2]
	if penalty.Action != "Received penalty" || penalty.Color != colorPenalty {
		t.Errorf("penalty activity = %+v", penalty)
	}
}
