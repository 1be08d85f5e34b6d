package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
	domain "github.com/olegnck404/mao-admin-panel/domain/task"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

func (a *taskAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := a.call(ctx, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks lists the tasks visible to the caller via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, caller staff.Caller) (*ListTasksResponse, error) {
	req := ListTasksRequest{Caller: caller}
	var resp ListTasksResponse
	if err := a.call(ctx, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTask retrieves a task by id via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, caller staff.Caller, taskID string) (*domain.Task, error) {
	req := GetTaskRequest{Caller: caller, TaskID: taskID}
	var resp domain.Task
	if err := a.call(ctx, "get-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTask applies a patch via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := a.call(ctx, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleCompletion flips one user's completion via the toggle-completion service.
func (a *taskAdapter) ToggleCompletion(ctx context.Context, req *ToggleCompletionRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := a.call(ctx, "toggle-completion", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleAll marks or clears the whole completion set via the toggle-all service.
func (a *taskAdapter) ToggleAll(ctx context.Context, req *ToggleAllRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := a.call(ctx, "toggle-all", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, caller staff.Caller, taskID string) error {
	req := DeleteTaskRequest{Caller: caller, TaskID: taskID}
	var resp DeleteTaskResponse
	if err := a.call(ctx, "delete-task", &req, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %s", taskID)
	}
	return nil
}

// CountPending returns the number of not-done tasks via the count-pending service.
func (a *taskAdapter) CountPending(ctx context.Context) (int, error) {
	req := CountPendingRequest{}
	var resp CountPendingResponse
	if err := a.call(ctx, "count-pending", &req, &resp); err != nil {
		return 0, err
	}
	return resp.Pending, nil
}

// CountByPriority returns per-priority completion totals via the task-progress service.
func (a *taskAdapter) CountByPriority(ctx context.Context) (*TaskProgressResponse, error) {
	req := TaskProgressRequest{}
	var resp TaskProgressResponse
	if err := a.call(ctx, "task-progress", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
