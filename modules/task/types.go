package task

import (
	"context"
	"time"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
	domain "github.com/olegnck404/mao-admin-panel/domain/task"
)

// CreateTaskRequest is the request for creating a task.
// The caller identity is resolved by the API layer and passed through.
type CreateTaskRequest struct {
	Caller      staff.Caller `json:"caller"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     time.Time    `json:"dueDate"`
	Priority    string       `json:"priority,omitempty"`
	IsGlobal    bool         `json:"isGlobal"`
	Assignee    string       `json:"assignee,omitempty"`
	Assignees   []string     `json:"assignees,omitempty"`
}

// ListTasksRequest is the request for listing tasks visible to the caller.
type ListTasksRequest struct {
	Caller staff.Caller `json:"caller"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// GetTaskRequest is the request for getting a single task.
type GetTaskRequest struct {
	Caller staff.Caller `json:"caller"`
	TaskID string       `json:"task_id"`
}

// UpdateTaskRequest is the permissive PUT-style patch for a task.
// Nil fields are left untouched. Status is never taken from the patch;
// it is recomputed from the resulting completion set.
type UpdateTaskRequest struct {
	Caller      staff.Caller `json:"caller"`
	TaskID      string       `json:"task_id"`
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Priority    *string      `json:"priority,omitempty"`
	IsGlobal    *bool        `json:"isGlobal,omitempty"`
	Assignee    *string      `json:"assignee,omitempty"`
	Assignees   *[]string    `json:"assignees,omitempty"`
	CompletedBy *[]string    `json:"completedBy,omitempty"`
}

// ToggleCompletionRequest flips one user's completion membership on a task.
type ToggleCompletionRequest struct {
	Caller   staff.Caller `json:"caller"`
	TaskID   string       `json:"task_id"`
	UserName string       `json:"user_name"`
}

// ToggleAllRequest marks a global task done for every assignee, or clears
// the completion set when it is already fully complete.
type ToggleAllRequest struct {
	Caller staff.Caller `json:"caller"`
	TaskID string       `json:"task_id"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	Caller staff.Caller `json:"caller"`
	TaskID string       `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// Store is the persistence port for tasks.
type Store interface {
	Get(id string) (*domain.Task, error)
	Put(t *domain.Task) error
	Delete(id string) error
	ScanAll() ([]*domain.Task, error)
}

// UserDirectory is the port the engine uses to check assignee names.
type UserDirectory interface {
	UserExists(ctx context.Context, name string) (bool, error)
}

// TaskPort defines the interface other modules use to reach the task engine.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error)
	ListTasks(ctx context.Context, caller staff.Caller) (*ListTasksResponse, error)
	GetTask(ctx context.Context, caller staff.Caller, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error)
	ToggleCompletion(ctx context.Context, req *ToggleCompletionRequest) (*domain.Task, error)
	ToggleAll(ctx context.Context, req *ToggleAllRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, caller staff.Caller, taskID string) error
	CountPending(ctx context.Context) (int, error)
	CountByPriority(ctx context.Context) (*TaskProgressResponse, error)
}

// PriorityCount holds totals for one priority bucket.
type PriorityCount struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

// TaskProgressResponse reports per-priority completion totals.
type TaskProgressResponse struct {
	High   PriorityCount `json:"high"`
	Medium PriorityCount `json:"medium"`
	Low    PriorityCount `json:"low"`
}

// CountPendingRequest is the request for counting not-done tasks.
type CountPendingRequest struct{}

// CountPendingResponse is the response for counting not-done tasks.
type CountPendingResponse struct {
	Pending int `json:"pending"`
}

// TaskProgressRequest is the request for per-priority completion totals.
type TaskProgressRequest struct{}
