package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	IsGlobal  bool      `json:"is_global"`
	Assignees []string  `json:"assignees"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskCompletionToggledEvent is emitted when an assignee toggles their
// completion on a task, including the mark-all action.
type TaskCompletionToggledEvent struct {
	TaskID    string    `json:"task_id"`
	UserName  string    `json:"user_name"`
	Status    string    `json:"status"`
	Completed bool      `json:"completed"`
	ToggledAt time.Time `json:"toggled_at"`
}

// TaskCompletionToggledV1 is the typed event definition for completion toggles.
// Subject: events.task.v1.task-completion-toggled
var TaskCompletionToggledV1 = helper.EventDefinition[TaskCompletionToggledEvent](
	"task", "TaskCompletionToggled", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)
