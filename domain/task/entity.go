package task

import "time"

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status represents the completion state of a task.
// Status is always derived from CompletedBy; it is never trusted from input.
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Task is the core domain entity.
//
// A task is either personal (IsGlobal=false, exactly one Assignee) or
// common/global (IsGlobal=true, non-empty Assignees). CompletedBy tracks
// which assignees have marked the task done for themselves.
//
// Wire convention for personal tasks: Assignee is set and Assignees
// serializes as an empty array.
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Title       string    `json:"title" gorm:"not null;type:text"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority" gorm:"type:text"`
	Status      Status    `json:"status" gorm:"type:text"`
	IsGlobal    bool      `json:"isGlobal"`
	Assignee    string    `json:"assignee,omitempty" gorm:"type:text"`
	Assignees   []string  `json:"assignees" gorm:"serializer:json"`
	CompletedBy []string  `json:"completedBy" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// AssigneeSet returns the full set of users the task is assigned to.
// For personal tasks this is the single assignee.
func (t *Task) AssigneeSet() []string {
	if t.IsGlobal {
		return t.Assignees
	}
	if t.Assignee == "" {
		return nil
	}
	return []string{t.Assignee}
}

// IsAssignee reports whether name is a member of the task's assignee set.
func (t *Task) IsAssignee(name string) bool {
	for _, a := range t.AssigneeSet() {
		if a == name {
			return true
		}
	}
	return false
}

// HasCompleted reports whether name is in the completion set.
func (t *Task) HasCompleted(name string) bool {
	for _, c := range t.CompletedBy {
		if c == name {
			return true
		}
	}
	return false
}

// RecomputeStatus derives Status from CompletedBy against the assignee set.
// Empty completion set means Todo; full coverage means Done; a proper
// non-empty subset means In Progress (only reachable for global tasks).
func (t *Task) RecomputeStatus() {
	if len(t.CompletedBy) == 0 {
		t.Status = StatusTodo
		return
	}
	for _, a := range t.AssigneeSet() {
		if !t.HasCompleted(a) {
			t.Status = StatusInProgress
			return
		}
	}
	t.Status = StatusDone
}

// ToggleCompletion flips name's membership in the completion set and
// recomputes the status. The caller is responsible for checking that
// name is actually an assignee.
func (t *Task) ToggleCompletion(name string) {
	if t.HasCompleted(name) {
		kept := make([]string, 0, len(t.CompletedBy)-1)
		for _, c := range t.CompletedBy {
			if c != name {
				kept = append(kept, c)
			}
		}
		t.CompletedBy = kept
	} else {
		t.CompletedBy = append(t.CompletedBy, name)
	}
	t.RecomputeStatus()
}

// ToggleAll marks the task done for every assignee, or clears the
// completion set entirely when everyone has already completed it.
func (t *Task) ToggleAll() {
	if t.Status == StatusDone {
		t.CompletedBy = []string{}
	} else {
		set := t.AssigneeSet()
		t.CompletedBy = make([]string, len(set))
		copy(t.CompletedBy, set)
	}
	t.RecomputeStatus()
}

// Validate checks the structural invariants of the task.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if t.DueDate.IsZero() {
		return ErrNoDueDate
	}
	if t.IsGlobal {
		if len(t.Assignees) == 0 {
			return ErrNoAssignees
		}
		if t.Assignee != "" {
			return ErrAmbiguousAssignee
		}
	} else {
		if t.Assignee == "" {
			return ErrNoAssignees
		}
		if len(t.Assignees) != 0 {
			return ErrAmbiguousAssignee
		}
	}
	for _, c := range t.CompletedBy {
		if !t.IsAssignee(c) {
			return ErrCompletionNotAssignee
		}
	}
	return nil
}
