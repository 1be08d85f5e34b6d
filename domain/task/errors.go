package task

import "errors"

var (
	// ErrTaskNotFound indicates the task id is unknown.
	ErrTaskNotFound = errors.New("task not found")
	// ErrForbidden indicates the caller lacks the role or ownership required.
	ErrForbidden = errors.New("forbidden")
	// ErrStoreUnavailable indicates the persistence store failed; retryable by the caller.
	ErrStoreUnavailable = errors.New("task store unavailable")

	// ErrEmptyTitle indicates a task without a title.
	ErrEmptyTitle = errors.New("task title is required")
	// ErrInvalidPriority indicates an unknown priority value.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrNoDueDate indicates a task without a due date.
	ErrNoDueDate = errors.New("task due date is required")
	// ErrNoAssignees indicates a task with no assignee (personal) or an empty assignee list (global).
	ErrNoAssignees = errors.New("task has no assignees")
	// ErrAmbiguousAssignee indicates a task mixing personal and global assignment.
	ErrAmbiguousAssignee = errors.New("task mixes personal and global assignment")
	// ErrCompletionNotAssignee indicates a completion entry from a non-assignee.
	ErrCompletionNotAssignee = errors.New("completion recorded for non-assignee")
	// ErrUnknownAssignee indicates an assignee that is not a known user.
	ErrUnknownAssignee = errors.New("unknown assignee")
)

// IsInvalidInput reports whether err is one of the input-validation errors.
// These map to HTTP 400 at the API boundary.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrNoDueDate) ||
		errors.Is(err, ErrNoAssignees) ||
		errors.Is(err, ErrAmbiguousAssignee) ||
		errors.Is(err, ErrCompletionNotAssignee) ||
		errors.Is(err, ErrUnknownAssignee)
}
