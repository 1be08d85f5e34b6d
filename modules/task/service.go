package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
	domain "github.com/olegnck404/mao-admin-panel/domain/task"
	"github.com/olegnck404/mao-admin-panel/events"
)

// Service is the task store and completion engine. Every operation
// checks the caller's role up front; status is always recomputed from
// the completion set, never trusted from input.
type Service struct {
	store Store
	users UserDirectory
	bus   mono.EventBus
}

// NewService creates a new task service.
func NewService(store Store, users UserDirectory) *Service {
	return &Service{
		store: store,
		users: users,
	}
}

// SetEventBus attaches the event bus. Events are best-effort; a nil bus
// disables publishing.
func (s *Service) SetEventBus(bus mono.EventBus) {
	s.bus = bus
}

// CreateTask creates a task on behalf of a privileged caller.
func (s *Service) CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error) {
	if !req.Caller.Role.Privileged() {
		return nil, domain.ErrForbidden
	}

	priority := domain.Priority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Status:      domain.StatusTodo,
		IsGlobal:    req.IsGlobal,
		Assignee:    req.Assignee,
		Assignees:   req.Assignees,
		CompletedBy: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	for _, name := range t.AssigneeSet() {
		exists, err := s.users.UserExists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to validate assignee %s: %w", name, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAssignee, name)
		}
	}

	if err := s.store.Put(t); err != nil {
		return nil, err
	}

	if s.bus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			IsGlobal:  t.IsGlobal,
			Assignees: t.AssigneeSet(),
			CreatedBy: req.Caller.Name,
			CreatedAt: t.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(s.bus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", t.ID, err)
		}
	}

	return t, nil
}

// ListTasks returns the tasks visible to the caller. Admins and managers
// see everything; regular users see only tasks assigned to them. An
// unresolved caller gets an empty list, not an error.
func (s *Service) ListTasks(_ context.Context, caller staff.Caller) (*ListTasksResponse, error) {
	if !caller.Resolved() {
		return &ListTasksResponse{Tasks: []domain.Task{}}, nil
	}

	all, err := s.store.ScanAll()
	if err != nil {
		return nil, err
	}

	resp := &ListTasksResponse{Tasks: make([]domain.Task, 0, len(all))}
	for _, t := range all {
		if caller.Role.Privileged() || t.IsAssignee(caller.Name) {
			resp.Tasks = append(resp.Tasks, *t)
		}
	}
	resp.Total = len(resp.Tasks)
	return resp, nil
}

// GetTask returns a single task if the caller may see it. Tasks outside
// the caller's visibility report not-found rather than forbidden.
func (s *Service) GetTask(_ context.Context, caller staff.Caller, taskID string) (*domain.Task, error) {
	t, err := s.store.Get(taskID)
	if err != nil {
		return nil, err
	}
	if !caller.Resolved() {
		return nil, domain.ErrTaskNotFound
	}
	if !caller.Role.Privileged() && !t.IsAssignee(caller.Name) {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

// UpdateTask applies a permissive PUT-style patch. Only privileged
// callers may change descriptive fields or the assignment; an assignee
// may only flip their own membership in the completion set. Status is
// recomputed from the resulting completion set regardless of input.
func (s *Service) UpdateTask(_ context.Context, req *UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.store.Get(req.TaskID)
	if err != nil {
		return nil, err
	}
	if !req.Caller.Resolved() {
		return nil, domain.ErrForbidden
	}

	privileged := req.Caller.Role.Privileged()
	if touchesManagedFields(req) && !privileged {
		return nil, domain.ErrForbidden
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.Priority != nil {
		t.Priority = domain.Priority(*req.Priority)
	}
	if req.IsGlobal != nil {
		t.IsGlobal = *req.IsGlobal
	}
	if req.Assignee != nil {
		t.Assignee = *req.Assignee
	}
	if req.Assignees != nil {
		t.Assignees = *req.Assignees
	}

	if req.CompletedBy != nil {
		if !privileged {
			if !t.IsAssignee(req.Caller.Name) {
				return nil, domain.ErrForbidden
			}
			// A non-privileged assignee may add or remove exactly their
			// own name; any other difference is rejected.
			if !onlyOwnMembershipChanged(t.CompletedBy, *req.CompletedBy, req.Caller.Name) {
				return nil, domain.ErrForbidden
			}
		}
		t.CompletedBy = *req.CompletedBy
	}

	t.RecomputeStatus()
	if err := t.Validate(); err != nil {
		return nil, err
	}

	t.UpdatedAt = time.Now()
	if err := s.store.Put(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToggleCompletion flips userName's completion membership on a task.
// userName must be an assignee; the caller must be userName or privileged.
func (s *Service) ToggleCompletion(_ context.Context, req *ToggleCompletionRequest) (*domain.Task, error) {
	t, err := s.store.Get(req.TaskID)
	if err != nil {
		return nil, err
	}
	if !req.Caller.Resolved() {
		return nil, domain.ErrForbidden
	}
	if !t.IsAssignee(req.UserName) {
		return nil, domain.ErrForbidden
	}
	if req.Caller.Name != req.UserName && !req.Caller.Role.Privileged() {
		return nil, domain.ErrForbidden
	}

	t.ToggleCompletion(req.UserName)
	t.UpdatedAt = time.Now()
	if err := s.store.Put(t); err != nil {
		return nil, err
	}

	s.publishToggled(t, req.UserName)
	return t, nil
}

// ToggleAll marks the task done for every assignee, or clears the
// completion set when the task is already fully complete.
func (s *Service) ToggleAll(_ context.Context, req *ToggleAllRequest) (*domain.Task, error) {
	t, err := s.store.Get(req.TaskID)
	if err != nil {
		return nil, err
	}
	if !req.Caller.Resolved() {
		return nil, domain.ErrForbidden
	}
	if !req.Caller.Role.Privileged() && !t.IsAssignee(req.Caller.Name) {
		return nil, domain.ErrForbidden
	}

	t.ToggleAll()
	t.UpdatedAt = time.Now()
	if err := s.store.Put(t); err != nil {
		return nil, err
	}

	s.publishToggled(t, req.Caller.Name)
	return t, nil
}

// DeleteTask permanently removes a task. Privileged callers only.
func (s *Service) DeleteTask(_ context.Context, caller staff.Caller, taskID string) error {
	if !caller.Role.Privileged() {
		return domain.ErrForbidden
	}

	t, err := s.store.Get(taskID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(taskID); err != nil {
		return err
	}

	if s.bus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			DeletedBy: caller.Name,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(s.bus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", t.ID, err)
		}
	}
	return nil
}

// CountPending returns the number of tasks not yet done.
func (s *Service) CountPending(_ context.Context) (int, error) {
	all, err := s.store.ScanAll()
	if err != nil {
		return 0, err
	}
	pending := 0
	for _, t := range all {
		if t.Status != domain.StatusDone {
			pending++
		}
	}
	return pending, nil
}

// CountByPriority returns per-priority completion totals.
func (s *Service) CountByPriority(_ context.Context) (*TaskProgressResponse, error) {
	all, err := s.store.ScanAll()
	if err != nil {
		return nil, err
	}
	var resp TaskProgressResponse
	for _, t := range all {
		var bucket *PriorityCount
		switch t.Priority {
		case domain.PriorityHigh:
			bucket = &resp.High
		case domain.PriorityLow:
			bucket = &resp.Low
		default:
			bucket = &resp.Medium
		}
		bucket.Total++
		if t.Status == domain.StatusDone {
			bucket.Done++
		}
	}
	return &resp, nil
}

func (s *Service) publishToggled(t *domain.Task, userName string) {
	if s.bus == nil {
		return
	}
	event := events.TaskCompletionToggledEvent{
		TaskID:    t.ID,
		UserName:  userName,
		Status:    string(t.Status),
		Completed: t.HasCompleted(userName),
		ToggledAt: time.Now(),
	}
	if err := events.TaskCompletionToggledV1.Publish(s.bus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCompletionToggled event for task %s: %v", t.ID, err)
	}
}

// touchesManagedFields reports whether the patch modifies fields that
// only admins and managers may change.
func touchesManagedFields(req *UpdateTaskRequest) bool {
	return req.Title != nil ||
		req.Description != nil ||
		req.DueDate != nil ||
		req.Priority != nil ||
		req.IsGlobal != nil ||
		req.Assignee != nil ||
		req.Assignees != nil
}

// onlyOwnMembershipChanged reports whether next differs from prev only
// in whether name is a member.
func onlyOwnMembershipChanged(prev, next []string, name string) bool {
	counts := make(map[string]int, len(prev)+len(next))
	for _, p := range prev {
		counts[p]++
	}
	for _, n := range next {
		counts[n]--
	}
	for member, c := range counts {
		if c != 0 && member != name {
			return false
		}
	}
	return true
}
