package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/olegnck404/mao-admin-panel/events"
)

// NotificationLog represents a logged notification.
type NotificationLog struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule reacts to task lifecycle events. It keeps an
// in-memory log of notifications; a real deployment would push these
// to email or a messenger instead.
type NotificationModule struct {
	notifications []NotificationLog
	mu            sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		notifications: make([]NotificationLog, 0),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletionToggledV1, m.handleCompletionToggled, m); err != nil {
		return fmt.Errorf("failed to register TaskCompletionToggled consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskCompletionToggled, TaskDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task created: %s - %s (assignees: %d)", event.TaskID, event.Title, len(event.Assignees))
	m.logNotification(event.TaskID, "task_created",
		fmt.Sprintf("New task '%s' created by %s", event.Title, event.CreatedBy))
	return nil
}

func (m *NotificationModule) handleCompletionToggled(_ context.Context, event events.TaskCompletionToggledEvent, _ *mono.Msg) error {
	action := "unmarked"
	if event.Completed {
		action = "completed"
	}
	log.Printf("[notification] Task %s: %s %s their part (status now %s)", event.TaskID, event.UserName, action, event.Status)
	m.logNotification(event.TaskID, "completion_toggled",
		fmt.Sprintf("%s %s their part of task %s", event.UserName, action, event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task deleted: %s by %s", event.TaskID, event.DeletedBy)
	m.logNotification(event.TaskID, "task_deleted",
		fmt.Sprintf("Task '%s' deleted by %s", event.Title, event.DeletedBy))
	return nil
}

func (m *NotificationModule) logNotification(id, notificationType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = append(m.notifications, NotificationLog{
		ID:        id,
		Type:      notificationType,
		Message:   message,
		Channel:   "event",
		Timestamp: time.Now(),
	})
}

// GetNotifications returns a copy of the notification log.
func (m *NotificationModule) GetNotifications() []NotificationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]NotificationLog, len(m.notifications))
	copy(result, m.notifications)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
