package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/olegnck404/mao-admin-panel/domain/task"
	"github.com/olegnck404/mao-admin-panel/events"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

// TaskModule provides the task store and completion engine (core domain).
type TaskModule struct {
	db       *gorm.DB
	repo     *Repository
	service  *Service
	userPort user.UserPort
	eventBus mono.EventBus
	dbPath   string
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("TASK_DB_PATH")
	if dbPath == "" {
		dbPath = "tasks.db"
	}
	return &TaskModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies returns the list of module dependencies.
func (m *TaskModule) Dependencies() []string {
	return []string{"user"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *TaskModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "user" {
		m.userPort = user.NewUserAdapter(container)
	}
}

// SetEventBus receives the application event bus.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskCompletionToggledV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"create-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-task", json.Unmarshal, json.Marshal, m.createTask)
		},
		"list-tasks": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks)
		},
		"get-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-task", json.Unmarshal, json.Marshal, m.getTask)
		},
		"update-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-task", json.Unmarshal, json.Marshal, m.updateTask)
		},
		"toggle-completion": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "toggle-completion", json.Unmarshal, json.Marshal, m.toggleCompletion)
		},
		"toggle-all": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "toggle-all", json.Unmarshal, json.Marshal, m.toggleAll)
		},
		"delete-task": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask)
		},
		"count-pending": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "count-pending", json.Unmarshal, json.Marshal, m.countPending)
		},
		"task-progress": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "task-progress", json.Unmarshal, json.Marshal, m.taskProgress)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[task] Registered services: create-task, list-tasks, get-task, update-task, toggle-completion, toggle-all, delete-task, count-pending, task-progress")
	return nil
}

// Start opens the database and wires the engine.
func (m *TaskModule) Start(_ context.Context) error {
	if m.userPort == nil {
		return fmt.Errorf("userPort dependency not set")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db
	m.repo = NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(m.repo, m.userPort)
	m.service.SetEventBus(m.eventBus)
	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}

	log.Printf("[task] Module started (db: %s, depends on: user)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health performs a health check on the task module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"driver": "sqlite", "path": m.dbPath},
	}
}

// Service request handlers. They delegate to the engine; the service
// struct carries the actual role and invariant checks.

func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.CreateTask(ctx, &req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	resp, err := m.service.ListTasks(ctx, req.Caller)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return *resp, nil
}

func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.GetTask(ctx, req.Caller, req.TaskID)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.UpdateTask(ctx, &req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) toggleCompletion(ctx context.Context, req ToggleCompletionRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.ToggleCompletion(ctx, &req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) toggleAll(ctx context.Context, req ToggleAllRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.ToggleAll(ctx, &req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.DeleteTask(ctx, req.Caller, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

func (m *TaskModule) countPending(ctx context.Context, _ CountPendingRequest, _ *mono.Msg) (CountPendingResponse, error) {
	pending, err := m.service.CountPending(ctx)
	if err != nil {
		return CountPendingResponse{}, err
	}
	return CountPendingResponse{Pending: pending}, nil
}

func (m *TaskModule) taskProgress(ctx context.Context, _ TaskProgressRequest, _ *mono.Msg) (TaskProgressResponse, error) {
	resp, err := m.service.CountByPriority(ctx)
	if err != nil {
		return TaskProgressResponse{}, err
	}
	return *resp, nil
}
