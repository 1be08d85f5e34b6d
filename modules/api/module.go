package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/olegnck404/mao-admin-panel/modules/attendance"
	"github.com/olegnck404/mao-admin-panel/modules/dashboard"
	"github.com/olegnck404/mao-admin-panel/modules/rewards"
	"github.com/olegnck404/mao-admin-panel/modules/task"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

// APIModule is the HTTP API module. It is a driving adapter: it owns no
// state of its own and talks to the other modules through their ports.
type APIModule struct {
	app            *fiber.App
	port           string
	userPort       user.UserPort
	taskPort       task.TaskPort
	attendancePort attendance.AttendancePort
	rewardsPort    rewards.RewardsPort
	dashboardPort  dashboard.DashboardPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"user", "task", "attendance", "rewards", "dashboard"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "user":
		m.userPort = user.NewUserAdapter(container)
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "attendance":
		m.attendancePort = attendance.NewAttendanceAdapter(container)
	case "rewards":
		m.rewardsPort = rewards.NewRewardsAdapter(container)
	case "dashboard":
		m.dashboardPort = dashboard.NewDashboardAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.userPort == nil || m.taskPort == nil || m.attendancePort == nil ||
		m.rewardsPort == nil || m.dashboardPort == nil {
		return fmt.Errorf("api dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.userPort, m.taskPort, m.attendancePort, m.rewardsPort, m.dashboardPort)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := m.app.Group("/api")

	// Public routes
	api.Post("/login", handlers.Login)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(AuthMiddleware(m.userPort))

	protected.Get("/users", handlers.ListUsers)
	protected.Post("/users", handlers.CreateUser)
	protected.Get("/users/:id", handlers.GetUser)
	protected.Delete("/users/:id", handlers.DeleteUser)

	protected.Get("/tasks", handlers.ListTasks)
	protected.Post("/tasks", handlers.CreateTask)
	protected.Get("/tasks/:id", handlers.GetTask)
	protected.Put("/tasks/:id", handlers.UpdateTask)
	protected.Delete("/tasks/:id", handlers.DeleteTask)
	protected.Post("/tasks/:id/toggle", handlers.ToggleCompletion)
	protected.Post("/tasks/:id/toggle-all", handlers.ToggleAll)

	protected.Get("/attendance", handlers.ListAttendance)
	protected.Post("/attendance", handlers.CreateAttendance)
	protected.Put("/attendance/:id", handlers.UpdateAttendance)
	protected.Delete("/attendance/:id", handlers.DeleteAttendance)

	protected.Get("/rewards-fines", handlers.ListRewards)
	protected.Post("/rewards-fines", handlers.CreateReward)

	protected.Get("/dashboard", handlers.Dashboard)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
