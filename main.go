package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	apimod "github.com/olegnck404/mao-admin-panel/modules/api"
	attendancemod "github.com/olegnck404/mao-admin-panel/modules/attendance"
	cachemod "github.com/olegnck404/mao-admin-panel/modules/cache"
	dashboardmod "github.com/olegnck404/mao-admin-panel/modules/dashboard"
	notificationmod "github.com/olegnck404/mao-admin-panel/modules/notification"
	rewardsmod "github.com/olegnck404/mao-admin-panel/modules/rewards"
	taskmod "github.com/olegnck404/mao-admin-panel/modules/task"
	usermod "github.com/olegnck404/mao-admin-panel/modules/user"
)

const shutdownTimeout = 30 * time.Second

func main() {
	redisAddr := os.Getenv("REDIS_ADDR")
	cacheTTL := getEnvDuration("CACHE_TTL", 30*time.Second)
	cachePrefix := getEnv("CACHE_PREFIX", "dashboard:")

	log.Println("=== MAO Admin Panel ===")
	if redisAddr != "" {
		log.Printf("Redis: %s (dashboard cache TTL %s)", redisAddr, cacheTTL)
	} else {
		log.Println("Redis: disabled (set REDIS_ADDR to enable dashboard caching)")
	}

	// Create modules
	userModule := usermod.NewModule()
	taskModule := taskmod.NewModule()
	attendanceModule := attendancemod.NewModule()
	rewardsModule := rewardsmod.NewModule()
	notificationModule := notificationmod.NewModule()
	dashboardModule := dashboardmod.NewModule()
	apiModule := apimod.NewModule()

	var cacheModule *cachemod.Module
	if redisAddr != "" {
		cacheModule = cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules; the framework resolves start order from
	// declared dependencies.
	app.Register(userModule)
	app.Register(attendanceModule)
	app.Register(rewardsModule)
	if cacheModule != nil {
		app.Register(cacheModule)
	}
	app.Register(taskModule)
	app.Register(notificationModule)
	app.Register(dashboardModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// Wire up the optional cache after start
	if cacheModule != nil {
		dashboardModule.SetCache(cacheModule.GetCache())
	}

	log.Println("=== Application Started ===")
	log.Println("Endpoints:")
	log.Println("  GET    /health                    - Health check")
	log.Println("  POST   /api/login                 - Authenticate")
	log.Println("  GET    /api/users                 - List users")
	log.Println("  POST   /api/users                 - Create user")
	log.Println("  GET    /api/users/:id             - Get user")
	log.Println("  DELETE /api/users/:id             - Delete user")
	log.Println("  GET    /api/tasks                 - List visible tasks")
	log.Println("  POST   /api/tasks                 - Create task")
	log.Println("  GET    /api/tasks/:id             - Get task")
	log.Println("  PUT    /api/tasks/:id             - Update task")
	log.Println("  DELETE /api/tasks/:id             - Delete task")
	log.Println("  POST   /api/tasks/:id/toggle      - Toggle own completion")
	log.Println("  POST   /api/tasks/:id/toggle-all  - Toggle all assignees")
	log.Println("  GET    /api/attendance            - List attendance")
	log.Println("  POST   /api/attendance            - Create attendance record")
	log.Println("  PUT    /api/attendance/:id        - Update attendance record")
	log.Println("  DELETE /api/attendance/:id        - Delete attendance record")
	log.Println("  GET    /api/rewards-fines         - List rewards and penalties")
	log.Println("  POST   /api/rewards-fines         - Create reward or penalty")
	log.Println("  GET    /api/dashboard             - Aggregated overview")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
