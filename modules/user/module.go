package user

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
)

// UserModule provides user management and identity resolution.
// It is the identity provider the rest of the application trusts:
// resolve-caller turns a bearer token into {id, name, role}.
type UserModule struct {
	db      *gorm.DB
	repo    *Repository
	service *Service
	dbPath  string
}

var _ mono.Module = (*UserModule)(nil)
var _ mono.ServiceProviderModule = (*UserModule)(nil)
var _ mono.HealthCheckableModule = (*UserModule)(nil)

// NewModule creates a new UserModule.
func NewModule() *UserModule {
	dbPath := os.Getenv("USER_DB_PATH")
	if dbPath == "" {
		dbPath = "users.db"
	}
	return &UserModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *UserModule) Name() string {
	return "user"
}

// RegisterServices registers request-reply services in the service container.
func (m *UserModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"login": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "login", json.Unmarshal, json.Marshal, m.login)
		},
		"resolve-caller": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "resolve-caller", json.Unmarshal, json.Marshal, m.resolveCaller)
		},
		"list-users": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-users", json.Unmarshal, json.Marshal, m.listUsers)
		},
		"get-user": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "get-user", json.Unmarshal, json.Marshal, m.getUser)
		},
		"create-user": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-user", json.Unmarshal, json.Marshal, m.createUser)
		},
		"delete-user": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-user", json.Unmarshal, json.Marshal, m.deleteUser)
		},
		"user-exists": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "user-exists", json.Unmarshal, json.Marshal, m.userExists)
		},
		"count-users": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "count-users", json.Unmarshal, json.Marshal, m.countUsers)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[user] Registered services: login, resolve-caller, list-users, get-user, create-user, delete-user, user-exists, count-users")
	return nil
}

// Start opens the database, runs migrations and seeds the admin account.
func (m *UserModule) Start(_ context.Context) error {
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

	jwtConfig := DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		jwtConfig.SecretKey = secret
	}
	m.service = NewService(m.repo, NewPasswordHasher(), NewJWTManager(jwtConfig))

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := m.service.SeedAdmin(adminEmail, adminPassword); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("[user] Module started (db: %s, admin: %s)", m.dbPath, adminEmail)
	return nil
}

// Stop closes the database connection.
func (m *UserModule) Stop(_ context.Context) error {
	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[user] Module stopped")
	return nil
}

// Health performs a health check on the user module.
func (m *UserModule) Health(ctx context.Context) mono.HealthStatus {
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

func (m *UserModule) login(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	resp, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return *resp, nil
}

func (m *UserModule) resolveCaller(ctx context.Context, req ResolveCallerRequest, _ *mono.Msg) (ResolveCallerResponse, error) {
	caller, ok := m.service.ResolveCaller(ctx, req.Token)
	return ResolveCallerResponse{Caller: caller, Resolved: ok}, nil
}

func (m *UserModule) listUsers(ctx context.Context, req ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	resp, err := m.service.ListUsers(ctx, req.Caller)
	if err != nil {
		return ListUsersResponse{}, err
	}
	return *resp, nil
}

func (m *UserModule) getUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (UserInfo, error) {
	info, err := m.service.GetUser(ctx, req.Caller, req.UserID)
	if err != nil {
		return UserInfo{}, err
	}
	return *info, nil
}

func (m *UserModule) createUser(ctx context.Context, req CreateUserRequest, _ *mono.Msg) (UserInfo, error) {
	info, err := m.service.CreateUser(ctx, &req)
	if err != nil {
		return UserInfo{}, err
	}
	return *info, nil
}

func (m *UserModule) deleteUser(ctx context.Context, req DeleteUserRequest, _ *mono.Msg) (DeleteUserResponse, error) {
	if err := m.service.DeleteUser(ctx, req.Caller, req.UserID); err != nil {
		return DeleteUserResponse{Deleted: false}, err
	}
	return DeleteUserResponse{Deleted: true}, nil
}

func (m *UserModule) userExists(ctx context.Context, req UserExistsRequest, _ *mono.Msg) (UserExistsResponse, error) {
	exists, err := m.service.UserExists(ctx, req.Name)
	if err != nil {
		return UserExistsResponse{}, err
	}
	return UserExistsResponse{Exists: exists}, nil
}

func (m *UserModule) countUsers(ctx context.Context, _ CountUsersRequest, _ *mono.Msg) (CountUsersResponse, error) {
	count, err := m.service.CountUsers(ctx)
	if err != nil {
		return CountUsersResponse{}, err
	}
	return CountUsersResponse{Count: count}, nil
}
