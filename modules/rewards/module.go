package rewards

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	nanoid "github.com/jaevor/go-nanoid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RewardsModule provides reward and penalty record services.
type RewardsModule struct {
	db      *gorm.DB
	repo    *Repository
	service *Service
	dbPath  string
}

var _ mono.Module = (*RewardsModule)(nil)
var _ mono.ServiceProviderModule = (*RewardsModule)(nil)
var _ mono.HealthCheckableModule = (*RewardsModule)(nil)

// NewModule creates a new RewardsModule.
func NewModule() *RewardsModule {
	dbPath := os.Getenv("REWARDS_DB_PATH")
	if dbPath == "" {
		dbPath = "rewards.db"
	}
	return &RewardsModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *RewardsModule) Name() string {
	return "rewards"
}

// RegisterServices registers request-reply services in the service container.
func (m *RewardsModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"list-records": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-records", json.Unmarshal, json.Marshal, m.listRecords)
		},
		"create-record": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-record", json.Unmarshal, json.Marshal, m.createRecord)
		},
		"reward-total": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "reward-total", json.Unmarshal, json.Marshal, m.rewardTotal)
		},
		"recent-records": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "recent-records", json.Unmarshal, json.Marshal, m.recentRecords)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[rewards] Registered services: list-records, create-record, reward-total, recent-records")
	return nil
}

// Start opens the database and wires the service.
func (m *RewardsModule) Start(_ context.Context) error {
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

	newID, err := nanoid.Standard(21)
	if err != nil {
		return fmt.Errorf("failed to create id generator: %w", err)
	}
	m.service = NewService(m.repo, newID)

	log.Printf("[rewards] Module started (db: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *RewardsModule) Stop(_ context.Context) error {
	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[rewards] Module stopped")
	return nil
}

// Health performs a health check on the rewards module.
func (m *RewardsModule) Health(ctx context.Context) mono.HealthStatus {
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

func (m *RewardsModule) listRecords(ctx context.Context, req ListRecordsRequest, _ *mono.Msg) (ListRecordsResponse, error) {
	resp, err := m.service.ListRecords(ctx, req.Caller)
	if err != nil {
		return ListRecordsResponse{}, err
	}
	return *resp, nil
}

func (m *RewardsModule) createRecord(ctx context.Context, req CreateRecordRequest, _ *mono.Msg) (Record, error) {
	rec, err := m.service.CreateRecord(ctx, &req)
	if err != nil {
		return Record{}, err
	}
	return *rec, nil
}

func (m *RewardsModule) rewardTotal(ctx context.Context, _ RewardTotalRequest, _ *mono.Msg) (RewardTotalResponse, error) {
	total, err := m.service.RewardTotal(ctx)
	if err != nil {
		return RewardTotalResponse{}, err
	}
	return RewardTotalResponse{Total: total}, nil
}

func (m *RewardsModule) recentRecords(ctx context.Context, req RecentRecordsRequest, _ *mono.Msg) (RecentRecordsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 2
	}
	recs, err := m.service.RecentRecords(ctx, limit)
	if err != nil {
		return RecentRecordsResponse{}, err
	}
	return RecentRecordsResponse{Records: recs}, nil
}
