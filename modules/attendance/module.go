package attendance

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

// AttendanceModule provides attendance record services.
type AttendanceModule struct {
	db      *gorm.DB
	repo    *Repository
	service *Service
	dbPath  string
}

var _ mono.Module = (*AttendanceModule)(nil)
var _ mono.ServiceProviderModule = (*AttendanceModule)(nil)
var _ mono.HealthCheckableModule = (*AttendanceModule)(nil)

// NewModule creates a new AttendanceModule.
func NewModule() *AttendanceModule {
	dbPath := os.Getenv("ATTENDANCE_DB_PATH")
	if dbPath == "" {
		dbPath = "attendance.db"
	}
	return &AttendanceModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *AttendanceModule) Name() string {
	return "attendance"
}

// RegisterServices registers request-reply services in the service container.
func (m *AttendanceModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"list-records": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-records", json.Unmarshal, json.Marshal, m.listRecords)
		},
		"create-record": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-record", json.Unmarshal, json.Marshal, m.createRecord)
		},
		"update-record": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update-record", json.Unmarshal, json.Marshal, m.updateRecord)
		},
		"delete-record": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete-record", json.Unmarshal, json.Marshal, m.deleteRecord)
		},
		"late-count": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "late-count", json.Unmarshal, json.Marshal, m.lateCount)
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

	log.Printf("[attendance] Registered services: list-records, create-record, update-record, delete-record, late-count, recent-records")
	return nil
}

// Start opens the database and wires the service.
func (m *AttendanceModule) Start(_ context.Context) error {
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

	log.Printf("[attendance] Module started (db: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *AttendanceModule) Stop(_ context.Context) error {
	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[attendance] Module stopped")
	return nil
}

// Health performs a health check on the attendance module.
func (m *AttendanceModule) Health(ctx context.Context) mono.HealthStatus {
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

func (m *AttendanceModule) listRecords(ctx context.Context, req ListRecordsRequest, _ *mono.Msg) (ListRecordsResponse, error) {
	resp, err := m.service.ListRecords(ctx, req.Caller)
	if err != nil {
		return ListRecordsResponse{}, err
	}
	return *resp, nil
}

func (m *AttendanceModule) createRecord(ctx context.Context, req CreateRecordRequest, _ *mono.Msg) (Record, error) {
	rec, err := m.service.CreateRecord(ctx, &req)
	if err != nil {
		return Record{}, err
	}
	return *rec, nil
}

func (m *AttendanceModule) updateRecord(ctx context.Context, req UpdateRecordRequest, _ *mono.Msg) (Record, error) {
	rec, err := m.service.UpdateRecord(ctx, &req)
	if err != nil {
		return Record{}, err
	}
	return *rec, nil
}

func (m *AttendanceModule) deleteRecord(ctx context.Context, req DeleteRecordRequest, _ *mono.Msg) (DeleteRecordResponse, error) {
	if err := m.service.DeleteRecord(ctx, req.Caller, req.RecordID); err != nil {
		return DeleteRecordResponse{Deleted: false}, err
	}
	return DeleteRecordResponse{Deleted: true}, nil
}

func (m *AttendanceModule) lateCount(ctx context.Context, _ LateCountRequest, _ *mono.Msg) (LateCountResponse, error) {
	late, err := m.service.CountLateToday(ctx)
	if err != nil {
		return LateCountResponse{}, err
	}
	return LateCountResponse{Late: late}, nil
}

func (m *AttendanceModule) recentRecords(ctx context.Context, req RecentRecordsRequest, _ *mono.Msg) (RecentRecordsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 3
	}
	recs, err := m.service.RecentRecords(ctx, limit)
	if err != nil {
		return RecentRecordsResponse{}, err
	}
	return RecentRecordsResponse{Records: recs}, nil
}
