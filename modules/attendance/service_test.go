package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	nextID := 0
	return NewService(repo, func() string {
		nextID++
		return fmt.Sprintf("rec-%d", nextID)
	})
}

var (
	adminCaller = staff.Caller{ID: "a1", Name: "Admin", Role: staff.RoleAdmin}
	aliceCaller = staff.Caller{ID: "u1", Name: "alice", Role: staff.RoleUser}
)

func seedRecord(t *testing.T, svc *Service, employee, checkIn string, date time.Time) *Record {
	t.Helper()
	rec, err := svc.CreateRecord(context.Background(), &CreateRecordRequest{
		Caller:       adminCaller,
		EmployeeName: employee,
		Date:         date,
		CheckIn:      checkIn,
		CheckOut:     "18:00",
	})
	if err != nil {
		t.Fatalf("CreateRecord(%s) error = %v", employee, err)
	}
	return rec
}

func TestCreateRecord(t *testing.T) {
	svc := setupTestService(t)
	today := time.Now()

	t.Run("non-privileged caller is rejected", func(t *testing.T) {
		_, err := svc.CreateRecord(context.Background(), &CreateRecordRequest{
			Caller:       aliceCaller,
			EmployeeName: "alice",
			Date:         today,
			CheckIn:      "09:00",
			CheckOut:     "18:00",
		})
		if !errors.Is(err, ErrNotAllowed) {
			t.Errorf("error = %v, want ErrNotAllowed", err)
		}
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		_, err := svc.CreateRecord(context.Background(), &CreateRecordRequest{
			Caller:       adminCaller,
			EmployeeName: "alice",
			Date:         today,
		})
		if !errors.Is(err, ErrMissingFields) {
			t.Errorf("error = %v, want ErrMissingFields", err)
		}
	})

	t.Run("record gets a generated id", func(t *testing.T) {
		rec := seedRecord(t, svc, "alice", "09:00", today)
		if rec.ID == "" {
			t.Error("record has no id")
		}
	})
}

func TestListRecordsScoping(t *testing.T) {
	svc := setupTestService(t)
	today := time.Now()

	seedRecord(t, svc, "alice", "09:00", today)
	seedRecord(t, svc, "bob", "09:30", today)

	adminResp, err := svc.ListRecords(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("ListRecords(admin) error = %v", err)
	}
	if adminResp.Total != 2 {
		t.Errorf("admin Total = %d, want 2", adminResp.Total)
	}

	aliceResp, err := svc.ListRecords(context.Background(), aliceCaller)
	if err != nil {
		t.Fatalf("ListRecords(alice) error = %v", err)
	}
	if aliceResp.Total != 1 {
		t.Errorf("alice Total = %d, want 1", aliceResp.Total)
	}
	if len(aliceResp.Records) == 1 && aliceResp.Records[0].EmployeeName != "alice" {
		t.Errorf("alice sees %q's record", aliceResp.Records[0].EmployeeName)
	}

	emptyResp, err := svc.ListRecords(context.Background(), staff.Caller{})
	if err != nil {
		t.Fatalf("ListRecords(unresolved) error = %v", err)
	}
	if emptyResp.Total != 0 {
		t.Errorf("unresolved Total = %d, want 0", emptyResp.Total)
	}
}

func TestCountLateToday(t *testing.T) {
	svc := setupTestService(t)
	today := time.Now()
	yesterday := today.Add(-48 * time.Hour)

	seedRecord(t, svc, "alice", "09:00", today)     // on time
	seedRecord(t, svc, "bob", "09:30", today)       // late
	seedRecord(t, svc, "carol", "10:15", today)     // late
	seedRecord(t, svc, "dave", "11:00", yesterday)  // late, but not today
	seedRecord(t, svc, "erin", "09:10", today)      // exactly on the threshold

	late, err := svc.CountLateToday(context.Background())
	if err != nil {
		t.Fatalf("CountLateToday() error = %v", err)
	}
	if late != 2 {
		t.Errorf("CountLateToday() = %d, want 2", late)
	}
}

func TestUpdateAndDeleteRecord(t *testing.T) {
	svc := setupTestService(t)
	rec := seedRecord(t, svc, "alice", "09:00", time.Now())

	t.Run("non-privileged update is rejected", func(t *testing.T) {
		_, err := svc.UpdateRecord(context.Background(), &UpdateRecordRequest{
			Caller:   aliceCaller,
			RecordID: rec.ID,
		})
		if !errors.Is(err, ErrNotAllowed) {
			t.Errorf("error = %v, want ErrNotAllowed", err)
		}
	})

	t.Run("privileged update changes the record", func(t *testing.T) {
		got, err := svc.UpdateRecord(context.Background(), &UpdateRecordRequest{
			Caller:       adminCaller,
			RecordID:     rec.ID,
			EmployeeName: "alice",
			Date:         rec.Date,
			CheckIn:      "08:45",
			CheckOut:     "17:30",
		})
		if err != nil {
			t.Fatalf("UpdateRecord() error = %v", err)
		}
		if got.CheckIn != "08:45" || got.CheckOut != "17:30" {
			t.Errorf("updated record = %+v", got)
		}
	})

	t.Run("missing record reports not found", func(t *testing.T) {
		_, err := svc.UpdateRecord(context.Background(), &UpdateRecordRequest{
			Caller:       adminCaller,
			RecordID:     "missing",
			EmployeeName: "alice",
			Date:         rec.Date,
			CheckIn:      "09:00",
			CheckOut:     "18:00",
		})
		if !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("error = %v, want ErrRecordNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := svc.DeleteRecord(context.Background(), aliceCaller, rec.ID); !errors.Is(err, ErrNotAllowed) {
			t.Errorf("DeleteRecord(user) error = %v, want ErrNotAllowed", err)
		}
		if err := svc.DeleteRecord(context.Background(), adminCaller, rec.ID); err != nil {
			t.Fatalf("DeleteRecord(admin) error = %v", err)
		}
		if err := svc.DeleteRecord(context.Background(), adminCaller, rec.ID); !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("DeleteRecord(missing) error = %v, want ErrRecordNotFound", err)
		}
	})
}
