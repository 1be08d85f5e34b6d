package task

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/olegnck404/mao-admin-panel/domain/task"
)

func setupTestRepo(t *testing.T) *Repository {
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
	return repo
}

func sampleTask(id string) *domain.Task {
	now := time.Now().Truncate(time.Second)
	return &domain.Task{
		ID:          id,
		Title:       "Deep clean kitchen",
		DueDate:     now.Add(24 * time.Hour),
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusTodo,
		IsGlobal:    true,
		Assignees:   []string{"alice", "bob"},
		CompletedBy: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	want := sampleTask("t1")
	if err := repo.Put(want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := repo.Get("t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != want.Title || got.Priority != want.Priority || !got.IsGlobal {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if len(got.Assignees) != 2 {
		t.Errorf("assignees round-trip lost members: %v", got.Assignees)
	}
	if got.CompletedBy == nil {
		t.Error("completedBy must round-trip as an empty slice, not nil")
	}
}

func TestRepositoryUpsert(t *testing.T) {
	repo := setupTestRepo(t)

	task := sampleTask("t1")
	if err := repo.Put(task); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	task.CompletedBy = []string{"alice"}
	task.Status = domain.StatusInProgress
	if err := repo.Put(task); err != nil {
		t.Fatalf("Put() update error = %v", err)
	}

	got, err := repo.Get("t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != domain.StatusInProgress || len(got.CompletedBy) != 1 {
		t.Errorf("update not persisted: status=%q completedBy=%v", got.Status, got.CompletedBy)
	}

	all, err := repo.ScanAll()
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ScanAll() returned %d tasks, want 1 (update must not duplicate)", len(all))
	}
}

func TestRepositoryNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrTaskNotFound", err)
	}
	if err := repo.Delete("missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrTaskNotFound", err)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := setupTestRepo(t)

	if err := repo.Put(sampleTask("t1")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := repo.Delete("t1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get("t1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrTaskNotFound", err)
	}
}
