package task

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/olegnck404/mao-admin-panel/domain/task"
)

// Repository provides task storage backed by GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migration for tasks.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// Get retrieves a task by id.
func (r *Repository) Get(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("%w: failed to find task: %v", domain.ErrStoreUnavailable, err)
	}
	return &t, nil
}

// Put saves a task, inserting or overwriting by id (last write wins).
func (r *Repository) Put(t *domain.Task) error {
	if err := r.db.Save(t).Error; err != nil {
		return fmt.Errorf("%w: failed to save task: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete permanently removes a task by id.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("%w: failed to delete task: %v", domain.ErrStoreUnavailable, err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// ScanAll returns every task in the store.
func (r *Repository) ScanAll() ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to scan tasks: %v", domain.ErrStoreUnavailable, err)
	}
	return tasks, nil
}

var _ Store = (*Repository)(nil)
