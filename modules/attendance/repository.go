package attendance

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository provides attendance storage backed by GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new attendance repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migration for attendance records.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Record{})
}

// Create saves a new record.
func (r *Repository) Create(rec *Record) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

// FindByID retrieves a record by id.
func (r *Repository) FindByID(id string) (*Record, error) {
	var rec Record
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}
	return &rec, nil
}

// FindAll returns all records sorted by date, newest first.
func (r *Repository) FindAll() ([]*Record, error) {
	var recs []*Record
	if err := r.db.Order("date desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find attendance records: %w", err)
	}
	return recs, nil
}

// FindByEmployee returns one employee's records sorted by date, newest first.
func (r *Repository) FindByEmployee(name string) ([]*Record, error) {
	var recs []*Record
	if err := r.db.Where("employee_name = ?", name).Order("date desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find attendance records: %w", err)
	}
	return recs, nil
}

// FindRecent returns the newest records up to the given limit.
func (r *Repository) FindRecent(limit int) ([]*Record, error) {
	var recs []*Record
	if err := r.db.Order("date desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find recent attendance records: %w", err)
	}
	return recs, nil
}

// CountLateSince counts records on or after the cutoff whose check-in is
// later than the given "HH:MM" threshold. String comparison works because
// check-in times are zero-padded.
func (r *Repository) CountLateSince(cutoff time.Time, threshold string) (int, error) {
	var count int64
	if err := r.db.Model(&Record{}).
		Where("date >= ? AND check_in > ?", cutoff, threshold).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count late arrivals: %w", err)
	}
	return int(count), nil
}

// Update overwrites a record by id.
func (r *Repository) Update(rec *Record) error {
	result := r.db.Model(&Record{}).Where("id = ?", rec.ID).Updates(rec)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes a record by id.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&Record{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
