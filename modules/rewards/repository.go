package rewards

import (
	"fmt"

	"gorm.io/gorm"
)

// Repository provides reward/fine storage backed by GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new rewards repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migration for reward records.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Record{})
}

// Create saves a new record.
func (r *Repository) Create(rec *Record) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create reward record: %w", err)
	}
	return nil
}

// FindAll returns all records sorted by date, newest first.
func (r *Repository) FindAll() ([]*Record, error) {
	var recs []*Record
	if err := r.db.Order("date desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find reward records: %w", err)
	}
	return recs, nil
}

// FindByEmployee returns one employee's records sorted by date, newest first.
func (r *Repository) FindByEmployee(name string) ([]*Record, error) {
	var recs []*Record
	if err := r.db.Where("employee_name = ?", name).Order("date desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find reward records: %w", err)
	}
	return recs, nil
}

// FindRecent returns the newest records up to the given limit.
func (r *Repository) FindRecent(limit int) ([]*Record, error) {
	var recs []*Record
	if err := r.db.Order("date desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find recent reward records: %w", err)
	}
	return recs, nil
}

// SumRewards returns the total amount across reward-type records.
func (r *Repository) SumRewards() (float64, error) {
	var total float64
	if err := r.db.Model(&Record{}).
		Where("type = ?", TypeReward).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum rewards: %w", err)
	}
	return total, nil
}
