package user

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when the email is already taken.
	ErrUserExists = errors.New("user with this email already exists")
)

// Repository provides user storage backed by GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migration for users.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&staff.User{})
}

// Create saves a new user.
func (r *Repository) Create(u *staff.User) error {
	if err := r.db.Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by id.
func (r *Repository) FindByID(id string) (*staff.User, error) {
	var u staff.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// FindByEmail retrieves a user by email.
func (r *Repository) FindByEmail(email string) (*staff.User, error) {
	var u staff.User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// EmailExists checks whether a user with the given email exists.
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&staff.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// NameExists checks whether a user with the given name exists.
func (r *Repository) NameExists(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&staff.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check name: %w", err)
	}
	return count > 0, nil
}

// FindAll returns all users.
func (r *Repository) FindAll() ([]*staff.User, error) {
	var users []*staff.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

// Count returns the total number of users.
func (r *Repository) Count() (int, error) {
	var count int64
	if err := r.db.Model(&staff.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return int(count), nil
}

// Delete removes a user by id.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&staff.User{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
