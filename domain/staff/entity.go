package staff

import "time"

// Role is the capability tag attached to a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// Privileged reports whether the role may manage tasks, users and records.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleManager
}

// User represents an employee account.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	Role         Role   `gorm:"not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Caller is the resolved identity making a request.
// A zero Caller means the identity could not be resolved.
type Caller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Resolved reports whether the caller carries a usable identity.
func (c Caller) Resolved() bool {
	return c.Name != "" && c.Role.Valid()
}
