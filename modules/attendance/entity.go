package attendance

import (
	"errors"
	"time"
)

var (
	// ErrRecordNotFound is returned when an attendance record is not found.
	ErrRecordNotFound = errors.New("attendance record not found")
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("all fields are required")
	// ErrNotAllowed is returned when the caller's role does not permit the operation.
	ErrNotAllowed = errors.New("forbidden")
)

// Record is one attendance entry for an employee on a given date.
// CheckIn and CheckOut are clock times in "HH:MM" form, matching the
// admin dashboard's input format.
type Record struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	EmployeeName string    `json:"employeeName" gorm:"not null;type:text"`
	Date         time.Time `json:"date" gorm:"index"`
	CheckIn      string    `json:"checkIn" gorm:"type:text"`
	CheckOut     string    `json:"checkOut" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for the Record entity.
func (Record) TableName() string {
	return "attendance_records"
}
