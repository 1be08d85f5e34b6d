package rewards

import (
	"errors"
	"time"
)

var (
	// ErrRecordNotFound is returned when a reward/fine record is not found.
	ErrRecordNotFound = errors.New("reward record not found")
	// ErrInvalidRecord is returned when record fields are missing or contradictory.
	ErrInvalidRecord = errors.New("invalid reward record")
	// ErrNotAllowed is returned when the caller's role does not permit the operation.
	ErrNotAllowed = errors.New("forbidden")
)

// RecordType distinguishes rewards from penalties.
type RecordType string

const (
	TypeReward  RecordType = "reward"
	TypePenalty RecordType = "penalty"
)

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	return t == TypeReward || t == TypePenalty
}

// Record is one reward or penalty entry for an employee.
type Record struct {
	ID           string     `json:"id" gorm:"primaryKey;type:text"`
	EmployeeName string     `json:"employeeName" gorm:"not null;type:text"`
	Date         time.Time  `json:"date" gorm:"index"`
	Type         RecordType `json:"type" gorm:"type:text"`
	Amount       float64    `json:"amount"`
	Reason       string     `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Record entity.
func (Record) TableName() string {
	return "reward_records"
}
