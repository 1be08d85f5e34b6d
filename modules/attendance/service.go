package attendance

import (
	"context"
	"time"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// lateThreshold is the check-in time after which an arrival counts as late.
const lateThreshold = "09:10"

// Service handles attendance record management.
type Service struct {
	repo  *Repository
	newID func() string
}

// NewService creates a new attendance service. newID produces record ids.
func NewService(repo *Repository, newID func() string) *Service {
	return &Service{repo: repo, newID: newID}
}

// ListRecords returns the records the caller may see: every record for
// admins and managers, only the caller's own records otherwise.
func (s *Service) ListRecords(_ context.Context, caller staff.Caller) (*ListRecordsResponse, error) {
	if !caller.Resolved() {
		return &ListRecordsResponse{Records: []Record{}}, nil
	}

	var (
		recs []*Record
		err  error
	)
	if caller.Role.Privileged() {
		recs, err = s.repo.FindAll()
	} else {
		recs, err = s.repo.FindByEmployee(caller.Name)
	}
	if err != nil {
		return nil, err
	}

	resp := &ListRecordsResponse{Records: make([]Record, 0, len(recs)), Total: len(recs)}
	for _, r := range recs {
		resp.Records = append(resp.Records, *r)
	}
	return resp, nil
}

// CreateRecord creates a new attendance record. Privileged callers only.
func (s *Service) CreateRecord(_ context.Context, req *CreateRecordRequest) (*Record, error) {
	if !req.Caller.Role.Privileged() {
		return nil, ErrNotAllowed
	}
	if req.EmployeeName == "" || req.Date.IsZero() || req.CheckIn == "" || req.CheckOut == "" {
		return nil, ErrMissingFields
	}

	now := time.Now()
	rec := &Record{
		ID:           s.newID(),
		EmployeeName: req.EmployeeName,
		Date:         req.Date,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRecord overwrites an existing record. Privileged callers only.
func (s *Service) UpdateRecord(_ context.Context, req *UpdateRecordRequest) (*Record, error) {
	if !req.Caller.Role.Privileged() {
		return nil, ErrNotAllowed
	}

	rec, err := s.repo.FindByID(req.RecordID)
	if err != nil {
		return nil, err
	}

	if req.EmployeeName != "" {
		rec.EmployeeName = req.EmployeeName
	}
	if !req.Date.IsZero() {
		rec.Date = req.Date
	}
	if req.CheckIn != "" {
		rec.CheckIn = req.CheckIn
	}
	if req.CheckOut != "" {
		rec.CheckOut = req.CheckOut
	}
	rec.UpdatedAt = time.Now()

	if err := s.repo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecord removes a record. Privileged callers only.
func (s *Service) DeleteRecord(_ context.Context, caller staff.Caller, recordID string) error {
	if !caller.Role.Privileged() {
		return ErrNotAllowed
	}
	return s.repo.Delete(recordID)
}

// CountLateToday counts today's arrivals after the late threshold.
func (s *Service) CountLateToday(_ context.Context) (int, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.CountLateSince(midnight, lateThreshold)
}

// RecentRecords returns the newest records up to the given limit.
func (s *Service) RecentRecords(_ context.Context, limit int) ([]Record, error) {
	recs, err := s.repo.FindRecent(limit)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, *r)
	}
	return out, nil
}
