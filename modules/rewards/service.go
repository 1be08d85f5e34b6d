package rewards

import (
	"context"
	"time"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// Service handles reward and penalty records.
type Service struct {
	repo  *Repository
	newID func() string
}

// NewService creates a new rewards service. newID produces record ids.
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

// CreateRecord creates a new reward or penalty. Privileged callers only.
func (s *Service) CreateRecord(_ context.Context, req *CreateRecordRequest) (*Record, error) {
	if !req.Caller.Role.Privileged() {
		return nil, ErrNotAllowed
	}

	recordType := RecordType(req.Type)
	if req.EmployeeName == "" || req.Date.IsZero() || !recordType.Valid() || req.Amount <= 0 {
		return nil, ErrInvalidRecord
	}

	now := time.Now()
	rec := &Record{
		ID:           s.newID(),
		EmployeeName: req.EmployeeName,
		Date:         req.Date,
		Type:         recordType,
		Amount:       req.Amount,
		Reason:       req.Reason,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RewardTotal returns the summed amount of reward-type records.
func (s *Service) RewardTotal(_ context.Context) (float64, error) {
	return s.repo.SumRewards()
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
