package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidRole is returned when the role is not admin, manager or user.
	ErrInvalidRole = errors.New("invalid role")
	// ErrNotAllowed is returned when the caller's role does not permit the operation.
	ErrNotAllowed = errors.New("forbidden")
)

// Service handles user management and identity resolution.
type Service struct {
	repo   *Repository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewService creates a new user service.
func NewService(repo *Repository, hasher *PasswordHasher, jwt *JWTManager) *Service {
	return &Service{repo: repo, hasher: hasher, jwt: jwt}
}

// Login authenticates a user by email and password and issues a token.
func (s *Service) Login(_ context.Context, email, password string) (*LoginResponse, error) {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresIn:   s.jwt.AccessTokenDuration(),
		TokenType:   "Bearer",
		User:        toUserInfo(u),
	}, nil
}

// ResolveCaller validates a token and returns the caller identity.
// An invalid or expired token resolves to a zero caller, not an error.
func (s *Service) ResolveCaller(_ context.Context, token string) (staff.Caller, bool) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return staff.Caller{}, false
	}
	caller := staff.Caller{
		ID:   claims.UserID,
		Name: claims.Name,
		Role: staff.Role(claims.Role),
	}
	if !caller.Resolved() {
		return staff.Caller{}, false
	}
	return caller, true
}

// ListUsers returns all users. Privileged callers only.
func (s *Service) ListUsers(_ context.Context, caller staff.Caller) (*ListUsersResponse, error) {
	if !caller.Role.Privileged() {
		return nil, ErrNotAllowed
	}
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	resp := &ListUsersResponse{Users: make([]UserInfo, 0, len(users)), Total: len(users)}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserInfo(u))
	}
	return resp, nil
}

// GetUser returns one user. Privileged callers may fetch anyone;
// regular users only themselves.
func (s *Service) GetUser(_ context.Context, caller staff.Caller, userID string) (*UserInfo, error) {
	if !caller.Role.Privileged() && caller.ID != userID {
		return nil, ErrNotAllowed
	}
	u, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(u)
	return &info, nil
}

// CreateUser creates a new account. Privileged callers only.
func (s *Service) CreateUser(_ context.Context, req *CreateUserRequest) (*UserInfo, error) {
	if !req.Caller.Role.Privileged() {
		return nil, ErrNotAllowed
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	role := staff.Role(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.repo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &staff.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	info := toUserInfo(u)
	return &info, nil
}

// DeleteUser removes an account. Privileged callers only.
func (s *Service) DeleteUser(_ context.Context, caller staff.Caller, userID string) error {
	if !caller.Role.Privileged() {
		return ErrNotAllowed
	}
	return s.repo.Delete(userID)
}

// UserExists checks whether a user with the given name exists.
func (s *Service) UserExists(_ context.Context, name string) (bool, error) {
	return s.repo.NameExists(name)
}

// CountUsers returns the total number of accounts.
func (s *Service) CountUsers(_ context.Context) (int, error) {
	return s.repo.Count()
}

// SeedAdmin creates the initial admin account when it does not exist yet.
func (s *Service) SeedAdmin(email, password string) error {
	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	return s.repo.Create(&staff.User{
		ID:           uuid.New().String(),
		Name:         "Admin",
		Email:        email,
		Role:         staff.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func toUserInfo(u *staff.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
