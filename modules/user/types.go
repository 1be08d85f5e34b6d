package user

import (
	"context"
	"time"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// UserInfo is the public view of a user (no credential material).
type UserInfo struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      staff.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// LoginRequest is the request for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the response for a successful login.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

// ResolveCallerRequest is the request for resolving a token into a caller.
type ResolveCallerRequest struct {
	Token string `json:"token"`
}

// ResolveCallerResponse is the response for resolving a caller.
// Resolved is false when the token is missing, invalid or expired.
type ResolveCallerResponse struct {
	Caller   staff.Caller `json:"caller"`
	Resolved bool         `json:"resolved"`
}

// ListUsersRequest is the request for listing users.
type ListUsersRequest struct {
	Caller staff.Caller `json:"caller"`
}

// ListUsersResponse is the response for listing users.
type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
	Total int        `json:"total"`
}

// GetUserRequest is the request for getting a user by id.
type GetUserRequest struct {
	Caller staff.Caller `json:"caller"`
	UserID string       `json:"user_id"`
}

// CreateUserRequest is the request for creating a user.
type CreateUserRequest struct {
	Caller   staff.Caller `json:"caller"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Role     string       `json:"role"`
	Password string       `json:"password"`
}

// DeleteUserRequest is the request for deleting a user.
type DeleteUserRequest struct {
	Caller staff.Caller `json:"caller"`
	UserID string       `json:"user_id"`
}

// DeleteUserResponse is the response for deleting a user.
type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

// UserExistsRequest is the request for checking a user name.
type UserExistsRequest struct {
	Name string `json:"name"`
}

// UserExistsResponse is the response for checking a user name.
type UserExistsResponse struct {
	Exists bool `json:"exists"`
}

// CountUsersRequest is the request for counting users.
type CountUsersRequest struct{}

// CountUsersResponse is the response for counting users.
type CountUsersResponse struct {
	Count int `json:"count"`
}

// UserPort defines the interface other modules use to reach the user module.
type UserPort interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ResolveCaller(ctx context.Context, token string) (staff.Caller, bool, error)
	ListUsers(ctx context.Context, caller staff.Caller) (*ListUsersResponse, error)
	GetUser(ctx context.Context, caller staff.Caller, userID string) (*UserInfo, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*UserInfo, error)
	DeleteUser(ctx context.Context, caller staff.Caller, userID string) error
	UserExists(ctx context.Context, name string) (bool, error)
	CountUsers(ctx context.Context) (int, error)
}
