package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

// userAdapter wraps ServiceContainer for type-safe cross-module communication.
type userAdapter struct {
	container mono.ServiceContainer
}

// NewUserAdapter creates a new adapter for user services.
func NewUserAdapter(container mono.ServiceContainer) UserPort {
	if container == nil {
		panic("user adapter requires non-nil ServiceContainer")
	}
	return &userAdapter{container: container}
}

func (a *userAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// Login authenticates a user via the login service.
func (a *userAdapter) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp LoginResponse
	if err := a.call(ctx, "login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResolveCaller resolves a bearer token via the resolve-caller service.
func (a *userAdapter) ResolveCaller(ctx context.Context, token string) (staff.Caller, bool, error) {
	req := ResolveCallerRequest{Token: token}
	var resp ResolveCallerResponse
	if err := a.call(ctx, "resolve-caller", &req, &resp); err != nil {
		return staff.Caller{}, false, err
	}
	return resp.Caller, resp.Resolved, nil
}

// ListUsers lists all users via the list-users service.
func (a *userAdapter) ListUsers(ctx context.Context, caller staff.Caller) (*ListUsersResponse, error) {
	req := ListUsersRequest{Caller: caller}
	var resp ListUsersResponse
	if err := a.call(ctx, "list-users", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUser fetches a user by id via the get-user service.
func (a *userAdapter) GetUser(ctx context.Context, caller staff.Caller, userID string) (*UserInfo, error) {
	req := GetUserRequest{Caller: caller, UserID: userID}
	var resp UserInfo
	if err := a.call(ctx, "get-user", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateUser creates an account via the create-user service.
func (a *userAdapter) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserInfo, error) {
	var resp UserInfo
	if err := a.call(ctx, "create-user", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUser removes an account via the delete-user service.
func (a *userAdapter) DeleteUser(ctx context.Context, caller staff.Caller, userID string) error {
	req := DeleteUserRequest{Caller: caller, UserID: userID}
	var resp DeleteUserResponse
	if err := a.call(ctx, "delete-user", &req, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("user not deleted: %s", userID)
	}
	return nil
}

// UserExists checks a user name via the user-exists service.
func (a *userAdapter) UserExists(ctx context.Context, name string) (bool, error) {
	req := UserExistsRequest{Name: name}
	var resp UserExistsResponse
	if err := a.call(ctx, "user-exists", &req, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// CountUsers returns the number of accounts via the count-users service.
func (a *userAdapter) CountUsers(ctx context.Context) (int, error) {
	req := CountUsersRequest{}
	var resp CountUsersResponse
	if err := a.call(ctx, "count-users", &req, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
