package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

// mockUserPort implements user.UserPort for testing.
type mockUserPort struct {
	resolveCallerFunc func(ctx context.Context, token string) (staff.Caller, bool, error)
}

func (m *mockUserPort) Login(context.Context, string, string) (*user.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserPort) ResolveCaller(ctx context.Context, token string) (staff.Caller, bool, error) {
	if m.resolveCallerFunc != nil {
		return m.resolveCallerFunc(ctx, token)
	}
	return staff.Caller{}, false, errors.New("not implemented")
}

func (m *mockUserPort) ListUsers(context.Context, staff.Caller) (*user.ListUsersResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserPort) GetUser(context.Context, staff.Caller, string) (*user.UserInfo, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserPort) CreateUser(context.Context, *user.CreateUserRequest) (*user.UserInfo, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserPort) DeleteUser(context.Context, staff.Caller, string) error {
	return errors.New("not implemented")
}

func (m *mockUserPort) UserExists(context.Context, string) (bool, error) {
	return false, errors.New("not implemented")
}

func (m *mockUserPort) CountUsers(context.Context) (int, error) {
	return 0, errors.New("not implemented")
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockUser       *mockUserPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			mockUser:       &mockUserPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Authorization header is required"`,
		},
		{
			name:           "invalid authorization format - no bearer",
			authHeader:     "Basic token123",
			mockUser:       &mockUserPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Invalid authorization header format`,
		},
		{
			name:       "token that does not resolve",
			authHeader: "Bearer expired-token",
			mockUser: &mockUserPort{
				resolveCallerFunc: func(ctx context.Context, token string) (staff.Caller, bool, error) {
					return staff.Caller{}, false, nil
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid or expired token"`,
		},
		{
			name:       "resolver error",
			authHeader: "Bearer some-token",
			mockUser: &mockUserPort{
				resolveCallerFunc: func(ctx context.Context, token string) (staff.Caller, bool, error) {
					return staff.Caller{}, false, errors.New("bus unreachable")
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid or expired token"`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			mockUser: &mockUserPort{
				resolveCallerFunc: func(ctx context.Context, token string) (staff.Caller, bool, error) {
					return staff.Caller{ID: "u1", Name: "alice", Role: staff.RoleUser}, true, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"authenticated"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthMiddleware(tt.mockUser))
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "authenticated"})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if tt.expectedBody != "" && !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

func TestAuthMiddlewareStoresCaller(t *testing.T) {
	mockUser := &mockUserPort{
		resolveCallerFunc: func(ctx context.Context, token string) (staff.Caller, bool, error) {
			return staff.Caller{ID: "u2", Name: "Maria", Role: staff.RoleManager}, true, nil
		},
	}

	app := fiber.New()
	app.Use(AuthMiddleware(mockUser))

	var captured staff.Caller
	app.Get("/test", func(c *fiber.Ctx) error {
		caller, ok := callerFromCtx(c)
		if !ok {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "no caller"})
		}
		captured = caller
		return c.JSON(fiber.Map{"status": "ok"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if captured.Name != "Maria" || captured.Role != staff.RoleManager {
		t.Errorf("captured caller = %+v, want Maria/manager", captured)
	}
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"forbidden", errors.New("service error: forbidden"), http.StatusForbidden},
		{"not found", errors.New("task not found"), http.StatusNotFound},
		{"bad credentials", errors.New("invalid email or password"), http.StatusUnauthorized},
		{"duplicate email", errors.New("user with this email already exists"), http.StatusConflict},
		{"store down", errors.New("task store unavailable: disk error"), http.StatusInternalServerError},
		{"empty title", errors.New("task title is required"), http.StatusBadRequest},
		{"bad priority", errors.New("invalid task priority"), http.StatusBadRequest},
		{"unknown assignee", errors.New("unknown assignee: ghost"), http.StatusBadRequest},
		{"unknown assignee named like a miss", errors.New("unknown assignee: not found"), http.StatusBadRequest},
		{"missing due date", errors.New("task due date is required"), http.StatusBadRequest},
		{"mixed scope", errors.New("task mixes personal and global assignment"), http.StatusBadRequest},
		{"unexpected", errors.New("something odd"), http.StatusInternalServerError},
	}

	h := &Handlers{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/test", func(c *fiber.Ctx) error {
				return h.handleError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}
		})
	}
}
