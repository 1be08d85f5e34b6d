package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/olegnck404/mao-admin-panel/domain/staff"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	jwtManager := NewJWTManager(JWTConfig{
		SecretKey:           "test-secret",
		AccessTokenDuration: time.Hour,
		Issuer:              "test",
	})
	return NewService(repo, NewPasswordHasher(), jwtManager)
}

var adminCaller = staff.Caller{ID: "a1", Name: "Admin", Role: staff.RoleAdmin}

func seedUser(t *testing.T, svc *Service, name, email, role string) *UserInfo {
	t.Helper()
	info, err := svc.CreateUser(context.Background(), &CreateUserRequest{
		Caller:   adminCaller,
		Name:     name,
		Email:    email,
		Role:     role,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", name, err)
	}
	return info
}

func TestLogin(t *testing.T) {
	svc := setupTestService(t)
	seedUser(t, svc, "Maria", "maria@example.com", "manager")

	t.Run("valid credentials issue a token", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), "maria@example.com", "password123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.AccessToken == "" {
			t.Error("Login() returned empty access token")
		}
		if resp.TokenType != "Bearer" {
			t.Errorf("TokenType = %q, want Bearer", resp.TokenType)
		}
		if resp.User.Role != staff.RoleManager {
			t.Errorf("User.Role = %q, want manager", resp.User.Role)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "maria@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email is rejected with the same error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@example.com", "password123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestResolveCaller(t *testing.T) {
	svc := setupTestService(t)
	seedUser(t, svc, "alice", "alice@example.com", "user")

	resp, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	caller, resolved := svc.ResolveCaller(context.Background(), resp.AccessToken)
	if !resolved {
		t.Fatal("ResolveCaller() did not resolve a fresh token")
	}
	if caller.Name != "alice" || caller.Role != staff.RoleUser {
		t.Errorf("caller = %+v, want alice/user", caller)
	}

	if _, resolved := svc.ResolveCaller(context.Background(), "bogus-token"); resolved {
		t.Error("ResolveCaller() resolved a bogus token")
	}
	if _, resolved := svc.ResolveCaller(context.Background(), ""); resolved {
		t.Error("ResolveCaller() resolved an empty token")
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := setupTestService(t)

	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr error
	}{
		{
			name: "non-privileged caller",
			req: CreateUserRequest{
				Caller: staff.Caller{ID: "u1", Name: "alice", Role: staff.RoleUser},
				Name:   "bob", Email: "bob@example.com", Role: "user", Password: "pw123456",
			},
			wantErr: ErrNotAllowed,
		},
		{
			name: "missing name",
			req: CreateUserRequest{
				Caller: adminCaller,
				Email:  "bob@example.com", Role: "user", Password: "pw123456",
			},
			wantErr: ErrMissingFields,
		},
		{
			name: "invalid email",
			req: CreateUserRequest{
				Caller: adminCaller,
				Name:   "bob", Email: "not-an-email", Role: "user", Password: "pw123456",
			},
			wantErr: ErrInvalidEmail,
		},
		{
			name: "invalid role",
			req: CreateUserRequest{
				Caller: adminCaller,
				Name:   "bob", Email: "bob@example.com", Role: "owner", Password: "pw123456",
			},
			wantErr: ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		seedUser(t, svc, "bob", "bob@example.com", "user")
		_, err := svc.CreateUser(context.Background(), &CreateUserRequest{
			Caller: adminCaller,
			Name:   "bobby", Email: "bob@example.com", Role: "user", Password: "pw123456",
		})
		if !errors.Is(err, ErrUserExists) {
			t.Errorf("CreateUser() error = %v, want ErrUserExists", err)
		}
	})
}

func TestListAndGetUserPermissions(t *testing.T) {
	svc := setupTestService(t)
	aliceInfo := seedUser(t, svc, "alice", "alice@example.com", "user")
	bobInfo := seedUser(t, svc, "bob", "bob@example.com", "user")

	aliceCaller := staff.Caller{ID: aliceInfo.ID, Name: "alice", Role: staff.RoleUser}

	if _, err := svc.ListUsers(context.Background(), aliceCaller); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("ListUsers(user) error = %v, want ErrNotAllowed", err)
	}

	resp, err := svc.ListUsers(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("ListUsers(admin) error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2", resp.Total)
	}

	// A user may fetch themselves but not others.
	if _, err := svc.GetUser(context.Background(), aliceCaller, aliceInfo.ID); err != nil {
		t.Errorf("GetUser(self) error = %v", err)
	}
	if _, err := svc.GetUser(context.Background(), aliceCaller, bobInfo.ID); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("GetUser(other) error = %v, want ErrNotAllowed", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc := setupTestService(t)
	info := seedUser(t, svc, "alice", "alice@example.com", "user")

	userCaller := staff.Caller{ID: "x", Name: "bob", Role: staff.RoleUser}
	if err := svc.DeleteUser(context.Background(), userCaller, info.ID); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("DeleteUser(user) error = %v, want ErrNotAllowed", err)
	}

	if err := svc.DeleteUser(context.Background(), adminCaller, info.ID); err != nil {
		t.Fatalf("DeleteUser(admin) error = %v", err)
	}
	if err := svc.DeleteUser(context.Background(), adminCaller, info.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("DeleteUser(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestSeedAdmin(t *testing.T) {
	svc := setupTestService(t)

	if err := svc.SeedAdmin("admin@example.com", "admin123"); err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}

	// Seeding again is a no-op.
	if err := svc.SeedAdmin("admin@example.com", "admin123"); err != nil {
		t.Fatalf("SeedAdmin() second call error = %v", err)
	}

	count, err := svc.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountUsers() = %d, want 1", count)
	}

	resp, err := svc.Login(context.Background(), "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("Login() as seeded admin error = %v", err)
	}
	if resp.User.Role != staff.RoleAdmin {
		t.Errorf("seeded admin role = %q, want admin", resp.User.Role)
	}

	exists, err := svc.UserExists(context.Background(), "Admin")
	if err != nil {
		t.Fatalf("UserExists() error = %v", err)
	}
	if !exists {
		t.Error("UserExists(Admin) = false, want true")
	}
}
