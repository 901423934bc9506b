package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/password"
	"github.com/cineplex/reservation-system/internal/core/ports"
	"github.com/cineplex/reservation-system/internal/core/roles"
	"github.com/cineplex/reservation-system/internal/core/token"
	"github.com/cineplex/reservation-system/internal/core/token/tokentest"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			if update.Email != nil {
				u.Email = *update.Email
			}
			if update.PhoneNumber != nil {
				u.PhoneNumber = *update.PhoneNumber
			}
			if update.FirstName != nil {
				u.FirstName = *update.FirstName
			}
			if update.LastName != nil {
				u.LastName = *update.LastName
			}
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.IsActive = active
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, int64(len(out)), nil
}

func testRegistry() *roles.Registry {
	return roles.NewRegistry([]domain.Role{
		{ID: 1, Name: domain.RoleAdmin},
		{ID: 2, Name: domain.RoleStaff},
		{ID: 3, Name: domain.RoleCustomer},
	})
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo) {
	t.Helper()

	codec := tokentest.NewCodec(t)
	factory := token.NewFactory(codec, testRegistry(), "cineplex", time.Hour, 30*24*time.Hour)
	verifier := token.NewVerifier(codec)
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	repo := newStubUserRepo()
	svc := NewAuthService(repo, hasher, factory, verifier, zerolog.Nop())
	return svc, repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, plaintext string, roleID int, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		RoleID:       roleID,
		IsActive:     active,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct-horse", 1, true)

	pair, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.TokenType != "Bearer" {
		t.Fatalf("token_type = %q, want Bearer", pair.TokenType)
	}
	if !pair.ExpiresAt.After(time.Now()) {
		t.Fatalf("expires_at must be in the future")
	}

	claims, err := svc.CurrentClaims(pair.AccessToken)
	if err != nil {
		t.Fatalf("current claims: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims = %q/%q", claims.Subject, claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct-horse", 1, true)

	if _, err := svc.Login(context.Background(), "alice", "battery-staple"); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "nobody", "whatever-pass"); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "bob", "correct-horse", 3, false)

	if _, err := svc.Login(context.Background(), "bob", "correct-horse"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

// A wrong password on an inactive account must not reveal that the
// account exists but is deactivated.
func TestAuthService_Login_InactiveUserWrongPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "bob", "correct-horse", 3, false)

	if _, err := svc.Login(context.Background(), "bob", "battery-staple"); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct-horse", 1, true)

	pair, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := svc.CurrentClaims(access)
	if err != nil {
		t.Fatalf("current claims: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims = %q/%q", claims.Subject, claims.Role)
	}
}

// The refreshed access token carries the user's CURRENT role, not the
// role held when the refresh token was minted.
func TestAuthService_Refresh_ReflectsRoleChange(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct-horse", 3, true)

	pair, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Promote alice between login and refresh.
	repo.users["alice"].RoleID = 2

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := svc.CurrentClaims(access)
	if err != nil {
		t.Fatalf("current claims: %v", err)
	}
	if claims.Role != domain.RoleStaff {
		t.Fatalf("role = %q, want %q", claims.Role, domain.RoleStaff)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct-horse", 1, true)

	pair, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidTokenType) {
		t.Fatalf("expected ErrInvalidTokenType, got %v", err)
	}
}

func TestAuthService_Refresh_DeactivatedUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := seedUser(t, repo, "bob", "correct-horse", 3, true)

	pair, err := svc.Login(context.Background(), "bob", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := repo.SetActive(context.Background(), user.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestAuthService_CurrentClaims_RejectsRefreshToken(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct-horse", 1, true)

	pair, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.CurrentClaims(pair.RefreshToken); !errors.Is(err, domain.ErrInvalidTokenType) {
		t.Fatalf("expected ErrInvalidTokenType, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct-horse", 1, true)

	pair, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username = %q, want alice", user.Username)
	}
}
