package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastetrail/food-review-api/internal/core/domain"
	"github.com/tastetrail/food-review-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // by id
	nextID int
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

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User == nil || result.User.ID == "" {
		t.Fatalf("expected user projection, got %+v", result.User)
	}
	if result.User.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", result.User.Role)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}

	stored, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "password1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_ProjectionHasNoHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	raw, err := json.Marshal(result.User)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(strings.ToLower(string(raw)), "hash") {
		t.Fatalf("user projection leaks hash field: %s", raw)
	}
	if strings.Contains(string(raw), "longenough") {
		t.Fatalf("user projection leaks password: %s", raw)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	cases := []ports.RegisterInput{
		{Username: "", Email: "a@x.com", Password: "password1"},
		{Username: "alice", Email: "", Password: "password1"},
		{Username: "alice", Email: "a@x.com", Password: ""},
		{Username: "alice", Email: "a@x.com", Password: "short"},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Email: "c@x.com", Password: "password1"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Email: "other@x.com", Password: "password1"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "other", Email: "c@x.com", Password: "password1"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Email: "dave@x.com", Password: "s3cretpass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "dave@x.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User == nil || result.User.Username != "dave" {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	identity, err := svc.Verify(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("verify rejected fresh token: %v", err)
	}
	if identity.ID != result.User.ID {
		t.Fatalf("verify resolved wrong user: %s != %s", identity.ID, result.User.ID)
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "erin", Email: "erin@x.com", Password: "goodpassword"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "erin@x.com", "wrongpassword")
	_, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "whatever12")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("error content differs: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestAuthService_Verify_MalformedAndWrongKey(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := foreign.SignedString([]byte("someone-elses-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Verify(context.Background(), signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestAuthService_Verify_Expired(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(context.Background(), signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_Verify_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{Username: "frank", Email: "f@x.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	delete(repo.users, result.User.ID)

	if _, err := svc.Verify(context.Background(), result.Token); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Verify_RoleReadFromStorage(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{Username: "grace", Email: "g@x.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Promote after the token was issued; verify must see the new role
	// without re-issuance.
	repo.users[result.User.ID].Role = domain.RoleAdmin

	identity, err := svc.Verify(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin from storage, got %s", identity.Role)
	}
}

func TestAuthService_Authorize(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	admin := &domain.Identity{ID: "u1", Role: domain.RoleAdmin}
	user := &domain.Identity{ID: "u2", Role: domain.RoleUser}

	if err := svc.Authorize(admin, domain.RoleAdmin); err != nil {
		t.Fatalf("admin should pass admin gate: %v", err)
	}
	if err := svc.Authorize(user, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Authorize(nil, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for nil identity, got %v", err)
	}
}
