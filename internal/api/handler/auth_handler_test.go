package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tastetrail/food-review-api/internal/api/middleware"
	"github.com/tastetrail/food-review-api/internal/core/domain"
	"github.com/tastetrail/food-review-api/internal/core/ports"
)

type stubAuthService struct {
	result *ports.AuthResult
	err    error
}

func (s *stubAuthService) Register(_ context.Context, _ ports.RegisterInput) (*ports.AuthResult, error) {
	return s.result, s.err
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	return s.result, s.err
}

func (s *stubAuthService) Verify(_ context.Context, _ string) (*domain.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result.User, nil
}

func (s *stubAuthService) Authorize(identity *domain.Identity, requiredRole string) error {
	if identity == nil || identity.Role != requiredRole {
		return domain.ErrForbidden
	}
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{result: &ports.AuthResult{
		User:  &domain.Identity{ID: "u1", Username: "alice", Email: "a@x.com", Role: domain.RoleUser},
		Token: "tok123",
	}}
	h := NewAuthHandler(svc, time.Hour, false)

	body := `{"username":"alice","email":"a@x.com","password":"password1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(strings.ToLower(rec.Body.String()), "hash") {
		t.Fatalf("response leaks hash: %s", rec.Body.String())
	}
	cookie := findCookie(rec, middleware.TokenCookie)
	if cookie == nil || cookie.Value != "tok123" {
		t.Fatalf("expected token cookie, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("token cookie must be http-only")
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	body := `{"username":"alice","email":"a@x.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{result: &ports.AuthResult{
		User:  &domain.Identity{ID: "u1", Username: "alice", Email: "a@x.com", Role: domain.RoleUser},
		Token: "tok456",
	}}
	h := NewAuthHandler(svc, time.Hour, false)

	body := `{"email":"a@x.com","password":"password1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tok456") {
		t.Fatalf("response missing token: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_BadCredentialsPassThrough(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials}, time.Hour, false)

	body := `{"email":"a@x.com","password":"wrongpassword"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cookie := findCookie(rec, middleware.TokenCookie)
	if cookie == nil {
		t.Fatalf("expected cookie to be set for clearing")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired empty cookie, got value=%q maxage=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &domain.Identity{ID: "u1", Username: "alice", Email: "a@x.com", Role: domain.RoleUser})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice") {
		t.Fatalf("response missing identity: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
