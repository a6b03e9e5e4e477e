package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tastetrail/food-review-api/internal/core/domain"
)

func dispatch(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation), http.StatusBadRequest, "rating must be between 1 and 5"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrUserExists, http.StatusConflict, "already exists"},
		{domain.ErrDuplicateReview, http.StatusConflict, "already reviewed"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrFoodNotFound, http.StatusNotFound, "food not found"},
		{domain.ErrReviewNotFound, http.StatusNotFound, "review not found"},
	}

	for _, tc := range cases {
		rec := dispatch(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.code, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.body) {
			t.Errorf("%v: body %q missing %q", tc.err, rec.Body.String(), tc.body)
		}
	}
}

func TestHTTPErrorHandler_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("load review: %w", domain.ErrReviewNotFound)
	rec := dispatch(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped not-found, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec := dispatch(t, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing or invalid token") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec := dispatch(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal details leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
