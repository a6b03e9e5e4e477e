package domain

import "errors"

// Sentinel errors resolved at every service boundary. The HTTP error
// handler maps each one to a status code; anything not in this list is
// treated as a storage failure and surfaced generically.
var (
	// ErrValidation marks malformed or missing input. Wrap it with the
	// field detail: fmt.Errorf("%w: password too short", ErrValidation).
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials covers both unknown email and wrong password
	// so login never leaks which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers absent, malformed, expired, or badly signed
	// bearer credentials.
	ErrInvalidToken = errors.New("invalid token")

	ErrForbidden = errors.New("forbidden")

	ErrUserExists      = errors.New("username or email already exists")
	ErrDuplicateReview = errors.New("food already reviewed by this user")

	ErrUserNotFound   = errors.New("user not found")
	ErrFoodNotFound   = errors.New("food not found")
	ErrReviewNotFound = errors.New("review not found")
)
