package ports

import (
	"context"

	"github.com/tastetrail/food-review-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	FindByFoodAndUser(ctx context.Context, foodID, userID string) (*domain.Review, error)
	ListByFood(ctx context.Context, foodID string) ([]*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByFood(ctx context.Context, foodID string) error
	Count(ctx context.Context) (int64, error)
}

// SubmitReviewInput carries a new review from the transport layer.
type SubmitReviewInput struct {
	FoodID  string
	UserID  string
	Rating  int
	Comment string
}

// UpdateReviewInput carries an edit to an existing review. UserID is the
// requesting user; only the owner's review matches.
type UpdateReviewInput struct {
	ReviewID string
	UserID   string
	Rating   int
	Comment  string
}

// ReviewWithAuthor decorates a review with the reviewer's username for
// read endpoints.
type ReviewWithAuthor struct {
	domain.Review
	Username string `json:"username"`
}

// ReviewService maintains the review set and keeps each food's rating
// summary consistent with it.
type ReviewService interface {
	SubmitReview(ctx context.Context, in SubmitReviewInput) (*domain.Review, error)
	UpdateReview(ctx context.Context, in UpdateReviewInput) (*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID string) error
	ListFoodReviews(ctx context.Context, foodID string) ([]*ReviewWithAuthor, error)
}
