package ports

import (
	"context"

	"github.com/tastetrail/food-review-api/internal/core/domain"
)

// FoodRepository defines persistence operations for catalog entries.
type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) (*domain.Food, error)
	FindByID(ctx context.Context, id string) (*domain.Food, error)
	List(ctx context.Context) ([]*domain.Food, error)
	Update(ctx context.Context, food *domain.Food) error
	Delete(ctx context.Context, id string) error
	// UpdateRatingSummary persists the cached review projection. Only the
	// review service calls this; clients never write the summary directly.
	UpdateRatingSummary(ctx context.Context, foodID string, summary domain.RatingSummary) error
	Count(ctx context.Context) (int64, error)
}

// FoodInput carries the admin-editable catalog fields.
type FoodInput struct {
	Name        string
	Description string
	Price       float64
	Cuisine     string
	ImageURL    string
	IsFeatured  bool
	Tags        []string
}

// FoodDetail is a catalog entry together with its reviews.
type FoodDetail struct {
	Food    *domain.Food
	Reviews []*ReviewWithAuthor
}

// AdminStats holds the totals served to the admin dashboard.
type AdminStats struct {
	Users   int64 `json:"users"`
	Foods   int64 `json:"foods"`
	Reviews int64 `json:"reviews"`
}

// FoodService exposes catalog reads and the admin-gated writes.
type FoodService interface {
	ListFoods(ctx context.Context) ([]*domain.Food, error)
	GetFood(ctx context.Context, id string) (*FoodDetail, error)
	CreateFood(ctx context.Context, in FoodInput) (*domain.Food, error)
	UpdateFood(ctx context.Context, id string, in FoodInput) (*domain.Food, error)
	DeleteFood(ctx context.Context, id string) error
	Stats(ctx context.Context) (*AdminStats, error)
}
