package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tastetrail/food-review-api/internal/api/metrics"
	"github.com/tastetrail/food-review-api/internal/core/domain"
	"github.com/tastetrail/food-review-api/internal/core/ports"
)

// FoodCache abstracts the catalog read cache (Redis).
type FoodCache interface {
	GetList(ctx context.Context) ([]*domain.Food, error)
	SetList(ctx context.Context, foods []*domain.Food) error
	Invalidate(ctx context.Context) error
}

// FoodService serves catalog reads and the admin-gated catalog writes.
type FoodService struct {
	foods   ports.FoodRepository
	reviews ports.ReviewRepository
	users   ports.UserRepository
	tx      ports.TxRunner
	cache   FoodCache
	log     zerolog.Logger
}

func NewFoodService(
	foods ports.FoodRepository,
	reviews ports.ReviewRepository,
	users ports.UserRepository,
	tx ports.TxRunner,
	cache FoodCache,
	log zerolog.Logger,
) *FoodService {
	return &FoodService{
		foods:   foods,
		reviews: reviews,
		users:   users,
		tx:      tx,
		cache:   cache,
		log:     log,
	}
}

// ListFoods returns the catalog, served from the cache when warm. Cache
// failures fall through to storage and are logged, never surfaced.
func (s *FoodService) ListFoods(ctx context.Context) ([]*domain.Food, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("catalog cache read failed")
		} else if cached != nil {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	foods, err := s.foods.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, foods); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return foods, nil
}

func (s *FoodService) GetFood(ctx context.Context, id string) (*ports.FoodDetail, error) {
	food, err := s.foods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByFood(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.FoodDetail{
		Food:    food,
		Reviews: decorateReviews(ctx, s.users, reviews),
	}, nil
}

func (s *FoodService) CreateFood(ctx context.Context, in ports.FoodInput) (*domain.Food, error) {
	if err := validateFoodInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.foods.Create(ctx, &domain.Food{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Cuisine:     strings.TrimSpace(in.Cuisine),
		ImageURL:    in.ImageURL,
		IsFeatured:  in.IsFeatured,
		Tags:        in.Tags,
		Rating:      domain.RatingSummary{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("food_id", created.ID).Str("name", created.Name).Msg("food created")
	return created, nil
}

func (s *FoodService) UpdateFood(ctx context.Context, id string, in ports.FoodInput) (*domain.Food, error) {
	if err := validateFoodInput(in); err != nil {
		return nil, err
	}

	food, err := s.foods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	food.Name = strings.TrimSpace(in.Name)
	food.Description = strings.TrimSpace(in.Description)
	food.Price = in.Price
	food.Cuisine = strings.TrimSpace(in.Cuisine)
	food.ImageURL = in.ImageURL
	food.IsFeatured = in.IsFeatured
	food.Tags = in.Tags
	food.UpdatedAt = time.Now().UTC()

	if err := s.foods.Update(ctx, food); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return food, nil
}

// DeleteFood removes a catalog entry together with its reviews, in one
// transaction so no orphaned reviews survive a partial failure.
func (s *FoodService) DeleteFood(ctx context.Context, id string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.foods.FindByID(ctx, id); err != nil {
			return err
		}
		if err := s.reviews.DeleteByFood(ctx, id); err != nil {
			return err
		}
		return s.foods.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info().Str("food_id", id).Msg("food deleted")
	return nil
}

func (s *FoodService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	foods, err := s.foods.Count(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.AdminStats{Users: users, Foods: foods, Reviews: reviews}, nil
}

func (s *FoodService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func validateFoodInput(in ports.FoodInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}
