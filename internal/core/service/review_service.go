package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tastetrail/food-review-api/internal/api/metrics"
	"github.com/tastetrail/food-review-api/internal/core/domain"
	"github.com/tastetrail/food-review-api/internal/core/ports"
)

// ReviewService maintains the review set and the cached rating summary
// on each food. Every mutation runs inside one storage transaction with
// its summary recompute, so the summary always reflects a consistent
// point-in-time review set.
type ReviewService struct {
	reviews ports.ReviewRepository
	foods   ports.FoodRepository
	users   ports.UserRepository
	tx      ports.TxRunner
	cache   FoodCache
	log     zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	foods ports.FoodRepository,
	users ports.UserRepository,
	tx ports.TxRunner,
	cache FoodCache,
	log zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		foods:   foods,
		users:   users,
		tx:      tx,
		cache:   cache,
		log:     log,
	}
}

func (s *ReviewService) SubmitReview(ctx context.Context, in ports.SubmitReviewInput) (*domain.Review, error) {
	comment, err := validateReviewInput(in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	var created *domain.Review
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.foods.FindByID(ctx, in.FoodID); err != nil {
			return err
		}

		// Domain-level uniqueness check before insert; the compound
		// unique index catches the concurrent race inside the same
		// transaction scope.
		if _, err := s.reviews.FindByFoodAndUser(ctx, in.FoodID, in.UserID); err == nil {
			return domain.ErrDuplicateReview
		} else if !errors.Is(err, domain.ErrReviewNotFound) {
			return err
		}

		now := time.Now().UTC()
		created, err = s.reviews.Insert(ctx, &domain.Review{
			FoodID:    in.FoodID,
			UserID:    in.UserID,
			Rating:    in.Rating,
			Comment:   comment,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		return s.recomputeSummary(ctx, in.FoodID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			metrics.ReviewConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.ReviewsWrittenTotal.WithLabelValues("create").Inc()
	s.invalidateCatalog(ctx)
	s.log.Info().Str("review_id", created.ID).Str("food_id", in.FoodID).Str("user_id", in.UserID).Int("rating", in.Rating).Msg("review submitted")
	return created, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, in ports.UpdateReviewInput) (*domain.Review, error) {
	comment, err := validateReviewInput(in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	var updated *domain.Review
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		review, err := s.ownedReview(ctx, in.ReviewID, in.UserID)
		if err != nil {
			return err
		}

		review.Rating = in.Rating
		review.Comment = comment
		review.UpdatedAt = time.Now().UTC()
		if err := s.reviews.Update(ctx, review); err != nil {
			return err
		}
		updated = review

		return s.recomputeSummary(ctx, review.FoodID)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewsWrittenTotal.WithLabelValues("update").Inc()
	s.invalidateCatalog(ctx)
	return updated, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		review, err := s.ownedReview(ctx, reviewID, userID)
		if err != nil {
			return err
		}

		if err := s.reviews.Delete(ctx, review.ID); err != nil {
			return err
		}

		return s.recomputeSummary(ctx, review.FoodID)
	})
	if err != nil {
		return err
	}

	metrics.ReviewsWrittenTotal.WithLabelValues("delete").Inc()
	s.invalidateCatalog(ctx)
	return nil
}

func (s *ReviewService) ListFoodReviews(ctx context.Context, foodID string) ([]*ports.ReviewWithAuthor, error) {
	if _, err := s.foods.FindByID(ctx, foodID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByFood(ctx, foodID)
	if err != nil {
		return nil, err
	}
	return decorateReviews(ctx, s.users, reviews), nil
}

// ownedReview fetches a review and enforces ownership. A review owned by
// someone else reports not-found rather than forbidden, so callers learn
// nothing about other users' reviews.
func (s *ReviewService) ownedReview(ctx context.Context, reviewID, userID string) (*domain.Review, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, domain.ErrReviewNotFound
	}
	return review, nil
}

// recomputeSummary derives the summary by re-scanning the food's current
// reviews. A full rescan, not an incremental update: a running average
// drifts under concurrent create/delete races. A failure here aborts the
// enclosing transaction so the mutation never half-succeeds.
func (s *ReviewService) recomputeSummary(ctx context.Context, foodID string) error {
	start := time.Now()

	reviews, err := s.reviews.ListByFood(ctx, foodID)
	if err != nil {
		return fmt.Errorf("recompute rating summary: %w", err)
	}

	summary := domain.Summarize(reviews)
	if err := s.foods.UpdateRatingSummary(ctx, foodID, summary); err != nil {
		return fmt.Errorf("recompute rating summary: %w", err)
	}

	metrics.SummaryRecomputeDuration.Observe(time.Since(start).Seconds())
	return nil
}

// invalidateCatalog drops the cached food list after a committed
// mutation; the list payload embeds rating summaries. Cache errors are
// logged and swallowed, never surfaced to the caller.
func (s *ReviewService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func validateReviewInput(rating int, comment string) (string, error) {
	if rating < 1 || rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return "", fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}
	return trimmed, nil
}

// decorateReviews resolves reviewer usernames for read endpoints. A
// reviewer deleted after writing leaves an empty username.
func decorateReviews(ctx context.Context, users ports.UserRepository, reviews []*domain.Review) []*ports.ReviewWithAuthor {
	names := make(map[string]string, len(reviews))
	out := make([]*ports.ReviewWithAuthor, 0, len(reviews))
	for _, r := range reviews {
		name, seen := names[r.UserID]
		if !seen {
			if u, err := users.FindByID(ctx, r.UserID); err == nil {
				name = u.Username
			}
			names[r.UserID] = name
		}
		out = append(out, &ports.ReviewWithAuthor{Review: *r, Username: name})
	}
	return out
}
