package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastetrail/food-review-api/internal/core/ports"
)

// ReviewHandler handles review reads and the authenticated mutations.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

// ListForFood handles GET /v1/foods/:id/reviews.
//
// @Summary      List reviews for a food
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Food ID"
// @Success      200  {array}   ports.ReviewWithAuthor
// @Failure      404  {object}  map[string]string
// @Router       /v1/foods/{id}/reviews [get]
func (h *ReviewHandler) ListForFood(c echo.Context) error {
	reviews, err := h.service.ListFoodReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Submit handles POST /v1/foods/:id/reviews.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Food ID"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/foods/{id}/reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.SubmitReview(c.Request().Context(), ports.SubmitReviewInput{
		FoodID:  c.Param("id"),
		UserID:  identity.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Update handles PUT /v1/reviews/:id — edits the caller's own review.
//
// @Summary      Update own review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Review ID"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      200   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.UpdateReview(c.Request().Context(), ports.UpdateReviewInput{
		ReviewID: c.Param("id"),
		UserID:   identity.ID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete handles DELETE /v1/reviews/:id — removes the caller's own review.
//
// @Summary      Delete own review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteReview(c.Request().Context(), c.Param("id"), identity.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "review deleted successfully"})
}
