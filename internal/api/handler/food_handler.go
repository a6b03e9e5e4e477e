package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastetrail/food-review-api/internal/core/domain"
	"github.com/tastetrail/food-review-api/internal/core/ports"
)

// FoodHandler handles catalog reads and the admin-gated catalog writes.
type FoodHandler struct {
	service ports.FoodService
}

func NewFoodHandler(service ports.FoodService) *FoodHandler {
	return &FoodHandler{service: service}
}

type foodRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Cuisine     string   `json:"cuisine"`
	ImageURL    string   `json:"image_url"`
	IsFeatured  bool     `json:"is_featured"`
	Tags        []string `json:"tags"`
}

type foodDetailResponse struct {
	Food    *domain.Food              `json:"food"`
	Reviews []*ports.ReviewWithAuthor `json:"reviews"`
}

// List handles GET /v1/foods.
//
// @Summary      List foods
// @Tags         foods
// @Produce      json
// @Success      200  {array}   domain.Food
// @Failure      500  {object}  map[string]string
// @Router       /v1/foods [get]
func (h *FoodHandler) List(c echo.Context) error {
	foods, err := h.service.ListFoods(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, foods)
}

// Get handles GET /v1/foods/:id — a catalog entry with its reviews.
//
// @Summary      Get a food with its reviews
// @Tags         foods
// @Produce      json
// @Param        id   path      string  true  "Food ID"
// @Success      200  {object}  foodDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/foods/{id} [get]
func (h *FoodHandler) Get(c echo.Context) error {
	detail, err := h.service.GetFood(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, foodDetailResponse{Food: detail.Food, Reviews: detail.Reviews})
}

// Create handles POST /v1/foods (admin).
//
// @Summary      Create a food
// @Tags         foods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      foodRequest  true  "Food details"
// @Success      201   {object}  domain.Food
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/foods [post]
func (h *FoodHandler) Create(c echo.Context) error {
	var req foodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	food, err := h.service.CreateFood(c.Request().Context(), toFoodInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, food)
}

// Update handles PUT /v1/foods/:id (admin).
//
// @Summary      Update a food
// @Tags         foods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Food ID"
// @Param        body  body      foodRequest  true  "Food details"
// @Success      200   {object}  domain.Food
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/foods/{id} [put]
func (h *FoodHandler) Update(c echo.Context) error {
	var req foodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	food, err := h.service.UpdateFood(c.Request().Context(), c.Param("id"), toFoodInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, food)
}

// Delete handles DELETE /v1/foods/:id (admin). Removes the food and its
// reviews.
//
// @Summary      Delete a food
// @Tags         foods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Food ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/foods/{id} [delete]
func (h *FoodHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteFood(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "food deleted successfully"})
}

func toFoodInput(req foodRequest) ports.FoodInput {
	return ports.FoodInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cuisine:     req.Cuisine,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		Tags:        req.Tags,
	}
}
