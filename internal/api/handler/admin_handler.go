package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tastetrail/food-review-api/internal/core/ports"
)

// AdminHandler serves the admin dashboard endpoints.
type AdminHandler struct {
	foods ports.FoodService
}

func NewAdminHandler(foods ports.FoodService) *AdminHandler {
	return &AdminHandler{foods: foods}
}

// Stats handles GET /v1/admin/stats.
//
// @Summary      Admin totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.foods.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
