package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/usecase"
)

// CityHandler - active city profile
type CityHandler struct {
	cityUC *usecase.CityUseCase
}

func NewCityHandler(cityUC *usecase.CityUseCase) *CityHandler {
	return &CityHandler{cityUC: cityUC}
}

// GetCity godoc
// @Summary Active city
// @Description Map defaults, bounds, palette and issue types of the deployment
// @Tags City
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CityResponse}
// @Router /api/v1/city [get]
func (h *CityHandler) GetCity(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.cityUC.GetCity(), nil)
}
