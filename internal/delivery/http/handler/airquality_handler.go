package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/pkg/validator"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

// AirQualityHandler - pollutant heatmap
type AirQualityHandler struct {
	airUC  *usecase.AirQualityUseCase
	logger *zap.Logger
}

func NewAirQualityHandler(airUC *usecase.AirQualityUseCase, logger *zap.Logger) *AirQualityHandler {
	return &AirQualityHandler{
		airUC:  airUC,
		logger: logger,
	}
}

// GetHeatmap godoc
// @Summary Air quality heatmap
// @Description Latest station readings of a pollutant inside the city bounds, normalized to [0,1]. Provider failures return an empty layer with available=false.
// @Tags AirQuality
// @Produce json
// @Param pollutant query string false "pm25 or pm10" default(pm25)
// @Success 200 {object} utils.SuccessResponse{data=dto.AirQualityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/air-quality [get]
func (h *AirQualityHandler) GetHeatmap(c *fiber.Ctx) error {
	req := dto.AirQualityRequest{
		Pollutant: strings.ToLower(c.Query("pollutant", domain.PollutantPM25)),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.airUC.Heatmap(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	meta := &utils.Meta{Total: result.Stations, Available: &result.Available}
	if !result.Available {
		meta.Message = "Air quality data is currently unavailable"
	}
	return utils.SendSuccess(c, result, meta)
}
