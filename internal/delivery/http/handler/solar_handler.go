package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/pkg/validator"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

// SolarHandler - canopy sizing calculator
type SolarHandler struct {
	solarUC *usecase.SolarUseCase
	logger  *zap.Logger
}

func NewSolarHandler(solarUC *usecase.SolarUseCase, logger *zap.Logger) *SolarHandler {
	return &SolarHandler{
		solarUC: solarUC,
		logger:  logger,
	}
}

// Plan godoc
// @Summary Size a solar canopy
// @Description Required kWp for a monthly target and, per catalog panel, how many fit and how much of the target they cover
// @Tags Solar
// @Accept json
// @Produce json
// @Param request body dto.SolarPlanRequest true "Site and target"
// @Success 200 {object} utils.SuccessResponse{data=dto.SolarPlanResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/solar/plan [post]
func (h *SolarHandler) Plan(c *fiber.Ctx) error {
	var req dto.SolarPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithCause(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.solarUC.Plan(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
