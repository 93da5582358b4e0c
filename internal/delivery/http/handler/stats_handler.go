package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/pkg/validator"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

// StatsHandler - statistics page
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler creates a StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Complaint statistics
// @Description Type distribution with percentages over all complaints, plus per-day, per-month, per-year and intensity counts for the selected type
// @Tags Statistics
// @Produce json
// @Param type query string false "Issue type; empty for all"
// @Param granularity query string false "Also return the day, month or year series under series"
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	req := dto.StatsRequest{Type: c.Query("type"), Granularity: c.Query("granularity")}
	if req.Type == "All" {
		req.Type = ""
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Debug("Handling get statistics request",
		zap.String("type", req.Type),
		zap.String("granularity", req.Granularity))

	stats, err := h.statsUC.GetStatistics(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, &utils.Meta{Total: stats.Total})
}
