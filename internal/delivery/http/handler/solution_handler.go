package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/pkg/validator"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

// SolutionHandler - proposed solutions map
type SolutionHandler struct {
	solutionUC *usecase.SolutionUseCase
	logger     *zap.Logger
}

func NewSolutionHandler(solutionUC *usecase.SolutionUseCase, logger *zap.Logger) *SolutionHandler {
	return &SolutionHandler{
		solutionUC: solutionUC,
		logger:     logger,
	}
}

// GetSolutions godoc
// @Summary Proposed solutions
// @Description Latest complaint per location and category with a recommended action, plus the recommendation and authority for the most recent report
// @Tags Solutions
// @Produce json
// @Param issue query string false "Issue filter, normalized to a category (e.g. bruit, chaleur)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SolutionsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/solutions [get]
func (h *SolutionHandler) GetSolutions(c *fiber.Ctx) error {
	req := dto.SolutionsRequest{Issue: c.Query("issue")}
	if req.Issue == "All" {
		req.Issue = ""
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.solutionUC.GetSolutions(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Markers)})
}
