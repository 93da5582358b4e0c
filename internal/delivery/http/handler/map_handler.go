package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/pkg/validator"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

// MapHandler - filtered complaint map
type MapHandler struct {
	mapUC  *usecase.MapUseCase
	logger *zap.Logger
}

func NewMapHandler(mapUC *usecase.MapUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapUC:  mapUC,
		logger: logger,
	}
}

// GetMap godoc
// @Summary Complaint map
// @Description Markers and heat points of the complaints matching the filters. Omitting "types" keeps every type; "types=" with no value keeps none.
// @Tags Map
// @Produce json
// @Param types query string false "Comma separated issue types"
// @Param min_intensity query int false "Minimum intensity (1-5)" default(1)
// @Param from query string false "Start date, YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse{data=dto.MapResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/map [get]
func (h *MapHandler) GetMap(c *fiber.Ctx) error {
	req := dto.MapRequest{
		MinIntensity: c.QueryInt("min_intensity"),
		From:         c.Query("from"),
	}
	if c.Context().QueryArgs().Has("types") {
		req.Types = splitList(c.Query("types"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.mapUC.Render(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	meta := &utils.Meta{Total: result.Total}
	if result.NoMatches {
		meta.Message = "No reports match the selected filters"
	}
	return utils.SendSuccess(c, result, meta)
}

// splitList splits a comma separated value, dropping blanks. It never
// returns nil.
func splitList(v string) []string {
	out := []string{}
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
