package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/pkg/validator"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

// SearchHandler - address search for the report form
type SearchHandler struct {
	geocodingUC *usecase.GeocodingUseCase
	logger      *zap.Logger
}

func NewSearchHandler(geocodingUC *usecase.GeocodingUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		geocodingUC: geocodingUC,
		logger:      logger,
	}
}

// Geocode godoc
// @Summary Search an address
// @Description Free text geocoding restricted to the city's country. Candidates are flagged when they fall inside the city bounds. Provider failures return an empty list with available=false.
// @Tags Search
// @Produce json
// @Param q query string true "Query (at least 3 characters)"
// @Param limit query int false "Maximum number of candidates" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.GeocodeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geocode [get]
func (h *SearchHandler) Geocode(c *fiber.Ctx) error {
	req := dto.GeocodeRequest{
		Query: c.Query("q"),
		Limit: c.QueryInt("limit", usecase.DefaultGeocodeLimit),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.geocodingUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     len(result.Results),
		Available: &result.Available,
	})
}
