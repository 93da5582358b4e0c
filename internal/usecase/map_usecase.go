package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/usecase/dto"
)

const dateLayout = "2006-01-02"

// MapUseCase - filtered complaint map
type MapUseCase struct {
	complaintRepo repository.ComplaintRepository
	city          domain.CityProfile
	logger        *zap.Logger
}

func NewMapUseCase(complaintRepo repository.ComplaintRepository, city domain.CityProfile, logger *zap.Logger) *MapUseCase {
	return &MapUseCase{
		complaintRepo: complaintRepo,
		city:          city,
		logger:        logger,
	}
}

// Render reloads the table and applies the filters. Nil Types selects every
// type present; an empty but non-nil list selects nothing.
func (uc *MapUseCase) Render(ctx context.Context, req dto.MapRequest) (*dto.MapResponse, error) {
	all, err := uc.complaintRepo.LoadAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load complaints for map", zap.Error(err))
		return nil, err
	}

	var from time.Time
	if req.From != "" {
		from, err = time.Parse(dateLayout, req.From)
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"from": "expected YYYY-MM-DD",
			})
		}
	}

	types := req.Types
	if types == nil {
		types = aggregate.DistinctTypes(all)
	}
	minIntensity := req.MinIntensity
	if minIntensity == 0 {
		minIntensity = domain.MinIntensity
	}

	filtered := aggregate.Filter(all, aggregate.Criteria{
		Types:        types,
		MinIntensity: minIntensity,
		StartDate:    from,
	})

	resp := &dto.MapResponse{
		Markers:    make([]dto.MapMarker, 0, len(filtered)),
		Heat:       make([]dto.HeatPoint, 0, len(filtered)),
		Center:     aggregate.Center(filtered, uc.city.Center),
		Zoom:       uc.city.Zoom,
		IssueTypes: aggregate.DistinctTypes(all),
		NoMatches:  len(filtered) == 0,
		Total:      len(filtered),
	}
	if earliest := aggregate.EarliestDate(all); !earliest.IsZero() {
		resp.EarliestDate = earliest.Format(dateLayout)
	}

	for _, c := range filtered {
		resp.Markers = append(resp.Markers, dto.MapMarker{
			ID:        c.ID,
			IssueType: c.IssueType,
			Intensity: c.Intensity,
			Lat:       c.Lat,
			Lon:       c.Lon,
			Date:      c.Timestamp.Format(dateLayout),
			Color:     uc.city.ColorFor(c.IssueType, DefaultMarkerColor),
		})
		resp.Heat = append(resp.Heat, dto.HeatPoint{c.Lat, c.Lon, float64(c.Intensity)})
	}

	return resp, nil
}
