package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/solar"
	"github.com/complaint-map/internal/usecase/dto"
)

// SolarUseCase - canopy sizing over a complaint hot spot
type SolarUseCase struct {
	logger *zap.Logger
}

func NewSolarUseCase(logger *zap.Logger) *SolarUseCase {
	return &SolarUseCase{logger: logger}
}

// Plan sizes the installation for every catalog panel. When a panel is named
// it also estimates a manual layout of PanelCount panels (max fit when zero).
func (uc *SolarUseCase) Plan(ctx context.Context, req dto.SolarPlanRequest) (*dto.SolarPlanResponse, error) {
	in := solar.PlanInput{
		Lat:               req.Lat,
		UsableArea:        req.UsableArea,
		Length:            req.Length,
		Width:             req.Width,
		PackingPct:        req.PackingPct,
		MonthlyTargetKWh:  req.MonthlyTargetKWh,
		LossesPct:         solar.DefaultLossesPct,
		YearlyYieldPerKWp: req.YearlyYieldPerKWp,
	}
	if req.LossesPct != nil {
		in.LossesPct = *req.LossesPct
	}
	if in.YearlyYieldPerKWp == 0 {
		in.YearlyYieldPerKWp = solar.DefaultYearlyYield
	}

	plan, err := solar.Compute(in)
	if err != nil {
		return nil, err
	}
	resp := &dto.SolarPlanResponse{Plan: plan}

	if req.Panel != "" {
		panel, ok := solar.PanelByName(req.Panel)
		if !ok {
			return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
				"panel": "unknown panel type",
			})
		}

		n := req.PanelCount
		if n == 0 {
			for _, o := range plan.Options {
				if o.Panel.Name == panel.Name {
					n = o.MaxFit
				}
			}
		}
		partial := solar.Partial(panel, n, in.YearlyYieldPerKWp, in.LossesPct, in.MonthlyTargetKWh)
		resp.Partial = &partial
	}

	uc.logger.Debug("Solar plan computed",
		zap.Float64("required_kwp", plan.RequiredKWp),
		zap.String("best", plan.Best.Panel.Name))
	return resp, nil
}
