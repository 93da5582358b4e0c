package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/usecase/dto"
)

// evenYearsWindow is the number of even years shown on the yearly chart
const evenYearsWindow = 5

// StatsUseCase - statistics page
type StatsUseCase struct {
	complaintRepo repository.ComplaintRepository
	logger        *zap.Logger
}

// NewStatsUseCase creates a StatsUseCase
func NewStatsUseCase(complaintRepo repository.ComplaintRepository, logger *zap.Logger) *StatsUseCase {
	return &StatsUseCase{
		complaintRepo: complaintRepo,
		logger:        logger,
	}
}

// GetStatistics computes the statistics page from a fresh read of the table
func (uc *StatsUseCase) GetStatistics(ctx context.Context, req dto.StatsRequest) (*dto.StatsResponse, error) {
	var granularity aggregate.Granularity
	if req.Granularity != "" {
		g, err := aggregate.ParseGranularity(req.Granularity)
		if err != nil {
			return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
				"granularity": req.Granularity,
				"allowed":     []aggregate.Granularity{aggregate.Day, aggregate.Month, aggregate.Year},
			}).WithCause(err)
		}
		granularity = g
	}

	all, err := uc.complaintRepo.LoadAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load complaints for statistics", zap.Error(err))
		return nil, err
	}

	selected := all
	if req.Type != "" {
		selected = make([]domain.Complaint, 0, len(all))
		for _, c := range all {
			if c.IssueType == req.Type {
				selected = append(selected, c)
			}
		}
	}

	perYear := aggregate.BucketByPeriod(selected, aggregate.Year)
	resp := &dto.StatsResponse{
		Type:          req.Type,
		Total:         len(selected),
		IssueTypes:    aggregate.DistinctTypes(all),
		Distribution:  aggregate.SummarizeByType(all),
		Summary:       aggregate.SummarizeByType(selected),
		PerDay:        aggregate.BucketByPeriod(selected, aggregate.Day),
		PerMonth:      aggregate.BucketByPeriod(selected, aggregate.Month),
		PerYear:       perYear,
		LastEvenYears: aggregate.LastEvenYears(perYear, evenYearsWindow),
		Intensity:     aggregate.IntensityDistribution(selected),
	}
	switch granularity {
	case aggregate.Day:
		resp.Granularity, resp.Series = granularity, resp.PerDay
	case aggregate.Month:
		resp.Granularity, resp.Series = granularity, resp.PerMonth
	case aggregate.Year:
		resp.Granularity, resp.Series = granularity, resp.PerYear
	}

	uc.logger.Debug("Statistics computed",
		zap.String("type", req.Type),
		zap.Int("total", resp.Total))
	return resp, nil
}
