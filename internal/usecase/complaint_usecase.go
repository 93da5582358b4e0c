package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/recommend"
	"github.com/complaint-map/internal/usecase/dto"
)

// DefaultMarkerColor is used for issue types missing from the city palette
const DefaultMarkerColor = "#2d6a4f"

// ComplaintUseCase - submission and lookup of single complaints
type ComplaintUseCase struct {
	complaintRepo repository.ComplaintRepository
	uploadRepo    repository.UploadRepository
	streamRepo    repository.StreamRepository
	directory     *recommend.Directory
	city          domain.CityProfile
	escalation    config.EscalationConfig
	logger        *zap.Logger
	now           func() time.Time
}

// NewComplaintUseCase - creates a ComplaintUseCase
func NewComplaintUseCase(
	complaintRepo repository.ComplaintRepository,
	uploadRepo repository.UploadRepository,
	streamRepo repository.StreamRepository,
	directory *recommend.Directory,
	city domain.CityProfile,
	escalation config.EscalationConfig,
	logger *zap.Logger,
) *ComplaintUseCase {
	return &ComplaintUseCase{
		complaintRepo: complaintRepo,
		uploadRepo:    uploadRepo,
		streamRepo:    streamRepo,
		directory:     directory,
		city:          city,
		escalation:    escalation,
		logger:        logger,
		now:           time.Now,
	}
}

// Submit stores a new complaint. The photo, when attached, is saved first so
// that a rejected file never leaves a row behind; a failed insert removes the
// saved photo again.
func (uc *ComplaintUseCase) Submit(ctx context.Context, req dto.SubmitComplaintRequest) (*dto.ComplaintCreatedResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	point := domain.Point{Lat: req.Lat, Lon: req.Lon}
	if uc.city.Geofence && !uc.city.Bounds.Contains(point) {
		return nil, errors.ErrOutOfBounds.WithDetails(map[string]interface{}{
			"city": uc.city.Name,
		})
	}

	nc := domain.NewComplaint{
		IssueType:   recommend.CanonicalIssueType(strings.TrimSpace(req.IssueType)),
		Intensity:   req.Intensity,
		Lat:         req.Lat,
		Lon:         req.Lon,
		Description: req.Description,
	}

	if req.Photo != nil {
		path, err := uc.uploadRepo.Save(ctx, req.Photo.Filename, req.Photo.Data)
		if err != nil {
			uc.logger.Warn("Failed to save photo", zap.String("filename", req.Photo.Filename), zap.Error(err))
			return nil, err
		}
		nc.PhotoPath = &path
	}

	id, err := uc.complaintRepo.Insert(ctx, nc)
	if err != nil {
		uc.logger.Error("Failed to insert complaint", zap.Error(err))
		if nc.PhotoPath != nil {
			if derr := uc.uploadRepo.Delete(ctx, *nc.PhotoPath); derr != nil {
				uc.logger.Warn("Failed to remove orphaned photo", zap.String("path", *nc.PhotoPath), zap.Error(derr))
			}
		}
		return nil, err
	}

	uc.logger.Info("Complaint submitted",
		zap.Int64("id", id),
		zap.String("issue_type", nc.IssueType),
		zap.Int("intensity", nc.Intensity))

	resp := &dto.ComplaintCreatedResponse{ID: id, PhotoPath: nc.PhotoPath}
	if uc.escalation.Enabled {
		resp.Escalated = uc.checkEscalation(ctx, id)
	}
	return resp, nil
}

// checkEscalation publishes an EscalationEvent when enough complaints of the
// same category sit around the new one. Failures are logged only.
func (uc *ComplaintUseCase) checkEscalation(ctx context.Context, id int64) bool {
	all, err := uc.complaintRepo.LoadAll(ctx)
	if err != nil {
		uc.logger.Warn("Escalation check skipped", zap.Int64("id", id), zap.Error(err))
		return false
	}

	var current *domain.Complaint
	for i := range all {
		if all[i].ID == id {
			current = &all[i]
			break
		}
	}
	if current == nil {
		return false
	}

	event, ok := uc.buildEscalation(all, *current)
	if !ok {
		return false
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamComplaintEscalation, event); err != nil {
		uc.logger.Error("Failed to publish escalation",
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
		return false
	}

	uc.logger.Info("Escalation published",
		zap.String("event_id", event.EventID.String()),
		zap.String("category", string(event.Category)),
		zap.Int("count", event.Count))
	return true
}

func (uc *ComplaintUseCase) buildEscalation(all []domain.Complaint, current domain.Complaint) (domain.EscalationEvent, bool) {
	category := recommend.NormalizeCategory(current.IssueType)
	since := current.Timestamp.Add(-uc.escalation.Window)

	var cluster []domain.Complaint
	for _, c := range aggregate.NearestNeighbors(all, current.Point(), uc.escalation.Radius) {
		if c.Timestamp.Before(since) {
			continue
		}
		if recommend.NormalizeCategory(c.IssueType) != category {
			continue
		}
		cluster = append(cluster, c)
	}

	if len(cluster) < uc.escalation.Threshold {
		return domain.EscalationEvent{}, false
	}

	ids := make([]int64, 0, len(cluster))
	maxIntensity := domain.MinIntensity
	for _, c := range cluster {
		ids = append(ids, c.ID)
		if c.Intensity > maxIntensity {
			maxIntensity = c.Intensity
		}
	}

	return domain.EscalationEvent{
		EventID:          uuid.New(),
		City:             uc.city.Name,
		Category:         category,
		Authority:        uc.directory.AuthorityFor(category),
		Center:           aggregate.Center(cluster, current.Point()),
		ComplaintIDs:     ids,
		Count:            len(cluster),
		MaxIntensity:     maxIntensity,
		Tier:             recommend.TierOf(maxIntensity),
		SuggestedActions: recommend.Actions(category, maxIntensity),
		CreatedAt:        uc.now().UTC(),
	}, true
}

// List returns every complaint ordered by timestamp
func (uc *ComplaintUseCase) List(ctx context.Context) (*dto.ComplaintListResponse, error) {
	all, err := uc.complaintRepo.LoadAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load complaints", zap.Error(err))
		return nil, err
	}
	return &dto.ComplaintListResponse{Complaints: all, Total: len(all)}, nil
}

// Get returns one complaint with its tier, recommendation and authority
func (uc *ComplaintUseCase) Get(ctx context.Context, id int64) (*dto.ComplaintDetailResponse, error) {
	c, err := uc.complaintRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category := recommend.NormalizeCategory(c.IssueType)
	return &dto.ComplaintDetailResponse{
		Complaint:      *c,
		Category:       category,
		Tier:           recommend.TierOf(c.Intensity),
		Recommendation: recommend.Recommend(category, c.Intensity, 0),
		Actions:        recommend.Actions(category, c.Intensity),
		Authority:      uc.directory.AuthorityFor(category),
		Color:          uc.city.ColorFor(c.IssueType, DefaultMarkerColor),
	}, nil
}

// Nearby returns complaints strictly closer than req.Radius degrees
func (uc *ComplaintUseCase) Nearby(ctx context.Context, req dto.NearbyRequest) (*dto.NearbyResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.Radius) {
		return nil, errors.ErrInvalidRadius
	}

	all, err := uc.complaintRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	origin := domain.Point{Lat: req.Lat, Lon: req.Lon}
	near := aggregate.NearestNeighbors(all, origin, req.Radius)
	distances := make(map[int64]float64, len(near))
	for _, c := range near {
		distances[c.ID] = utils.HaversineDistance(origin.Lat, origin.Lon, c.Lat, c.Lon)
	}
	return &dto.NearbyResponse{
		Origin:      origin,
		Radius:      req.Radius,
		Complaints:  near,
		DistancesKm: distances,
		Total:       len(near),
	}, nil
}

// Vote appends an upvote and returns the new total
func (uc *ComplaintUseCase) Vote(ctx context.Context, id int64) (*dto.VoteResponse, error) {
	votes, err := uc.complaintRepo.AddVote(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("Complaint upvoted", zap.Int64("id", id), zap.Int("votes", votes))
	return &dto.VoteResponse{ID: id, Votes: votes}, nil
}
