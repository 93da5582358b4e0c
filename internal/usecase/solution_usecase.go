package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/aggregate"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/recommend"
	"github.com/complaint-map/internal/usecase/dto"
)

// SolutionUseCase - map of proposed solutions per location
type SolutionUseCase struct {
	complaintRepo repository.ComplaintRepository
	directory     *recommend.Directory
	city          domain.CityProfile
	logger        *zap.Logger
}

func NewSolutionUseCase(
	complaintRepo repository.ComplaintRepository,
	directory *recommend.Directory,
	city domain.CityProfile,
	logger *zap.Logger,
) *SolutionUseCase {
	return &SolutionUseCase{
		complaintRepo: complaintRepo,
		directory:     directory,
		city:          city,
		logger:        logger,
	}
}

// GetSolutions keeps the latest complaint per (location, category), attaches
// a rotated recommendation to each marker and the unrotated one to the most
// recent report.
func (uc *SolutionUseCase) GetSolutions(ctx context.Context, req dto.SolutionsRequest) (*dto.SolutionsResponse, error) {
	all, err := uc.complaintRepo.LoadAll(ctx)
	if err != nil {
		uc.logger.Error("Failed to load complaints for solutions", zap.Error(err))
		return nil, err
	}

	resp := &dto.SolutionsResponse{
		Categories: presentCategories(all),
		Markers:    []dto.SolutionMarker{},
		Heat:       [][2]float64{},
		Center:     uc.city.Center,
	}

	var want domain.Category
	if req.Issue != "" {
		want = recommend.NormalizeCategory(req.Issue)
		resp.Issue = string(want)
	}

	// Group on the category rather than the raw label so that "Bruit" and
	// "Noise" at the same spot collapse into one marker.
	byID := make(map[int64]domain.Complaint, len(all))
	folded := make([]domain.Complaint, 0, len(all))
	for _, c := range all {
		category := recommend.NormalizeCategory(c.IssueType)
		if want != "" && category != want {
			continue
		}
		byID[c.ID] = c
		c.IssueType = string(category)
		folded = append(folded, c)
	}

	grouped := aggregate.GroupLatestByLocationAndType(folded)
	latest := aggregate.Latest(grouped)
	if latest < 0 {
		return resp, nil
	}
	latestTS := grouped[latest].Timestamp

	for i, g := range grouped {
		category := domain.Category(g.IssueType)
		resp.Markers = append(resp.Markers, dto.SolutionMarker{
			ComplaintID:    g.ID,
			Lat:            g.Lat,
			Lon:            g.Lon,
			IssueType:      byID[g.ID].IssueType,
			Category:       category,
			Intensity:      g.Intensity,
			Timestamp:      g.Timestamp,
			Recommendation: recommend.Recommend(category, g.Intensity, i),
			Latest:         g.Timestamp.Equal(latestTS),
		})
		resp.Heat = append(resp.Heat, [2]float64{g.Lat, g.Lon})
	}

	cur := grouped[latest]
	category := domain.Category(cur.IssueType)
	resp.Center = cur.Point()
	resp.Current = &dto.CurrentSolution{
		ComplaintID:    cur.ID,
		Category:       category,
		Intensity:      cur.Intensity,
		Tier:           recommend.TierOf(cur.Intensity),
		Recommendation: recommend.Recommend(category, cur.Intensity, 0),
		Actions:        recommend.Actions(category, cur.Intensity),
		Authority:      uc.directory.AuthorityFor(category),
	}

	return resp, nil
}

// presentCategories lists the categories found in cs, in canonical order
func presentCategories(cs []domain.Complaint) []domain.Category {
	seen := make(map[domain.Category]bool)
	for _, c := range cs {
		seen[recommend.NormalizeCategory(c.IssueType)] = true
	}

	order := make(map[domain.Category]int)
	for i, c := range domain.Categories() {
		order[c] = i
	}

	out := make([]domain.Category, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}
