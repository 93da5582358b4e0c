package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/recommend"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

type complaintFixture struct {
	repo   *MockComplaintRepository
	upload *MockUploadRepository
	stream *MockStreamRepository
	uc     *usecase.ComplaintUseCase
}

func newComplaintFixture(city domain.CityProfile, esc config.EscalationConfig) *complaintFixture {
	f := &complaintFixture{
		repo:   &MockComplaintRepository{},
		upload: &MockUploadRepository{},
		stream: &MockStreamRepository{},
	}
	f.uc = usecase.NewComplaintUseCase(f.repo, f.upload, f.stream, recommend.NewDirectory(nil), city, esc, zap.NewNop())
	return f
}

func escalationConfig() config.EscalationConfig {
	return config.EscalationConfig{
		Enabled:   true,
		Radius:    0.005,
		Window:    30 * 24 * time.Hour,
		Threshold: 3,
	}
}

func TestComplaintUseCase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the complaint and returns its id", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
		f.repo.On("Insert", ctx, domain.NewComplaint{
			IssueType:   "Noise",
			Intensity:   4,
			Lat:         45.76,
			Lon:         4.85,
			Description: ptrString("night club"),
		}).Return(int64(7), nil)

		resp, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{
			IssueType:   "Noise",
			Intensity:   4,
			Lat:         45.76,
			Lon:         4.85,
			Description: ptrString("night club"),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.False(t, resp.Escalated)
		assert.Nil(t, resp.PhotoPath)
		f.repo.AssertExpectations(t)
		f.repo.AssertNotCalled(t, "LoadAll", mock.Anything)
	})

	t.Run("stores localized issue types under their canonical name", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
		f.repo.On("Insert", ctx, mock.MatchedBy(func(nc domain.NewComplaint) bool {
			return nc.IssueType == domain.IssueNoise
		})).Return(int64(2), nil).Once()
		f.repo.On("Insert", ctx, mock.MatchedBy(func(nc domain.NewComplaint) bool {
			return nc.IssueType == domain.IssueOther
		})).Return(int64(3), nil).Once()

		_, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: " Bruit nocturne ", Intensity: 2, Lat: 45.76, Lon: 4.85})
		require.NoError(t, err)
		_, err = f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "graffiti", Intensity: 2, Lat: 45.76, Lon: 4.85})
		require.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})

		_, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "Noise", Lat: 95, Lon: 4.85})

		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("geofence rejects points outside the city", func(t *testing.T) {
		city := config.DefaultCityProfile()
		city.Geofence = true
		f := newComplaintFixture(city, config.EscalationConfig{})

		_, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "Noise", Lat: 48.85, Lon: 2.35})

		assert.ErrorIs(t, err, errors.ErrOutOfBounds)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("saves the photo before inserting", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
		photo := []byte{0x89, 'P', 'N', 'G'}
		f.upload.On("Save", ctx, "street.png", photo).Return("uploads/20250101_120000_abcd1234.png", nil)
		f.repo.On("Insert", ctx, mock.MatchedBy(func(nc domain.NewComplaint) bool {
			return nc.PhotoPath != nil && *nc.PhotoPath == "uploads/20250101_120000_abcd1234.png"
		})).Return(int64(1), nil)

		resp, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{
			IssueType: "Heat",
			Intensity: 3,
			Lat:       45.75,
			Lon:       4.84,
			Photo:     &dto.PhotoUpload{Filename: "street.png", Data: photo},
		})

		require.NoError(t, err)
		require.NotNil(t, resp.PhotoPath)
		assert.Equal(t, "uploads/20250101_120000_abcd1234.png", *resp.PhotoPath)
		f.upload.AssertExpectations(t)
		f.repo.AssertExpectations(t)
	})

	t.Run("rejected photo leaves no row", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
		f.upload.On("Save", ctx, "notes.pdf", mock.Anything).Return("", errors.ErrUnsupportedMedia)

		_, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{
			IssueType: "Heat",
			Lat:       45.75,
			Lon:       4.84,
			Photo:     &dto.PhotoUpload{Filename: "notes.pdf", Data: []byte("%PDF")},
		})

		assert.ErrorIs(t, err, errors.ErrUnsupportedMedia)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("failed insert removes the saved photo", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
		photo := []byte{0xff, 0xd8, 0xff}
		f.upload.On("Save", ctx, "tree.jpg", photo).Return("uploads/20250101_120000_0badf00d.jpg", nil)
		f.upload.On("Delete", ctx, "uploads/20250101_120000_0badf00d.jpg").Return(nil)
		f.repo.On("Insert", ctx, mock.Anything).Return(int64(0), errors.ErrStorage)

		_, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{
			IssueType: "Heat",
			Lat:       45.75,
			Lon:       4.84,
			Photo:     &dto.PhotoUpload{Filename: "tree.jpg", Data: photo},
		})

		assert.ErrorIs(t, err, errors.ErrStorage)
		f.upload.AssertExpectations(t)
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
		f.repo.On("Insert", ctx, mock.Anything).Return(int64(0), errors.ErrStorage)

		_, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "Odor", Lat: 45.75, Lon: 4.84})

		assert.ErrorIs(t, err, errors.ErrStorage)
	})
}

func TestComplaintUseCase_Escalation(t *testing.T) {
	ctx := context.Background()
	cluster := []domain.Complaint{
		complaint(1, "Noise", 2, 45.7600, 4.8500, "2025-03-01T22:00:00Z"),
		complaint(2, "Bruit", 5, 45.7610, 4.8505, "2025-03-10T23:00:00Z"),
		complaint(3, "Air quality", 4, 45.7601, 4.8501, "2025-03-11T08:00:00Z"),
		complaint(4, "Noise", 3, 45.7602, 4.8498, "2025-03-12T21:00:00Z"),
	}

	t.Run("publishes when the threshold is reached", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), escalationConfig())
		f.repo.On("Insert", ctx, mock.Anything).Return(int64(4), nil)
		f.repo.On("LoadAll", ctx).Return(cluster, nil)

		var published domain.EscalationEvent
		f.stream.On("PublishToStream", ctx, domain.StreamComplaintEscalation, mock.AnythingOfType("domain.EscalationEvent")).
			Run(func(args mock.Arguments) { published = args.Get(2).(domain.EscalationEvent) }).
			Return(nil)

		resp, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "Noise", Intensity: 3, Lat: 45.7602, Lon: 4.8498})

		require.NoError(t, err)
		assert.True(t, resp.Escalated)
		assert.Equal(t, domain.CategoryNoise, published.Category)
		assert.Equal(t, []int64{1, 2, 4}, published.ComplaintIDs)
		assert.Equal(t, 3, published.Count)
		assert.Equal(t, 5, published.MaxIntensity)
		assert.Equal(t, domain.TierHigh, published.Tier)
		assert.Equal(t, "Noise Control Office", published.Authority.Department)
		assert.Equal(t, "Lyon", published.City)
		assert.NotEmpty(t, published.SuggestedActions)
	})

	t.Run("old complaints fall out of the window", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), escalationConfig())
		old := append([]domain.Complaint(nil), cluster...)
		old[0].Timestamp = at("2024-12-01T22:00:00Z")
		f.repo.On("Insert", ctx, mock.Anything).Return(int64(4), nil)
		f.repo.On("LoadAll", ctx).Return(old, nil)

		resp, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "Noise", Intensity: 3, Lat: 45.7602, Lon: 4.8498})

		require.NoError(t, err)
		assert.False(t, resp.Escalated)
		f.stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), escalationConfig())
		f.repo.On("Insert", ctx, mock.Anything).Return(int64(4), nil)
		f.repo.On("LoadAll", ctx).Return(cluster, nil)
		f.stream.On("PublishToStream", ctx, mock.Anything, mock.Anything).Return(stderrors.New("redis down"))

		resp, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "Noise", Intensity: 3, Lat: 45.7602, Lon: 4.8498})

		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.False(t, resp.Escalated)
	})

	t.Run("reload failure does not fail the submission", func(t *testing.T) {
		f := newComplaintFixture(config.DefaultCityProfile(), escalationConfig())
		f.repo.On("Insert", ctx, mock.Anything).Return(int64(4), nil)
		f.repo.On("LoadAll", ctx).Return(nil, errors.ErrStorage)

		resp, err := f.uc.Submit(ctx, dto.SubmitComplaintRequest{IssueType: "Noise", Intensity: 3, Lat: 45.7602, Lon: 4.8498})

		require.NoError(t, err)
		assert.False(t, resp.Escalated)
	})
}

func TestComplaintUseCase_Get(t *testing.T) {
	ctx := context.Background()
	f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
	c := complaint(9, "Odeur forte", 4, 45.76, 4.85, "2025-05-01T10:00:00Z")
	f.repo.On("Get", ctx, int64(9)).Return(&c, nil)
	f.repo.On("Get", ctx, int64(10)).Return(nil, errors.ErrComplaintNotFound)

	resp, err := f.uc.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOdor, resp.Category)
	assert.Equal(t, domain.TierHigh, resp.Tier)
	assert.Equal(t, recommend.Recommend(domain.CategoryOdor, 4, 0), resp.Recommendation)
	assert.Equal(t, recommend.Actions(domain.CategoryOdor, 4), resp.Actions)
	assert.Equal(t, "Sanitation and Waste Department", resp.Authority.Department)
	assert.Equal(t, usecase.DefaultMarkerColor, resp.Color)

	_, err = f.uc.Get(ctx, 10)
	assert.ErrorIs(t, err, errors.ErrComplaintNotFound)
}

func TestComplaintUseCase_Nearby(t *testing.T) {
	ctx := context.Background()
	f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
	f.repo.On("LoadAll", ctx).Return([]domain.Complaint{
		complaint(1, "Noise", 2, 45.7600, 4.8500, "2025-03-01T22:00:00Z"),
		complaint(2, "Heat", 3, 45.7700, 4.8500, "2025-03-02T12:00:00Z"),
	}, nil)

	resp, err := f.uc.Nearby(ctx, dto.NearbyRequest{Lat: 45.7601, Lon: 4.8501, Radius: 0.005})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1), resp.Complaints[0].ID)
	require.Contains(t, resp.DistancesKm, int64(1))
	assert.InDelta(t, 0.0136, resp.DistancesKm[1], 0.001)

	_, err = f.uc.Nearby(ctx, dto.NearbyRequest{Lat: 45.76, Lon: 4.85, Radius: 5})
	assert.ErrorIs(t, err, errors.ErrInvalidRadius)
}

func TestComplaintUseCase_Vote(t *testing.T) {
	ctx := context.Background()
	f := newComplaintFixture(config.DefaultCityProfile(), config.EscalationConfig{})
	f.repo.On("AddVote", ctx, int64(3)).Return(2, nil)
	f.repo.On("AddVote", ctx, int64(4)).Return(0, errors.ErrComplaintNotFound)

	resp, err := f.uc.Vote(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, &dto.VoteResponse{ID: 3, Votes: 2}, resp)

	_, err = f.uc.Vote(ctx, 4)
	assert.ErrorIs(t, err, errors.ErrComplaintNotFound)
}
