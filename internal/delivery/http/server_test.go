package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	delivery "github.com/complaint-map/internal/delivery/http"
	"github.com/complaint-map/internal/delivery/http/handler"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/recommend"
	"github.com/complaint-map/internal/repository/cache"
	redisrepo "github.com/complaint-map/internal/repository/redis"
	"github.com/complaint-map/internal/repository/sqlstore"
	"github.com/complaint-map/internal/repository/sqlstore/testhelpers"
	"github.com/complaint-map/internal/repository/upload"
	"github.com/complaint-map/internal/usecase"
)

type fakeGeocoder struct {
	places []domain.Place
	err    error
}

func (f *fakeGeocoder) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	return f.places, f.err
}

type fakeAirQuality struct {
	measurements []domain.Measurement
	err          error
}

func (f *fakeAirQuality) LatestMeasurements(ctx context.Context, pollutant string, bounds domain.BoundingBox) ([]domain.Measurement, error) {
	return f.measurements, f.err
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	tdb := testhelpers.SetupSQLite(t)
	db := tdb.Store()
	store := sqlstore.NewComplaintRepository(db)
	require.NoError(t, store.Initialize(ctx))

	uploads, err := upload.NewLocalStore(t.TempDir(), logger)
	require.NoError(t, err)

	city := config.DefaultCityProfile()
	directory := recommend.NewDirectory(city.Authorities)
	escalation := config.EscalationConfig{Enabled: true, Radius: 0.005, Window: 30 * 24 * time.Hour, Threshold: 2}

	geo := &fakeGeocoder{places: []domain.Place{{DisplayName: "Place Bellecour, Lyon", Lat: 45.7578, Lon: 4.8320}}}
	air := &fakeAirQuality{err: errors.ErrExternalService}

	handlers := delivery.Handlers{
		Complaint: handler.NewComplaintHandler(
			usecase.NewComplaintUseCase(store, uploads, redisrepo.NewNoopStreamRepository(logger), directory, city, escalation, logger),
			logger),
		Map:        handler.NewMapHandler(usecase.NewMapUseCase(store, city, logger), logger),
		Stats:      handler.NewStatsHandler(usecase.NewStatsUseCase(store, logger), logger),
		Solution:   handler.NewSolutionHandler(usecase.NewSolutionUseCase(store, directory, city, logger), logger),
		AirQuality: handler.NewAirQualityHandler(usecase.NewAirQualityUseCase(air, cache.NewNoopCache(), city, time.Minute, logger), logger),
		Search:     handler.NewSearchHandler(usecase.NewGeocodingUseCase(geo, cache.NewNoopCache(), city, time.Minute, logger), logger),
		City:       handler.NewCityHandler(usecase.NewCityUseCase(city)),
		Solar:      handler.NewSolarHandler(usecase.NewSolarUseCase(logger), logger),
	}

	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 0}}
	return delivery.NewServer(cfg, logger, handlers, db).App()
}

func do(t *testing.T, app *fiber.App, method, target string, body io.Reader, contentType string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func postJSON(t *testing.T, app *fiber.App, target, body string) (int, envelope) {
	return do(t, app, fiber.MethodPost, target, strings.NewReader(body), fiber.MIMEApplicationJSON)
}

func get(t *testing.T, app *fiber.App, target string) (int, envelope) {
	return do(t, app, fiber.MethodGet, target, nil, "")
}

func TestServer_Health(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_ComplaintLifecycle(t *testing.T) {
	app := newTestApp(t)

	status, env := postJSON(t, app, "/api/v1/complaints",
		`{"issue_type":"Noise","intensity":9,"lat":45.7600,"lon":4.8500,"description":"  "}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created struct {
		ID        int64 `json:"id"`
		Escalated bool  `json:"escalated"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Escalated)

	status, env = postJSON(t, app, "/api/v1/complaints",
		`{"issue_type":"Bruit","intensity":2,"lat":45.7601,"lon":4.8501}`)
	require.Equal(t, fiber.StatusCreated, status)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.Escalated)

	status, env = get(t, app, "/api/v1/complaints")
	require.Equal(t, fiber.StatusOK, status)
	var list struct {
		Complaints []domain.Complaint `json:"complaints"`
		Total      int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, 2, list.Total)
	assert.Equal(t, 5, list.Complaints[0].Intensity)
	assert.Nil(t, list.Complaints[0].Description)

	status, env = get(t, app, "/api/v1/complaints/1")
	require.Equal(t, fiber.StatusOK, status)
	var detail struct {
		Category  domain.Category  `json:"category"`
		Tier      domain.Tier      `json:"tier"`
		Authority domain.Authority `json:"authority"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, domain.CategoryNoise, detail.Category)
	assert.Equal(t, domain.TierHigh, detail.Tier)
	assert.NotEmpty(t, detail.Authority.Department)

	status, env = get(t, app, "/api/v1/complaints/99")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "COMPLAINT_NOT_FOUND", env.Error.Code)

	status, _ = get(t, app, "/api/v1/complaints/abc")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = do(t, app, fiber.MethodPost, "/api/v1/complaints/1/votes", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var vote struct {
		Votes int `json:"votes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &vote))
	assert.Equal(t, 1, vote.Votes)

	status, env = get(t, app, "/api/v1/complaints/nearby?lat=45.76&lon=4.85&radius=0.001")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, env.Meta["total"])

	status, _ = get(t, app, "/api/v1/complaints/nearby?lon=4.85")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestServer_SubmitValidation(t *testing.T) {
	app := newTestApp(t)

	status, env := postJSON(t, app, "/api/v1/complaints", `{"intensity":3,"lat":45.76,"lon":4.85}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	status, _ = postJSON(t, app, "/api/v1/complaints", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = postJSON(t, app, "/api/v1/complaints", `{"issue_type":"Heat","lat":120,"lon":4.85}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestServer_IssueTypesAreCanonical(t *testing.T) {
	app := newTestApp(t)
	for _, body := range []string{
		`{"issue_type":"bruit","intensity":3,"lat":45.7600,"lon":4.8500}`,
		`{"issue_type":"Noise","intensity":5,"lat":45.7700,"lon":4.8600}`,
	} {
		status, _ := postJSON(t, app, "/api/v1/complaints", body)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, env := get(t, app, "/api/v1/map?types=Noise")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, env.Meta["total"])

	status, env = get(t, app, "/api/v1/stats")
	require.Equal(t, fiber.StatusOK, status)
	var stats struct {
		Distribution []struct {
			IssueType  string  `json:"issue_type"`
			Count      int     `json:"count"`
			Percentage float64 `json:"percentage"`
		} `json:"distribution"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	require.Len(t, stats.Distribution, 1)
	assert.Equal(t, domain.IssueNoise, stats.Distribution[0].IssueType)
	assert.Equal(t, 2, stats.Distribution[0].Count)
	assert.Equal(t, 100.0, stats.Distribution[0].Percentage)
}

func multipartBody(t *testing.T, fields map[string]string, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestServer_SubmitMultipart(t *testing.T) {
	app := newTestApp(t)
	fields := map[string]string{"issue_type": "Heat", "intensity": "4", "lat": "45.75", "lon": "4.84"}

	body, ct := multipartBody(t, fields, "street.PNG", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a})
	status, env := do(t, app, fiber.MethodPost, "/api/v1/complaints", body, ct)
	require.Equal(t, fiber.StatusCreated, status)
	var created struct {
		PhotoPath *string `json:"photo_path"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotNil(t, created.PhotoPath)
	assert.True(t, strings.HasSuffix(*created.PhotoPath, ".png"))

	body, ct = multipartBody(t, fields, "anim.gif", []byte("GIF89a"))
	status, env = do(t, app, fiber.MethodPost, "/api/v1/complaints", body, ct)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, status)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", env.Error.Code)

	status, env = get(t, app, "/api/v1/complaints")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, env.Meta["total"])
}

func TestServer_Views(t *testing.T) {
	app := newTestApp(t)
	for _, body := range []string{
		`{"issue_type":"Noise","intensity":2,"lat":45.760,"lon":4.850}`,
		`{"issue_type":"Heat","intensity":5,"lat":45.770,"lon":4.860}`,
	} {
		status, _ := postJSON(t, app, "/api/v1/complaints", body)
		require.Equal(t, fiber.StatusCreated, status)
	}

	t.Run("map without filters", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/map")
		require.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 2, env.Meta["total"])
	})

	t.Run("map with an empty type list", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/map?types=")
		require.Equal(t, fiber.StatusOK, status)
		var m struct {
			NoMatches bool `json:"no_matches"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &m))
		assert.True(t, m.NoMatches)
		assert.NotEmpty(t, env.Meta["message"])
	})

	t.Run("map rejects a bad date", func(t *testing.T) {
		status, _ := get(t, app, "/api/v1/map?from=yesterday")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("stats", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/stats?type=Heat")
		require.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 1, env.Meta["total"])
	})

	t.Run("solutions", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/solutions?issue=bruit")
		require.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 1, env.Meta["total"])
	})

	t.Run("air quality outage is not an error", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/air-quality?pollutant=pm10")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, false, env.Meta["available"])
	})

	t.Run("unknown pollutant", func(t *testing.T) {
		status, _ := get(t, app, "/api/v1/air-quality?pollutant=o3")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("geocode", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/geocode?q=bellecour")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, env.Meta["available"])

		status, _ = get(t, app, "/api/v1/geocode?q=ab")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("city", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/city")
		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, string(env.Data), `"name":"Lyon"`)
	})

	t.Run("solar", func(t *testing.T) {
		status, _ := postJSON(t, app, "/api/v1/solar/plan", `{"lat":45.76,"usable_area_m2":40,"monthly_target_kwh":300}`)
		assert.Equal(t, fiber.StatusOK, status)

		status, _ = postJSON(t, app, "/api/v1/solar/plan", `{"lat":45.76,"monthly_target_kwh":300}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("unknown route", func(t *testing.T) {
		status, env := get(t, app, "/api/v1/nope")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
