package openaq

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/infrastructure/httpx"
	"github.com/complaint-map/internal/pkg/errors"
)

// OpenAQ v3 parameter ids
var parameterIDs = map[string]int{
	domain.PollutantPM25: 2,
	domain.PollutantPM10: 1,
}

const (
	defaultTotalTimeout = 20 * time.Second
	// stations fetched in parallel
	fetchConcurrency = 4
)

var errMissingAPIKey = stderrors.New("openaq api key is not configured")

type client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	countryCode  string
	limit        int
	totalTimeout time.Duration
	retry        httpx.RetryPolicy
	logger       *zap.Logger
}

// NewClient builds an OpenAQ v3 client
func NewClient(cfg *config.OpenAQConfig, countryCode string, logger *zap.Logger) repository.AirQualityRepository {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 100
	}
	total := cfg.TotalTimeout
	if total <= 0 {
		total = defaultTotalTimeout
	}
	return &client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		countryCode:  strings.ToUpper(countryCode),
		limit:        limit,
		totalTimeout: total,
		retry:        httpx.DefaultRetryPolicy(),
		logger:       logger,
	}
}

type locationsResponse struct {
	Results []struct {
		ID          int64 `json:"id"`
		Coordinates *struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"coordinates"`
	} `json:"results"`
}

type sensorsResponse struct {
	Results []struct {
		ID        int64 `json:"id"`
		Parameter struct {
			Units string `json:"units"`
		} `json:"parameter"`
	} `json:"results"`
}

type measurementsResponse struct {
	Results []struct {
		Value  *float64 `json:"value"`
		Period struct {
			DatetimeTo struct {
				UTC string `json:"utc"`
			} `json:"datetimeTo"`
		} `json:"period"`
	} `json:"results"`
}

type station struct {
	id  int64
	lat float64
	lon float64
}

// LatestMeasurements returns the most recent hourly value of every station
// inside bounds measuring the pollutant. The whole call is bounded by the
// configured total timeout. A station whose sensor or reading cannot be
// fetched is skipped; the call fails when the location listing fails or when
// no station could be read at all.
func (c *client) LatestMeasurements(ctx context.Context, pollutant string, bounds domain.BoundingBox) ([]domain.Measurement, error) {
	paramID, ok := parameterIDs[pollutant]
	if !ok {
		return nil, errors.ErrValidation.WithDetails(map[string]interface{}{
			"pollutant": pollutant,
			"allowed":   domain.Pollutants(),
		})
	}
	if c.apiKey == "" {
		return nil, c.externalError(errMissingAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, c.totalTimeout)
	defer cancel()

	stations, err := c.locations(ctx, paramID, bounds)
	if err != nil {
		c.logger.Warn("OpenAQ locations request failed", zap.String("pollutant", pollutant), zap.Error(err))
		return nil, c.externalError(err)
	}

	results := c.fetchStations(ctx, stations, paramID)

	out := make([]domain.Measurement, 0, len(stations))
	var failed int
	var lastErr error
	for i, r := range results {
		if r.err != nil {
			failed++
			lastErr = r.err
			c.logger.Debug("Skipping OpenAQ station",
				zap.Int64("location_id", stations[i].id),
				zap.Error(r.err))
			continue
		}
		if r.ok {
			out = append(out, r.m)
		}
	}

	if len(stations) > 0 && failed == len(stations) {
		c.logger.Warn("Every OpenAQ station failed",
			zap.String("pollutant", pollutant),
			zap.Int("stations", len(stations)),
			zap.Error(lastErr))
		return nil, c.externalError(fmt.Errorf("all %d stations failed: %w", failed, lastErr))
	}

	c.logger.Debug("OpenAQ measurements fetched",
		zap.String("pollutant", pollutant),
		zap.Int("stations", len(stations)),
		zap.Int("failed", failed),
		zap.Int("measurements", len(out)))

	return out, nil
}

type stationResult struct {
	m   domain.Measurement
	ok  bool
	err error
}

// fetchStations reads every station with at most fetchConcurrency requests
// in flight. Results keep the order of stations.
func (c *client) fetchStations(ctx context.Context, stations []station, paramID int) []stationResult {
	results := make([]stationResult, len(stations))
	sem := make(chan struct{}, fetchConcurrency)

	var wg sync.WaitGroup
	for i, s := range stations {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			for j := i; j < len(stations); j++ {
				results[j].err = ctx.Err()
			}
			wg.Wait()
			return results
		}

		wg.Add(1)
		go func(i int, s station) {
			defer wg.Done()
			defer func() { <-sem }()
			m, ok, err := c.latestForStation(ctx, s, paramID)
			results[i] = stationResult{m: m, ok: ok, err: err}
		}(i, s)
	}
	wg.Wait()
	return results
}

func (c *client) locations(ctx context.Context, paramID int, bounds domain.BoundingBox) ([]station, error) {
	params := url.Values{}
	params.Set("parameters_id", strconv.Itoa(paramID))
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("order_by", "id")
	params.Set("sort_order", "asc")
	if !bounds.IsZero() {
		params.Set("bbox", fmt.Sprintf("%g,%g,%g,%g", bounds.MinLon, bounds.MinLat, bounds.MaxLon, bounds.MaxLat))
	} else if c.countryCode != "" {
		params.Set("iso", c.countryCode)
	}

	var resp locationsResponse
	if err := c.get(ctx, "/locations?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	out := make([]station, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Coordinates == nil || r.Coordinates.Latitude == nil || r.Coordinates.Longitude == nil {
			continue
		}
		p := domain.Point{Lat: *r.Coordinates.Latitude, Lon: *r.Coordinates.Longitude}
		if !bounds.IsZero() && !bounds.Contains(p) {
			continue
		}
		out = append(out, station{id: r.ID, lat: p.Lat, lon: p.Lon})
	}
	return out, nil
}

func (c *client) latestForStation(ctx context.Context, s station, paramID int) (domain.Measurement, bool, error) {
	var sensors sensorsResponse
	path := fmt.Sprintf("/locations/%d/sensors?parameters_id=%d&limit=1", s.id, paramID)
	if err := c.get(ctx, path, &sensors); err != nil {
		return domain.Measurement{}, false, err
	}
	if len(sensors.Results) == 0 {
		return domain.Measurement{}, false, nil
	}
	sensor := sensors.Results[0]

	var measurements measurementsResponse
	path = fmt.Sprintf("/sensors/%d/measurements/hourly?limit=1&sort_order=desc", sensor.ID)
	if err := c.get(ctx, path, &measurements); err != nil {
		return domain.Measurement{}, false, err
	}
	if len(measurements.Results) == 0 || measurements.Results[0].Value == nil {
		return domain.Measurement{}, false, nil
	}
	latest := measurements.Results[0]

	m := domain.Measurement{
		StationID: s.id,
		Lat:       s.lat,
		Lon:       s.lon,
		Value:     *latest.Value,
		Unit:      sensor.Parameter.Units,
	}
	if ts, err := time.Parse(time.RFC3339, latest.Period.DatetimeTo.UTC); err == nil {
		m.Measured = ts.UTC()
	}
	return m, true, nil
}

func (c *client) get(ctx context.Context, path string, dst interface{}) error {
	headers := map[string]string{"X-API-Key": c.apiKey}
	return httpx.GetJSON(ctx, c.httpClient, c.baseURL+path, headers, c.retry, c.logger, dst)
}

func (c *client) externalError(err error) error {
	return errors.ErrExternalService.WithDetails(map[string]interface{}{"service": "openaq"}).WithCause(err)
}
