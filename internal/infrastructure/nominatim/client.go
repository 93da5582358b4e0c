package nominatim

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/infrastructure/httpx"
	"github.com/complaint-map/internal/pkg/errors"
)

// MinQueryLength is the shortest query sent upstream
const MinQueryLength = 3

type client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	countryCode string
	retry       httpx.RetryPolicy
	logger      *zap.Logger
}

// NewClient builds a Nominatim search client restricted to countryCode
// (empty searches worldwide).
func NewClient(cfg *config.NominatimConfig, countryCode string, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		countryCode: strings.ToLower(countryCode),
		retry:       httpx.DefaultRetryPolicy(),
		logger:      logger,
	}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns up to limit candidates. Queries shorter than
// MinQueryLength return an empty list without a request.
func (c *client) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []domain.Place{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(limit))
	if c.countryCode != "" {
		params.Set("countrycodes", c.countryCode)
	}
	endpoint := c.baseURL + "/search?" + params.Encode()

	c.logger.Debug("Calling Nominatim search",
		zap.String("query", query),
		zap.Int("limit", limit))

	var raw []searchResult
	headers := map[string]string{"User-Agent": c.userAgent}
	if err := httpx.GetJSON(ctx, c.httpClient, endpoint, headers, c.retry, c.logger, &raw); err != nil {
		c.logger.Warn("Nominatim search failed", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrExternalService.WithDetails(map[string]interface{}{"service": "nominatim"}).WithCause(err)
	}

	places := make([]domain.Place, 0, len(raw))
	for _, r := range raw {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		places = append(places, domain.Place{DisplayName: r.DisplayName, Lat: lat, Lon: lon})
		if len(places) == limit {
			break
		}
	}

	return places, nil
}
