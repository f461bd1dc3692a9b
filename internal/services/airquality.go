package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jwebster45206/school-maze/pkg/aqi"
)

const (
	DefaultAirVisualBaseURL = "http://api.airvisual.com/v2"
	airVisualTimeout        = 10 * time.Second
)

// AirVisualService looks up the current US AQI from the IQAir AirVisual API.
type AirVisualService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ aqi.Lookup = (*AirVisualService)(nil)

// AirVisualCityResponse is the part of the /city response the game reads.
type AirVisualCityResponse struct {
	Status string `json:"status"`
	Data   struct {
		Message string `json:"message,omitempty"`
		Current struct {
			Pollution struct {
				AQIUS int `json:"aqius"`
			} `json:"pollution"`
		} `json:"current"`
	} `json:"data"`
}

func NewAirVisualService(apiKey, baseURL string, logger *slog.Logger) *AirVisualService {
	if baseURL == "" {
		baseURL = DefaultAirVisualBaseURL
	}
	return &AirVisualService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: airVisualTimeout,
		},
		logger: logger,
	}
}

// FetchAQI returns aqi.ErrUnavailable, wrapped, for every failure so callers
// can fall back to offline mode.
func (s *AirVisualService) FetchAQI(ctx context.Context, loc aqi.Location) (int, error) {
	if s.apiKey == "" {
		return 0, fmt.Errorf("%w: no api key", aqi.ErrUnavailable)
	}

	q := url.Values{}
	q.Set("city", loc.City)
	q.Set("state", loc.Region)
	q.Set("country", loc.Country)
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/city?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", aqi.ErrUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", aqi.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read response: %v", aqi.ErrUnavailable, err)
	}

	var out AirVisualCityResponse
	if err := json.Unmarshal(body, &out); err != nil {
		s.logger.Debug("AirVisual returned non-JSON body", "status", resp.StatusCode)
		return 0, fmt.Errorf("%w: failed to decode response: %v", aqi.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK || out.Status != "success" {
		msg := out.Data.Message
		if msg == "" {
			msg = resp.Status
		}
		return 0, fmt.Errorf("%w: %s", aqi.ErrUnavailable, msg)
	}

	s.logger.Debug("AQI fetched", "location", loc.String(), "aqi", out.Data.Current.Pollution.AQIUS)
	return out.Data.Current.Pollution.AQIUS, nil
}
