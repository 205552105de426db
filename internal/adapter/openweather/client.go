package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrLocationNotFound is returned when the provider does not know a location.
var ErrLocationNotFound = errors.New("location not found")

const (
	defaultMaxRetries = 5
	defaultBackoff    = 300 * time.Millisecond
)

// Provider is the read-only weather surface used by the service.
type Provider interface {
	CurrentWeather(ctx context.Context, location string) (Weather, error)
	Forecast(ctx context.Context, location string) (domain.RawForecast, error)
	AirPollution(ctx context.Context, lat, lon float64) (AirQuality, error)
}

// Weather is the current conditions at a location.
type Weather struct {
	Location        string       `json:"location"`
	Country         string       `json:"country,omitempty"`
	Geo             domain.Point `json:"geo"`
	TempC           float64      `json:"temp_c"`
	HumidityPercent float64      `json:"humidity_percent"`
	PressureHPa     float64      `json:"pressure_hpa"`
	WindSpeedMS     float64      `json:"wind_speed_ms"`
	Condition       string       `json:"condition"`
	Description     string       `json:"description"`
}

// AirQuality is the current air pollution reading at a coordinate.
type AirQuality struct {
	Geo         domain.Point       `json:"geo"`
	Index       int                `json:"index"`
	MeanIndex   float64            `json:"mean_index"`
	Description string             `json:"description"`
	Category    domain.RiskLevel   `json:"category"`
	Components  map[string]float64 `json:"components,omitempty"`
}

// Client implements Provider using the OpenWeather 2.5 REST API. Requests
// failing with 500, 502, or 504 are retried with exponential backoff.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
	clock      clockwork.Clock
	maxRetries int
	backoff    time.Duration
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
}

// CurrentWeather fetches current conditions by city name.
func (c *Client) CurrentWeather(ctx context.Context, location string) (Weather, error) {
	var resp weatherResponse
	if err := c.get(ctx, "weather", url.Values{"q": {location}, "units": {"metric"}}, &resp); err != nil {
		return Weather{}, err
	}

	w := Weather{
		Location:        resp.Name,
		Country:         resp.Sys.Country,
		Geo:             domain.Point{Lat: resp.Coord.Lat, Lon: resp.Coord.Lon},
		TempC:           resp.Main.Temp,
		HumidityPercent: resp.Main.Humidity,
		PressureHPa:     resp.Main.Pressure,
		WindSpeedMS:     resp.Wind.Speed,
	}
	if len(resp.Weather) > 0 {
		w.Condition = resp.Weather[0].Main
		w.Description = resp.Weather[0].Description
	}
	return w, nil
}

// Forecast fetches the 5-day/3-hour forecast by city name.
func (c *Client) Forecast(ctx context.Context, location string) (domain.RawForecast, error) {
	var resp domain.RawForecast
	if err := c.get(ctx, "forecast", url.Values{"q": {location}, "units": {"metric"}}, &resp); err != nil {
		return domain.RawForecast{}, err
	}
	return resp, nil
}

// AirPollution fetches the current air pollution reading for a coordinate.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (AirQuality, error) {
	params := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', 6, 64)},
	}
	var resp airPollutionResponse
	if err := c.get(ctx, "air_pollution", params, &resp); err != nil {
		return AirQuality{}, err
	}
	if len(resp.List) == 0 {
		return AirQuality{}, fmt.Errorf("air pollution at %.4f,%.4f: %w", lat, lon, ErrLocationNotFound)
	}

	var sum float64
	for _, item := range resp.List {
		sum += float64(item.Main.AQI)
	}
	mean := sum / float64(len(resp.List))
	first := resp.List[0]

	return AirQuality{
		Geo:         domain.Point{Lat: resp.Coord.Lat, Lon: resp.Coord.Lon},
		Index:       first.Main.AQI,
		MeanIndex:   mean,
		Description: domain.DescribeAQI(first.Main.AQI),
		Category:    domain.ClassifyAirPollution(mean),
		Components:  first.Components,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	start := c.clock.Now()
	defer func() {
		c.metrics.ProviderAPIDuration.WithLabelValues(endpoint).Observe(c.clock.Since(start).Seconds())
	}()

	backoff := c.backoff
	for attempt := 0; ; attempt++ {
		body, status, err := c.do(ctx, fullURL)
		if err != nil {
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
			return fmt.Errorf("%s request: %w", endpoint, err)
		}

		if retryable(status) && attempt < c.maxRetries {
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "retry").Inc()
			c.logger.Warn("openweather request failed, retrying",
				"endpoint", endpoint, "status", status, "attempt", attempt+1, "backoff", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.clock.After(backoff):
			}
			backoff *= 2
			continue
		}

		switch {
		case status == http.StatusNotFound:
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
			return fmt.Errorf("%s: %w", endpoint, ErrLocationNotFound)
		case status != http.StatusOK:
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
			return fmt.Errorf("openweather API error: status %d: %s", status, body)
		}

		if err := json.Unmarshal(body, out); err != nil {
			c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "success").Inc()
		return nil
	}
}

func (c *Client) do(ctx context.Context, fullURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func retryable(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// OpenWeather API response types.

type weatherResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []domain.WeatherCondition `json:"weather"`
}

type airPollutionResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components map[string]float64 `json:"components"`
	} `json:"list"`
}
