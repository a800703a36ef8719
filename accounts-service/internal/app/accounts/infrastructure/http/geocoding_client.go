package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrLocationNotFound = errors.New("location not found")

// GeocodingClient - HTTP клиент для Nominatim-совместимого API
// обратного геокодирования. Без ретраев: результат чисто отображаемый.
type GeocodingClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeocodingClient(baseURL string, timeout time.Duration) *GeocodingClient {
	return &GeocodingClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type reverseGeocodeResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
	} `json:"address"`
}

// ReverseGeocode возвращает название населенного пункта по координатам
func (c *GeocodingClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	requestURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("geocoding API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResponse reverseGeocodeResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", fmt.Errorf("failed to unmarshal geocoding response: %w", err)
	}

	locality := pickLocality(&apiResponse)
	if locality == "" {
		return "", ErrLocationNotFound
	}

	return locality, nil
}

// pickLocality выбирает наиболее подходящее имя населенного пункта
func pickLocality(resp *reverseGeocodeResponse) string {
	switch {
	case resp.Address.City != "":
		return resp.Address.City
	case resp.Address.Town != "":
		return resp.Address.Town
	case resp.Address.Village != "":
		return resp.Address.Village
	case resp.Address.County != "":
		return resp.Address.County
	default:
		return resp.DisplayName
	}
}
