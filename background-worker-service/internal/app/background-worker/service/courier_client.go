package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"
)

// CourierClientImpl - HTTP клиент API курьерской службы.
// Отвечает только за HTTP запросы, ретраи делает DispatchService.
type CourierClientImpl struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewCourierClient создает новый HTTP клиент курьерской службы
func NewCourierClient(baseURL, apiKey string, timeout time.Duration) *CourierClientImpl {
	return &CourierClientImpl{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type consignmentResponse struct {
	TrackingID string `json:"tracking_id"`
}

// CreateConsignment создает накладную и возвращает трек-номер
func (c *CourierClientImpl) CreateConsignment(ctx context.Context, consignment *entity.ConsignmentRequest) (string, error) {
	payload, err := json.Marshal(consignment)
	if err != nil {
		return "", fmt.Errorf("failed to marshal consignment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/consignments", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("courier API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResponse consignmentResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", fmt.Errorf("failed to unmarshal courier response: %w", err)
	}

	if apiResponse.TrackingID == "" {
		return "", fmt.Errorf("courier API returned empty tracking id")
	}

	return apiResponse.TrackingID, nil
}
