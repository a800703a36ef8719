package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound возвращается, когда товара нет в каталоге
var ErrProductNotFound = fmt.Errorf("product not found")

// CatalogClient клиент для взаимодействия с Catalog Service.
// Используется для снимка карточки товара при добавлении в корзину.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient создает новый клиент для Catalog Service
func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProduct получает карточку товара из Catalog Service.
// Эндпоинт каталога публичный, токен не требуется.
func (c *CatalogClient) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	url := fmt.Sprintf("%s/catalog/products/%s", c.baseURL, productID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var product entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &product, nil
}
