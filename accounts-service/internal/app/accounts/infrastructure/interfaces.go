package infrastructure

import "context"

// GeocodingClient - клиент внешнего API обратного геокодирования
type GeocodingClient interface {
	// ReverseGeocode возвращает название населенного пункта по координатам
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
