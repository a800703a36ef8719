package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product представляет товар витрины.
// Цены хранятся в целых единицах валюты, без копеек.
// Поля Rating и ReviewCount изменяет только background worker
// при обработке событий REVIEW_CREATED.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Image       string    `json:"image" db:"image"`
	Gallery     []string  `json:"gallery" db:"gallery"`
	Stock       int       `json:"stock" db:"stock"`
	Rating      float64   `json:"rating" db:"rating"`
	ReviewCount int       `json:"review_count" db:"review_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Banner представляет слайд карусели на главном экране
type Banner struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Image     string     `json:"image" db:"image"`
	ProductID *uuid.UUID `json:"product_id,omitempty" db:"product_id"` // необязательная ссылка на товар
	Position  int        `json:"position" db:"position"`
	Active    bool       `json:"active" db:"active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Категории каталога - фиксированный набор
const (
	CategorySmartphones = "smartphones"
	CategoryLaptops     = "laptops"
	CategoryAudio       = "audio"
	CategoryWearables   = "wearables"
	CategoryAccessories = "accessories"
)

// Categories возвращает полный список категорий в порядке отображения
func Categories() []string {
	return []string{
		CategorySmartphones,
		CategoryLaptops,
		CategoryAudio,
		CategoryWearables,
		CategoryAccessories,
	}
}

// IsValidCategory проверяет что категория входит в фиксированный набор
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}
