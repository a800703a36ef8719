package entity

import "github.com/google/uuid"

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required,oneof=smartphones laptops audio wearables accessories"`
	Image       string   `json:"image" validate:"required,url"`
	Gallery     []string `json:"gallery" validate:"omitempty,dive,url"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required,oneof=smartphones laptops audio wearables accessories"`
	Image       string   `json:"image" validate:"required,url"`
	Gallery     []string `json:"gallery" validate:"omitempty,dive,url"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

type CreateBannerRequest struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Image     string     `json:"image" validate:"required,url"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Position  int        `json:"position" validate:"gte=0"`
	Active    bool       `json:"active"`
}

type UpdateBannerRequest struct {
	Title     string     `json:"title" validate:"required,max=200"`
	Image     string     `json:"image" validate:"required,url"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Position  int        `json:"position" validate:"gte=0"`
	Active    bool       `json:"active"`
}

type UploadResponse struct {
	URL string `json:"url"` // публичный URL загруженного изображения
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
