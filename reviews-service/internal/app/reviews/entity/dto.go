package entity

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	ProductID   string   `json:"product_id" validate:"required,uuid"`
	Rating      int      `json:"rating" validate:"required,min=1,max=5"`
	Comment     string   `json:"comment" validate:"required,min=1,max=1000"`
	AuthorName  string   `json:"author_name" validate:"omitempty,max=100"`
	AuthorPhoto string   `json:"author_photo" validate:"omitempty,url"`
	Images      []string `json:"images" validate:"omitempty,max=5,dive,url"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}
