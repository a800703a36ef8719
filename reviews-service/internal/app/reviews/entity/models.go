package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review - отзыв о товаре. После создания не изменяется.
type Review struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID   string             `json:"product_id" bson:"product_id"` // UUID товара из Catalog Service
	UserID      string             `json:"user_id" bson:"user_id"`       // UUID автора
	AuthorName  string             `json:"author_name" bson:"author_name"`
	AuthorPhoto string             `json:"author_photo,omitempty" bson:"author_photo,omitempty"`
	Rating      int                `json:"rating" bson:"rating"` // Оценка от 1 до 5
	Comment     string             `json:"comment" bson:"comment"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// ReviewEvent - событие для background-worker: пересчет рейтинга товара
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
