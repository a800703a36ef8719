package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile - профиль пользователя. ID совпадает с subject во внешнем
// identity-провайдере, сам аккаунт (пароль, сессии) живет вне платформы.
type UserProfile struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"type:varchar(255)"`
	Photo        string     `json:"photo" gorm:"type:text"`
	Address      string     `json:"address" gorm:"type:text"`
	Phone        string     `json:"phone" gorm:"type:varchar(32)"`
	Role         string     `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Banned       bool       `json:"banned" gorm:"not null;default:false"`
	RegisteredAt *time.Time `json:"registered_at"` // nullable: у ранних профилей даты регистрации нет
	LastActiveAt time.Time  `json:"last_active_at"`
	LastIP       string     `json:"last_ip" gorm:"type:varchar(45)"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Target-значение для широковещательных уведомлений
const NotificationTargetAll = "all"

// Notification - уведомление. Никогда не изменяется после создания,
// видимость для конкретного пользователя вычисляется при чтении.
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Target    string             `json:"target" bson:"target"` // UUID пользователя или "all"
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// PlatformSettings - singleton-документ настроек платформы
type PlatformSettings struct {
	ID             string    `json:"-" bson:"_id"` // всегда "platform"
	GoogleLogin    bool      `json:"google_login" bson:"google_login"`
	FacebookLogin  bool      `json:"facebook_login" bson:"facebook_login"`
	AppleLogin     bool      `json:"apple_login" bson:"apple_login"`
	CourierEnabled bool      `json:"courier_enabled" bson:"courier_enabled"`
	ChatBotChatID  string    `json:"chat_bot_chat_id" bson:"chat_bot_chat_id"`
	Maintenance    bool      `json:"maintenance" bson:"maintenance"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// PlatformSettingsID - ключ singleton-документа в коллекции settings
const PlatformSettingsID = "platform"

// DefaultPlatformSettings возвращает настройки по умолчанию,
// когда документ еще не создан администратором.
func DefaultPlatformSettings() *PlatformSettings {
	return &PlatformSettings{
		ID:          PlatformSettingsID,
		GoogleLogin: true,
	}
}
