package entity

// UpdateProfileRequest - запрос на обновление собственного профиля
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,max=255"`
	Photo   string `json:"photo" validate:"omitempty,url"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

// SetBannedRequest - запрос на блокировку/разблокировку пользователя
type SetBannedRequest struct {
	Banned *bool `json:"banned" validate:"required"`
}

// SetRoleRequest - запрос на смену роли пользователя
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// CreateNotificationRequest - запрос на создание уведомления
type CreateNotificationRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=2000"`
	Image   string `json:"image" validate:"omitempty,url"`
	Target  string `json:"target" validate:"required"` // UUID пользователя или "all"
}

// UpdatePlatformSettingsRequest - запрос на обновление настроек платформы
type UpdatePlatformSettingsRequest struct {
	GoogleLogin    *bool  `json:"google_login"`
	FacebookLogin  *bool  `json:"facebook_login"`
	AppleLogin     *bool  `json:"apple_login"`
	CourierEnabled *bool  `json:"courier_enabled"`
	ChatBotChatID  string `json:"chat_bot_chat_id"`
	Maintenance    *bool  `json:"maintenance"`
}

// GeocodeResponse - ответ reverse-геокодирования для отображения адреса
type GeocodeResponse struct {
	Locality string `json:"locality"`
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

// ProfileListResponse - ответ со списком профилей
type ProfileListResponse struct {
	Profiles []UserProfile `json:"profiles"`
	Total    int           `json:"total"`
}

// NotificationListResponse - ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
}
