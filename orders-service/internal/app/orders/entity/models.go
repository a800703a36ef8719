package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order представляет заказ в системе.
// Для гостевых заказов UserID равен uuid.Nil.
type Order struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Subtotal        int64       `json:"subtotal" gorm:"not null"`     // Сумма позиций без доставки
	DeliveryFee     int64       `json:"delivery_fee" gorm:"not null"` // Фиксированная стоимость доставки
	Total           int64       `json:"total" gorm:"not null"`        // Subtotal + DeliveryFee
	Status          OrderStatus `json:"status" gorm:"type:varchar(50);not null;default:'processing'"`
	PaymentMethod   string      `json:"payment_method" gorm:"type:varchar(50);not null"`
	RecipientName   string      `json:"recipient_name" gorm:"type:varchar(255);not null"` // Получатель для курьерской накладной
	ShippingAddress string      `json:"shipping_address" gorm:"type:text;not null"`
	Phone           string      `json:"phone" gorm:"type:varchar(50);not null"`
	TrackingID      string      `json:"tracking_id,omitempty" gorm:"type:varchar(100)"` // Номер накладной курьерской службы
	TransactionID   string      `json:"transaction_id,omitempty" gorm:"type:varchar(100)"`
	CreatedAt       time.Time   `json:"created_at" gorm:"autoCreateTime"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem представляет позицию заказа.
// Название, изображение и цена фиксируются на момент покупки:
// последующие изменения каталога не затрагивают сохраненные заказы.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Image     string    `json:"image" gorm:"type:text"`
	UnitPrice int64     `json:"unit_price" gorm:"not null"` // Цена за единицу на момент покупки
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
}

// TableName указывает имя таблицы для GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderWithItems содержит заказ с полным списком позиций
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Создан, еще не принят в обработку
	OrderStatusProcessing OrderStatus = "processing" // Принят в обработку (начальный статус после оформления)
	OrderStatusPackaging  OrderStatus = "packaging"  // Собирается на складе
	OrderStatusShipped    OrderStatus = "shipped"    // Передан курьерской службе
	OrderStatusOnTheWay   OrderStatus = "on_the_way" // В пути к покупателю
	OrderStatusDelivered  OrderStatus = "delivered"  // Доставлен (финальный)
	OrderStatusHold       OrderStatus = "hold"       // Приостановлен
	OrderStatusCancelled  OrderStatus = "cancelled"  // Отменен (финальный)
)

// IsTerminal сообщает, является ли статус финальным
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsValid проверяет, что значение входит в набор известных статусов
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusPackaging,
		OrderStatusShipped, OrderStatusOnTheWay, OrderStatusDelivered,
		OrderStatusHold, OrderStatusCancelled:
		return true
	}
	return false
}

// TrackingMilestones содержит пять контрольных точек доставки.
// Проекция вычисляется из статуса и нигде не хранится.
type TrackingMilestones struct {
	Placed          bool `json:"placed"`
	QualityCheck    bool `json:"quality_check"`
	Packed          bool `json:"packed"`
	HandedToCourier bool `json:"handed_to_courier"`
	Delivered       bool `json:"delivered"`
}

// Milestones вычисляет контрольные точки доставки по текущему статусу.
// Placed истинна всегда: раз заказ существует, он был оформлен.
func (s OrderStatus) Milestones() TrackingMilestones {
	packed := s == OrderStatusPackaging || s == OrderStatusShipped ||
		s == OrderStatusOnTheWay || s == OrderStatusDelivered
	handed := s == OrderStatusShipped || s == OrderStatusOnTheWay ||
		s == OrderStatusDelivered

	return TrackingMilestones{
		Placed:          true,
		QualityCheck:    s != OrderStatusPending && s != OrderStatusCancelled,
		Packed:          packed,
		HandedToCourier: handed,
		Delivered:       s == OrderStatusDelivered,
	}
}

// OrderStatusChange представляет запись журнала смены статуса.
// Журнал append-only: записи никогда не изменяются и не удаляются.
type OrderStatusChange struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID   `json:"order_id" gorm:"type:uuid;not null;index"`
	FromStatus OrderStatus `json:"from_status" gorm:"type:varchar(50)"` // Пустой для первой записи при оформлении
	ToStatus   OrderStatus `json:"to_status" gorm:"type:varchar(50);not null"`
	ChangedBy  string      `json:"changed_by" gorm:"type:varchar(100);not null"` // ID администратора или "checkout"
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (OrderStatusChange) TableName() string {
	return "order_status_history"
}

// CartItem представляет позицию корзины в Redis.
// Цена и карточка товара фиксируются в момент добавления.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// OrderEvent представляет событие заказа для Kafka.
// ORDER_CREATED несет данные получателя: worker формирует из них
// курьерскую накладную, не обращаясь в БД заказов.
type OrderEvent struct {
	EventType       string      `json:"event_type"` // ORDER_CREATED, ORDER_STATUS_CHANGED
	OrderID         uuid.UUID   `json:"order_id"`
	UserID          uuid.UUID   `json:"user_id"`
	Total           int64       `json:"total"`
	Status          OrderStatus `json:"status"`
	FromStatus      OrderStatus `json:"from_status,omitempty"`
	RecipientName   string      `json:"recipient_name,omitempty"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Items           []EventItem `json:"items,omitempty"`
	Timestamp       time.Time   `json:"timestamp"`
}

// EventItem содержит позицию заказа в событии.
// Worker декрементирует остатки и формирует сообщения по этим данным,
// не обращаясь в БД заказов.
type EventItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

// Product представляет карточку товара из Catalog Service
type Product struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Price  int64     `json:"price"`
	Image  string    `json:"image"`
	Stock  int       `json:"stock"`
	Rating float64   `json:"rating"`
}
