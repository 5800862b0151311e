package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64       `gorm:"not null;index" json:"user_id"`
	Reference string      `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
