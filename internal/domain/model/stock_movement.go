package model

import "time"

type MovementAction string

const (
	MovementIncrease MovementAction = "increase"
	MovementDecrease MovementAction = "decrease"
	MovementSet      MovementAction = "set"
)

// 在庫変動の履歴。追記のみで、更新・削除はしない。
// product_id単位で持つので、stock行が消えても履歴は残る。
type StockMovement struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64          `gorm:"not null;index" json:"product_id"`
	ActionType MovementAction `gorm:"type:varchar(20);not null" json:"action_type"`
	Quantity   int64          `gorm:"not null" json:"quantity"`
	Note       string         `gorm:"type:varchar(255)" json:"note"`
	CreatedAt  time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}
