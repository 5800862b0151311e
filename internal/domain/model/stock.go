package model

import "time"

// 商品ごとの在庫の現在値。数量の書き込みはStockUsecaseだけが行う。
// product_idはuniqueで、在庫行は商品あたり必ず1行。
// product_id条件の相対更新がこの1:1を前提にしている。
type Stock struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;uniqueIndex" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
