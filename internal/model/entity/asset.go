package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// 用户某个标的的持仓，amount可用，locked_amount被挂单锁定
// 同一用户同一标的只有一行，首次用到时创建
type Asset struct {
	Id           int64           `gorm:"column:id;primary_key;" json:"id"`
	UserId       int64           `gorm:"column:user_id;uniqueIndex:uk_assets_user_symbol" json:"user_id"`
	SymbolId     int64           `gorm:"column:symbol_id;uniqueIndex:uk_assets_user_symbol" json:"symbol_id"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(32,8);not null" json:"amount"`
	LockedAmount decimal.Decimal `gorm:"column:locked_amount;type:decimal(32,8);not null" json:"locked_amount"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}
