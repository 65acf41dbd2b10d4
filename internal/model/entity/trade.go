package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// 成交记录，写入后不再变更
type Trade struct {
	Id            int64           `gorm:"column:id;primary_key;" json:"id"`
	BuyerOrderId  int64           `gorm:"column:buyer_order_id;index" json:"buyer_order_id"`
	SellerOrderId int64           `gorm:"column:seller_order_id;index" json:"seller_order_id"`
	SymbolId      int64           `gorm:"column:symbol_id;index" json:"symbol_id"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(32,8);not null" json:"amount"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}
