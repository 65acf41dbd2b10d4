package entity

import (
	"time"

	"spotex/internal/model"

	"github.com/shopspring/decimal"
)

type Order struct {
	Id        int64             `gorm:"column:id;primary_key;" json:"id"`
	UserId    int64             `gorm:"column:user_id;index" json:"user_id"`
	SymbolId  int64             `gorm:"column:symbol_id" json:"symbol_id"`
	Side      model.Side        `gorm:"column:side" json:"side"`
	Price     decimal.Decimal   `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Amount    decimal.Decimal   `gorm:"column:amount;type:decimal(32,8);not null" json:"amount"`
	FeeRate   decimal.Decimal   `gorm:"column:fee_rate;type:decimal(8,6);not null" json:"fee_rate"` // 下单时的费率快照，退款按它算
	Status    model.OrderStatus `gorm:"column:status;index:idx_orders_book" json:"status"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
