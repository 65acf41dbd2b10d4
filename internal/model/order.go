package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 下单请求，side为buy/sell，价格数量都是字符串，避免前端浮点误差
type OrderPlaceReq struct {
	Symbol string `json:"symbol" binding:"required"`
	Side   string `json:"side" binding:"required,oneof=buy sell"`
	Price  string `json:"price" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

type OrderRes struct {
	OrderId   string          `json:"order_id"`
	Symbol    string          `json:"symbol"`
	Side      string          `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// 订单簿，买卖双边按价格从高到低
type OrderbookRes struct {
	Symbol string          `json:"symbol"`
	Buy    []OrderbookItem `json:"buy"`
	Sell   []OrderbookItem `json:"sell"`
}

type OrderbookItem struct {
	OrderId string          `json:"order_id"`
	Price   decimal.Decimal `json:"price"`
	Amount  decimal.Decimal `json:"amount"`
}

type OrderHistoryRes struct {
	Total  int64      `json:"total"`
	Orders []OrderRes `json:"orders"`
}

// 成交流水，最新的排前面
type TradeRes struct {
	TradeId   string          `json:"trade_id"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// 订单簿变更事件，推给websocket订阅方和kafka
type BookChangedEvent struct {
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp"`
}
