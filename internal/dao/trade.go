package dao

import (
	"context"

	"spotex/internal/model/entity"
)

type TradeDao interface {
	// 写入一条成交记录
	TradeCreateNew(ctx context.Context, trade *entity.Trade) error
	// 某标的最近成交，最新的在前
	TradeListBySymbol(ctx context.Context, symbolId int64, limit int) ([]entity.Trade, error)
}
