package query

import (
	"context"

	"spotex/internal/dao"
	"spotex/internal/model/entity"
	"spotex/pkg/idgen"

	"gorm.io/gorm"
)

var _ dao.TradeDao = (*tradeDao)(nil)

type tradeDao struct {
	db *gorm.DB
}

func NewTradeDao(db *gorm.DB) *tradeDao {
	return &tradeDao{db: db}
}

func (d *tradeDao) TradeCreateNew(ctx context.Context, trade *entity.Trade) error {
	if trade.Id == 0 {
		trade.Id = idgen.NextId()
	}
	return d.db.WithContext(ctx).Create(trade).Error
}

func (d *tradeDao) TradeListBySymbol(ctx context.Context, symbolId int64, limit int) (trades []entity.Trade, err error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	err = d.db.WithContext(ctx).Model(&entity.Trade{}).
		Where("symbol_id = ?", symbolId).
		Order("id DESC").
		Limit(limit).
		Find(&trades).Error
	return
}
