package query

import (
	"context"

	"spotex/internal/dao"
	"spotex/internal/model/entity"
	"spotex/pkg/idgen"

	"gorm.io/gorm"
)

var _ dao.SymbolDao = (*symbolDao)(nil)

type symbolDao struct {
	db *gorm.DB
}

func NewSymbolDao(db *gorm.DB) *symbolDao {
	return &symbolDao{db: db}
}

func (d *symbolDao) SymbolCreateNew(ctx context.Context, symbol *entity.Symbol) error {
	if symbol.Id == 0 {
		symbol.Id = idgen.NextId()
	}
	return d.db.WithContext(ctx).Create(symbol).Error
}

// SymbolGetByName 只返回可交易的标的，下架的等同于不存在
func (d *symbolDao) SymbolGetByName(ctx context.Context, name string) (symbol entity.Symbol, err error) {
	err = d.db.WithContext(ctx).Model(&entity.Symbol{}).
		Where("name = ?", name).
		Where("status = ?", 1).
		First(&symbol).Error
	return
}

func (d *symbolDao) SymbolGetById(ctx context.Context, symbolId int64) (symbol entity.Symbol, err error) {
	err = d.db.WithContext(ctx).Model(&entity.Symbol{}).
		Where("id = ?", symbolId).
		First(&symbol).Error
	return
}

func (d *symbolDao) SymbolList(ctx context.Context) (symbols []entity.Symbol, err error) {
	err = d.db.WithContext(ctx).Model(&entity.Symbol{}).
		Where("status = ?", 1).
		Order("id ASC").
		Find(&symbols).Error
	return
}
