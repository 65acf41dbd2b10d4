package dao

import (
	"context"

	"spotex/internal/model/entity"
)

type SymbolDao interface {
	// 新增交易标的
	SymbolCreateNew(ctx context.Context, symbol *entity.Symbol) error
	// 根据名称获取标的
	SymbolGetByName(ctx context.Context, name string) (entity.Symbol, error)
	// 根据id获取标的
	SymbolGetById(ctx context.Context, symbolId int64) (entity.Symbol, error)
	// 全部可交易标的
	SymbolList(ctx context.Context) ([]entity.Symbol, error)
}
