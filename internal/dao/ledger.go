package dao

import (
	"context"

	"spotex/internal/model/entity"

	"github.com/shopspring/decimal"
)

// LedgerDao 独占余额和持仓的全部增减，其他模块不允许直接改这两张表
type LedgerDao interface {
	// 冻结USD余额（下买单），余额不足返回ErrInsufficientBalance，且不产生任何变更
	QuoteReserve(ctx context.Context, userId int64, amount decimal.Decimal) error
	// 返还USD余额（撤单退款、价格改善退款、卖方成交入账）
	QuoteCredit(ctx context.Context, userId int64, amount decimal.Decimal) error
	// 锁定持仓（下卖单），可用持仓不足返回ErrInsufficientAsset
	AssetReserve(ctx context.Context, userId int64, symbolId int64, amount decimal.Decimal) error
	// 锁定持仓解锁回可用（撤单）
	AssetReleaseToFree(ctx context.Context, userId int64, symbolId int64, amount decimal.Decimal) error
	// 成交交割：卖方locked减少，买方可用增加，二者必须同一事务内完成
	AssetSettleLockedToCounterparty(ctx context.Context, sellerId, buyerId int64, symbolId int64, amount decimal.Decimal) error
	// 增加可用持仓（充值、测试数据）
	AssetCredit(ctx context.Context, userId int64, symbolId int64, amount decimal.Decimal) error
	// 查询USD余额
	BalanceGet(ctx context.Context, userId int64) (decimal.Decimal, error)
	// 用户全部持仓
	AssetListByUser(ctx context.Context, userId int64) ([]entity.Asset, error)
}
