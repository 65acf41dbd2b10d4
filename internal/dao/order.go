package dao

import (
	"context"

	"spotex/internal/model"
	"spotex/internal/model/entity"

	"github.com/shopspring/decimal"
)

type OrderDao interface {
	// 创建订单
	OrderCreateNew(ctx context.Context, order *entity.Order) error
	// 根据id获取订单
	OrderGetById(ctx context.Context, orderId int64) (entity.Order, error)
	// 状态流转，带from状态守卫，当前状态不等于from时返回ErrStaleState
	OrderTransition(ctx context.Context, orderId int64, from, to model.OrderStatus) error
	// 查找一个可成交的对手单：同标的、对手方向、数量完全相等、价格满足限价，
	// 卖单候选按价格升序、买单候选按价格降序取最优，价格相同时id小的优先
	MatchCandidateGet(ctx context.Context, symbolId int64, side model.Side, amount decimal.Decimal, priceBound decimal.Decimal) (entity.Order, bool, error)
	// 某标的全部open订单，价格从高到低
	OrderListOpenBySymbol(ctx context.Context, symbolId int64) ([]entity.Order, error)
	// 用户历史订单，最新的在前
	OrderListByUser(ctx context.Context, userId int64, page, limit int) (int64, []entity.Order, error)
}
