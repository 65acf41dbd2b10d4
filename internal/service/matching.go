package service

import (
	"context"
	"errors"

	"spotex/internal/dao"
	"spotex/internal/dao/query"
	"spotex/internal/model"
	"spotex/internal/model/entity"
	"spotex/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 撮合引擎：新订单入库后立刻撮合一次
// 只做全额撮合，要么找到一张数量完全相同的对手单成交，要么留在订单簿里等
// 成交价永远取对手单（簿上挂着的那张）的价格，价差收益归吃单方

var _ MatchingService = (*matchingService)(nil)

type MatchingService interface {
	// Match 在tx事务内撮合order，order必须已持久化为open状态
	// 没有对手单不算错误，订单原样留在簿上
	Match(ctx context.Context, tx *gorm.DB, order *entity.Order) error
}

type matchingService struct {
	maxRetry int
}

func NewMatchingService(maxRetry int) *matchingService {
	if maxRetry <= 0 {
		maxRetry = 3
	}
	return &matchingService{maxRetry: maxRetry}
}

func (s *matchingService) Match(ctx context.Context, tx *gorm.DB, order *entity.Order) error {
	// 防御：重复调用或已终态的订单直接忽略
	if order.Status != model.OrderStatusOpen {
		return nil
	}

	counterSide := order.Side.Opposite()
	od := query.NewOrderDao(tx)

	for i := 0; i < s.maxRetry; i++ {
		candidate, found, err := od.MatchCandidateGet(ctx, order.SymbolId, counterSide, order.Amount, order.Price)
		if err != nil {
			return err
		}
		if !found {
			// 没有对手单，挂单
			return nil
		}

		// 子事务（savepoint）内交割，对手单被并发吃掉时整体回退重来
		err = tx.Transaction(func(txn *gorm.DB) error {
			return s.executeTrade(ctx, txn, order, &candidate)
		})
		if err == nil {
			order.Status = model.OrderStatusFilled
			return nil
		}
		if errors.Is(err, dao.ErrStaleState) {
			logger.Debugf("match candidate %d consumed concurrently, retrying", candidate.Id)
			continue
		}
		return err
	}
	// 重试次数用完，留在订单簿等下一次机会
	return nil
}

// executeTrade 在txn内完成一笔成交的全部账务，任何一步失败整体回滚
func (s *matchingService) executeTrade(ctx context.Context, txn *gorm.DB, order, candidate *entity.Order) error {
	od := query.NewOrderDao(txn)
	ld := query.NewLedgerDao(txn)
	td := query.NewTradeDao(txn)

	buyOrder, sellOrder := order, candidate
	if order.Side == model.SideSell {
		buyOrder, sellOrder = candidate, order
	}

	// 成交价取簿上对手单的价格
	price := candidate.Price
	amount := order.Amount
	volume := price.Mul(amount)

	// 两条腿都必须从open流转到filled，任何一条失败说明已被并发处理
	if err := od.OrderTransition(ctx, order.Id, model.OrderStatusOpen, model.OrderStatusFilled); err != nil {
		return err
	}
	if err := od.OrderTransition(ctx, candidate.Id, model.OrderStatusOpen, model.OrderStatusFilled); err != nil {
		return err
	}

	if err := td.TradeCreateNew(ctx, &entity.Trade{
		BuyerOrderId:  buyOrder.Id,
		SellerOrderId: sellOrder.Id,
		SymbolId:      order.SymbolId,
		Price:         price,
		Amount:        amount,
	}); err != nil {
		return err
	}

	// 卖方收到USD（不扣手续费，手续费只收买方）
	if err := ld.QuoteCredit(ctx, sellOrder.UserId, volume); err != nil {
		return err
	}

	// 卖方锁定持仓交割给买方
	if err := ld.AssetSettleLockedToCounterparty(ctx, sellOrder.UserId, buyOrder.UserId, order.SymbolId, amount); err != nil {
		return err
	}

	// 买方下单时按自己的限价锁了 price*amount*(1+fee)
	// 实际按成交价结算，差额（含对应的手续费差额）退回
	// 费率取买单上的快照，下单后调了费率也不影响已锁定的钱
	feeMul := decimal.NewFromInt(1).Add(buyOrder.FeeRate)
	refund := buyOrder.Price.Sub(price).Mul(amount).Mul(feeMul)
	if refund.IsPositive() {
		if err := ld.QuoteCredit(ctx, buyOrder.UserId, refund); err != nil {
			return err
		}
	}

	return nil
}
