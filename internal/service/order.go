package service

import (
	"context"
	"errors"
	"strconv"

	"spotex/conf"
	"spotex/internal/cache"
	"spotex/internal/dao"
	"spotex/internal/dao/query"
	"spotex/internal/model"
	"spotex/internal/model/entity"
	"spotex/internal/notifier"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 订单生命周期：下单（冻结资金 -> 落库 -> 撮合）和撤单（校验 -> 解冻）
// 每个操作整体一个事务，事务内任何一步失败全部回滚

// DefaultFeeRate 买单手续费率，只收买方，挂单时随交易额一起冻结
var DefaultFeeRate = decimal.RequireFromString("0.015")

// FeeRateFromConfig 配置里的费率，未配置或不合法时用默认值
func FeeRateFromConfig() decimal.Decimal {
	raw := conf.AppConfig.Trading.FeeRate
	if raw == "" {
		return DefaultFeeRate
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		return DefaultFeeRate
	}
	return rate
}

// reserveTotal 买单需要冻结的总额 price*amount*(1+feeRate)
func reserveTotal(price, amount, feeRate decimal.Decimal) decimal.Decimal {
	return price.Mul(amount).Mul(decimal.NewFromInt(1).Add(feeRate))
}

var _ OrderService = (*orderService)(nil)

type OrderService interface {
	// 下限价单，返回订单最终状态（可能已成交）
	OrderPlaceNew(ctx context.Context, userId int64, req model.OrderPlaceReq) (model.OrderRes, error)
	// 撤单，只能撤自己的open订单
	OrderCancel(ctx context.Context, userId int64, orderId int64) error
	// 订单簿，买卖双边按价格从高到低
	OrderbookGet(ctx context.Context, symbolName string) (model.OrderbookRes, error)
	// 用户历史订单
	OrderHistoryGet(ctx context.Context, userId int64, page, limit int) (model.OrderHistoryRes, error)
	// 标的最近成交
	TradeHistoryGet(ctx context.Context, symbolName string, limit int) ([]model.TradeRes, error)
}

type orderService struct {
	db       *gorm.DB
	matcher  MatchingService
	notifier notifier.BookNotifier
	book     *cache.OrderbookCache
	feeRate  decimal.Decimal
}

func NewOrderService(db *gorm.DB, matcher MatchingService, n notifier.BookNotifier, book *cache.OrderbookCache, feeRate decimal.Decimal) *orderService {
	if n == nil {
		n = notifier.NopNotifier{}
	}
	return &orderService{
		db:       db,
		matcher:  matcher,
		notifier: n,
		book:     book,
		feeRate:  feeRate,
	}
}

func (s *orderService) OrderPlaceNew(ctx context.Context, userId int64, req model.OrderPlaceReq) (res model.OrderRes, err error) {
	side, ok := model.ParseSide(req.Side)
	if !ok {
		return res, ErrInvalidOrderParam
	}
	price, amount, err := parsePriceAmount(req.Price, req.Amount)
	if err != nil {
		return res, err
	}

	symbol, err := query.NewSymbolDao(s.db).SymbolGetByName(ctx, req.Symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, ErrSymbolNotFound
		}
		return res, err
	}

	var placed entity.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ld := query.NewLedgerDao(tx)
		od := query.NewOrderDao(tx)

		// 先冻结资金/持仓，不足时直接失败，无任何副作用
		if side == model.SideBuy {
			if err := ld.QuoteReserve(ctx, userId, reserveTotal(price, amount, s.feeRate)); err != nil {
				return err
			}
		} else {
			if err := ld.AssetReserve(ctx, userId, symbol.Id, amount); err != nil {
				return err
			}
		}

		placed = entity.Order{
			UserId:   userId,
			SymbolId: symbol.Id,
			Side:     side,
			Price:    price,
			Amount:   amount,
			FeeRate:  s.feeRate,
			Status:   model.OrderStatusOpen,
		}
		if err := od.OrderCreateNew(ctx, &placed); err != nil {
			return err
		}

		// 同步撮合，成交和下单在同一个事务里
		if err := s.matcher.Match(ctx, tx, &placed); err != nil {
			return err
		}

		// 返回撮合后的最终状态
		fresh, err := od.OrderGetById(ctx, placed.Id)
		if err != nil {
			return err
		}
		placed = fresh
		return nil
	})
	if err != nil {
		return res, err
	}

	s.bookChanged(ctx, symbol.Name)
	return orderRes(placed, symbol.Name), nil
}

func (s *orderService) OrderCancel(ctx context.Context, userId int64, orderId int64) error {
	var symbolName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		od := query.NewOrderDao(tx)
		ld := query.NewLedgerDao(tx)

		order, err := od.OrderGetById(ctx, orderId)
		if err != nil {
			return err
		}
		if order.UserId != userId {
			return ErrNotOrderOwner
		}
		if order.Status != model.OrderStatusOpen {
			return ErrOrderNotOpen
		}

		// 状态守卫兜底：读到open之后可能已被撮合掉
		if err := od.OrderTransition(ctx, order.Id, model.OrderStatusOpen, model.OrderStatusCancelled); err != nil {
			if errors.Is(err, dao.ErrStaleState) {
				return ErrOrderNotOpen
			}
			return err
		}

		// 原样退回下单时冻结的部分，费率用订单上的快照，和当前配置无关
		if order.Side == model.SideBuy {
			if err := ld.QuoteCredit(ctx, order.UserId, reserveTotal(order.Price, order.Amount, order.FeeRate)); err != nil {
				return err
			}
		} else {
			if err := ld.AssetReleaseToFree(ctx, order.UserId, order.SymbolId, order.Amount); err != nil {
				return err
			}
		}

		symbol, err := query.NewSymbolDao(tx).SymbolGetById(ctx, order.SymbolId)
		if err != nil {
			return err
		}
		symbolName = symbol.Name
		return nil
	})
	if err != nil {
		return err
	}

	s.bookChanged(ctx, symbolName)
	return nil
}

func (s *orderService) OrderbookGet(ctx context.Context, symbolName string) (res model.OrderbookRes, err error) {
	if cached, ok := s.book.Get(ctx, symbolName); ok {
		return cached, nil
	}

	symbol, err := query.NewSymbolDao(s.db).SymbolGetByName(ctx, symbolName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, ErrSymbolNotFound
		}
		return res, err
	}

	orders, err := query.NewOrderDao(s.db).OrderListOpenBySymbol(ctx, symbol.Id)
	if err != nil {
		return res, err
	}

	res.Symbol = symbol.Name
	res.Buy = make([]model.OrderbookItem, 0)
	res.Sell = make([]model.OrderbookItem, 0)
	for _, o := range orders {
		item := model.OrderbookItem{
			OrderId: strconv.FormatInt(o.Id, 10),
			Price:   o.Price,
			Amount:  o.Amount,
		}
		if o.Side == model.SideBuy {
			res.Buy = append(res.Buy, item)
		} else {
			res.Sell = append(res.Sell, item)
		}
	}

	s.book.Set(ctx, symbolName, res)
	return res, nil
}

func (s *orderService) OrderHistoryGet(ctx context.Context, userId int64, page, limit int) (res model.OrderHistoryRes, err error) {
	total, orders, err := query.NewOrderDao(s.db).OrderListByUser(ctx, userId, page, limit)
	if err != nil {
		return res, err
	}

	symbols, err := query.NewSymbolDao(s.db).SymbolList(ctx)
	if err != nil {
		return res, err
	}
	names := make(map[int64]string, len(symbols))
	for _, sym := range symbols {
		names[sym.Id] = sym.Name
	}

	res.Total = total
	res.Orders = make([]model.OrderRes, 0, len(orders))
	for _, o := range orders {
		res.Orders = append(res.Orders, orderRes(o, names[o.SymbolId]))
	}
	return res, nil
}

func (s *orderService) TradeHistoryGet(ctx context.Context, symbolName string, limit int) ([]model.TradeRes, error) {
	symbol, err := query.NewSymbolDao(s.db).SymbolGetByName(ctx, symbolName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSymbolNotFound
		}
		return nil, err
	}

	trades, err := query.NewTradeDao(s.db).TradeListBySymbol(ctx, symbol.Id, limit)
	if err != nil {
		return nil, err
	}

	res := make([]model.TradeRes, 0, len(trades))
	for _, trade := range trades {
		res = append(res, model.TradeRes{
			TradeId:   strconv.FormatInt(trade.Id, 10),
			Symbol:    symbol.Name,
			Price:     trade.Price,
			Amount:    trade.Amount,
			CreatedAt: trade.CreatedAt,
		})
	}
	return res, nil
}

// bookChanged 事务提交成功后失效缓存并广播变更
func (s *orderService) bookChanged(ctx context.Context, symbolName string) {
	s.book.Invalidate(ctx, symbolName)
	s.notifier.BookChanged(symbolName)
}

func orderRes(o entity.Order, symbolName string) model.OrderRes {
	return model.OrderRes{
		OrderId:   strconv.FormatInt(o.Id, 10),
		Symbol:    symbolName,
		Side:      o.Side.String(),
		Price:     o.Price,
		Amount:    o.Amount,
		Status:    o.Status.String(),
		CreatedAt: o.CreatedAt,
	}
}

// parsePriceAmount 解析并校验价格数量：必须为正，价格最多2位小数，数量最多8位
func parsePriceAmount(priceStr, amountStr string) (price, amount decimal.Decimal, err error) {
	price, err = decimal.NewFromString(priceStr)
	if err != nil || !price.IsPositive() || price.Exponent() < -2 {
		return price, amount, ErrInvalidOrderParam
	}
	amount, err = decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() || amount.Exponent() < -8 {
		return price, amount, ErrInvalidOrderParam
	}
	return price, amount, nil
}
