package service

import (
	"context"
	"testing"

	"spotex/internal/dao"
	"spotex/internal/dao/query"
	"spotex/internal/model"
	"spotex/internal/model/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPlaceBuyReservesBalance(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("100000"))
	seedSymbol(t, db, "BTC")
	svc := newTestOrderService(db)

	res, err := svc.OrderPlaceNew(context.Background(), user.Id, model.OrderPlaceReq{
		Symbol: "BTC",
		Side:   "buy",
		Price:  "95000",
		Amount: "0.25",
	})
	require.NoError(t, err)
	assert.Equal(t, "open", res.Status)

	// 95000 * 0.25 * 1.015 = 24106.25
	requireDecimal(t, "75893.75", balanceOf(t, db, user.Id))
}

func TestOrderPlaceBuyInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("100"))
	seedSymbol(t, db, "BTC")
	svc := newTestOrderService(db)

	_, err := svc.OrderPlaceNew(context.Background(), user.Id, model.OrderPlaceReq{
		Symbol: "BTC",
		Side:   "buy",
		Price:  "95000",
		Amount: "0.25",
	})
	require.ErrorIs(t, err, dao.ErrInsufficientBalance)

	// 失败的下单不留任何痕迹
	requireDecimal(t, "100", balanceOf(t, db, user.Id))
	var count int64
	require.NoError(t, db.Table("orders").Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderPlaceSellLocksAsset(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("0"))
	symbol := seedSymbol(t, db, "BTC")
	seedAsset(t, db, user.Id, symbol.Id, d("0.5"))
	svc := newTestOrderService(db)

	_, err := svc.OrderPlaceNew(context.Background(), user.Id, model.OrderPlaceReq{
		Symbol: "BTC",
		Side:   "sell",
		Price:  "95000",
		Amount: "0.25",
	})
	require.NoError(t, err)

	asset := assetOf(t, db, user.Id, symbol.Id)
	requireDecimal(t, "0.25", asset.Amount)
	requireDecimal(t, "0.25", asset.LockedAmount)
}

func TestOrderPlaceSellInsufficientAsset(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("0"))
	symbol := seedSymbol(t, db, "BTC")
	seedAsset(t, db, user.Id, symbol.Id, d("0.125"))
	svc := newTestOrderService(db)

	_, err := svc.OrderPlaceNew(context.Background(), user.Id, model.OrderPlaceReq{
		Symbol: "BTC",
		Side:   "sell",
		Price:  "95000",
		Amount: "0.25",
	})
	require.ErrorIs(t, err, dao.ErrInsufficientAsset)

	asset := assetOf(t, db, user.Id, symbol.Id)
	requireDecimal(t, "0.125", asset.Amount)
	requireDecimal(t, "0", asset.LockedAmount)
}

func TestOrderPlaceRejectsInvalidParams(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("100000"))
	seedSymbol(t, db, "BTC")
	svc := newTestOrderService(db)

	cases := []struct {
		name string
		req  model.OrderPlaceReq
		want error
	}{
		{"unknown side", model.OrderPlaceReq{Symbol: "BTC", Side: "hold", Price: "100", Amount: "1"}, ErrInvalidOrderParam},
		{"zero price", model.OrderPlaceReq{Symbol: "BTC", Side: "buy", Price: "0", Amount: "1"}, ErrInvalidOrderParam},
		{"negative amount", model.OrderPlaceReq{Symbol: "BTC", Side: "buy", Price: "100", Amount: "-1"}, ErrInvalidOrderParam},
		{"price too precise", model.OrderPlaceReq{Symbol: "BTC", Side: "buy", Price: "100.123", Amount: "1"}, ErrInvalidOrderParam},
		{"amount too precise", model.OrderPlaceReq{Symbol: "BTC", Side: "buy", Price: "100", Amount: "0.123456789"}, ErrInvalidOrderParam},
		{"garbled price", model.OrderPlaceReq{Symbol: "BTC", Side: "buy", Price: "abc", Amount: "1"}, ErrInvalidOrderParam},
		{"unknown symbol", model.OrderPlaceReq{Symbol: "DOGE", Side: "buy", Price: "100", Amount: "1"}, ErrSymbolNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.OrderPlaceNew(context.Background(), user.Id, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// 参数校验失败不应该动过余额
	requireDecimal(t, "100000", balanceOf(t, db, user.Id))
}

func TestOrderCancelBuyRefundsReservation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("100000"))
	seedSymbol(t, db, "BTC")
	svc := newTestOrderService(db)
	ctx := context.Background()

	res, err := svc.OrderPlaceNew(ctx, user.Id, model.OrderPlaceReq{
		Symbol: "BTC", Side: "buy", Price: "95000", Amount: "0.25",
	})
	require.NoError(t, err)
	requireDecimal(t, "75893.75", balanceOf(t, db, user.Id))

	orderId := mustParseId(t, res.OrderId)
	require.NoError(t, svc.OrderCancel(ctx, user.Id, orderId))

	// 冻结的24106.25原样退回
	requireDecimal(t, "100000", balanceOf(t, db, user.Id))
	assert.Equal(t, model.OrderStatusCancelled, orderOf(t, db, orderId).Status)

	// 重复撤单幂等失败
	err = svc.OrderCancel(ctx, user.Id, orderId)
	assert.ErrorIs(t, err, ErrOrderNotOpen)
	requireDecimal(t, "100000", balanceOf(t, db, user.Id))
}

func TestOrderCancelSellUnlocksAsset(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("0"))
	symbol := seedSymbol(t, db, "BTC")
	seedAsset(t, db, user.Id, symbol.Id, d("0.5"))
	svc := newTestOrderService(db)
	ctx := context.Background()

	res, err := svc.OrderPlaceNew(ctx, user.Id, model.OrderPlaceReq{
		Symbol: "BTC", Side: "sell", Price: "95000", Amount: "0.25",
	})
	require.NoError(t, err)

	require.NoError(t, svc.OrderCancel(ctx, user.Id, mustParseId(t, res.OrderId)))

	asset := assetOf(t, db, user.Id, symbol.Id)
	requireDecimal(t, "0.5", asset.Amount)
	requireDecimal(t, "0", asset.LockedAmount)
}

func TestOrderCancelRejectsOtherUsersOrder(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "u1@example.com", d("100000"))
	other := seedUser(t, db, "u2@example.com", d("100000"))
	seedSymbol(t, db, "BTC")
	svc := newTestOrderService(db)
	ctx := context.Background()

	res, err := svc.OrderPlaceNew(ctx, owner.Id, model.OrderPlaceReq{
		Symbol: "BTC", Side: "buy", Price: "95000", Amount: "0.25",
	})
	require.NoError(t, err)

	orderId := mustParseId(t, res.OrderId)
	err = svc.OrderCancel(ctx, other.Id, orderId)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	// 订单原样保留，资金不动
	assert.Equal(t, model.OrderStatusOpen, orderOf(t, db, orderId).Status)
	requireDecimal(t, "75893.75", balanceOf(t, db, owner.Id))
}

func TestOrderCancelRejectsFilledOrder(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "u1@example.com", d("100000"))
	seller := seedUser(t, db, "u2@example.com", d("0"))
	symbol := seedSymbol(t, db, "BTC")
	seedAsset(t, db, seller.Id, symbol.Id, d("1"))
	svc := newTestOrderService(db)
	ctx := context.Background()

	sellRes, err := svc.OrderPlaceNew(ctx, seller.Id, model.OrderPlaceReq{
		Symbol: "BTC", Side: "sell", Price: "95000", Amount: "0.25",
	})
	require.NoError(t, err)
	_, err = svc.OrderPlaceNew(ctx, buyer.Id, model.OrderPlaceReq{
		Symbol: "BTC", Side: "buy", Price: "95000", Amount: "0.25",
	})
	require.NoError(t, err)

	err = svc.OrderCancel(ctx, seller.Id, mustParseId(t, sellRes.OrderId))
	assert.ErrorIs(t, err, ErrOrderNotOpen)
}

func TestOrderbookGetSplitsSides(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "u1@example.com", d("1000000"))
	seller := seedUser(t, db, "u2@example.com", d("0"))
	symbol := seedSymbol(t, db, "BTC")
	seedAsset(t, db, seller.Id, symbol.Id, d("10"))
	svc := newTestOrderService(db)
	ctx := context.Background()

	// 买卖价差拉开，避免互相成交
	for _, price := range []string{"90000", "91000"} {
		_, err := svc.OrderPlaceNew(ctx, buyer.Id, model.OrderPlaceReq{
			Symbol: "BTC", Side: "buy", Price: price, Amount: "0.25",
		})
		require.NoError(t, err)
	}
	_, err := svc.OrderPlaceNew(ctx, seller.Id, model.OrderPlaceReq{
		Symbol: "BTC", Side: "sell", Price: "95000", Amount: "0.5",
	})
	require.NoError(t, err)

	book, err := svc.OrderbookGet(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, "BTC", book.Symbol)
	require.Len(t, book.Buy, 2)
	require.Len(t, book.Sell, 1)
	// 买方按价格从高到低
	requireDecimal(t, "91000", book.Buy[0].Price)
	requireDecimal(t, "90000", book.Buy[1].Price)
	requireDecimal(t, "95000", book.Sell[0].Price)

	_, err = svc.OrderbookGet(ctx, "DOGE")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestOrderHistoryGetPaginates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("1000000"))
	seedSymbol(t, db, "BTC")
	svc := newTestOrderService(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.OrderPlaceNew(ctx, user.Id, model.OrderPlaceReq{
			Symbol: "BTC", Side: "buy", Price: "90000", Amount: "0.25",
		})
		require.NoError(t, err)
	}

	res, err := svc.OrderHistoryGet(ctx, user.Id, 1, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Total)
	assert.Len(t, res.Orders, 3)
	assert.Equal(t, "BTC", res.Orders[0].Symbol)

	res, err = svc.OrderHistoryGet(ctx, user.Id, 2, 3)
	require.NoError(t, err)
	assert.Len(t, res.Orders, 2)
}

func TestFeeRateFromConfigFallsBack(t *testing.T) {
	requireDecimal(t, "0.015", DefaultFeeRate)
	// 未配置时走默认
	requireDecimal(t, "0.015", FeeRateFromConfig())
}

// 下架的标的等同于不存在，不能下单也不能查簿
func TestOrderPlaceRejectsDisabledSymbol(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("100000"))
	disabled := entity.Symbol{Name: "XRP", Status: 0}
	require.NoError(t, query.NewSymbolDao(db).SymbolCreateNew(context.Background(), &disabled))
	svc := newTestOrderService(db)
	ctx := context.Background()

	_, err := svc.OrderPlaceNew(ctx, user.Id, model.OrderPlaceReq{
		Symbol: "XRP", Side: "buy", Price: "100", Amount: "1",
	})
	assert.ErrorIs(t, err, ErrSymbolNotFound)
	requireDecimal(t, "100000", balanceOf(t, db, user.Id))

	_, err = svc.OrderbookGet(ctx, "XRP")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
	_, err = svc.TradeHistoryGet(ctx, "XRP", 10)
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

// 撤单退的是下单时冻结的钱，费率快照在订单上，调整配置不影响存量订单
func TestOrderCancelRefundsAtPlacementFeeRate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1@example.com", d("100000"))
	seedSymbol(t, db, "BTC")
	ctx := context.Background()

	placedWith := NewOrderService(db, NewMatchingService(3), nil, nil, d("0.015"))
	res, err := placedWith.OrderPlaceNew(ctx, user.Id, model.OrderPlaceReq{
		Symbol: "BTC", Side: "buy", Price: "95000", Amount: "0.25",
	})
	require.NoError(t, err)
	requireDecimal(t, "75893.75", balanceOf(t, db, user.Id))

	// 费率上调后撤单，退款仍按下单时的0.015算
	raisedTo := NewOrderService(db, NewMatchingService(3), nil, nil, d("0.025"))
	require.NoError(t, raisedTo.OrderCancel(ctx, user.Id, mustParseId(t, res.OrderId)))
	requireDecimal(t, "100000", balanceOf(t, db, user.Id))
}
