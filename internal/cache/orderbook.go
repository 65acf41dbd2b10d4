package cache

import (
	"context"

	"spotex/internal/consts"
	"spotex/internal/model"
	"spotex/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
)

// 订单簿快照缓存，book-changed时主动失效
// 缓存不可用时直接回源查库，不影响功能

type OrderbookCache struct {
	rdb *redis.Client
}

func NewOrderbookCache(rdb *redis.Client) *OrderbookCache {
	return &OrderbookCache{rdb: rdb}
}

func (c *OrderbookCache) Get(ctx context.Context, symbol string) (res model.OrderbookRes, ok bool) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := c.rdb.Get(ctx, consts.OrderbookCachePrefix+symbol).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Errorf("orderbook cache get error: %v", err)
		}
		return
	}
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Errorf("orderbook cache decode error: %v", err)
		return
	}
	return res, true
}

func (c *OrderbookCache) Set(ctx context.Context, symbol string, res model.OrderbookRes) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		logger.Errorf("orderbook cache encode error: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, consts.OrderbookCachePrefix+symbol, data, consts.OrderbookCacheExr).Err(); err != nil {
		logger.Errorf("orderbook cache set error: %v", err)
	}
}

func (c *OrderbookCache) Invalidate(ctx context.Context, symbol string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, consts.OrderbookCachePrefix+symbol).Err(); err != nil {
		logger.Errorf("orderbook cache invalidate error: %v", err)
	}
}
