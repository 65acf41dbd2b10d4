package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	UserID      = "user_id"
	JWTTokenCtx = "token_ctx"

	// redis key 前缀
	OrderbookCachePrefix = "Orderbook_snapshot:"
	JwtBlacklistPrefix   = "Jwt_blacklist:"

	// 订单簿快照缓存过期时间，正常情况下靠book-changed主动失效
	OrderbookCacheExr = time.Minute * 5
)

const (
	LanguageId = "T-Language-Id"

	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)
