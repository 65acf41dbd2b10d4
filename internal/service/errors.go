package service

import "errors"

// 业务语义错误，handler层翻译成对应的错误码返回
var (
	// 不是自己的订单
	ErrNotOrderOwner = errors.New("order does not belong to user")
	// 订单不是open状态，不能撤
	ErrOrderNotOpen = errors.New("order is not open")
	// 价格或数量不合法（非正数、精度超限）
	ErrInvalidOrderParam = errors.New("invalid order price or amount")
	// 标的不存在或不可交易
	ErrSymbolNotFound = errors.New("symbol not found")
)
