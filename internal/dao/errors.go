package dao

import "errors"

// 数据层语义错误，service层据此决定回滚还是换对手单重试
var (
	// 余额不足，下买单时返回
	ErrInsufficientBalance = errors.New("insufficient balance")
	// 持仓不足，下卖单时返回
	ErrInsufficientAsset = errors.New("insufficient asset")
	// 状态流转时订单已被并发修改
	ErrStaleState = errors.New("stale order state")
)
