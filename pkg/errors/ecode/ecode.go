package ecode

// 错误码定义，0表示成功，其余在响应体里返回给客户端

const (
	Success = 0
	Unknown = 10001
	// 参数校验失败
	ValidateErr = 10002
	// 资源不存在
	NotFoundErr = 10003
	// 鉴权失败
	RequireAuthErr = 10004

	// 用户相关
	UserLoginErr    = 20001
	UserRegisterErr = 20002

	// 交易相关
	InsufficientBalanceErr = 30001
	InsufficientAssetErr   = 30002
	OrderNotOpenErr        = 30003
	OrderForbiddenErr      = 30004
)

var messages = map[int]string{
	Success:                "success",
	Unknown:                "internal error",
	ValidateErr:            "invalid request parameters",
	NotFoundErr:            "resource not found",
	RequireAuthErr:         "authentication required",
	UserLoginErr:           "login failed",
	UserRegisterErr:        "register failed",
	InsufficientBalanceErr: "Insufficient USD balance",
	InsufficientAssetErr:   "Insufficient asset balance",
	OrderNotOpenErr:        "Order is not open",
	OrderForbiddenErr:      "Unauthorized",
}

// Message 返回错误码的默认描述
func Message(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}
