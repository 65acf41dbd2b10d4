package model

import "github.com/shopspring/decimal"

type UserRegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"omitempty,max=64"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

type UserLoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserLoginRes struct {
	UserId      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// 用户资产概况：USD余额 + 各标的持仓
type PortfolioRes struct {
	Balance decimal.Decimal `json:"balance"`
	Assets  []PortfolioItem `json:"assets"`
}

type PortfolioItem struct {
	Symbol       string          `json:"symbol"`
	Amount       decimal.Decimal `json:"amount"`
	LockedAmount decimal.Decimal `json:"locked_amount"`
}
