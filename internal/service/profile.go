package service

import (
	"context"

	"spotex/internal/dao/query"
	"spotex/internal/model"

	"gorm.io/gorm"
)

var _ ProfileService = (*profileService)(nil)

type ProfileService interface {
	// 用户资产概况：USD余额 + 各标的持仓（可用/锁定）
	PortfolioGet(ctx context.Context, userId int64) (model.PortfolioRes, error)
}

type profileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *profileService {
	return &profileService{db: db}
}

func (s *profileService) PortfolioGet(ctx context.Context, userId int64) (res model.PortfolioRes, err error) {
	ld := query.NewLedgerDao(s.db)

	res.Balance, err = ld.BalanceGet(ctx, userId)
	if err != nil {
		return
	}

	assets, err := ld.AssetListByUser(ctx, userId)
	if err != nil {
		return
	}

	symbols, err := query.NewSymbolDao(s.db).SymbolList(ctx)
	if err != nil {
		return
	}
	names := make(map[int64]string, len(symbols))
	for _, sym := range symbols {
		names[sym.Id] = sym.Name
	}

	res.Assets = make([]model.PortfolioItem, 0, len(assets))
	for _, a := range assets {
		res.Assets = append(res.Assets, model.PortfolioItem{
			Symbol:       names[a.SymbolId],
			Amount:       a.Amount,
			LockedAmount: a.LockedAmount,
		})
	}
	return res, nil
}
