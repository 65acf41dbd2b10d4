package query

import (
	"context"

	"spotex/internal/dao"
	"spotex/internal/model/entity"
	"spotex/pkg/idgen"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ dao.LedgerDao = (*ledgerDao)(nil)

// 余额和持仓的唯一写入口
// 金额一律在Go里用decimal算好再写回，SQL表达式里不做加减：
// 字符串参数一进 balance - ? 这种表达式就会被数据库按DOUBLE参与运算，精度就没了
// 并发安全：mysql下锁定读，写回时比对旧值，旧值对不上说明被并发改过
type ledgerDao struct {
	db *gorm.DB
}

func NewLedgerDao(db *gorm.DB) *ledgerDao {
	return &ledgerDao{db: db}
}

// 锁定读，mysql加行锁；sqlite不支持for update，靠写回比对兜底
func (d *ledgerDao) userGetLocked(ctx context.Context, userId int64) (user entity.User, err error) {
	q := d.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userId)
	if d.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err = q.First(&user).Error
	return
}

// 带旧值比对的写回，影响行数为0说明余额已被并发修改
func (d *ledgerDao) balanceSwap(ctx context.Context, userId int64, old, new decimal.Decimal) error {
	res := d.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userId).
		Where("balance = ?", old).
		Update("balance", new)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dao.ErrStaleState
	}
	return nil
}

func (d *ledgerDao) QuoteReserve(ctx context.Context, userId int64, amount decimal.Decimal) error {
	user, err := d.userGetLocked(ctx, userId)
	if err != nil {
		return err
	}
	if user.Balance.LessThan(amount) {
		return dao.ErrInsufficientBalance
	}
	return d.balanceSwap(ctx, userId, user.Balance, user.Balance.Sub(amount))
}

func (d *ledgerDao) QuoteCredit(ctx context.Context, userId int64, amount decimal.Decimal) error {
	user, err := d.userGetLocked(ctx, userId)
	if err != nil {
		return err
	}
	return d.balanceSwap(ctx, userId, user.Balance, user.Balance.Add(amount))
}

// 持仓行首次用到时创建，amount/locked都是0；mysql下读出即带行锁
func (d *ledgerDao) assetGetLocked(ctx context.Context, userId int64, symbolId int64) (asset entity.Asset, err error) {
	q := d.db.WithContext(ctx)
	if d.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err = q.Where(entity.Asset{UserId: userId, SymbolId: symbolId}).
		Attrs(entity.Asset{
			Id:           idgen.NextId(),
			Amount:       decimal.Zero,
			LockedAmount: decimal.Zero,
		}).
		FirstOrCreate(&asset).Error
	return
}

// 同balanceSwap，可用和锁定两列一起比对写回
func (d *ledgerDao) assetSwap(ctx context.Context, old entity.Asset, amount, locked decimal.Decimal) error {
	res := d.db.WithContext(ctx).Model(&entity.Asset{}).
		Where("user_id = ? AND symbol_id = ?", old.UserId, old.SymbolId).
		Where("amount = ?", old.Amount).
		Where("locked_amount = ?", old.LockedAmount).
		Updates(map[string]interface{}{
			"amount":        amount,
			"locked_amount": locked,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dao.ErrStaleState
	}
	return nil
}

func (d *ledgerDao) AssetReserve(ctx context.Context, userId int64, symbolId int64, amount decimal.Decimal) error {
	asset, err := d.assetGetLocked(ctx, userId, symbolId)
	if err != nil {
		return err
	}
	if asset.Amount.LessThan(amount) {
		return dao.ErrInsufficientAsset
	}
	return d.assetSwap(ctx, asset, asset.Amount.Sub(amount), asset.LockedAmount.Add(amount))
}

func (d *ledgerDao) AssetReleaseToFree(ctx context.Context, userId int64, symbolId int64, amount decimal.Decimal) error {
	asset, err := d.assetGetLocked(ctx, userId, symbolId)
	if err != nil {
		return err
	}
	if asset.LockedAmount.LessThan(amount) {
		return dao.ErrInsufficientAsset
	}
	return d.assetSwap(ctx, asset, asset.Amount.Add(amount), asset.LockedAmount.Sub(amount))
}

// 成交交割：卖方locked减、买方可用加，调用方必须在事务内使用
func (d *ledgerDao) AssetSettleLockedToCounterparty(ctx context.Context, sellerId, buyerId int64, symbolId int64, amount decimal.Decimal) error {
	seller, err := d.assetGetLocked(ctx, sellerId, symbolId)
	if err != nil {
		return err
	}
	if seller.LockedAmount.LessThan(amount) {
		return dao.ErrInsufficientAsset
	}
	if err := d.assetSwap(ctx, seller, seller.Amount, seller.LockedAmount.Sub(amount)); err != nil {
		return err
	}
	return d.AssetCredit(ctx, buyerId, symbolId, amount)
}

func (d *ledgerDao) AssetCredit(ctx context.Context, userId int64, symbolId int64, amount decimal.Decimal) error {
	asset, err := d.assetGetLocked(ctx, userId, symbolId)
	if err != nil {
		return err
	}
	return d.assetSwap(ctx, asset, asset.Amount.Add(amount), asset.LockedAmount)
}

func (d *ledgerDao) BalanceGet(ctx context.Context, userId int64) (decimal.Decimal, error) {
	var user entity.User
	err := d.db.WithContext(ctx).Model(&entity.User{}).
		Select("balance").
		Where("id = ?", userId).
		First(&user).Error
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

func (d *ledgerDao) AssetListByUser(ctx context.Context, userId int64) (assets []entity.Asset, err error) {
	err = d.db.WithContext(ctx).Model(&entity.Asset{}).
		Where("user_id = ?", userId).
		Order("symbol_id ASC").
		Find(&assets).Error
	return
}
