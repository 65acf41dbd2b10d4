package query

import (
	"context"
	"errors"

	"spotex/internal/dao"
	"spotex/internal/model"
	"spotex/internal/model/entity"
	"spotex/pkg/idgen"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ dao.OrderDao = (*orderDao)(nil)

type orderDao struct {
	db *gorm.DB
}

// NewOrderDao db传入事务句柄时，所有操作都在该事务内执行
func NewOrderDao(db *gorm.DB) *orderDao {
	return &orderDao{db: db}
}

func (d *orderDao) OrderCreateNew(ctx context.Context, order *entity.Order) error {
	if order.Id == 0 {
		order.Id = idgen.NextId()
	}
	return d.db.WithContext(ctx).Create(order).Error
}

func (d *orderDao) OrderGetById(ctx context.Context, orderId int64) (order entity.Order, err error) {
	err = d.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", orderId).
		First(&order).Error
	return
}

// 带状态守卫的更新，update ... where id = ? and status = ?
// 影响行数为0说明订单已被其他事务处理过
func (d *orderDao) OrderTransition(ctx context.Context, orderId int64, from, to model.OrderStatus) error {
	res := d.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", orderId).
		Where("status = ?", from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dao.ErrStaleState
	}
	return nil
}

func (d *orderDao) MatchCandidateGet(ctx context.Context, symbolId int64, side model.Side, amount decimal.Decimal, priceBound decimal.Decimal) (order entity.Order, found bool, err error) {
	q := d.db.WithContext(ctx).Model(&entity.Order{}).
		Where("symbol_id = ?", symbolId).
		Where("side = ?", side).
		Where("status = ?", model.OrderStatusOpen).
		Where("amount = ?", amount) // 只做全额撮合

	if side == model.SideSell {
		// 买单找卖单：卖价 <= 买方限价，取最低卖价
		q = q.Where("price <= ?", priceBound).Order("price ASC, id ASC")
	} else {
		// 卖单找买单：买价 >= 卖方限价，取最高买价
		q = q.Where("price >= ?", priceBound).Order("price DESC, id ASC")
	}

	// mysql下加行锁，两个事务不会同时选中同一张对手单
	// sqlite不支持for update，单测里靠状态守卫兜底
	if d.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	err = q.First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Order{}, false, nil
	}
	if err != nil {
		return entity.Order{}, false, err
	}
	return order, true, nil
}

func (d *orderDao) OrderListOpenBySymbol(ctx context.Context, symbolId int64) (orders []entity.Order, err error) {
	err = d.db.WithContext(ctx).Model(&entity.Order{}).
		Where("symbol_id = ?", symbolId).
		Where("status = ?", model.OrderStatusOpen).
		Order("price DESC, id ASC").
		Find(&orders).Error
	return
}

func (d *orderDao) OrderListByUser(ctx context.Context, userId int64, page, limit int) (total int64, orders []entity.Order, err error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := d.db.WithContext(ctx).Model(&entity.Order{}).
		Where("user_id = ?", userId)
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	return
}
