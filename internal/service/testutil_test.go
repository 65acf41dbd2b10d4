package service

import (
	"context"
	"strconv"
	"testing"

	"spotex/internal/dao/query"
	"spotex/internal/model/entity"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 单测用内存sqlite，单连接保证savepoint和内存库可见性
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Symbol{},
		&entity.Order{},
		&entity.Trade{},
		&entity.Asset{},
	))
	return db
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedUser(t *testing.T, db *gorm.DB, email string, balance decimal.Decimal) entity.User {
	t.Helper()
	user := entity.User{
		Email:    email,
		Nickname: email,
		Password: "x",
		Balance:  balance,
	}
	require.NoError(t, query.NewUserDao(db).UserCreateNew(context.Background(), &user))
	return user
}

func seedSymbol(t *testing.T, db *gorm.DB, name string) entity.Symbol {
	t.Helper()
	symbol := entity.Symbol{Name: name, Status: 1}
	require.NoError(t, query.NewSymbolDao(db).SymbolCreateNew(context.Background(), &symbol))
	return symbol
}

func seedAsset(t *testing.T, db *gorm.DB, userId, symbolId int64, amount decimal.Decimal) {
	t.Helper()
	require.NoError(t, query.NewLedgerDao(db).AssetCredit(context.Background(), userId, symbolId, amount))
}

func newTestOrderService(db *gorm.DB) *orderService {
	matcher := NewMatchingService(3)
	return NewOrderService(db, matcher, nil, nil, DefaultFeeRate)
}

func balanceOf(t *testing.T, db *gorm.DB, userId int64) decimal.Decimal {
	t.Helper()
	balance, err := query.NewLedgerDao(db).BalanceGet(context.Background(), userId)
	require.NoError(t, err)
	return balance
}

func assetOf(t *testing.T, db *gorm.DB, userId, symbolId int64) entity.Asset {
	t.Helper()
	var asset entity.Asset
	err := db.Where("user_id = ? AND symbol_id = ?", userId, symbolId).First(&asset).Error
	require.NoError(t, err)
	return asset
}

func orderOf(t *testing.T, db *gorm.DB, orderId int64) entity.Order {
	t.Helper()
	order, err := query.NewOrderDao(db).OrderGetById(context.Background(), orderId)
	require.NoError(t, err)
	return order
}

func mustParseId(t *testing.T, raw string) int64 {
	t.Helper()
	id, err := strconv.ParseInt(raw, 10, 64)
	require.NoError(t, err)
	return id
}

// requireDecimal 按数值比较，避免小数位数差异导致误报
func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(d(want)), "want %s, got %s", want, got)
}
