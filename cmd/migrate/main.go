package main

import (
	"context"
	"flag"
	"log"

	"spotex/conf"
	"spotex/internal/dao/query"
	"spotex/internal/model/entity"
	"spotex/pkg/db"
	"spotex/pkg/idgen"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 建表 + 基础数据，开发环境使用
// 生产环境的schema变更走独立的迁移流程，不在核心服务里做

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	seedTest := flag.Bool("seed-test", false, "是否写入测试用户和持仓")
	flag.Parse()

	if err := conf.LoadConfig(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig

	if err := idgen.Init(1); err != nil {
		log.Fatalf("init id generator error: %v", err)
	}

	datasource := db.Init(db.Config{
		User:      appCfg.Db.Username,
		Password:  appCfg.Db.Password,
		Host:      appCfg.Db.Host,
		Port:      appCfg.Db.Port,
		DBName:    appCfg.Db.DbName,
		ParseTime: true,
	})

	if err := datasource.AutoMigrate(
		&entity.User{},
		&entity.Symbol{},
		&entity.Order{},
		&entity.Trade{},
		&entity.Asset{},
	); err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	log.Println("migrate done")

	ctx := context.Background()
	seedSymbols(ctx, datasource)

	if *seedTest {
		seedTestData(ctx, datasource)
	}
}

func seedSymbols(ctx context.Context, datasource *gorm.DB) {
	sd := query.NewSymbolDao(datasource)
	for _, name := range []string{"BTC", "ETH"} {
		// 按名字查，下架的也算存在，不能重建
		var count int64
		if err := datasource.WithContext(ctx).Model(&entity.Symbol{}).
			Where("name = ?", name).Count(&count).Error; err != nil {
			log.Fatalf("seed symbol %s error: %v", name, err)
		}
		if count > 0 {
			continue
		}
		if err := sd.SymbolCreateNew(ctx, &entity.Symbol{Name: name, Status: 1}); err != nil {
			log.Fatalf("seed symbol %s error: %v", name, err)
		}
		log.Printf("symbol %s created", name)
	}
}

// 两个测试用户，各10万USD，外加一些BTC/ETH持仓
func seedTestData(ctx context.Context, datasource *gorm.DB) {
	ud := query.NewUserDao(datasource)
	ld := query.NewLedgerDao(datasource)
	sd := query.NewSymbolDao(datasource)

	for _, email := range []string{"u1@example.com", "u2@example.com"} {
		if _, err := ud.UserGetByEmail(ctx, email); err == nil {
			continue
		}
		hashed, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)
		user := entity.User{
			Email:    email,
			Nickname: email,
			Password: string(hashed),
			Balance:  decimal.NewFromInt(100000),
		}
		if err := ud.UserCreateNew(ctx, &user); err != nil {
			log.Fatalf("seed user %s error: %v", email, err)
		}

		for name, amount := range map[string]int64{"BTC": 10, "ETH": 100} {
			symbol, err := sd.SymbolGetByName(ctx, name)
			if err != nil {
				log.Fatalf("symbol %s not found: %v", name, err)
			}
			if err := ld.AssetCredit(ctx, user.Id, symbol.Id, decimal.NewFromInt(amount)); err != nil {
				log.Fatalf("seed asset error: %v", err)
			}
		}
		log.Printf("test user %s created", email)
	}
}
