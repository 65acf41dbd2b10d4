package main

import (
	"spotex/conf"
	"spotex/internal/cache"
	"spotex/internal/handler/order"
	"spotex/internal/handler/orderbook"
	"spotex/internal/handler/profile"
	"spotex/internal/handler/user"
	"spotex/internal/notifier"
	"spotex/internal/router"
	"spotex/internal/service"
	pkgcache "spotex/pkg/cache"
	"spotex/pkg/kafka"

	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB) (Router, func()) {
	appCfg := conf.AppConfig

	// 订单簿快照缓存
	bookCache := cache.NewOrderbookCache(pkgcache.GetRedisClient())

	// 簿变更信号：websocket直推 + kafka给下游行情服务
	bookGateway := orderbook.NewGateway()
	notifiers := []notifier.BookNotifier{bookGateway}

	var producer kafka.ProducerService
	if appCfg.Kafka.Broker != "" {
		producer = kafka.NewKafkaProducer(appCfg.Kafka.Broker)
		notifiers = append(notifiers, notifier.NewKafkaNotifier(producer))
	}

	feeRate := service.FeeRateFromConfig()
	matcher := service.NewMatchingService(appCfg.Trading.MatchRetry)

	orderService := service.NewOrderService(db, matcher, notifier.Multi(notifiers...), bookCache, feeRate)
	profileService := service.NewProfileService(db)
	userService := service.NewUserService(db)

	orderHandler := order.NewOrderHandler(orderService)
	profileHandler := profile.NewProfileHandler(profileService)
	userHandler := user.NewUserHandler(userService)

	apiRouter := router.NewApiRouter(orderHandler, profileHandler, userHandler, bookGateway)

	cleanup := func() {
		if producer != nil {
			producer.Close()
		}
	}
	return apiRouter, cleanup
}
