package main

import (
	"flag"
	"log"

	"spotex/conf"
	"spotex/pkg/cache"
	"spotex/pkg/db"
	"spotex/pkg/idgen"
	"spotex/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	nodeId := flag.Int64("node", 1, "雪花id节点，多实例部署时必须互不相同")
	flag.Parse()

	// 加载配置文件
	if err := conf.LoadConfig(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig

	logger.InitLogger(&appCfg.Log, appCfg.AppName)

	if err := idgen.Init(*nodeId); err != nil {
		logger.Fatalf("init id generator error: %v", err)
	}

	// 初始化数据库
	datasource := db.Init(db.Config{
		User:      appCfg.Db.Username,
		Password:  appCfg.Db.Password,
		Host:      appCfg.Db.Host,
		Port:      appCfg.Db.Port,
		DBName:    appCfg.Db.DbName,
		ParseTime: true,
	})

	cache.InitRedis(appCfg.Redis)
	defer cache.CloseRedis()

	apiRouter, cleanup := InitRouter(datasource)

	server := NewServer(&appCfg)
	server.RegisterOnShutdown(cleanup)
	server.Run(apiRouter)
}
