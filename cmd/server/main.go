package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hazypayback/internal/config"
	"github.com/hazypayback/internal/db"
	"github.com/hazypayback/internal/handler"
	"github.com/hazypayback/internal/router"
	"github.com/robfig/cron"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 确保所有者账号存在
	if err := db.EnsureOwner(cfg.OwnerUserName, cfg.OwnerPassword); err != nil {
		log.Fatalf("failed to ensure owner account: %v", err)
	}

	api := handler.NewAPI(db.DB)

	// 启动时补建今天的空打卡记录
	if err := api.Ledger().EnsureTodayCheck(); err != nil {
		log.Printf("failed to ensure today check: %v", err)
	}

	// 每日 00:05 轮转：跨过午夜后，昨天脱离「今天豁免」规则，
	// 可能以被动休肝身份接上连续日数，需要重算昨天以来的奖励入账。
	scheduler := cron.New()
	if err := scheduler.AddFunc("0 5 0 * * *", func() {
		if err := api.Ledger().EnsureTodayCheck(); err != nil {
			log.Printf("daily rollover: ensure today check: %v", err)
		}
		yesterday := time.Now().AddDate(0, 0, -1)
		if _, err := api.Recalc().RecalcFrom(yesterday); err != nil {
			log.Printf("daily rollover: recalc: %v", err)
		}
	}); err != nil {
		log.Fatalf("failed to schedule daily rollover: %v", err)
	}
	scheduler.Start()

	// 设置并运行 Gin 服务器
	r := router.Setup(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
