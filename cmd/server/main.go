package main

import (
	"fmt"
	"log"

	"github.com/Georges999/Car-Parts-Marketplace/internal/config"
	"github.com/Georges999/Car-Parts-Marketplace/internal/db"
	"github.com/Georges999/Car-Parts-Marketplace/internal/logger"
	"github.com/Georges999/Car-Parts-Marketplace/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置（含 .env）
	cfg := config.Load()

	lg := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	// Initialize Database
	db.Init(cfg)

	// Initialize Gin
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	router.RegisterRoutes(r, cfg, lg)

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	lg.Info("car parts marketplace API starting", logger.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
