package router

import (
	"net/http"

	"github.com/Georges999/Car-Parts-Marketplace/internal/config"
	"github.com/Georges999/Car-Parts-Marketplace/internal/handlers"
	"github.com/Georges999/Car-Parts-Marketplace/internal/logger"
	"github.com/Georges999/Car-Parts-Marketplace/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg config.Config, log logger.ILogger) {
	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, log)
	vehicleHandler := handlers.NewVehicleHandler(log)
	partHandler := handlers.NewPartHandler(log)
	reviewHandler := handlers.NewReviewHandler(log)
	savedHandler := handlers.NewSavedPartHandler(log)

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.LoadUser(cfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Car Parts Marketplace API"})
	})

	api := r.Group("/api")

	// 用户 (Users)
	users := api.Group("/users")
	{
		users.POST("/register", authHandler.Register) // 注册
		users.POST("/login", authHandler.Login)       // 登录

		authed := users.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.GET("/profile", authHandler.Profile)       // 个人资料
			authed.PUT("/profile", authHandler.UpdateProfile) // 更新资料
			authed.GET("/saved", savedHandler.List)           // 收藏的配件
		}
	}

	// 车库 (Vehicles) - 全部需要登录，仅车主可见
	vehicles := api.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired())
	{
		vehicles.GET("", vehicleHandler.List)
		vehicles.POST("", vehicleHandler.Create)
		vehicles.GET("/:id", vehicleHandler.Get)
		vehicles.PUT("/:id", vehicleHandler.Update)
		vehicles.DELETE("/:id", vehicleHandler.Delete)
	}

	// 配件 (Parts)
	parts := api.Group("/parts")
	{
		parts.GET("", partHandler.List)                  // 搜索
		parts.GET("/categories", partHandler.Categories) // 类目
		parts.GET("/brands", partHandler.Brands)         // 品牌
		parts.GET("/:id", partHandler.Get)               // 详情
		parts.GET("/:id/compatibility", partHandler.CheckCompatibility)
		parts.GET("/:id/reviews", reviewHandler.ListForPart)

		authed := parts.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.POST("", partHandler.Create)              // 发布，卖家为当前用户
			authed.PUT("/:id", partHandler.Update)           // 仅卖家
			authed.DELETE("/:id", partHandler.Delete)        // 仅卖家
			authed.POST("/:id/save", savedHandler.Toggle)    // 收藏开关
			authed.POST("/:id/reviews", reviewHandler.Add)   // 发表评论
		}
	}

	// 评论 (Reviews)
	reviews := api.Group("/reviews")
	reviews.Use(middleware.AuthRequired())
	{
		reviews.PUT("/:id", reviewHandler.Update)
		reviews.DELETE("/:id", reviewHandler.Delete)
		reviews.PUT("/:id/helpful", reviewHandler.ToggleHelpful)
	}
}
