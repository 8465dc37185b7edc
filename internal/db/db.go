package db

import (
	"log"

	"github.com/Georges999/Car-Parts-Marketplace/internal/config"
	"github.com/Georges999/Car-Parts-Marketplace/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg config.Config) {
	var err error
	// TranslateError 让唯一约束冲突统一变成 gorm.ErrDuplicatedKey，
	// 评论去重和 partNumber 唯一性都依赖这一点
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Part{},
		&models.CompatibilityRule{},
		&models.Review{},
		&models.ReviewHelpfulVote{},
		&models.SavedPart{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}
