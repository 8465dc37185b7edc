package handlers

import (
	"errors"
	"net/http"

	"github.com/Georges999/Car-Parts-Marketplace/internal/db"
	"github.com/Georges999/Car-Parts-Marketplace/internal/logger"
	"github.com/Georges999/Car-Parts-Marketplace/internal/middleware"
	"github.com/Georges999/Car-Parts-Marketplace/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SavedPartHandler struct {
	log logger.ILogger
}

func NewSavedPartHandler(log logger.ILogger) *SavedPartHandler {
	return &SavedPartHandler{log: log}
}

// Toggle - POST /api/parts/:id/save 收藏/取消收藏
func (h *SavedPartHandler) Toggle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// 检查配件是否存在
	var part models.Part
	if err := db.DB.First(&part, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "Part not found")
		return
	}

	saved := false
	var existing models.SavedPart
	if err := db.DB.Where("user_id = ? AND part_id = ?", user.ID, part.ID).First(&existing).Error; err == nil {
		// 已收藏，取消收藏
		if err := db.DB.Delete(&existing).Error; err != nil {
			MapError(c, h.log, err)
			return
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		// 未收藏，添加收藏；唯一索引兜底并发重复提交
		record := models.SavedPart{UserID: user.ID, PartID: part.ID}
		if err := db.DB.Create(&record).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			MapError(c, h.log, err)
			return
		}
		saved = true
	} else {
		MapError(c, h.log, err)
		return
	}

	// 当前收藏总数
	var count int64
	if err := db.DB.Model(&models.SavedPart{}).Where("part_id = ?", part.ID).Count(&count).Error; err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{
		"data": gin.H{
			"saved": saved,
			"count": count,
		},
	})
}

// List - GET /api/users/saved 当前用户收藏的配件
func (h *SavedPartHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var saved []models.SavedPart
	err := db.DB.Preload("Part").Preload("Part.Seller").
		Preload("Part.Compatibility", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	// 只返回配件本身
	parts := make([]models.Part, 0, len(saved))
	for _, s := range saved {
		parts = append(parts, s.Part)
	}

	Respond(c, http.StatusOK, gin.H{
		"count": len(parts),
		"data":  parts,
	})
}
