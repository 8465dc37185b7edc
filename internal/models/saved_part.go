package models

import (
	"time"
)

// SavedPart 用户收藏的配件
type SavedPart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_part" json:"userId"`
	PartID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_part;index" json:"partId"`
	Part      Part      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"part"`
	CreatedAt time.Time `json:"createdAt"`
}
