package models

import (
	"time"
)

type Review struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_review_user_part" json:"userId"`
	User      User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PartID    uint     `gorm:"not null;uniqueIndex:idx_review_user_part;index" json:"partId"`
	Part      Part     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	VehicleID *uint    `gorm:"index" json:"vehicleId,omitempty"`
	Vehicle   *Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle,omitempty"`
	Rating    int      `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title     string   `gorm:"not null" json:"title"`
	Comment   string   `gorm:"type:text;not null" json:"comment"`
	// Verified 表示评论关联了作者本人的车辆
	Verified bool `gorm:"default:false" json:"verified"`
	// HelpfulCount 为派生值，只在 toggle 事务里按 COUNT 重算
	HelpfulCount int       `gorm:"default:0" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// 非数据库字段，列表接口填充
	Helpful HelpfulInfo `gorm:"-" json:"helpful"`
}

// HelpfulInfo 有用票聚合，count 恒等于 users 的数量
type HelpfulInfo struct {
	Count int    `json:"count"`
	Users []uint `json:"users"`
}

// ReviewHelpfulVote 每个用户对每条评论至多一票
// 唯一索引让并发 toggle 不会重复计票
type ReviewHelpfulVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_helpful_review_user" json:"reviewId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_helpful_review_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
