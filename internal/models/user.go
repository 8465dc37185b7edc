package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Location string `gorm:"size:100" json:"location"`
	Bio      string `gorm:"size:200" json:"bio"` // 个人简介
	// 没有角色字段：任何用户都可以同时是买家和卖家
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
