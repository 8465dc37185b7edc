package models

import (
	"time"
)

// Transmission 的合法取值（允许为空）
var ValidTransmissions = []string{"Automatic", "Manual", "CVT", "DCT", "Other", ""}

type Vehicle struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	User          User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Make          string    `gorm:"not null;size:50" json:"make"`
	Model         string    `gorm:"not null;size:50" json:"model"`
	Year          int       `gorm:"not null" json:"year"` // 1900..明年，入库前校验
	Trim          string    `gorm:"size:50" json:"trim"`
	Engine        string    `gorm:"size:100" json:"engine"`
	Transmission  string    `gorm:"size:20" json:"transmission"`
	Modifications string    `gorm:"type:text" json:"modifications"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsValidTransmission 检查变速箱类型是否合法
func IsValidTransmission(t string) bool {
	for _, v := range ValidTransmissions {
		if t == v {
			return true
		}
	}
	return false
}
