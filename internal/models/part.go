package models

import (
	"time"
)

// Weight 重量，单位 kg 或 lbs
type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // kg / lbs
}

// Dimensions 外形尺寸，单位 in 或 cm
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"` // in / cm
}

type Part struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	SellerID       uint              `gorm:"not null;index" json:"sellerId"`
	Seller         User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seller"`
	Name           string            `gorm:"not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"` // Markdown 原文
	Category       string            `gorm:"not null;size:50;index" json:"category"`
	Subcategory    string            `gorm:"size:50" json:"subcategory"`
	Brand          string            `gorm:"not null;size:50;index" json:"brand"`
	PartNumber     string            `gorm:"uniqueIndex;not null;size:64" json:"partNumber"`
	Price          float64           `gorm:"not null" json:"price"`
	RetailPrice    *float64          `json:"retailPrice,omitempty"`
	Images         []string          `gorm:"serializer:json;type:jsonb" json:"images"`
	Specifications map[string]string `gorm:"serializer:json;type:jsonb" json:"specifications"`
	Weight         Weight            `gorm:"serializer:json;type:jsonb" json:"weight"`
	Dimensions     Dimensions        `gorm:"serializer:json;type:jsonb" json:"dimensions"`
	InStock        bool              `gorm:"default:true" json:"inStock"`
	StockQuantity  int               `gorm:"default:0" json:"stockQuantity"`
	// 适配规则按 Position 排序，规则顺序即卖家填写顺序
	Compatibility []CompatibilityRule `gorm:"foreignKey:PartID" json:"compatibility"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`

	// 非数据库字段，详情接口填充
	DescriptionHTML string `gorm:"-" json:"descriptionHtml,omitempty"`
}

// CompatibilityRule 声明某个配件适配哪些车型
// yearStart <= yearEnd 在写入时校验
type CompatibilityRule struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	PartID    uint   `gorm:"not null;index" json:"-"`
	Position  int    `gorm:"not null;default:0" json:"-"`
	Make      string `gorm:"not null;size:50" json:"make"`
	Model     string `gorm:"not null;size:50" json:"model"`
	YearStart int    `gorm:"not null" json:"yearStart"`
	YearEnd   int    `gorm:"not null" json:"yearEnd"`
	Trim      string `gorm:"size:50" json:"trim,omitempty"`
	Engine    string `gorm:"size:100" json:"engine,omitempty"`
}
