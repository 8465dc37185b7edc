package services

import (
	"strings"

	"github.com/Georges999/Car-Parts-Marketplace/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PartSearch 配件搜索请求。所有字段可选；
// Make/Model/Year 三者齐全时才启用按车筛选。
type PartSearch struct {
	Category    string
	Subcategory string
	Brand       string
	InStock     *bool
	Search      string
	Make        string
	Model       string
	Year        int
	MinPrice    *float64
	MaxPrice    *float64
	Page        int
	Limit       int
}

// PageRef 翻页游标
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination next/prev 只在存在对应页时出现
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Normalize 把非法的分页参数打回默认值，绝不因坏参数失败
func (q *PartSearch) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	q.Search = strings.TrimSpace(q.Search)
}

// BuildPagination 按 startIndex = (page-1)*limit 公式计算翻页信息，
// next 当且仅当 startIndex+limit < total，prev 当且仅当 startIndex > 0
func BuildPagination(page, limit int, total int64) Pagination {
	startIndex := (page - 1) * limit
	endIndex := page * limit

	p := Pagination{}
	if int64(endIndex) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if startIndex > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// applyFilters 组装除分页外的所有查询条件
func applyFilters(tx *gorm.DB, q PartSearch) *gorm.DB {
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Subcategory != "" {
		tx = tx.Where("subcategory = ?", q.Subcategory)
	}
	if q.Brand != "" {
		tx = tx.Where("brand = ?", q.Brand)
	}
	if q.InStock != nil {
		tx = tx.Where("in_stock = ?", *q.InStock)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	// 按车筛选：保留至少有一条规则命中车辆的配件，
	// 没有任何规则的配件是通用件，同样保留
	if q.Make != "" && q.Model != "" && q.Year > 0 {
		tx = tx.Where(`NOT EXISTS (
			SELECT 1 FROM compatibility_rules r WHERE r.part_id = parts.id
		) OR EXISTS (
			SELECT 1 FROM compatibility_rules r WHERE r.part_id = parts.id
			AND r.make = ? AND r.model = ?
			AND r.year_start <= ? AND r.year_end >= ?
		)`, q.Make, q.Model, q.Year, q.Year)
	}

	return tx
}

// SearchParts 执行搜索并返回当前页数据、过滤后的总数和翻页信息。
// 结果按 id 升序（即创建顺序），保证重复翻页的稳定性。
func SearchParts(db *gorm.DB, q PartSearch) ([]models.Part, int64, Pagination, error) {
	q.Normalize()

	base := applyFilters(db.Model(&models.Part{}), q)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, Pagination{}, err
	}

	offset := (q.Page - 1) * q.Limit

	var parts []models.Part
	err := applyFilters(db.Model(&models.Part{}), q).
		Preload("Seller").
		Preload("Compatibility", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Order("id ASC").
		Offset(offset).
		Limit(q.Limit).
		Find(&parts).Error
	if err != nil {
		return nil, 0, Pagination{}, err
	}

	return parts, total, BuildPagination(q.Page, q.Limit, total), nil
}
