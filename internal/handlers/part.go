package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Georges999/Car-Parts-Marketplace/internal/db"
	"github.com/Georges999/Car-Parts-Marketplace/internal/logger"
	"github.com/Georges999/Car-Parts-Marketplace/internal/middleware"
	"github.com/Georges999/Car-Parts-Marketplace/internal/models"
	"github.com/Georges999/Car-Parts-Marketplace/internal/services"
	"github.com/Georges999/Car-Parts-Marketplace/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	categoriesCacheKey = "parts:categories"
	brandsCacheKey     = "parts:brands"
	lookupCacheTTL     = 5 * time.Minute
)

type PartHandler struct {
	log logger.ILogger
}

func NewPartHandler(log logger.ILogger) *PartHandler {
	return &PartHandler{log: log}
}

// parseSearchQuery 防御性解析搜索参数：
// 数字参数解析失败一律回退默认值，绝不让坏分页参数打挂整个请求
func parseSearchQuery(c *gin.Context) services.PartSearch {
	q := services.PartSearch{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Brand:       c.Query("brand"),
		Search:      c.Query("search"),
		Make:        c.Query("make"),
		Model:       c.Query("model"),
		Year:        utils.StringToInt(c.Query("year")),
		Page:        utils.StringToInt(c.DefaultQuery("page", "1")),
		Limit:       utils.StringToInt(c.DefaultQuery("limit", "20")),
	}

	if v := c.Query("inStock"); v != "" {
		inStock := v == "true"
		q.InStock = &inStock
	}
	if v := c.Query("minPrice"); v != "" {
		price := utils.StringToFloat(v)
		q.MinPrice = &price
	}
	if v := c.Query("maxPrice"); v != "" {
		price := utils.StringToFloat(v)
		q.MaxPrice = &price
	}

	return q
}

// List - GET /api/parts 搜索配件
func (h *PartHandler) List(c *gin.Context) {
	q := parseSearchQuery(c)

	parts, _, pagination, err := services.SearchParts(db.DB, q)
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{
		"count":      len(parts),
		"pagination": pagination,
		"data":       parts,
	})
}

// Get - GET /api/parts/:id 配件详情
// 带 make/model/year（或 vehicleId）参数时附带适配结论
func (h *PartHandler) Get(c *gin.Context) {
	var part models.Part
	err := db.DB.Preload("Seller").
		Preload("Compatibility", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&part, c.Param("id")).Error
	if err != nil {
		Fail(c, http.StatusNotFound, "Part not found")
		return
	}

	part.DescriptionHTML = utils.RenderMarkdown(part.Description)

	reviews, err := services.ListReviews(part.ID)
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	payload := gin.H{
		"data":    part,
		"reviews": reviews,
	}

	if descriptor, ok := h.fitDescriptor(c); ok {
		payload["fit"] = services.CheckFit(part.Compatibility, descriptor)
	}

	Respond(c, http.StatusOK, payload)
}

// CheckCompatibility - GET /api/parts/:id/compatibility
func (h *PartHandler) CheckCompatibility(c *gin.Context) {
	var part models.Part
	err := db.DB.Preload("Compatibility", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(&part, c.Param("id")).Error
	if err != nil {
		Fail(c, http.StatusNotFound, "Part not found")
		return
	}

	// 描述不完整时 CheckFit 自己会给出 needs-verification
	descriptor, _ := h.fitDescriptor(c)
	Respond(c, http.StatusOK, gin.H{"data": services.CheckFit(part.Compatibility, descriptor)})
}

// fitDescriptor 从查询参数或 vehicleId 构造车辆描述
func (h *PartHandler) fitDescriptor(c *gin.Context) (services.VehicleDescriptor, bool) {
	// 登录用户可以直接用车库里的车
	if vehicleID := utils.StringToInt(c.Query("vehicleId")); vehicleID > 0 {
		if u, exists := c.Get(middleware.CheckUserKey); exists {
			user := u.(*models.User)
			var vehicle models.Vehicle
			if err := db.DB.First(&vehicle, vehicleID).Error; err == nil && vehicle.UserID == user.ID {
				return services.DescriptorFromVehicle(&vehicle), true
			}
		}
		return services.VehicleDescriptor{}, true
	}

	vehicleMake := c.Query("make")
	vehicleModel := c.Query("model")
	year := utils.StringToInt(c.Query("year"))
	if vehicleMake == "" && vehicleModel == "" && year == 0 {
		return services.VehicleDescriptor{}, false
	}
	return services.VehicleDescriptor{
		Make:   vehicleMake,
		Model:  vehicleModel,
		Year:   year,
		Trim:   c.Query("trim"),
		Engine: c.Query("engine"),
	}, true
}

type compatRuleRequest struct {
	Make      string `json:"make" binding:"required,max=50"`
	Model     string `json:"model" binding:"required,max=50"`
	YearStart int    `json:"yearStart" binding:"required"`
	YearEnd   int    `json:"yearEnd" binding:"required"`
	Trim      string `json:"trim" binding:"omitempty,max=50"`
	Engine    string `json:"engine" binding:"omitempty,max=100"`
}

type partRequest struct {
	Name           string              `json:"name" binding:"required"`
	Description    string              `json:"description" binding:"required"`
	Category       string              `json:"category" binding:"required,max=50"`
	Subcategory    string              `json:"subcategory" binding:"omitempty,max=50"`
	Brand          string              `json:"brand" binding:"required,max=50"`
	PartNumber     string              `json:"partNumber" binding:"required,max=64"`
	Price          *float64            `json:"price" binding:"required,gte=0"`
	RetailPrice    *float64            `json:"retailPrice" binding:"omitempty,gte=0"`
	Images         []string            `json:"images"`
	Specifications map[string]string   `json:"specifications"`
	Weight         models.Weight       `json:"weight"`
	Dimensions     models.Dimensions   `json:"dimensions"`
	InStock        *bool               `json:"inStock"`
	StockQuantity  int                 `json:"stockQuantity" binding:"gte=0"`
	Compatibility  []compatRuleRequest `json:"compatibility"`
}

// validate 适配规则与单位的业务校验
func (r *partRequest) validate() []services.FieldError {
	var errs []services.FieldError

	if r.Weight.Unit != "" && r.Weight.Unit != "kg" && r.Weight.Unit != "lbs" {
		errs = append(errs, services.FieldError{Field: "weight.unit", Message: "must be kg or lbs"})
	}
	if r.Dimensions.Unit != "" && r.Dimensions.Unit != "in" && r.Dimensions.Unit != "cm" {
		errs = append(errs, services.FieldError{Field: "dimensions.unit", Message: "must be in or cm"})
	}

	for i, rule := range r.Compatibility {
		if rule.YearStart > rule.YearEnd {
			// 写入侧拒绝倒序年份区间，匹配侧假定区间合法
			errs = append(errs, services.FieldError{
				Field:   "compatibility[" + utils.IntToString(i) + "]",
				Message: "yearStart must not be greater than yearEnd",
			})
		}
		if rule.YearStart < 1900 {
			errs = append(errs, services.FieldError{
				Field:   "compatibility[" + utils.IntToString(i) + "]",
				Message: "yearStart must be 1900 or later",
			})
		}
	}

	return errs
}

// rules 构造按填写顺序排好 Position 的规则列表，字段去掉首尾空白
func (r *partRequest) rules() []models.CompatibilityRule {
	out := make([]models.CompatibilityRule, 0, len(r.Compatibility))
	for i, rule := range r.Compatibility {
		out = append(out, models.CompatibilityRule{
			Position:  i,
			Make:      strings.TrimSpace(rule.Make),
			Model:     strings.TrimSpace(rule.Model),
			YearStart: rule.YearStart,
			YearEnd:   rule.YearEnd,
			Trim:      strings.TrimSpace(rule.Trim),
			Engine:    strings.TrimSpace(rule.Engine),
		})
	}
	return out
}

func (r *partRequest) apply(p *models.Part) {
	p.Name = strings.TrimSpace(r.Name)
	p.Description = r.Description
	p.Category = strings.TrimSpace(r.Category)
	p.Subcategory = strings.TrimSpace(r.Subcategory)
	p.Brand = strings.TrimSpace(r.Brand)
	p.PartNumber = strings.TrimSpace(r.PartNumber)
	p.Price = *r.Price
	p.RetailPrice = r.RetailPrice
	p.Images = r.Images
	p.Specifications = r.Specifications
	p.Weight = r.Weight
	p.Dimensions = r.Dimensions
	p.StockQuantity = r.StockQuantity
	if r.InStock != nil {
		p.InStock = *r.InStock
	} else {
		p.InStock = r.StockQuantity > 0
	}
}

// Create - POST /api/parts 当前用户作为卖家发布配件
func (h *PartHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req partRequest
	if !BindJSON(c, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		FailValidation(c, errs)
		return
	}

	part := models.Part{SellerID: user.ID}
	req.apply(&part)
	part.Compatibility = req.rules()

	if err := db.DB.Create(&part).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			FailValidation(c, []services.FieldError{{Field: "partNumber", Message: "is already in use"}})
			return
		}
		MapError(c, h.log, err)
		return
	}

	h.invalidateLookupCache()

	db.DB.Preload("Seller").Preload("Compatibility", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(&part, part.ID)

	Respond(c, http.StatusCreated, gin.H{"data": part})
}

// findOwnedPart 取出配件并检查当前用户是否为卖家
func (h *PartHandler) findOwnedPart(c *gin.Context) (*models.Part, bool) {
	user := middleware.CurrentUser(c)

	var part models.Part
	if err := db.DB.First(&part, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "Part not found")
		return nil, false
	}

	if part.SellerID != user.ID {
		Fail(c, http.StatusForbidden, "Not authorized to modify this part")
		return nil, false
	}
	return &part, true
}

// Update - PUT /api/parts/:id 仅卖家本人
func (h *PartHandler) Update(c *gin.Context) {
	part, ok := h.findOwnedPart(c)
	if !ok {
		return
	}

	var req partRequest
	if !BindJSON(c, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		FailValidation(c, errs)
		return
	}

	req.apply(part)
	rules := req.rules()
	for i := range rules {
		rules[i].PartID = part.ID
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 整体替换适配规则，保持请求里的顺序
		if err := tx.Where("part_id = ?", part.ID).Delete(&models.CompatibilityRule{}).Error; err != nil {
			return err
		}
		if len(rules) > 0 {
			if err := tx.Create(&rules).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Compatibility").Save(part).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			FailValidation(c, []services.FieldError{{Field: "partNumber", Message: "is already in use"}})
			return
		}
		MapError(c, h.log, err)
		return
	}

	h.invalidateLookupCache()

	db.DB.Preload("Seller").Preload("Compatibility", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(part, part.ID)

	Respond(c, http.StatusOK, gin.H{"data": part})
}

// Delete - DELETE /api/parts/:id 仅卖家本人
func (h *PartHandler) Delete(c *gin.Context) {
	part, ok := h.findOwnedPart(c)
	if !ok {
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ?", part.ID).Delete(&models.CompatibilityRule{}).Error; err != nil {
			return err
		}
		return tx.Delete(part).Error
	})
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	h.invalidateLookupCache()

	Respond(c, http.StatusOK, gin.H{"data": gin.H{}})
}

// Categories - GET /api/parts/categories distinct 类目列表
func (h *PartHandler) Categories(c *gin.Context) {
	h.distinctLookup(c, categoriesCacheKey, "category")
}

// Brands - GET /api/parts/brands distinct 品牌列表
func (h *PartHandler) Brands(c *gin.Context) {
	h.distinctLookup(c, brandsCacheKey, "brand")
}

func (h *PartHandler) distinctLookup(c *gin.Context, cacheKey, column string) {
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if values, ok := cached.([]string); ok {
			Respond(c, http.StatusOK, gin.H{"data": values})
			return
		}
	}

	var values []string
	err := db.DB.Model(&models.Part{}).
		Distinct().
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	utils.GetCache().Set(cacheKey, values, lookupCacheTTL)
	Respond(c, http.StatusOK, gin.H{"data": values})
}

// invalidateLookupCache 配件变更后主动失效 distinct 查询缓存
func (h *PartHandler) invalidateLookupCache() {
	utils.GetCache().Delete(categoriesCacheKey)
	utils.GetCache().Delete(brandsCacheKey)
}
