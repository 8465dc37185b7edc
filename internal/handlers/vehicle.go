package handlers

import (
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
)

type VehicleHandler struct {
	log logger.ILogger
}

func NewVehicleHandler(log logger.ILogger) *VehicleHandler {
	return &VehicleHandler{log: log}
}

type vehicleRequest struct {
	Make          string `json:"make" binding:"required,max=50"`
	Model         string `json:"model" binding:"required,max=50"`
	Year          int    `json:"year" binding:"required"`
	Trim          string `json:"trim" binding:"omitempty,max=50"`
	Engine        string `json:"engine" binding:"omitempty,max=100"`
	Transmission  string `json:"transmission"`
	Modifications string `json:"modifications"`
	Notes         string `json:"notes"`
}

// validate 年份和变速箱的业务校验
func (r *vehicleRequest) validate() []services.FieldError {
	var errs []services.FieldError
	maxYear := time.Now().Year() + 1
	if r.Year < 1900 || r.Year > maxYear {
		errs = append(errs, services.FieldError{
			Field:   "year",
			Message: "must be between 1900 and " + utils.IntToString(maxYear),
		})
	}
	if !models.IsValidTransmission(r.Transmission) {
		errs = append(errs, services.FieldError{
			Field:   "transmission",
			Message: "must be one of: Automatic, Manual, CVT, DCT, Other",
		})
	}
	return errs
}

func (r *vehicleRequest) apply(v *models.Vehicle) {
	v.Make = strings.TrimSpace(r.Make)
	v.Model = strings.TrimSpace(r.Model)
	v.Year = r.Year
	v.Trim = strings.TrimSpace(r.Trim)
	v.Engine = strings.TrimSpace(r.Engine)
	v.Transmission = r.Transmission
	v.Modifications = utils.SanitizeText(r.Modifications)
	v.Notes = utils.SanitizeText(r.Notes)
}

// List - GET /api/vehicles 当前用户的车库
func (h *VehicleHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var vehicles []models.Vehicle
	if err := db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{
		"count": len(vehicles),
		"data":  vehicles,
	})
}

// Create - POST /api/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req vehicleRequest
	if !BindJSON(c, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		FailValidation(c, errs)
		return
	}

	vehicle := models.Vehicle{UserID: user.ID}
	req.apply(&vehicle)

	if err := db.DB.Create(&vehicle).Error; err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusCreated, gin.H{"data": vehicle})
}

// findOwned 取出车辆并做归属检查，车库对外不可见
func (h *VehicleHandler) findOwned(c *gin.Context) (*models.Vehicle, bool) {
	user := middleware.CurrentUser(c)

	var vehicle models.Vehicle
	if err := db.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "Vehicle not found")
		return nil, false
	}

	if vehicle.UserID != user.ID {
		Fail(c, http.StatusForbidden, "Not authorized to access this vehicle")
		return nil, false
	}
	return &vehicle, true
}

// Get - GET /api/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, ok := h.findOwned(c)
	if !ok {
		return
	}
	Respond(c, http.StatusOK, gin.H{"data": vehicle})
}

// Update - PUT /api/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	vehicle, ok := h.findOwned(c)
	if !ok {
		return
	}

	var req vehicleRequest
	if !BindJSON(c, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		FailValidation(c, errs)
		return
	}

	req.apply(vehicle)
	if err := db.DB.Save(vehicle).Error; err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{"data": vehicle})
}

// Delete - DELETE /api/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	vehicle, ok := h.findOwned(c)
	if !ok {
		return
	}

	if err := db.DB.Delete(vehicle).Error; err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{"data": gin.H{}})
}
