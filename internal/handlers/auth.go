package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Georges999/Car-Parts-Marketplace/internal/config"
	"github.com/Georges999/Car-Parts-Marketplace/internal/db"
	"github.com/Georges999/Car-Parts-Marketplace/internal/logger"
	"github.com/Georges999/Car-Parts-Marketplace/internal/middleware"
	"github.com/Georges999/Car-Parts-Marketplace/internal/models"
	"github.com/Georges999/Car-Parts-Marketplace/internal/services"
	"github.com/Georges999/Car-Parts-Marketplace/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	cfg config.Config
	log logger.ILogger
}

func NewAuthHandler(cfg config.Config, log logger.ILogger) *AuthHandler {
	return &AuthHandler{cfg: cfg, log: log}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register - POST /api/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSON(c, &req) {
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 邮箱唯一索引冲突
			FailValidation(c, []services.FieldError{{Field: "email", Message: "is already registered"}})
			return
		}
		MapError(c, h.log, err)
		return
	}

	token, _, err := services.GenerateToken(h.cfg, user.ID)
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	h.log.Info("user registered", logger.Uint("user_id", user.ID))
	Respond(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login - POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSON(c, &req) {
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		// 不区分"用户不存在"和"密码错误"
		Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := services.GenerateToken(h.cfg, user.ID)
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Profile - GET /api/users/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	Respond(c, http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Location string `json:"location" binding:"omitempty,max=100"`
	Bio      string `json:"bio" binding:"omitempty,max=200"`
}

// UpdateProfile - PUT /api/users/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateProfileRequest
	if !BindJSON(c, &req) {
		return
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			MapError(c, h.log, err)
			return
		}
		user.Password = hash
	}

	if err := db.DB.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			FailValidation(c, []services.FieldError{{Field: "email", Message: "is already registered"}})
			return
		}
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{"user": user})
}
