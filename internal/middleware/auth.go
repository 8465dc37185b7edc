package middleware

import (
	"net/http"
	"strings"

	"github.com/Georges999/Car-Parts-Marketplace/internal/config"
	"github.com/Georges999/Car-Parts-Marketplace/internal/db"
	"github.com/Georges999/Car-Parts-Marketplace/internal/models"
	"github.com/Georges999/Car-Parts-Marketplace/internal/services"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser 尝试从 Authorization 头解析 bearer token 并加载当前用户。
// 解析失败不报错，公开接口也能拿到"可能存在"的当前用户。
func LoadUser(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token != "" {
			if userID, err := services.ParseToken(cfg, token); err == nil {
				var user models.User
				if result := db.DB.First(&user, userID); result.Error == nil {
					c.Set(CheckUserKey, &user)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is authenticated
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized to access this route",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文取当前用户，AuthRequired 保证存在
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(CheckUserKey).(*models.User)
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
