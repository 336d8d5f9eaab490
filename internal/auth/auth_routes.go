package auth

import (
	"go-salescrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/change-password", middleware.AuthMiddleware(), middleware.RateLimitByUser(1, 3), handler.ChangePassword)
		auth.POST("/logout", handler.Logout)
	}
}
