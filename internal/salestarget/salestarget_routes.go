package salestarget

import (
	"go-salescrm/internal/middleware"
	"go-salescrm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	targets := r.Group("/sales-targets")
	targets.Use(middleware.AuthMiddleware())
	{
		targets.GET("", middleware.RBACAuthorize(rbacService, "salestarget", "read"), h.List)
		targets.POST("", middleware.RBACAuthorize(rbacService, "salestarget", "create"), h.Upsert)
	}

	stats := r.Group("/stats")
	stats.Use(middleware.AuthMiddleware())
	{
		stats.GET("/team", middleware.RBACAuthorize(rbacService, "salestarget", "read"), h.TeamStats)
	}
}
