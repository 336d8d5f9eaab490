package commission

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
	commissions := r.Group("/commissions")

	commissions.Use(middleware.AuthMiddleware())

	{
		commissions.GET("", middleware.RBACAuthorize(rbacService, "commission", "read"), h.List)
		commissions.PATCH("/:id", middleware.RBACAuthorize(rbacService, "commission", "update"), h.UpdateAmount)
		commissions.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "commission", "approve"), h.Approve)
		commissions.POST("/:id/pay", middleware.RBACAuthorize(rbacService, "commission", "pay"), h.Pay)
	}
}
