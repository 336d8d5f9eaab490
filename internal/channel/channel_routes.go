package channel

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
	channels := r.Group("/channels")

	channels.Use(middleware.AuthMiddleware())

	{
		channels.GET("", middleware.RBACAuthorize(rbacService, "channel", "read"), h.GetAll)
		channels.POST("", middleware.RBACAuthorize(rbacService, "channel", "create"), h.Create)
		channels.GET("/:id", middleware.RBACAuthorize(rbacService, "channel", "read"), h.GetById)
		channels.PATCH("/:id", middleware.RBACAuthorize(rbacService, "channel", "update"), h.Update)
		channels.DELETE("/:id", middleware.RBACAuthorize(rbacService, "channel", "delete"), h.Delete)
	}
}
