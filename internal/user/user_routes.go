package user

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
	users := r.Group("/users")

	users.Use(middleware.AuthMiddleware())

	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetAll)
		users.GET("/assignable", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetAssignable)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "create"), h.Create)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetById)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "update"), h.Update)
		users.PATCH("/:id", middleware.RBACAuthorize(rbacService, "user", "update"), h.Update)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, "user", "delete"), h.Delete)
	}
}
