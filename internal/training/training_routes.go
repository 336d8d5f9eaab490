package training

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
	trainings := r.Group("/trainings")
	trainings.Use(middleware.AuthMiddleware())
	{
		trainings.GET("", middleware.RBACAuthorize(rbacService, "training", "read"), h.List)
		trainings.PATCH("/:id/assign", middleware.RBACAuthorize(rbacService, "training", "create"), h.Assign)
		trainings.POST("/:id/logs", middleware.RBACAuthorize(rbacService, "training", "update"), h.SubmitLog)
	}

	logs := r.Group("/training-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.PATCH("/:logId/approve", middleware.RBACAuthorize(rbacService, "training", "approve"), h.ApproveLog)
	}
}
