package customer

import (
	"go-salescrm/internal/middleware"
	"go-salescrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("", middleware.RBACAuthorize(rbacService, "customer", "read"), handler.GetAll)
		customers.GET("/:id", middleware.RBACAuthorize(rbacService, "customer", "read"), handler.GetById)
		customers.POST("", middleware.RBACAuthorize(rbacService, "customer", "create"), handler.Create)
		customers.PUT("/:id", middleware.RBACAuthorize(rbacService, "customer", "update"), handler.Update)
		if redisClient != nil {
			customers.POST(
				"/:id/sale-logs",
				middleware.ExtractUserID(),
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "customer", "update"),
				handler.AddSaleLog,
			)
		} else {
			customers.POST("/:id/sale-logs", middleware.RBACAuthorize(rbacService, "customer", "update"), handler.AddSaleLog)
		}
	}
}
