package middleware

import (
	"net/http"

	"go-salescrm/internal/shared/apperror"
	"go-salescrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is declared locally so this package does not import the rbac
// package; rbac.Service satisfies it structurally.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

// RBACAuthorize checks the caller's role against one resource/action pair.
// Runs after AuthMiddleware, which stores the role claim on the context.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized,
				"Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError,
				"Permission check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}

		c.Next()
	}
}
