package middleware

import (
	"net/http"

	"go-salescrm/internal/shared/apperror"
	"go-salescrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID re-checks the user_id claim and republishes it under
// user_id_validated, the key keyed middlewares (idempotency) trust.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized,
				"User is not authenticated", nil)
			c.Abort()
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
