package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	autherrors "go-salescrm/internal/auth/errors"
	"go-salescrm/internal/shared/apperror"
	"go-salescrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, message, nil)
	c.Abort()
}

// tokenFromRequest prefers the Authorization header, then falls back to the
// access_token cookie set at login.
func tokenFromRequest(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware validates the bearer token and copies the identity claims
// (user_id, role, department_id) into the gin context for the scope
// resolver and RBAC layer downstream.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			abortUnauthorized(c, "Token not found")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, autherrors.ErrInvalidToken
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			authErr := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				authErr = autherrors.ErrTokenExpired
			}
			response.Error(c, authErr.HTTPStatus, authErr.Code, authErr.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || role == "" {
			abortUnauthorized(c, "Identity claims missing from token")
			return
		}

		// department_id is optional: not every user belongs to a department.
		departmentID, _ := claims["department_id"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("department_id", departmentID)

		c.Next()
	}
}

// RoleMiddleware gates a route to an explicit role list. Most routes go
// through RBACAuthorize instead; this exists for spots where a resource
// catalog entry would be overkill.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		forbidden := autherrors.ErrForbidden
		response.Error(c, forbidden.HTTPStatus, forbidden.Code, forbidden.Message, nil)
		c.Abort()
	}
}
