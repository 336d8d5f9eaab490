package orgscope

import (
	"net/http"

	"go-salescrm/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingIdentity = apperror.New(
	apperror.CodeUnauthorized,
	"Authenticated identity is missing or malformed",
	http.StatusUnauthorized,
)

// ActorFromContext rebuilds the scoping actor from the claims the auth
// middleware stored on the gin context.
func ActorFromContext(c *gin.Context) (Actor, error) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return Actor{}, errMissingIdentity
	}

	actor := Actor{
		ID:   id,
		Role: c.GetString("role"),
	}

	if deptStr := c.GetString("department_id"); deptStr != "" {
		deptID, err := uuid.Parse(deptStr)
		if err != nil {
			return Actor{}, errMissingIdentity
		}
		actor.DepartmentID = &deptID
	}

	return actor, nil
}
