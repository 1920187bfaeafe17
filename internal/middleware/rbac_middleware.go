package middleware

import (
	"net/http"

	"go-gym/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContextKey string

const (
	ContextGymID ContextKey = "gym_id"
	ContextRole  ContextKey = "role"
)

// RBACService is a local interface so this package does not depend on the
// rbac package directly.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok1 := c.Get(string(ContextRole))
		gymID, ok2 := c.Get(string(ContextGymID))

		if !ok1 || !ok2 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		req := domain.EnforceRequest{
			Role:     role.(string),
			GymID:    gymID.(string),
			Resource: resource,
			Action:   action,
		}

		allowed, err := service.Enforce(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
