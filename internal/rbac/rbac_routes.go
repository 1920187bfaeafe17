package rbac

import (
	"go-gym/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	rbacGroup := r.Group("/rbac")
	rbacGroup.Use(middleware.AuthMiddleware())
	{
		rbacGroup.GET("/capabilities",
			middleware.RoleMiddleware(string(RoleOwner), string(RoleStaff)),
			h.Capabilities,
		)
	}
}
