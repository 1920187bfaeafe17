package staff

import (
	"go-gym/internal/middleware"
	"go-gym/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	staffGroup := r.Group("/staff")
	staffGroup.Use(middleware.AuthMiddleware())
	{
		staffGroup.GET("", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetAll)
		staffGroup.GET("/:id", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetById)
		staffGroup.POST("", middleware.RBACAuthorize(rbacService, "staff", "create"), handler.Create)
		staffGroup.PUT("/:id", middleware.RBACAuthorize(rbacService, "staff", "update"), handler.Update)
		staffGroup.DELETE("/:id", middleware.RBACAuthorize(rbacService, "staff", "delete"), handler.Delete)
	}
}
