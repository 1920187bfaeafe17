package member

import (
	"go-gym/internal/middleware"
	"go-gym/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	members := r.Group("/members")
	members.Use(middleware.AuthMiddleware())
	members.Use(middleware.ContextLogger(logger))
	{
		members.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "member", "read"),
			handler.GetAll,
		)

		members.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "member", "read"),
			handler.GetOptions,
		)

		members.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "member", "read"),
			handler.GetById,
		)

		members.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "member", "create"),
			handler.Create,
		)

		members.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "member", "update"),
			handler.Update,
		)

		members.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "member", "delete"),
			handler.Delete,
		)
	}
}
