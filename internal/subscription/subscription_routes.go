package subscription

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
	subs := r.Group("/subscriptions")
	subs.Use(middleware.AuthMiddleware())
	subs.Use(middleware.ContextLogger(logger))
	{
		subs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "subscription", "read"),
			handler.GetAll,
		)

		subs.GET("/mine",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "subscription", "read_own"),
			handler.GetMine,
		)

		subs.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "subscription", "read"),
			handler.GetById,
		)

		subs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "subscription", "create"),
			handler.Create,
		)

		subs.POST("/:id/renew",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "subscription", "update"),
			handler.Renew,
		)
	}
}
