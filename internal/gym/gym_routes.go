package gym

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
	gyms := r.Group("/gym")
	gyms.Use(middleware.AuthMiddleware())
	gyms.Use(middleware.ContextLogger(logger))
	{
		gyms.GET("",
			middleware.RateLimitByUser(5, 20),
			handler.Get,
		)

		gyms.GET("/credential",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "credential", "read"),
			handler.GetCredential,
		)

		gyms.POST("/credential/rotate",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "credential", "rotate"),
			handler.RotateCredential,
		)
	}
}
