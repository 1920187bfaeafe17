package attendance

import (
	"go-gym/internal/middleware"
	"go-gym/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	checkins := r.Group("/checkins")
	checkins.Use(middleware.AuthMiddleware())
	checkins.Use(middleware.ContextLogger(logger))
	{
		checkins.POST("/scan",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "checkin", "scan"),
			middleware.Idempotency(rdb),
			handler.Scan,
		)

		checkins.POST("/manual",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "checkin", "manual"),
			handler.Manual,
		)

		checkins.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)
	}

	// Old kiosk builds still call this. Demo only, nothing is persisted.
	legacy := r.Group("/legacy")
	legacy.Use(middleware.AuthMiddleware())
	{
		legacy.POST("/checkin", handler.LegacyToggle)
	}
}
