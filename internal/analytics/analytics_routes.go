package analytics

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
	stats := r.Group("/analytics")
	stats.Use(middleware.AuthMiddleware())
	stats.Use(middleware.ContextLogger(logger))
	{
		stats.GET("/me",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "analytics", "read_own"),
			handler.MyStats,
		)

		stats.GET("/members/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "checkin", "read_all"),
			handler.MemberStats,
		)

		// Leaderboard is visible to every authenticated role in the gym.
		stats.GET("/leaderboard",
			middleware.RateLimitByUser(3, 10),
			handler.Leaderboard,
		)

		stats.GET("/revenue",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "analytics", "revenue"),
			handler.Revenue,
		)
	}
}
