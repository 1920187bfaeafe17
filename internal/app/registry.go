package app

import (
	"database/sql"

	"go-gym/internal/analytics"
	"go-gym/internal/attendance"
	"go-gym/internal/auth"
	"go-gym/internal/bootstrap"
	"go-gym/internal/gym"
	"go-gym/internal/member"
	"go-gym/internal/messaging/kafka"
	"go-gym/internal/middleware"
	"go-gym/internal/rbac"
	"go-gym/internal/rbac/infra"
	"go-gym/internal/shared/counter"
	"go-gym/internal/staff"
	"go-gym/internal/subscription"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	router.Use(middleware.RequestID())

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	gymRepo := gym.NewRepository(gormDB)
	memberRepo := member.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	subscriptionRepo := subscription.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	gymService := gym.NewService(gymRepo, rdb)
	memberService := member.NewService(memberRepo, counterRepo, rdb)
	staffService := staff.NewService(staffRepo)
	authService := auth.NewService(authRepo, rbacService, memberService)
	attendanceService := attendance.NewService(db, attendanceRepo, gymService, outboxRepo, rdb)
	subscriptionService := subscription.NewService(db, subscriptionRepo)
	analyticsService := analytics.NewService(analyticsRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	gymHandler := gym.NewHandler(gymService, bootstrap.NewStdoutAuditLogger())
	memberHandler := member.NewHandler(memberService)
	staffHandler := staff.NewHandler(staffService)
	attendanceHandler := attendance.NewHandler(attendanceService, attendance.NewLegacyToggler(), rdb)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	analyticsHandler := analytics.NewHandler(analyticsService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		gym.RegisterRoutes(api, gymHandler, rbacService, logger)
		member.RegisterRoutes(api, memberHandler, rbacService, logger)
		staff.RegisterRoutes(api, staffHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb, logger)
		subscription.RegisterRoutes(api, subscriptionHandler, rbacService, logger)
		analytics.RegisterRoutes(api, analyticsHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
