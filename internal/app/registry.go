package app

import (
	"database/sql"

	"go-salescrm/internal/auth"
	"go-salescrm/internal/channel"
	"go-salescrm/internal/commission"
	"go-salescrm/internal/customer"
	"go-salescrm/internal/department"
	"go-salescrm/internal/messaging/kafka"
	"go-salescrm/internal/orgscope"
	"go-salescrm/internal/rbac"
	"go-salescrm/internal/rbac/infra"
	"go-salescrm/internal/salestarget"
	"go-salescrm/internal/shared/counter"
	"go-salescrm/internal/training"
	"go-salescrm/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	channelRepo := channel.NewRepository(gormDB)
	commissionRepo := commission.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	customerRepo := customer.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	salesTargetRepo := salestarget.NewRepository(gormDB)
	trainingRepo := training.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- Core ---
	resolver := orgscope.NewResolver(userRepo)

	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	engine := commission.NewEngine(customerRepo, userRepo, departmentRepo, commissionRepo)

	// --- Services ---
	authService := auth.NewService(authRepo)
	channelService := channel.NewService(db, channelRepo)
	commissionService := commission.NewService(db, commissionRepo, resolver)
	customerService := customer.NewService(db, customerRepo, engine, counterRepo, outboxRepo, resolver)
	departmentService := department.NewService(db, departmentRepo)
	salesTargetService := salestarget.NewService(salesTargetRepo, resolver)
	trainingService := training.NewService(trainingRepo)
	userService := user.NewService(db, userRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	channelHandler := channel.NewHandler(channelService)
	commissionHandler := commission.NewHandler(commissionService)
	customerHandler := customer.NewHandler(customerService)
	departmentHandler := department.NewHandler(departmentService)
	salesTargetHandler := salestarget.NewHandler(salesTargetService)
	trainingHandler := training.NewHandler(trainingService)
	userHandler := user.NewHandler(userService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		channel.RegisterRoutes(api, channelHandler, rbacService)
		commission.RegisterRoutes(api, commissionHandler, rbacService)
		customer.RegisterRoutes(api, customerHandler, rbacService, rdb)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		salestarget.RegisterRoutes(api, salesTargetHandler, rbacService)
		training.RegisterRoutes(api, trainingHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
