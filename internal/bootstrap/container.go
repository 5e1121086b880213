package bootstrap

import (
	"context"
	"log"

	"quicknotes-be/internal/cache"
	"quicknotes-be/internal/config"
	"quicknotes-be/internal/controller"
	"quicknotes-be/internal/metrics"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	NoteController   controller.INoteController
	UserController   controller.IUserController
	HealthController controller.IHealthController

	// Services (exposed for the metrics stats handler)
	UserService service.IUserService

	// Infrastructure (exposed for main.go lifecycle management)
	Cache   cache.Cache
	Metrics *metrics.Metrics
	Logger  logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	opt, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.Cache.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (cache degraded to pass-through)", err)
	}
	cacheGateway := cache.NewRedisCache(rdb, sysLogger)

	appMetrics := metrics.New()

	// 3. Services
	authService := service.NewAuthService(uowFactory, cfg.Auth, sysLogger)
	noteService := service.NewNoteService(
		uowFactory,
		cacheGateway,
		sysLogger,
		cfg.Cache.ListTTL,
		cfg.Cache.SearchTTL,
		cfg.Cache.TagsTTL,
	)
	userService := service.NewUserService(uowFactory, cacheGateway, sysLogger)

	// 4. Controllers
	authController := controller.NewAuthController(authService)
	noteController := controller.NewNoteController(noteService)
	userController := controller.NewUserController(userService)
	healthController := controller.NewHealthController(db, cacheGateway, cfg.App.Environment)

	return &Container{
		AuthController:   authController,
		NoteController:   noteController,
		UserController:   userController,
		HealthController: healthController,
		UserService:      userService,
		Cache:            cacheGateway,
		Metrics:          appMetrics,
		Logger:           sysLogger,
	}
}
