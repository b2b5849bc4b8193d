package app

import (
	"context"
	"fmt"
	"time"

	"influmatch_backend/database"
	"influmatch_backend/internal/cache"
	"influmatch_backend/internal/config"
	"influmatch_backend/internal/events"
	"influmatch_backend/internal/handlers"
	"influmatch_backend/internal/logger"
	"influmatch_backend/internal/middleware"
	"influmatch_backend/internal/repositories"
	"influmatch_backend/internal/routes"
	"influmatch_backend/internal/services"
	"influmatch_backend/internal/validator"
	"influmatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration error", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// 1. Кэш: Redis, либо no-op, если адрес не задан
	cacheLayer := initializeCache(ctx, cfg)

	// 2. Шина событий
	sink := events.NewAsyncSink(256)
	sink.Start(ctx)

	// 3. Сервисы
	serviceContainer := initializeServices(cfg, gormDB, cacheLayer, sink)

	// 4. Фоновая перетренировка модели
	retrainWorker := workers.NewRetrainWorker(
		serviceContainer.MatchingService,
		time.Duration(cfg.Matching.RetrainIntervalMinutes)*time.Minute,
	)
	retrainWorker.Start(ctx)

	// 5. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 6. Gin + маршруты
	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis не сконфигурирован: мемоизация матчинга отключена")
		return cache.NewNoopCache()
	}

	redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		// кэш не критичен: стартуем, деградация будет залогирована per-operation
		logger.Warn("Redis недоступен при старте", "error", err.Error())
	} else {
		logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	}
	return redisCache
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, cacheLayer cache.Cache, sink events.Sink) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	profileRepo := repositories.NewProfileRepository(gormDB)
	interactionRepo := repositories.NewInteractionRepository(gormDB)
	matchingLogRepo := repositories.NewMatchingLogRepository(gormDB)

	// --- Инициализация сервисов ---
	matchingService := services.NewMatchingService(profileRepo, interactionRepo, matchingLogRepo, cacheLayer, sink, cfg)
	compatibilityService := services.NewCompatibilityService(profileRepo)
	portfolioService := services.NewPortfolioService(profileRepo, matchingService, sink)

	return &services.ServiceContainer{
		MatchingService:      matchingService,
		CompatibilityService: compatibilityService,
		PortfolioService:     portfolioService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		MatchingHandler:  handlers.NewMatchingHandler(baseHandler, container.MatchingService, container.CompatibilityService),
		PortfolioHandler: handlers.NewPortfolioHandler(baseHandler, container.PortfolioService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
