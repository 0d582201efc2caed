package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/fantasy-api/internal/config"
	"github.com/yourusername/fantasy-api/internal/handler"
	"github.com/yourusername/fantasy-api/internal/middleware"
	pgRepo "github.com/yourusername/fantasy-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/fantasy-api/internal/repository/redis"
	"github.com/yourusername/fantasy-api/internal/service"
	"github.com/yourusername/fantasy-api/internal/service/bossbattle"
	"github.com/yourusername/fantasy-api/internal/service/matchsim"
	"github.com/yourusername/fantasy-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	bossRepo := pgRepo.NewBossRepo(db)
	participantRepo := pgRepo.NewParticipantRepo(db)
	settingsRepo := pgRepo.NewSettingsRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// --- Инициализация сервисов ---
	battleConfig := bossbattle.DefaultConfig()

	settingsService := service.NewSettingsService(settingsRepo)
	rewardService := service.NewRewardService(participantRepo)

	// Симулятор матчей внедряется при сборке и не подменяется в рантайме
	resolver := matchsim.NewEngine(cfg.BossBattle.ResolverSeed)

	bossService := service.NewBossService(bossRepo, participantRepo, cacheRepo, battleConfig)
	challengeService := service.NewChallengeService(bossRepo, participantRepo, settingsService, resolver, rewardService)

	// Прогреваем кеш настроек; при недоступной БД упадём сразу, а не на первом запросе
	if _, err := settingsService.Refresh(); err != nil {
		log.Printf("Failed to load game settings: %v", err)
		os.Exit(1)
	}

	// --- Инициализация обработчиков ---
	cooldownGuard := middleware.NewCooldownGuard(cacheRepo)
	rateLimiter := middleware.NewRateLimiter(cacheRepo)
	bossHandler := handler.NewBossHandler(bossService, challengeService, settingsService, cooldownGuard)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// Настройка Gin
	router := gin.Default()

	if gin.Mode() == gin.ReleaseMode {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Боссы (игровая поверхность)
		bosses := api.Group("/bosses")
		bosses.Use(rateLimiter.LimitByIP(middleware.DefaultAPIRateLimitConfig()))
		{
			bosses.GET("", bossHandler.ListBosses)
			bosses.GET("/active", bossHandler.GetActiveBoss)

			// Группа маршрутов, требующих bossID
			bossWithID := bosses.Group("/:id")
			bossWithID.Use(middleware.ExtractUintParam("id", "bossID")) // Применяем middleware
			{
				bossWithID.GET("", bossHandler.GetBoss)
				bossWithID.GET("/leaderboard", bossHandler.GetLeaderboard)
				bossWithID.POST("/challenge",
					rateLimiter.Limit(middleware.ChallengeRateLimitConfig()),
					bossHandler.ChallengeBoss)

				participant := bossWithID.Group("/participants/:teamId")
				participant.Use(middleware.ExtractUintParam("teamId", "teamID"))
				{
					participant.GET("", bossHandler.GetParticipant)
				}
			}
		}

		// Административная поверхность.
		// Аутентификацию обеспечивает внешний шлюз перед этим сервисом.
		admin := api.Group("/admin")
		{
			admin.POST("/bosses", bossHandler.CreateBoss)

			adminBoss := admin.Group("/bosses/:id")
			adminBoss.Use(middleware.ExtractUintParam("id", "bossID"))
			{
				adminBoss.DELETE("", bossHandler.DeleteBoss)
				adminBoss.POST("/reset", bossHandler.ResetBoss)
				adminBoss.GET("/ledger-check", bossHandler.VerifyLedger)
				adminBoss.GET("/leaderboard/export", bossHandler.ExportLeaderboard)
			}

			admin.GET("/settings", settingsHandler.GetSettings)
			admin.PUT("/settings", settingsHandler.UpdateSettings)
			admin.POST("/settings/refresh", settingsHandler.RefreshSettings)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// После получения сигнала SIGINT или SIGTERM останавливаем сервер
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
