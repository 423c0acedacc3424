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
	"github.com/yourusername/quizarena-api/internal/config"
	"github.com/yourusername/quizarena-api/internal/handler"
	"github.com/yourusername/quizarena-api/internal/middleware"
	pgRepo "github.com/yourusername/quizarena-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizarena-api/internal/repository/redis"
	"github.com/yourusername/quizarena-api/internal/service"
	"github.com/yourusername/quizarena-api/pkg/database"
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
	quizRepo := pgRepo.NewQuizRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	quizCacheTTL := time.Duration(cfg.Cache.QuizTTLMinutes) * time.Minute
	authoringService := service.NewAuthoringService(quizRepo)
	attemptService := service.NewAttemptService(attemptRepo, quizRepo, cacheRepo, quizCacheTTL)
	// QuizRepo выступает фабрикой тренировочных викторин
	practiceService := service.NewPracticeService(attemptRepo, quizRepo, cacheRepo, quizRepo, quizCacheTTL)

	// Инициализируем обработчики
	quizHandler := handler.NewQuizHandler(authoringService, attemptService)
	attemptHandler := handler.NewAttemptHandler(attemptService)
	practiceHandler := handler.NewPracticeHandler(practiceService)

	// Инициализируем rate limiter на базе Redis
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// При деплое за load balancer: добавьте IP балансировщика в список
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	writeLimit := rateLimiter.Limit(middleware.DefaultWriteRateLimitConfig())
	practiceLimit := rateLimiter.Limit(middleware.PracticeRateLimitConfig())

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Викторины
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", writeLimit, quizHandler.CreateQuiz)

			// Группа маршрутов, требующих quizID
			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUUIDParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.GET("/rankings", quizHandler.GetRankings)
				quizWithID.POST("/complete", writeLimit, attemptHandler.CompleteQuiz)
			}
		}

		// Игроки: история попыток и тренировочные викторины
		players := api.Group("/players/:name")
		players.Use(middleware.ExtractNameParam("name", "playerName"))
		{
			players.GET("/attempts", attemptHandler.ListPastAttempts)
			players.GET("/attempts/export", attemptHandler.ExportAttempts)
			players.POST("/practice", practiceLimit, practiceHandler.GeneratePractice)
		}

		// Попытки: просмотр, редактирование ответов, фиксация
		attempts := api.Group("/attempts/:id")
		attempts.Use(middleware.ExtractUUIDParam("id", "attemptID"))
		{
			attempts.GET("", attemptHandler.OpenAttempt)
			attempts.PUT("/answers", writeLimit, attemptHandler.SaveEdits)
			attempts.POST("/lock", writeLimit, attemptHandler.LockAttempt)
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

	// Ждем сигнал остановки, затем корректно завершаем работу
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
