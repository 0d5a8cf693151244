// @title SurveyGen API
// @version 1.0
// @description Upload markdown study material and get back generated multiple-choice quizzes.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"surveygen/internal/adapter"
	"surveygen/internal/adapter/quizgen"
	"surveygen/internal/cache"
	"surveygen/internal/config"
	"surveygen/internal/database"
	"surveygen/internal/domain"
	"surveygen/internal/handler"
	"surveygen/internal/logger"
	"surveygen/internal/middleware"
	"surveygen/internal/repository"
	"surveygen/internal/service"
	"surveygen/internal/validation"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func newQuizGenerator(cfg *config.Config) (domain.QuizGenerator, error) {
	gen := cfg.Generation
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		return quizgen.NewOllamaQuizGenerator(cfg.LLM.Ollama.ServerURL, cfg.LLM.Ollama.Model, gen.NumQuestions, gen.NumOptions)
	case config.ProviderOpenAI:
		return quizgen.NewOpenAIQuizGenerator(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model, gen.NumQuestions, gen.NumOptions)
	default:
		return nil, domain.NewInternalError("unsupported LLM provider: "+string(cfg.LLM.Provider), nil)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	generator, err := newQuizGenerator(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	appLogger.Info("Quiz generator initialized", zap.String("provider", string(cfg.LLM.Provider)))

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to database")

	userRepository := repository.NewSQLXUserRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)

	// The cache is optional; the server runs without Redis, just slower
	// on repeated quiz reads.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	authService, err := service.NewAuthService(cfg.JWT.AccessTokenTTL)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	validator := validation.NewDocumentValidator(cfg.Upload.AllowedExtensions)
	userService := service.NewUserService(userRepository, authService)
	documentService := service.NewDocumentService(generator, quizRepository, validator)
	quizService := service.NewQuizService(quizRepository, cacheAdapter)

	userHandler := handler.NewUserHandler(userService)
	documentHandler := handler.NewDocumentHandler(documentService, validator)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
		cacheStatus := "disabled"
		if cacheAdapter != nil {
			cacheStatus = "ok"
			if err := cacheAdapter.Ping(c.Context()); err != nil {
				cacheStatus = "unreachable"
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "cache": cacheStatus})
	})

	apiGroup := app.Group("/api/v1")

	userGroup := apiGroup.Group("/users")
	userGroup.Post("/register", userHandler.Register)
	userGroup.Post("/login", userHandler.Login)

	// Upload works without credentials; a valid token additionally persists
	// the generated quizzes under the caller's account, and a presented but
	// invalid token is rejected.
	apiGroup.Post("/documents/upload", middleware.OptionalAuth(authService), documentHandler.Upload)

	quizGroup := apiGroup.Group("/quizzes", middleware.Protected(authService))
	quizGroup.Get("/history", quizHandler.GetHistory)
	quizGroup.Get("/:quizId", quizHandler.GetQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
