package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/embedding"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
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
		)

		return err
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

	// Redis is optional: without it quizzes are generated fresh on every
	// request and embedding results are not cached.
	var quizCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without quiz cache", zap.Error(err))
		} else {
			quizCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Quiz cache initialized", zap.String("address", cfg.Redis.Address))
		}
	}

	// The embedding service is the optional distractor re-ranking
	// backend. Generation works fully without it.
	var embeddingService domain.EmbeddingService
	switch cfg.Embedding.Source {
	case "ollama":
		appLogger.Info("Initializing Ollama Embedding Service",
			zap.String("server_url", cfg.Embedding.Ollama.ServerURL),
			zap.String("model", cfg.Embedding.Ollama.Model))
		embeddingService, err = embedding.NewOllamaEmbeddingService(cfg.Embedding.Ollama.ServerURL, cfg.Embedding.Ollama.Model)
		if err != nil {
			appLogger.Warn("Failed to create Ollama Embedding Service, continuing without re-ranking", zap.Error(err))
			embeddingService = nil
		}
	case "openai":
		appLogger.Info("Initializing OpenAI Embedding Service",
			zap.String("model", cfg.Embedding.OpenAI.Model))
		embeddingService, err = embedding.NewOpenAIEmbeddingService(
			cfg.Embedding.OpenAI.APIKey, cfg.Embedding.OpenAI.Model, quizCache, cfg.Embedding.CacheTTL)
		if err != nil {
			appLogger.Warn("Failed to create OpenAI Embedding Service, continuing without re-ranking", zap.Error(err))
			embeddingService = nil
		}
	case "none", "":
		appLogger.Info("Embedding enhancement disabled by configuration")
	default:
		appLogger.Warn("Unsupported embedding source, continuing without re-ranking",
			zap.String("source", cfg.Embedding.Source))
	}

	quizService := service.NewQuizService(cfg, quizCache, embeddingService)
	batchService := service.NewBatchService(quizService)
	quizHandler := handler.NewQuizHandler(quizService, batchService, validation.NewValidator())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	quizzes := api.Group("/quizzes")
	quizzes.Post("/generate", quizHandler.GenerateQuiz)
	quizzes.Post("/generate-batch", quizHandler.GenerateBatch)
	quizzes.Post("/score", quizHandler.ScoreQuiz)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		appLogger.Info("Shutting down server")
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("address", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server stopped unexpectedly", zap.Error(err))
	}
}
