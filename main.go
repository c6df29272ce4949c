package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"flashcard-service/config"
	"flashcard-service/internal/client"
	"flashcard-service/internal/constants"
	"flashcard-service/internal/game"
	"flashcard-service/internal/handlers"
	"flashcard-service/internal/middleware"
	"flashcard-service/internal/repository"
	"flashcard-service/internal/service"
	ws "flashcard-service/internal/websocket"
	"flashcard-service/pkg/cache"
	"flashcard-service/pkg/database"
	"flashcard-service/pkg/messaging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const serviceName = "flashcard-service"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogger(cfg.Log)
	log.Info().Str("db_type", cfg.DB.Type).Msg("Configuration loaded")

	db, err := database.NewClient(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Str("dialect", db.Dialect.Name()).Msg("Connected to database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.InitSchema(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to initialize schema")
	}
	repo := repository.NewFlashcardRepository(db)
	if cfg.DB.Seed {
		if seeded, err := service.SeedSampleData(ctx, repo); err != nil {
			log.Error().Err(err).Msg("Failed to seed sample data")
		} else if seeded {
			log.Info().Msg("Sample catalog seeded")
		}
	}
	cancel()

	// A nil *RedisClient must not end up inside the service.Cache interface.
	var catalogCache service.Cache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		redisClient = nil
	} else {
		log.Info().Msg("Connected to Redis")
		defer redisClient.Close()
		catalogCache = redisClient
	}

	var publisher ws.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		rabbit, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, session events disabled")
		} else {
			log.Info().Msg("Connected to RabbitMQ")
			defer rabbit.Close()
			publisher = rabbit
		}
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	catalog := service.NewCatalogService(repo, catalogCache)
	wireChangeFeed(appCtx, db, repo, redisClient, catalog)

	gemini := client.NewGeminiClient(&cfg.Gemini)
	explanations := service.NewExplanationService(repo, gemini, catalogCache)

	hubOpts := []ws.HubOption{}
	if publisher != nil {
		hubOpts = append(hubOpts, ws.WithPublisher(publisher))
	}
	hub := ws.NewHub(catalog, gameConfig(cfg.Game), hubOpts...)
	go hub.Run()
	log.Info().Msg("WebSocket hub started")

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
		})
	})

	catalogHandler := handlers.NewCatalogHandler(catalog)
	explanationHandler := handlers.NewExplanationHandler(explanations)
	wsHandler := handlers.NewWebSocketHandler(hub, catalog, cfg.Server.AllowedOrigins)

	identity := middleware.Identity(cfg.Auth.JWTSecret)
	router.GET("/ws", identity, wsHandler.HandleWebSocket)

	api := router.Group("/api")
	{
		api.GET("/courses", catalogHandler.ListCourses)
		api.GET("/courses/:id/topics", catalogHandler.ListTopics)
		api.GET("/topics/:id/flashcards", catalogHandler.ListFlashcards)

		write := api.Group("", identity)
		write.POST("/courses", catalogHandler.CreateCourse)
		write.POST("/courses/:id/topics", catalogHandler.CreateTopic)
		write.POST("/topics/:id/flashcards", catalogHandler.CreateFlashcard)
		write.POST("/flashcards/:id/explanation", explanationHandler.Explain)
	}

	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Server.GRPCPort).Msg("Failed to listen for gRPC")
	}
	go func() {
		log.Info().Str("port", cfg.Server.GRPCPort).Msg("gRPC health server starting")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.HTTPPort,
		Handler: router,
	}
	go func() {
		log.Info().Str("port", cfg.Server.HTTPPort).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	healthServer.Shutdown()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
	hub.Stop()
	stopApp()

	log.Info().Msg("Flashcard service stopped")
}

func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	log.Logger = log.With().Str("service", serviceName).Logger()
}

func gameConfig(cfg config.GameConfig) game.Config {
	gc := game.DefaultConfig()
	if cfg.DurationSeconds > 0 {
		gc.DurationSeconds = cfg.DurationSeconds
	}
	gc.Timing = game.Timing{
		CorrectDelay:   cfg.CorrectDelay,
		IncorrectDelay: cfg.IncorrectDelay,
		MatchDelay:     cfg.MatchDelay,
		SkipDelay:      cfg.SkipDelay,
	}
	return gc
}

// wireChangeFeed prefers Postgres LISTEN/NOTIFY, then Redis pub/sub.
func wireChangeFeed(ctx context.Context, db *database.DB, repo *repository.FlashcardRepository, redisClient *cache.RedisClient, catalog *service.CatalogService) {
	if repo.SupportsNotify() {
		err := database.Listen(ctx, db.URL(), constants.FlashcardsChannel, catalog.TopicChanged)
		if err == nil {
			catalog.SetBroadcaster(func(ctx context.Context, topicID string) error {
				return repo.NotifyTopicChanged(ctx, constants.FlashcardsChannel, topicID)
			})
			log.Info().Msg("Flashcard changes fan out over Postgres LISTEN/NOTIFY")
			return
		}
		log.Warn().Err(err).Msg("Postgres listener unavailable")
	}

	if redisClient != nil {
		err := redisClient.Subscribe(ctx, constants.FlashcardsChannel, catalog.TopicChanged)
		if err == nil {
			catalog.SetBroadcaster(func(ctx context.Context, topicID string) error {
				return redisClient.Publish(ctx, constants.FlashcardsChannel, topicID)
			})
			log.Info().Msg("Flashcard changes fan out over Redis pub/sub")
			return
		}
		log.Warn().Err(err).Msg("Redis subscription unavailable")
	}

	log.Info().Msg("Flashcard changes are local to this instance")
}
