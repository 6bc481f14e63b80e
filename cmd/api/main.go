package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"viewtube/internal/api/handler"
	"viewtube/internal/api/middleware"
	"viewtube/internal/api/router"
	"viewtube/internal/config"
	"viewtube/internal/infra/database"
	infraES "viewtube/internal/infra/elasticsearch"
	infraKafka "viewtube/internal/infra/kafka"
	infraMinio "viewtube/internal/infra/minio"
	infraRedis "viewtube/internal/infra/redis"
	"viewtube/internal/model"
	"viewtube/internal/repository"
	"viewtube/internal/service"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title ViewTube API
// @version 1.0
// @description Video sharing platform API.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Format: Bearer {token}

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&model.User{},
		&model.WatchEntry{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistEntry{},
		&model.Tweet{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// Elasticsearch is optional: search degrades to the database when
	// it is down.
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fall back to database", zap.Error(err))
	} else {
		defer infraES.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := infraES.InitIndexes(ctx); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		cancel()
	}

	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	watchRepo := repository.NewWatchRepository(db)

	store := service.NewObjectStore()
	events := service.NewEventPublisher(&cfg.Kafka)
	statsCache := service.NewStatsCache()

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, subscriptionRepo, watchRepo)
	videoService := service.NewVideoService(videoRepo, commentRepo, likeRepo, playlistRepo, watchRepo, subscriptionRepo, store, events)
	commentService := service.NewCommentService(commentRepo, videoRepo, likeRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, likeRepo, store)
	dashboardService := service.NewDashboardService(videoRepo, subscriptionRepo, likeRepo, userRepo, statsCache)
	searchService := service.NewSearchService(videoRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	searchHandler := handler.NewSearchHandler(searchService)

	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r,
		authHandler,
		userHandler,
		videoHandler,
		commentHandler,
		likeHandler,
		subscriptionHandler,
		playlistHandler,
		tweetHandler,
		dashboardHandler,
		searchHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
	)

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}

func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"mode":    cfg.App.Mode,
	})
}
